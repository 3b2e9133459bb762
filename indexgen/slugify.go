package indexgen

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// SlugPath is the permalink path derived from a content file.
type SlugPath struct {
	Slug         string     // Slug is the slash separated, slugified path without extension or file date
	FileTimePath string     // FileTimePath is the YYYY-MM-DD prefix of the file name, if any
	FileTime     *time.Time // FileTime is FileTimePath parsed, if any
}

func hasFileTimeInName(name string) bool {
	return len(name) > 11 && name[4] == '-' && name[7] == '-' && name[10] == '-'
}

// SlugifyPath transforms a content file path into a permalink slug.
// - It trims rootPath from fullPath and the file extension.
// - A file name starting with a 2006-01-02- date has the date removed and returned as FileTime.
// - A trailing "index" segment is dropped so the directory names the page.
// - Each remaining segment is slugified.
func SlugifyPath(rootPath, fullPath string) SlugPath {
	if fullPath == "" {
		return SlugPath{}
	}

	rel, err := filepath.Rel(rootPath, fullPath)
	if err != nil {
		rel = strings.TrimPrefix(fullPath, rootPath)
	}
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	dir, name := path.Split(rel)

	var fileTime *time.Time
	fileTimePath := ""
	if hasFileTimeInName(name) {
		if parsed, err := time.Parse("2006-01-02", name[:10]); err == nil {
			fileTime = &parsed
			fileTimePath = name[:10]
			name = name[11:]
		}
	}

	if name == "index" || name == "_index" {
		name = ""
	}

	var parts []string
	for _, part := range strings.Split(dir+name, "/") {
		if s := slug.Make(part); s != "" {
			parts = append(parts, s)
		}
	}

	return SlugPath{
		Slug:         strings.Join(parts, "/"),
		FileTimePath: fileTimePath,
		FileTime:     fileTime,
	}
}

// Permalink joins baseURL and a slug into a page URL with a trailing slash.
func Permalink(baseURL, s string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if s == "" {
		return base + "/"
	}
	return base + "/" + s + "/"
}
