package indexgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hypergopher/sitesearch"
)

const DefaultSummaryWords = 70

// Options is a struct for configuring a Build.
type Options struct {
	ContentDir    string             // ContentDir is the root of the markdown tree.
	BaseURL       string             // BaseURL is prepended to every permalink. Default is "" (site-relative permalinks).
	SummaryWords  int                // SummaryWords is the length of generated summaries. Default is 70.
	IncludeDrafts bool               // IncludeDrafts keeps pages marked draft.
	Logger        *slog.Logger       // Logger is the logger used during the build. Default is a debug logger to stderr.
	Parser        MarkdownParserFunc // Parser parses each file. Default is DefaultMarkdownParser().
}

// Build walks the content tree and returns one index entry per markdown page, newest first.
func Build(ctx context.Context, opts Options) ([]sitesearch.Entry, error) {
	if opts.ContentDir == "" {
		return nil, ErrMissingContentDir
	}

	if opts.SummaryWords <= 0 {
		opts.SummaryWords = DefaultSummaryWords
	}

	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}

	if opts.Parser == nil {
		opts.Parser = DefaultMarkdownParser()
	}

	type dated struct {
		entry sitesearch.Entry
		date  time.Time
	}

	var pages []dated
	err := filepath.WalkDir(opts.ContentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		entry, date, skip, err := buildEntry(opts, path)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", path, err)
		}

		if skip {
			opts.Logger.Debug("Skipping draft", slog.String("path", path))
			return nil
		}

		pages = append(pages, dated{entry: entry, date: date})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk content directory %s: %w", opts.ContentDir, err)
	}

	// Newest first, undated pages last, permalink as tie breaker.
	slices.SortStableFunc(pages, func(a, b dated) int {
		if c := b.date.Compare(a.date); c != 0 {
			return c
		}
		return strings.Compare(a.entry.Permalink, b.entry.Permalink)
	})

	entries := make([]sitesearch.Entry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, p.entry)
	}

	opts.Logger.Info("Search index built", slog.Int("entries", len(entries)))
	return entries, nil
}

func buildEntry(opts Options, path string) (sitesearch.Entry, time.Time, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return sitesearch.Entry{}, time.Time{}, false, fmt.Errorf("failed to read file: %w", err)
	}

	page, err := opts.Parser(content)
	if err != nil {
		return sitesearch.Entry{}, time.Time{}, false, err
	}

	if page.Draft && !opts.IncludeDrafts {
		return sitesearch.Entry{}, time.Time{}, true, nil
	}

	slugPath := SlugifyPath(opts.ContentDir, path)

	if page.RawDate != "" {
		opts.Logger.Warn("Unrecognised date, keeping it as written",
			slog.String("path", path),
			slog.String("date", page.RawDate))
	}

	// A date in the file name stands in for a missing front matter date.
	date := page.Date
	if date.IsZero() && page.RawDate == "" && slugPath.FileTime != nil {
		date = *slugPath.FileTime
	}

	title := page.Title
	if title == "" {
		title = titleFromSlug(slugPath.Slug)
	}

	summary := page.Summary
	if summary == "" {
		summary = FirstWords(page.Text, opts.SummaryWords)
	}

	entry := sitesearch.Entry{
		Permalink: Permalink(opts.BaseURL, slugPath.Slug),
		Title:     title,
		Summary:   summary,
		Content:   page.Text,
		Tags:      page.Tags,
	}
	switch {
	case !date.IsZero():
		entry.Date = date.Format(time.RFC3339)
	case page.RawDate != "":
		entry.Date = page.RawDate
	}

	return entry, date, false, nil
}

// titleFromSlug turns the last slug segment into a readable title.
func titleFromSlug(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "Home"
	}
	words := strings.Split(s, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// WriteJSON writes entries as the index.json array.
func WriteJSON(w io.Writer, entries []sitesearch.Entry) error {
	if entries == nil {
		entries = []sitesearch.Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode search index: %w", err)
	}
	return nil
}

// WriteFile writes entries to path, creating parent directories as needed.
func WriteFile(path string, entries []sitesearch.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create search index file: %w", err)
	}

	if err := WriteJSON(f, entries); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelDebug,
		}))
}
