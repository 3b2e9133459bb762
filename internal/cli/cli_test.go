package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/sitesearch/internal/cli"
)

const postsPage = "../../filterpanel/testdata/posts.html"

func writeSite(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"content/posts/rust-intro.md": `---
title: Intro to Rust
date: 2024-03-02
tags: [rust, cli]
summary: Ownership and borrowing
---
Rust has no garbage collector.
`,
		"content/posts/2024-02-10-go-channels.md": `+++
title = "Go Channels"
tags = ["go", "concurrency"]
+++
Channels connect goroutines.
`,
		"sitesearch.toml": `
[site]
base_url = "https://example.com"
content_dir = "` + filepath.ToSlash(filepath.Join(root, "content")) + `"
output_dir = "` + filepath.ToSlash(filepath.Join(root, "public")) + `"
data_dir = "` + filepath.ToSlash(filepath.Join(root, "data")) + `"
`,
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildSearchTags(t *testing.T) {
	root := writeSite(t)
	cfg := filepath.Join(root, "sitesearch.toml")

	out, err := run(t, "--config", cfg, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 pages")
	assert.FileExists(t, filepath.Join(root, "public", "index.json"))
	assert.FileExists(t, filepath.Join(root, "data", "catalogue.db"))

	out, err = run(t, "--config", cfg, "search", "goroutines")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Channels (Feb 10, 2024)")
	assert.Contains(t, out, "https://example.com/posts/go-channels/")
	assert.NotContains(t, out, "Intro to Rust")

	out, err = run(t, "--config", cfg, "search", "python")
	require.NoError(t, err)
	assert.Equal(t, "No results found\n", out)

	out, err = run(t, "--config", cfg, "search", "--json", "rust")
	require.NoError(t, err)
	var result struct {
		State string `json:"state"`
		Hits  []struct {
			Title string `json:"title"`
		} `json:"hits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "matches", result.State)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Intro to <mark>Rust</mark>", result.Hits[0].Title)

	out, err = run(t, "--config", cfg, "tags")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "cli"))
	assert.True(t, strings.HasPrefix(lines[3], "rust"))
}

func TestSearchWithoutIndex(t *testing.T) {
	root := writeSite(t)

	_, err := run(t, "--config", filepath.Join(root, "sitesearch.toml"), "search", "rust")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sitesearch build")
}

func TestFilter(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "missing.toml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "page selection", args: nil, want: "/posts/a/\n/posts/b/\n2 of 4 posts\n"},
		{name: "all months", args: []string{"--year-month", ""}, want: "/posts/a/\n/posts/b/\n/posts/c/\n/posts/d/\n4 of 4 posts\n"},
		{name: "tag over all months", args: []string{"--year-month", "", "--tag", "go"}, want: "/posts/b/\n/posts/c/\n2 of 4 posts\n"},
		{name: "month and tags", args: []string{"--year-month", "2024-02", "--tag", "go,rust"}, want: "/posts/c/\n1 of 4 posts\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "filter", postsPage}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFilterWithoutPostsContainer(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "about.html")
	require.NoError(t, os.WriteFile(page, []byte("<html><body><p>About</p></body></html>"), 0644))

	_, err := run(t, "--config", filepath.Join(dir, "missing.toml"), "filter", page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no posts container")
}

func TestInvalidConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "sitesearch.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("search:\n  max_results: 0\n"), 0644))

	_, err := run(t, "--config", cfg, "tags")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
