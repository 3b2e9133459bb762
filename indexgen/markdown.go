package indexgen

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
)

// Page is a parsed content file before it becomes an index entry.
type Page struct {
	Title   string
	Summary string
	Text    string // Text is the rendered body with all markup removed
	Tags    []string
	Date    time.Time
	RawDate string // RawDate holds a front matter date that could not be parsed
	Draft   bool
}

// FrontMatter is the subset of front matter the index uses. Date and Tags are loosely typed because YAML
// and TOML hand them over differently.
type FrontMatter struct {
	Title       string `yaml:"title" toml:"title"`
	Summary     string `yaml:"summary" toml:"summary"`
	Description string `yaml:"description" toml:"description"`
	Tags        any    `yaml:"tags" toml:"tags"`
	Date        any    `yaml:"date" toml:"date"`
	Draft       bool   `yaml:"draft" toml:"draft"`
}

// MarkdownParserFunc turns a markdown file into a Page.
type MarkdownParserFunc func(input []byte) (*Page, error)

// DefaultMarkdownParser returns a MarkdownParserFunc that uses goldmark with the following extensions:
// - GFM
// - Typographer
// - Footnote
// - Frontmatter (YAML between --- or TOML between +++)
func DefaultMarkdownParser() MarkdownParserFunc {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			extension.Footnote,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	policy := bluemonday.StrictPolicy()

	return func(input []byte) (*Page, error) {
		return MarkdownToPage(md, policy, input)
	}
}

// MarkdownToPage converts markdown content to a Page.
func MarkdownToPage(md goldmark.Markdown, policy *bluemonday.Policy, content []byte) (*Page, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	page := &Page{
		Text: HTMLToText(policy, buf.String()),
	}

	data := frontmatter.Get(ctx)
	if data == nil {
		return page, nil
	}

	var meta FrontMatter
	if err := data.Decode(&meta); err != nil {
		return page, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	page.Title = strings.TrimSpace(meta.Title)
	page.Summary = strings.TrimSpace(meta.Summary)
	if page.Summary == "" {
		page.Summary = strings.TrimSpace(meta.Description)
	}
	page.Tags = anyToStringSlice(meta.Tags)
	page.Draft = meta.Draft

	date, err := anyToTime(meta.Date)
	if err != nil {
		if !errors.Is(err, ErrUnrecognisedDate) {
			return page, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
		}
		page.RawDate = strings.TrimSpace(fmt.Sprint(meta.Date))
	}
	page.Date = date

	return page, nil
}

// HTMLToText strips every tag from rendered HTML and collapses whitespace.
func HTMLToText(policy *bluemonday.Policy, rendered string) string {
	text := html.UnescapeString(policy.Sanitize(rendered))
	return strings.Join(strings.Fields(text), " ")
}

// FirstWords returns the first n words of text.
func FirstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
