package filterpanel

import (
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
)

// Selectors of the page elements the panel reads.
const (
	SelectorPostsContainer = "#posts-container"
	SelectorPostCard       = ".post-card"
	SelectorTagVocabulary  = "#all-tags-data [data-tag]"
	SelectorYearMonth      = "#filter-year-month option"
)

// Page holds the filter collaborators found in a rendered HTML page.
type Page struct {
	HasPosts          bool     // HasPosts is false when the page has no posts container
	Cards             []Card   // Cards are the post cards in document order
	Vocabulary        []string // Vocabulary is the full tag list of the site
	YearMonths        []string // YearMonths are the non-empty options of the year-month select
	SelectedYearMonth string   // SelectedYearMonth is the pre-selected option, if any
}

// Parse reads the filter collaborators from an HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsePage, err)
	}

	page := &Page{}

	container := doc.Find(SelectorPostsContainer)
	page.HasPosts = container.Length() > 0
	container.Find(SelectorPostCard).Each(func(_ int, s *goquery.Selection) {
		page.Cards = append(page.Cards, Card{
			URL:       s.AttrOr("data-post-url", ""),
			YearMonth: s.AttrOr("data-year-month", ""),
			Tags:      SplitTags(s.AttrOr("data-tags", "")),
			Visible:   true,
		})
	})

	doc.Find(SelectorTagVocabulary).Each(func(_ int, s *goquery.Selection) {
		if tag := s.AttrOr("data-tag", ""); tag != "" {
			page.Vocabulary = append(page.Vocabulary, tag)
		}
	})

	doc.Find(SelectorYearMonth).Each(func(_ int, s *goquery.Selection) {
		value := s.AttrOr("value", "")
		if value == "" {
			return
		}
		page.YearMonths = append(page.YearMonths, value)
		if _, selected := s.Attr("selected"); selected {
			page.SelectedYearMonth = value
		}
	})

	return page, nil
}

// ParseFile reads the filter collaborators from an HTML file.
func ParseFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Parse(f)
}
