package filterpanel

import (
	"slices"
	"strings"

	"github.com/hypergopher/sitesearch"
)

// Card is one rendered post in the list. Only Visible is changed by the panel.
type Card struct {
	URL       string   `json:"url"`       // URL is the post permalink (data-post-url)
	YearMonth string   `json:"yearMonth"` // YearMonth is the "2006-01" bucket (data-year-month)
	Tags      []string `json:"tags"`      // Tags are the post tags (data-tags)
	Visible   bool     `json:"visible"`   // Visible is the only field the panel mutates
}

// HasAnyTag returns true if the card carries at least one of tags. An empty tags list matches every card.
func (c *Card) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if slices.Contains(c.Tags, tag) {
			return true
		}
	}
	return false
}

// InYearMonth returns true if ym is empty or equals the card bucket.
func (c *Card) InYearMonth(ym string) bool {
	return ym == "" || c.YearMonth == ym
}

// SplitTags splits a comma-joined data-tags attribute. Blank items are dropped.
func SplitTags(attr string) []string {
	var tags []string
	for _, part := range strings.Split(attr, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CardsFromEntries derives post cards from search index entries, bucketing each entry by its date.
func CardsFromEntries(entries []sitesearch.Entry) []Card {
	cards := make([]Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, Card{
			URL:       e.Permalink,
			YearMonth: sitesearch.YearMonth(e.Date),
			Tags:      slices.Clone(e.Tags),
			Visible:   true,
		})
	}
	return cards
}

// VocabularyFromCards returns every tag used by cards, unique and sorted.
func VocabularyFromCards(cards []Card) []string {
	var tags []string
	for _, c := range cards {
		tags = append(tags, c.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// YearMonthsFromCards returns the distinct year-month buckets of cards, newest first.
func YearMonthsFromCards(cards []Card) []string {
	var months []string
	for _, c := range cards {
		if c.YearMonth != "" {
			months = append(months, c.YearMonth)
		}
	}
	slices.Sort(months)
	months = slices.Compact(months)
	slices.Reverse(months)
	return months
}
