package filterpanel

import (
	"slices"
	"strings"
)

// NoTagsMessage is shown when the tag search matches nothing.
const NoTagsMessage = "No tags found"

// Key is a keyboard key handled by the tag search box.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// View is a snapshot of the panel for rendering.
type View struct {
	SelectedYearMonth string   `json:"selectedYearMonth"`
	SelectedTags      []string `json:"selectedTags"`
	VisibleCount      int      `json:"visibleCount"`
	TagQuery          string   `json:"tagQuery"`
	Suggestions       []string `json:"suggestions"`
	Highlighted       int      `json:"highlighted"`     // Highlighted is the suggestion cursor, -1 when none
	SuggestionsOpen   bool     `json:"suggestionsOpen"` // SuggestionsOpen is true while the result list is shown
	NoTagsFound       bool     `json:"noTagsFound"`
	InputFocused      bool     `json:"inputFocused"`
}

// Panel filters a fixed list of post cards by year-month and tags.
//
// A nil *Panel stands for a page without a filter panel: every method is a no-op and returns zero values.
// A Panel is not safe for concurrent use.
type Panel struct {
	cards             []Card
	cursor            int
	focused           bool
	noTags            bool
	open              bool
	query             string
	selectedTags      []string
	selectedYearMonth string
	suggestions       []string
	visibleCount      int
	vocabulary        []string
}

// New creates a Panel over cards with the full tag vocabulary and applies the empty filter.
func New(cards []Card, vocabulary []string) *Panel {
	p := &Panel{
		cards:      slices.Clone(cards),
		cursor:     -1,
		vocabulary: slices.Clone(vocabulary),
	}
	p.ApplyFilters()
	return p
}

// FromPage creates a Panel from a parsed page. It returns nil when the page has no posts container.
func FromPage(page *Page) *Panel {
	if page == nil || !page.HasPosts {
		return nil
	}

	p := New(page.Cards, page.Vocabulary)
	if page.SelectedYearMonth != "" {
		p.SelectYearMonth(page.SelectedYearMonth)
	}
	return p
}

// ApplyFilters recomputes card visibility from the current selection and returns the visible count.
// A card is visible when it is in the selected year-month (or none is selected) and carries one of the
// selected tags (or none is selected).
func (p *Panel) ApplyFilters() int {
	if p == nil {
		return 0
	}

	count := 0
	for i := range p.cards {
		card := &p.cards[i]
		card.Visible = card.InYearMonth(p.selectedYearMonth) && card.HasAnyTag(p.selectedTags)
		if card.Visible {
			count++
		}
	}

	p.visibleCount = count
	return count
}

// SelectYearMonth sets the year-month filter. An empty value clears it.
func (p *Panel) SelectYearMonth(ym string) {
	if p == nil {
		return
	}
	p.selectedYearMonth = ym
	p.ApplyFilters()
}

// AddTag selects tag. Selecting an already selected tag does nothing.
func (p *Panel) AddTag(tag string) {
	if p == nil || tag == "" || slices.Contains(p.selectedTags, tag) {
		return
	}

	p.selectedTags = append(p.selectedTags, tag)
	p.refreshSuggestions()
	p.ApplyFilters()
}

// RemoveTag deselects tag. Removing a tag that is not selected does nothing.
func (p *Panel) RemoveTag(tag string) {
	if p == nil {
		return
	}

	i := slices.Index(p.selectedTags, tag)
	if i < 0 {
		return
	}

	p.selectedTags = slices.Delete(p.selectedTags, i, i+1)
	p.refreshSuggestions()
	p.ApplyFilters()
}

// Reset clears the year-month, the selected tags and the tag search, restoring full visibility.
func (p *Panel) Reset() {
	if p == nil {
		return
	}

	p.selectedYearMonth = ""
	p.selectedTags = nil
	p.clearTagSearch()
	p.ApplyFilters()
}

// IsSelected returns true if tag is selected.
func (p *Panel) IsSelected(tag string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.selectedTags, tag)
}

// SelectedTags returns the selected tags in selection order.
func (p *Panel) SelectedTags() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.selectedTags)
}

// SelectedYearMonth returns the year-month filter, or "" when none is set.
func (p *Panel) SelectedYearMonth() string {
	if p == nil {
		return ""
	}
	return p.selectedYearMonth
}

// Cards returns a copy of the cards with their current visibility.
func (p *Panel) Cards() []Card {
	if p == nil {
		return nil
	}
	return slices.Clone(p.cards)
}

// VisibleCards returns the cards that pass the current filters.
func (p *Panel) VisibleCards() []Card {
	if p == nil {
		return nil
	}

	var visible []Card
	for _, c := range p.cards {
		if c.Visible {
			visible = append(visible, c)
		}
	}
	return visible
}

// VisibleCount returns the result of the last ApplyFilters.
func (p *Panel) VisibleCount() int {
	if p == nil {
		return 0
	}
	return p.visibleCount
}

// Vocabulary returns the full tag vocabulary.
func (p *Panel) Vocabulary() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.vocabulary)
}

// View returns a render snapshot.
func (p *Panel) View() View {
	if p == nil {
		return View{Highlighted: -1}
	}

	return View{
		SelectedYearMonth: p.selectedYearMonth,
		SelectedTags:      slices.Clone(p.selectedTags),
		VisibleCount:      p.visibleCount,
		TagQuery:          p.query,
		Suggestions:       slices.Clone(p.suggestions),
		Highlighted:       p.cursor,
		SuggestionsOpen:   p.open,
		NoTagsFound:       p.noTags,
		InputFocused:      p.focused,
	}
}

// matchTags returns the vocabulary tags containing the trimmed query, ignoring case and selected tags.
func (p *Panel) matchTags(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []string
	for _, tag := range p.vocabulary {
		if strings.Contains(strings.ToLower(tag), q) && !slices.Contains(p.selectedTags, tag) {
			matches = append(matches, tag)
		}
	}
	return matches
}
