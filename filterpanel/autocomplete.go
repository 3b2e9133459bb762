package filterpanel

import "strings"

// SearchTags handles a change of the tag search input. The cursor is reset and the suggestion list is
// recomputed from the whole vocabulary minus the selected tags.
func (p *Panel) SearchTags(query string) {
	if p == nil {
		return
	}

	p.query = query
	p.cursor = -1
	p.computeSuggestions()
}

// Focus handles focus of the tag search input. A non-blank query is searched again.
func (p *Panel) Focus() {
	if p == nil {
		return
	}

	p.focused = true
	if strings.TrimSpace(p.query) != "" {
		p.computeSuggestions()
	}
}

// HandleKey handles a key press in the tag search input. It returns true if the key was consumed.
func (p *Panel) HandleKey(key Key) bool {
	if p == nil {
		return false
	}

	n := len(p.suggestions)
	switch key {
	case KeyArrowDown:
		if n > 0 {
			if p.cursor < n-1 {
				p.cursor++
			} else {
				p.cursor = 0
			}
		}
	case KeyArrowUp:
		if n > 0 {
			if p.cursor > 0 {
				p.cursor--
			} else {
				p.cursor = n - 1
			}
		}
	case KeyEnter:
		p.selectFromSuggestions()
	case KeyEscape:
		p.open = false
		p.cursor = -1
		p.focused = false
	default:
		return false
	}

	return true
}

// ChooseSuggestion handles a click on the i-th suggestion. The input keeps focus.
func (p *Panel) ChooseSuggestion(i int) {
	if p == nil || i < 0 || i >= len(p.suggestions) {
		return
	}

	p.selectTag(p.suggestions[i])
	p.focused = true
}

// DismissSuggestions handles a click outside the tag search. The list is hidden, the query is kept.
func (p *Panel) DismissSuggestions() {
	if p == nil {
		return
	}

	p.open = false
	p.cursor = -1
}

// selectFromSuggestions picks the highlighted suggestion, else the first one. Without suggestions it
// falls back to a tag equal to the query, ignoring case.
func (p *Panel) selectFromSuggestions() {
	if len(p.suggestions) == 0 {
		q := strings.TrimSpace(p.query)
		for _, tag := range p.vocabulary {
			if strings.EqualFold(tag, q) && !p.IsSelected(tag) {
				p.selectTag(tag)
				return
			}
		}
		return
	}

	if p.cursor >= 0 && p.cursor < len(p.suggestions) {
		p.selectTag(p.suggestions[p.cursor])
		return
	}

	p.selectTag(p.suggestions[0])
}

func (p *Panel) selectTag(tag string) {
	p.AddTag(tag)
	p.clearTagSearch()
}

func (p *Panel) clearTagSearch() {
	p.query = ""
	p.suggestions = nil
	p.open = false
	p.noTags = false
	p.cursor = -1
}

func (p *Panel) computeSuggestions() {
	if strings.TrimSpace(p.query) == "" {
		p.suggestions = nil
		p.open = false
		p.noTags = false
		p.cursor = -1
		return
	}

	p.suggestions = p.matchTags(p.query)
	p.open = true
	p.noTags = len(p.suggestions) == 0
	if p.noTags || p.cursor >= len(p.suggestions) {
		p.cursor = -1
	}
}

// refreshSuggestions keeps an open list in sync with the selection so a selected tag is never suggested.
func (p *Panel) refreshSuggestions() {
	if p.suggestions == nil && !p.open {
		return
	}

	open := p.open
	p.computeSuggestions()
	if p.query != "" {
		p.open = open
	}
}
