package sitesearch

import (
	"html"
	"regexp"
	"strings"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Span is a byte range [Start, End) of a match inside a field.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MatchSpans returns every non-overlapping case-insensitive occurrence of the trimmed query in text.
func MatchSpans(text, query string) []Span {
	re := queryPattern(query)
	if re == nil || text == "" {
		return nil
	}

	locs := re.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

// HighlightMatch wraps each occurrence of query in text with <mark> tags. Matching ignores case but the
// original casing of text is kept. When the raw query ends with a space, the space is emitted inside the
// wrapper. Text outside the wrappers is HTML escaped.
func HighlightMatch(text, query string) string {
	if text == "" || query == "" {
		return html.EscapeString(text)
	}

	spans := MatchSpans(text, query)
	if len(spans) == 0 {
		return html.EscapeString(text)
	}

	trailing := ""
	if strings.HasSuffix(query, " ") {
		trailing = " "
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(html.EscapeString(text[last:s.Start]))
		b.WriteString(markOpen)
		b.WriteString(html.EscapeString(text[s.Start:s.End]))
		b.WriteString(trailing)
		b.WriteString(markClose)
		last = s.End
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

// queryPattern compiles the trimmed query as a literal, case-insensitive pattern.
func queryPattern(query string) *regexp.Regexp {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(trimmed))
}
