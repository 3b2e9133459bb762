package sitesearch

// ResultState tells the UI what the results panel should show.
type ResultState int

const (
	// StateCleared means the query was too short. The panel is emptied and hidden.
	StateCleared ResultState = iota
	// StateNoResults means the query was searched and nothing matched.
	StateNoResults
	// StateMatches means at least one entry matched.
	StateMatches
)

// NoResultsMessage is shown in the panel when a search matches nothing.
const NoResultsMessage = "No results found"

func (s ResultState) String() string {
	switch s {
	case StateCleared:
		return "cleared"
	case StateNoResults:
		return "no_results"
	case StateMatches:
		return "matches"
	default:
		return "unknown"
	}
}

// MarshalText lets the state travel as a string in JSON responses.
func (s ResultState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Hit is a matched entry with its display fields already highlighted.
type Hit struct {
	Entry   *Entry `json:"entry"`
	Title   string `json:"title"`             // Title is the highlighted title
	Summary string `json:"summary,omitempty"` // Summary is the highlighted, truncated summary
	Date    string `json:"date,omitempty"`    // Date is the formatted date
}

// Result is the outcome of one query. It is rebuilt from scratch for every query.
type Result struct {
	Query string      `json:"query"`
	State ResultState `json:"state"`
	Hits  []Hit       `json:"hits"`
}

// Visible returns true if the results panel has content and should be shown.
func (r Result) Visible() bool {
	return r.State != StateCleared
}

// Entries returns the matched entries in result order.
func (r Result) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.Hits))
	for _, h := range r.Hits {
		entries = append(entries, h.Entry)
	}
	return entries
}
