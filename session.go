package sitesearch

import (
	"sync"
	"time"
)

// Effect is a UI side effect requested by a session transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectFocusInput
)

// SessionState is a snapshot of the search modal.
type SessionState struct {
	Open         bool   // Open is true while the modal is shown
	Input        string // Input is the current value of the search box
	ClearVisible bool   // ClearVisible is true when the clear button should be shown
	Result       Result // Result is the last published result
}

// Session drives the search modal: it turns UI events into debounced searches and publishes results.
type Session struct {
	client    *Client
	debouncer *Debouncer
	input     string
	mu        sync.Mutex
	onResult  func(Result)
	open      bool
	publishMu sync.Mutex // held across the staleness check and the onResult call
	result    Result
}

// NewSession creates a session over client. onResult, if set, receives every published result. It runs on
// the debounce timer goroutine for searches and on the caller goroutine for clears, and must not call
// ClearInput, Close or Escape.
func NewSession(client *Client, debounce time.Duration, onResult func(Result)) *Session {
	return &Session{
		client:    client,
		debouncer: NewDebouncer(debounce),
		onResult:  onResult,
	}
}

// Open shows the modal. It only asks for focus; it never searches.
func (s *Session) Open() Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	return EffectFocusInput
}

// Input records a keystroke and schedules a search of value after the quiet window.
func (s *Session) Input(value string) {
	s.mu.Lock()
	s.input = value
	s.mu.Unlock()

	s.debouncer.Trigger(func() {
		s.publishSearch(value, s.client.Search(value))
	})
}

// ClearInput empties the search box, drops any pending search and hides the results.
func (s *Session) ClearInput() Effect {
	s.reset(false)
	return EffectFocusInput
}

// Close hides the modal and resets it.
func (s *Session) Close() {
	s.reset(true)
}

// Escape closes the modal if it is open.
func (s *Session) Escape() {
	s.mu.Lock()
	open := s.open
	s.mu.Unlock()

	if open {
		s.Close()
	}
}

// State returns a snapshot of the modal.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Open:         s.open,
		Input:        s.input,
		ClearVisible: len(s.input) > 0,
		Result:       s.result,
	}
}

// reset empties the input and publishes a cleared result. A search finishing concurrently either publishes
// before the reset or sees the emptied input and is dropped.
func (s *Session) reset(closeModal bool) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	cleared := Result{State: StateCleared}
	s.mu.Lock()
	if closeModal {
		s.open = false
	}
	s.input = ""
	s.result = cleared
	s.mu.Unlock()

	s.debouncer.Cancel()
	s.notify(cleared)
}

// publishSearch publishes r unless the input has changed since value was searched.
func (s *Session) publishSearch(value string, r Result) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if s.input != value {
		s.mu.Unlock()
		return
	}
	s.result = r
	s.mu.Unlock()

	s.notify(r)
}

func (s *Session) notify(r Result) {
	if s.onResult != nil {
		s.onResult(r)
	}
}
