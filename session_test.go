package sitesearch_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/sitesearch"
)

type resultRecorder struct {
	mu      sync.Mutex
	results []sitesearch.Result
}

func (r *resultRecorder) record(res sitesearch.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *resultRecorder) all() []sitesearch.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sitesearch.Result, len(r.results))
	copy(out, r.results)
	return out
}

func TestSession_OpenFocusesWithoutSearching(t *testing.T) {
	rec := &resultRecorder{}
	s := sitesearch.NewSession(newTestClient(testEntries()), 10*time.Millisecond, rec.record)

	assert.Equal(t, sitesearch.EffectFocusInput, s.Open())
	assert.True(t, s.State().Open)

	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func TestSession_TypingSearchesOnceForLastKeystroke(t *testing.T) {
	rec := &resultRecorder{}
	s := sitesearch.NewSession(newTestClient(testEntries()), 30*time.Millisecond, rec.record)
	s.Open()

	for _, v := range []string{"c", "ch", "cha", "chan"} {
		s.Input(v)
	}
	assert.True(t, s.State().ClearVisible)

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	results := rec.all()
	require.Len(t, results, 1)
	assert.Equal(t, "chan", results[0].Query)
	assert.Equal(t, sitesearch.StateMatches, results[0].State)
	assert.Equal(t, "chan", s.State().Result.Query)
}

func TestSession_ClearInputCancelsPendingSearch(t *testing.T) {
	rec := &resultRecorder{}
	s := sitesearch.NewSession(newTestClient(testEntries()), 30*time.Millisecond, rec.record)
	s.Open()

	s.Input("rust")
	assert.Equal(t, sitesearch.EffectFocusInput, s.ClearInput())

	time.Sleep(80 * time.Millisecond)
	results := rec.all()
	require.Len(t, results, 1)
	assert.Equal(t, sitesearch.StateCleared, results[0].State)

	state := s.State()
	assert.True(t, state.Open)
	assert.Equal(t, "", state.Input)
	assert.False(t, state.ClearVisible)
	assert.False(t, state.Result.Visible())
}

func TestSession_EscapeClosesOnlyWhenOpen(t *testing.T) {
	rec := &resultRecorder{}
	s := sitesearch.NewSession(newTestClient(testEntries()), 10*time.Millisecond, rec.record)

	s.Escape()
	assert.Empty(t, rec.all())

	s.Open()
	s.Input("go")
	s.Escape()

	time.Sleep(40 * time.Millisecond)
	state := s.State()
	assert.False(t, state.Open)
	assert.Equal(t, "", state.Input)
	assert.Equal(t, sitesearch.StateCleared, state.Result.State)
	for _, r := range rec.all() {
		assert.Equal(t, sitesearch.StateCleared, r.State)
	}
}

func TestSession_ClearInputNeverFollowedBySearchResult(t *testing.T) {
	for i := 0; i < 200; i++ {
		rec := &resultRecorder{}
		s := sitesearch.NewSession(newTestClient(testEntries()), time.Millisecond, rec.record)
		s.Open()

		s.Input("rust")
		time.Sleep(time.Duration(i%3) * time.Millisecond)
		s.ClearInput()

		time.Sleep(5 * time.Millisecond)
		results := rec.all()
		require.NotEmpty(t, results)
		assert.Equal(t, sitesearch.StateCleared, results[len(results)-1].State, "iteration %d", i)
		assert.Equal(t, sitesearch.StateCleared, s.State().Result.State, "iteration %d", i)
	}
}
