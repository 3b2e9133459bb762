package sitesearch_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/sitesearch"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := sitesearch.NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var calls []int
	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger(func() {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, i)
		})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, calls)
	assert.False(t, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := sitesearch.NewDebouncer(20 * time.Millisecond)

	var ran atomic.Bool
	d.Trigger(func() { ran.Store(true) })
	assert.True(t, d.Pending())

	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	d := sitesearch.NewDebouncer(0)

	start := time.Now()
	done := make(chan time.Duration, 1)
	d.Trigger(func() { done <- time.Since(start) })

	select {
	case elapsed := <-done:
		assert.GreaterOrEqual(t, elapsed, sitesearch.DefaultDebounce)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never ran")
	}
}
