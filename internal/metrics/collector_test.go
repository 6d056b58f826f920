package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(f.step)
	return f.t
}

func TestCollectorStages(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0), step: 10 * time.Millisecond}
	c := newCollector(clock.now)

	done := c.Start("config")
	require.Empty(t, c.Snapshot().Stages, "running stages are not reported")
	done(nil)

	fail := c.Start("prompt")
	fail(errors.New("cancelled"))
	fail(nil) // ignored

	snap := c.Snapshot()
	require.Equal(t, int64(1), snap.Failures)
	require.Equal(t, []Stage{
		{Name: "config", Duration: 20 * time.Millisecond},
		{Name: "prompt", Duration: 10 * time.Millisecond, Failed: true},
	}, snap.Stages)
	require.Equal(t, 30*time.Millisecond, snap.Total())
	require.Positive(t, snap.Uptime)
}

func TestCollectorConcurrentStages(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Start("env")(nil)
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.Len(t, snap.Stages, 16)
	require.Zero(t, snap.Failures)
}
