// Package metrics records how long each stage of a shellman run took and
// whether it failed. The snapshot is shown in the --debug dump.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stage is the outcome of one named step.
type Stage struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Failed   bool          `json:"failed"`
}

// Snapshot is a point-in-time view of the collector.
type Snapshot struct {
	Stages   []Stage       `json:"stages"`
	Failures int64         `json:"failures"`
	Uptime   time.Duration `json:"uptime"`
}

// Collector is a thread-safe stage recorder. Stages may finish on a
// different goroutine than the one that started them (e.g. inside a
// bubbletea command).
type Collector struct {
	startTime time.Time
	now       func() time.Time

	failures atomic.Int64

	mu     sync.Mutex
	stages []Stage
}

// NewCollector creates a Collector whose uptime starts now.
func NewCollector() *Collector {
	return newCollector(time.Now)
}

func newCollector(now func() time.Time) *Collector {
	return &Collector{startTime: now(), now: now}
}

// Start begins timing a stage and returns a done function that records
// its duration. Pass the stage's error (or nil) to done; calling done more
// than once records only the first call.
func (c *Collector) Start(name string) func(error) {
	begin := c.now()

	var once sync.Once
	return func(err error) {
		once.Do(func() {
			if err != nil {
				c.failures.Add(1)
			}
			c.mu.Lock()
			c.stages = append(c.stages, Stage{
				Name:     name,
				Duration: c.now().Sub(begin),
				Failed:   err != nil,
			})
			c.mu.Unlock()
		})
	}
}

// Snapshot returns the stages recorded so far, in completion order.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	stages := make([]Stage, len(c.stages))
	copy(stages, c.stages)
	c.mu.Unlock()

	return Snapshot{
		Stages:   stages,
		Failures: c.failures.Load(),
		Uptime:   c.now().Sub(c.startTime),
	}
}

// Total returns the summed duration of all recorded stages.
func (s Snapshot) Total() time.Duration {
	var sum time.Duration
	for _, st := range s.Stages {
		sum += st.Duration
	}
	return sum
}
