// Package stats provides the monotone counters and timers algorithms report
// to, ported from the best-fitness progress reporting in the teacher's
// executor.Loop (there a bare fmt.Printf; here a queryable Collector so the
// façade, not the algorithm, owns presentation).
package stats

import "time"

// Snapshot is a point-in-time read of a Collector's counters.
type Snapshot struct {
	Iterations  int
	Evaluations int
	Elapsed     time.Duration
	Coverage    map[int]int
}

// Collector accumulates monotone counters and timers observed by a search
// algorithm over the course of one run.
type Collector struct {
	iterations  int
	evaluations int
	startTime   time.Time
	coverage    map[int]int
}

// New creates a Collector with its clock started immediately.
func New() *Collector {
	return &Collector{startTime: time.Now(), coverage: make(map[int]int)}
}

// Start resets the clock to now, without clearing counters.
func (c *Collector) Start() { c.startTime = time.Now() }

// StartTime returns when the clock was last (re)started.
func (c *Collector) StartTime() time.Time { return c.startTime }

// IncIterations increments the iteration counter by one.
func (c *Collector) IncIterations() { c.iterations++ }

// Iterations returns the iteration counter.
func (c *Collector) Iterations() int { return c.iterations }

// IncEvaluations increments the evaluation counter by n.
func (c *Collector) IncEvaluations(n int) { c.evaluations += n }

// RecordCoverage notes that the given goal was newly covered this run.
func (c *Collector) RecordCoverage(goal int) { c.coverage[goal]++ }

// Elapsed returns time since the clock was last started.
func (c *Collector) Elapsed() time.Duration { return time.Since(c.startTime) }

// Snapshot returns a consistent read of every counter.
func (c *Collector) Snapshot() Snapshot {
	cov := make(map[int]int, len(c.coverage))
	for k, v := range c.coverage {
		cov[k] = v
	}
	return Snapshot{
		Iterations:  c.iterations,
		Evaluations: c.evaluations,
		Elapsed:     c.Elapsed(),
		Coverage:    cov,
	}
}
