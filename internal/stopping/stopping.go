// Package stopping implements composable StoppingCondition predicates over
// algorithm progress, per spec.md §4.4. Composition never requires
// algorithm cooperation beyond the two observables Progress exposes.
package stopping

import "time"

// Progress is what a Condition is allowed to observe: iteration count and
// start time. It does not expose the current solution; OptimalSolution reads
// the archive through ArchiveStatus instead. Algorithms supply this view
// rather than exposing their full internal state.
type Progress interface {
	Iterations() int
	StartTime() time.Time
}

// Condition is a predicate over algorithm progress.
type Condition interface {
	IsFinished(p Progress) bool
	// IterationFraction and TimeFraction report how far through the
	// condition's own budget the given progress is, in [0,1]. Conditions
	// with no natural notion of one axis return 0 for it (e.g.
	// FixedIterations returns 0 for TimeFraction). OneOf reports the max
	// across its children. Used by MIO's phase-progress metric
	// (max(iterationFraction, timeFraction), spec.md §9).
	IterationFraction(p Progress) float64
	TimeFraction(p Progress) float64
}

// FixedIterations stops when iterations >= N.
type FixedIterations struct {
	N int
}

// NewFixedIterations creates a FixedIterations(n) condition.
func NewFixedIterations(n int) FixedIterations { return FixedIterations{N: n} }

func (f FixedIterations) IsFinished(p Progress) bool { return p.Iterations() >= f.N }

func (f FixedIterations) IterationFraction(p Progress) float64 {
	if f.N <= 0 {
		return 1
	}
	frac := float64(p.Iterations()) / float64(f.N)
	if frac > 1 {
		return 1
	}
	return frac
}

func (f FixedIterations) TimeFraction(p Progress) float64 { return 0 }

// FixedTime stops when wall-clock elapsed since start time >= D.
type FixedTime struct {
	D time.Duration
}

// NewFixedTime creates a FixedTime(d) condition.
func NewFixedTime(d time.Duration) FixedTime { return FixedTime{D: d} }

func (f FixedTime) IsFinished(p Progress) bool {
	return time.Since(p.StartTime()) >= f.D
}

func (f FixedTime) IterationFraction(p Progress) float64 { return 0 }

func (f FixedTime) TimeFraction(p Progress) float64 {
	if f.D <= 0 {
		return 1
	}
	frac := float64(time.Since(p.StartTime())) / float64(f.D)
	if frac > 1 {
		return 1
	}
	return frac
}

// ArchiveStatus is the minimal view OptimalSolution needs of the archive:
// whether every known goal currently has an optimal entry.
type ArchiveStatus interface {
	AllGoalsOptimal() bool
}

// OptimalSolution stops when every goal has an optimal archive entry.
type OptimalSolution struct {
	Archive ArchiveStatus
}

// NewOptimalSolution creates an OptimalSolution condition over the given
// archive status view.
func NewOptimalSolution(archive ArchiveStatus) OptimalSolution {
	return OptimalSolution{Archive: archive}
}

func (o OptimalSolution) IsFinished(p Progress) bool {
	return o.Archive != nil && o.Archive.AllGoalsOptimal()
}

func (o OptimalSolution) IterationFraction(p Progress) float64 {
	if o.IsFinished(p) {
		return 1
	}
	return 0
}

func (o OptimalSolution) TimeFraction(p Progress) float64 { return o.IterationFraction(p) }

// OneOf stops when any child condition stops. Monotone: once a child fires,
// elapsed iterations/time only increase, so it remains fired.
type OneOf struct {
	Conditions []Condition
}

// NewOneOf creates a OneOf(cs...) composite condition.
func NewOneOf(cs ...Condition) OneOf { return OneOf{Conditions: cs} }

func (o OneOf) IsFinished(p Progress) bool {
	for _, c := range o.Conditions {
		if c.IsFinished(p) {
			return true
		}
	}
	return false
}

func (o OneOf) IterationFraction(p Progress) float64 {
	max := 0.0
	for _, c := range o.Conditions {
		if f := c.IterationFraction(p); f > max {
			max = f
		}
	}
	return max
}

func (o OneOf) TimeFraction(p Progress) float64 {
	max := 0.0
	for _, c := range o.Conditions {
		if f := c.TimeFraction(p); f > max {
			max = f
		}
	}
	return max
}

// PhaseProgress is the MIO phase-progress metric spec.md §9 resolves:
// max(iterationFraction, timeFraction).
func PhaseProgress(c Condition, p Progress) float64 {
	it := c.IterationFraction(p)
	t := c.TimeFraction(p)
	if t > it {
		return t
	}
	return it
}
