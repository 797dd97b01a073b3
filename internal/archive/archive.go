// Package archive implements the best-known chromosome per goal, with
// length-based tie-breaking, per spec.md §3, §4.6.
package archive

import "github.com/marvinkreis/whisker-test/internal/chromosome"
import "github.com/marvinkreis/whisker-test/internal/fitness"

type entry struct {
	Chromosome chromosome.Chromosome
	Length     int
	Fitness    float64
}

// Archive maps goal -> (chromosome, length). For every goal whose entry is
// non-empty, FitnessFunction(goal).IsOptimal(entry's fitness) holds. If
// multiple optimal chromosomes exist for a goal, the shortest is retained;
// ties are broken by earliest discovery — the non-optimal and tied-length
// codepaths never update the archive at all, a subtlety the teacher's
// Population.BestSolution comparison-without-replace-on-tie shape preserves
// when ported from "best fitness" to "shortest length".
type Archive struct {
	goals   *fitness.GoalSet
	entries map[int]entry
	order   []int
}

// New creates an empty Archive scoped to the given goal set.
func New(goals *fitness.GoalSet) *Archive {
	return &Archive{goals: goals, entries: make(map[int]entry)}
}

// Consider inserts candidate for goal if its precomputed fitnessValue is
// optimal for that goal's function and it is shorter than (or there is no)
// current entry. Returns whether it replaced the entry.
func (a *Archive) Consider(goal int, candidate chromosome.Chromosome, fitnessValue float64) bool {
	ff, ok := a.goals.Get(goal)
	if !ok || !ff.IsOptimal(fitnessValue) {
		return false
	}

	existing, has := a.entries[goal]
	if !has {
		a.entries[goal] = entry{Chromosome: candidate, Length: candidate.Len(), Fitness: fitnessValue}
		a.order = append(a.order, goal)
		return true
	}

	if candidate.Len() < existing.Length {
		a.entries[goal] = entry{Chromosome: candidate, Length: candidate.Len(), Fitness: fitnessValue}
		return true
	}

	return false
}

// Get returns the archived chromosome for a goal, if any.
func (a *Archive) Get(goal int) (chromosome.Chromosome, bool) {
	e, ok := a.entries[goal]
	if !ok {
		return nil, false
	}
	return e.Chromosome, true
}

// HasGoal reports whether the given goal currently has an archive entry.
func (a *Archive) HasGoal(goal int) bool {
	_, ok := a.entries[goal]
	return ok
}

// Values returns the archived chromosome of every goal with an entry, in
// goal-insertion order. A chromosome archived for several goals appears
// once per goal; callers that need distinct chromosomes deduplicate.
func (a *Archive) Values() []chromosome.Chromosome {
	out := make([]chromosome.Chromosome, 0, len(a.order))
	for _, g := range a.order {
		out = append(out, a.entries[g].Chromosome)
	}
	return out
}

// AllGoalsOptimal reports whether every goal in the goal set currently has
// an archive entry. Satisfies stopping.ArchiveStatus.
func (a *Archive) AllGoalsOptimal() bool {
	for _, g := range a.goals.Goals() {
		if _, ok := a.entries[g]; !ok {
			return false
		}
	}
	return true
}

// Reset clears every entry. Only called by an algorithm at the start of its
// own findSolution — archives otherwise live the length of the run.
func (a *Archive) Reset() {
	a.entries = make(map[int]entry)
	a.order = nil
}
