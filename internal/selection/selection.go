// Package selection implements the rank and tournament selection operators
// over ordered populations, ported from the teacher's
// models.TournamentSelector tournament-of-k loop and generalized to accept
// either a primary-fitness or a dominance comparator (spec.md §4.5).
package selection

import (
	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/errs"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

// Selector draws a single individual from a population.
type Selector interface {
	Select(rnd *randsrc.Source, pop *chromosome.Population) (chromosome.Chromosome, error)
}

// RankSelector draws rank k with probability proportional to rank. It
// assumes the population is already sorted ascending by quality (worst
// first) — callers must sort before invoking Select; this type has no way
// to verify the precondition since "quality" is goal-dependent.
type RankSelector struct{}

// NewRankSelector creates a RankSelector.
func NewRankSelector() RankSelector { return RankSelector{} }

func (RankSelector) Select(rnd *randsrc.Source, pop *chromosome.Population) (chromosome.Chromosome, error) {
	n := pop.Len()
	if n == 0 {
		return nil, errs.ErrPopulationEmpty
	}
	totalWeight := n * (n + 1) / 2
	r := rnd.NextInt(1, totalWeight+1)
	cumulative := 0
	for i, ind := range pop.Individuals {
		cumulative += i + 1 // worst (index 0) has weight 1, best has weight n
		if r <= cumulative {
			return ind, nil
		}
	}
	return pop.Individuals[n-1], nil
}

// Better reports whether a is preferred over b. Used by TournamentSelector
// so the same operator serves both primary-fitness comparisons and
// dominance comparisons (spec.md §4.5).
type Better func(a, b chromosome.Chromosome) bool

// TournamentSelector draws K uniform samples and returns the best by the
// configured Better comparator.
type TournamentSelector struct {
	K      int
	Better Better
}

// NewTournamentSelector creates a Tournament(k) selector. k must be >= 2.
func NewTournamentSelector(k int, better Better) (*TournamentSelector, error) {
	if k < 2 {
		return nil, errs.NewInvalidConfigurationError("tournament size must be at least 2", nil)
	}
	if better == nil {
		return nil, errs.NewInvalidConfigurationError("tournament selector requires a comparator", nil)
	}
	return &TournamentSelector{K: k, Better: better}, nil
}

func (t *TournamentSelector) Select(rnd *randsrc.Source, pop *chromosome.Population) (chromosome.Chromosome, error) {
	if pop.Len() == 0 {
		return nil, errs.ErrPopulationEmpty
	}
	best := randsrc.Pick(rnd, pop.Individuals)
	for i := 1; i < t.K; i++ {
		candidate := randsrc.Pick(rnd, pop.Individuals)
		if t.Better(candidate, best) {
			best = candidate
		}
	}
	return best, nil
}
