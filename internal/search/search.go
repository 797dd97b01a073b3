// Package search implements the four cooperating search algorithms —
// Random, OnePlusOne, MOSA and MIO — sharing the Algorithm contract, plus
// the machinery (dominance, sub-vector dominance, concurrent evaluation)
// MOSA needs. Grounded on the teacher's GeneticAlgorithmExecutor loop shape
// (evaluate -> select -> crossover -> mutate), generalized into separate
// algorithm types and, for MOSA, the retrieved NSGA-II reference's
// non-dominated sorting and front-fill-until-overflow loop.
package search

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/errs"
	"github.com/marvinkreis/whisker-test/internal/execution"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/generator"
	"github.com/marvinkreis/whisker-test/internal/selection"
	"github.com/marvinkreis/whisker-test/internal/stopping"
)

// Properties bundles the per-algorithm numeric knobs spec.md §6 exposes.
// Not every algorithm reads every field.
type Properties struct {
	PopulationSize       int
	CrossoverProbability float64
	MutationProbability  float64

	// MIO-only.
	StartOfFocusedPhase                             float64
	RandomSelectionProbabilityStart                 float64
	RandomSelectionProbabilityFocusedPhase           float64
	MaxArchiveSizeStart                             int
	MaxArchiveSizeFocusedPhase                       int
	MaxMutationCountStart                            int
	MaxMutationCountFocusedPhase                     int
}

// Algorithm is the shared contract every search algorithm implements
// (spec.md §4.7). Optional setters a concrete algorithm does not honour
// return errs.UnsupportedOperationError.
type Algorithm interface {
	SetChromosomeGenerator(generator.Generator) error
	SetFitnessFunctions(*fitness.GoalSet) error
	SetStoppingCondition(stopping.Condition) error
	SetSelectionOperator(selection.Selector) error
	SetProperties(Properties) error

	Iterations() int
	StartTime() time.Time
	CurrentSolution() []chromosome.Chromosome
	FitnessFunctions() *fitness.GoalSet

	FindSolution(ctx context.Context) ([]chromosome.Chromosome, error)
}

// progressView adapts an algorithm's own counters to stopping.Progress.
type progressView struct {
	iterations func() int
	startTime  func() time.Time
}

func (p progressView) Iterations() int      { return p.iterations() }
func (p progressView) StartTime() time.Time { return p.startTime() }

// evaluate computes ff's fitness for c, running it through host first when
// c is a TestChromosome and a host is configured. An
// errs.ErrExecutionFailure from the host is recovered locally: the
// chromosome is assigned worst-case fitness and the search continues (spec.md
// §7). Any other error — including errs.NotYetImplementedError — is
// propagated immediately, never swallowed.
func evaluate(ctx context.Context, host execution.Host, ff fitness.Function, c chromosome.Chromosome) (float64, error) {
	in := fitness.Input{Chromosome: c}

	if tc, ok := c.(*chromosome.TestChromosome); ok && host != nil {
		tr, err := host.Evaluate(ctx, tc)
		if err != nil {
			if errors.Is(err, errs.ErrExecutionFailure) {
				return worstCaseFitness(), nil
			}
			return 0, err
		}
		in.Trace = &tr
	}

	return ff.Fitness(ctx, in)
}

// worstCaseFitness is the fitness assigned after an ExecutionFailure. Every
// Function in this module returns maximize-canonical values (higher is
// better) regardless of its natural Direction, so one sentinel value serves
// every goal.
func worstCaseFitness() float64 {
	return -math.MaxFloat64
}

// sumFitness evaluates every goal in goals for c and returns their sum,
// stopping at the first hard error (anything other than ExecutionFailure,
// which evaluate already recovered).
func sumFitness(ctx context.Context, host execution.Host, goals *fitness.GoalSet, c chromosome.Chromosome) (float64, error) {
	var total float64
	for _, goal := range goals.Goals() {
		ff, _ := goals.Get(goal)
		f, err := evaluate(ctx, host, ff, c)
		if err != nil {
			return 0, err
		}
		total += f
	}
	return total, nil
}
