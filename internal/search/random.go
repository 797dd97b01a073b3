package search

import (
	"context"
	"time"

	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/errs"
	"github.com/marvinkreis/whisker-test/internal/execution"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/generator"
	"github.com/marvinkreis/whisker-test/internal/logging"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
	"github.com/marvinkreis/whisker-test/internal/selection"
	"github.com/marvinkreis/whisker-test/internal/stopping"
)

// Random implements spec.md §4.7.1: each iteration generates one random
// chromosome and checks it against every still-uncovered goal, adding it to
// the suite the first time it covers a goal no earlier chromosome covered.
// It has no population and no selection step, so SetSelectionOperator and
// SetProperties are unsupported.
type Random struct {
	rnd    *randsrc.Source
	host   execution.Host
	logger logging.Logger

	gen     generator.Generator
	goals   *fitness.GoalSet
	stopper stopping.Condition

	iterations int
	startTime  time.Time
	current    chromosome.Chromosome

	uncovered map[int]struct{}
	suite     []chromosome.Chromosome
}

// NewRandom creates a Random search algorithm.
func NewRandom(rnd *randsrc.Source, host execution.Host, logger logging.Logger) *Random {
	if logger == nil {
		logger = logging.Noop{}
	}
	return &Random{rnd: rnd, host: host, logger: logger}
}

func (r *Random) SetChromosomeGenerator(g generator.Generator) error {
	r.gen = g
	return nil
}

func (r *Random) SetFitnessFunctions(goals *fitness.GoalSet) error {
	r.goals = goals
	return nil
}

func (r *Random) SetStoppingCondition(c stopping.Condition) error {
	r.stopper = c
	return nil
}

func (r *Random) SetSelectionOperator(selection.Selector) error {
	return errs.NewUnsupportedOperationError("Random has no population to select over", nil)
}

func (r *Random) SetProperties(Properties) error {
	return errs.NewUnsupportedOperationError("Random has no configurable properties", nil)
}

func (r *Random) Iterations() int      { return r.iterations }
func (r *Random) StartTime() time.Time { return r.startTime }

func (r *Random) CurrentSolution() []chromosome.Chromosome {
	if r.current == nil {
		return nil
	}
	return []chromosome.Chromosome{r.current}
}

func (r *Random) FitnessFunctions() *fitness.GoalSet { return r.goals }

func (r *Random) progress() stopping.Progress {
	return progressView{iterations: r.Iterations, startTime: r.StartTime}
}

// FindSolution runs the search loop until the stopping condition fires or
// every goal is covered, returning one chromosome per newly covered goal,
// deduplicated.
func (r *Random) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if r.gen == nil || r.goals == nil || r.stopper == nil {
		return nil, errs.NewInvalidConfigurationError("Random requires a generator, fitness functions and a stopping condition", nil)
	}

	r.iterations = 0
	r.startTime = time.Now()
	r.suite = nil
	r.uncovered = make(map[int]struct{}, r.goals.Len())
	for _, g := range r.goals.Goals() {
		r.uncovered[g] = struct{}{}
	}

	for !r.stopper.IsFinished(r.progress()) && len(r.uncovered) > 0 {
		candidate := r.gen.Random(r.rnd)
		r.current = candidate

		coveredThisIteration := false
		for goal := range r.uncovered {
			ff, _ := r.goals.Get(goal)
			f, err := evaluate(ctx, r.host, ff, candidate)
			if err != nil {
				return nil, err
			}
			if ff.IsOptimal(f) {
				delete(r.uncovered, goal)
				coveredThisIteration = true
			}
		}

		if coveredThisIteration {
			r.suite = append(r.suite, candidate)
		}

		r.iterations++
	}

	r.logger.Infof("random search finished after %d iterations, %d/%d goals covered", r.iterations, r.goals.Len()-len(r.uncovered), r.goals.Len())
	return r.suite, nil
}
