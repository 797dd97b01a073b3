package search

import (
	"context"
	"time"

	"github.com/marvinkreis/whisker-test/internal/archive"
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

// OnePlusOne implements spec.md §4.7.2: a single-parent hill climber.
// Grounded on the teacher's mutate/fitness-compare-and-accept shape in
// executor.Loop, collapsed to population size 1. Has no population, so
// SetSelectionOperator and SetProperties are unsupported.
type OnePlusOne struct {
	rnd    *randsrc.Source
	host   execution.Host
	arch   *archive.Archive
	logger logging.Logger

	gen     generator.Generator
	goals   *fitness.GoalSet
	stopper stopping.Condition

	iterations int
	startTime  time.Time
	parent     chromosome.Chromosome
	parentFit  float64
}

// NewOnePlusOne creates a (1+1) evolutionary algorithm.
func NewOnePlusOne(rnd *randsrc.Source, host execution.Host, arch *archive.Archive, logger logging.Logger) *OnePlusOne {
	if logger == nil {
		logger = logging.Noop{}
	}
	return &OnePlusOne{rnd: rnd, host: host, arch: arch, logger: logger}
}

func (o *OnePlusOne) SetChromosomeGenerator(g generator.Generator) error {
	o.gen = g
	return nil
}

func (o *OnePlusOne) SetFitnessFunctions(goals *fitness.GoalSet) error {
	o.goals = goals
	return nil
}

func (o *OnePlusOne) SetStoppingCondition(c stopping.Condition) error {
	o.stopper = c
	return nil
}

func (o *OnePlusOne) SetSelectionOperator(selection.Selector) error {
	return errs.NewUnsupportedOperationError("(1+1) has no population to select over", nil)
}

func (o *OnePlusOne) SetProperties(Properties) error {
	return errs.NewUnsupportedOperationError("(1+1) has no configurable properties", nil)
}

func (o *OnePlusOne) Iterations() int      { return o.iterations }
func (o *OnePlusOne) StartTime() time.Time { return o.startTime }

func (o *OnePlusOne) CurrentSolution() []chromosome.Chromosome {
	if o.parent == nil {
		return nil
	}
	return []chromosome.Chromosome{o.parent}
}

func (o *OnePlusOne) FitnessFunctions() *fitness.GoalSet { return o.goals }

func (o *OnePlusOne) progress() stopping.Progress {
	return progressView{iterations: o.Iterations, startTime: o.StartTime}
}

func (o *OnePlusOne) updateArchive(ctx context.Context, c chromosome.Chromosome) error {
	if o.arch == nil {
		return nil
	}
	for _, goal := range o.goals.Goals() {
		ff, _ := o.goals.Get(goal)
		f, err := evaluate(ctx, o.host, ff, c)
		if err != nil {
			return err
		}
		o.arch.Consider(goal, c, f)
	}
	return nil
}

// FindSolution runs the hill climb until the stopping condition fires.
func (o *OnePlusOne) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if o.gen == nil || o.goals == nil || o.stopper == nil {
		return nil, errs.NewInvalidConfigurationError("(1+1) requires a generator, fitness functions and a stopping condition", nil)
	}

	o.iterations = 0
	o.startTime = time.Now()
	if o.arch != nil {
		o.arch.Reset()
	}

	o.parent = o.gen.Random(o.rnd)
	fit, err := sumFitness(ctx, o.host, o.goals, o.parent)
	if err != nil {
		return nil, err
	}
	o.parentFit = fit
	if err := o.updateArchive(ctx, o.parent); err != nil {
		return nil, err
	}

	for !o.stopper.IsFinished(o.progress()) {
		child := o.parent.Mutate(o.rnd)
		childFit, err := sumFitness(ctx, o.host, o.goals, child)
		if err != nil {
			return nil, err
		}

		if childFit >= o.parentFit {
			o.parent = child
			o.parentFit = childFit
		}

		if err := o.updateArchive(ctx, child); err != nil {
			return nil, err
		}

		o.iterations++
	}

	o.logger.Infof("(1+1) finished after %d iterations, best fitness %.4f", o.iterations, o.parentFit)
	return o.CurrentSolution(), nil
}
