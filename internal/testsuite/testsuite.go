// Package testsuite is the façade mapping a config.Configuration to a
// concrete search.Algorithm, running it and producing a Suite. Grounded on
// the teacher's cmd/main.go dependency-injection wiring (solutionFactory,
// fitnessEvaluator, crossoverer, mutator, selector built up by hand and
// passed into the executor), generalized from one hardcoded GA shape to the
// four configurable algorithms of spec.md §4.7.
package testsuite

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/marvinkreis/whisker-test/internal/archive"
	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/config"
	"github.com/marvinkreis/whisker-test/internal/errs"
	"github.com/marvinkreis/whisker-test/internal/execution"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/generator"
	"github.com/marvinkreis/whisker-test/internal/logging"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
	"github.com/marvinkreis/whisker-test/internal/search"
	"github.com/marvinkreis/whisker-test/internal/stopping"
)

// Test is one generated test case: the chromosome that produced it, which
// goals it covers, and its per-goal fitness at the time it was recorded.
type Test struct {
	Chromosome      chromosome.Chromosome
	Length          int
	CoveredGoals    []int
	FitnessSnapshot map[int]float64
}

// Suite is the final exported test suite.
type Suite struct {
	Tests []Test
}

// Generator runs one configured search and produces a Suite.
type Generator struct {
	Config config.Configuration
	Host   execution.Host
	Logger logging.Logger
	// ShowProgress renders a progressbar.ProgressBar to stderr while searching.
	ShowProgress bool
}

// NewGenerator creates a testsuite Generator. Logger may be nil (defaults to
// a no-op logger).
func NewGenerator(cfg config.Configuration, host execution.Host, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Noop{}
	}
	return &Generator{Config: cfg, Host: host, Logger: logger}
}

// Run validates the configuration, wires the concrete algorithm and runs it
// to completion, then packages the resulting chromosomes into a Suite.
func (g *Generator) Run(ctx context.Context) (*Suite, error) {
	if err := g.Config.Validate(); err != nil {
		return nil, err
	}

	goals, err := g.Host.ExtractCoverageGoals(ctx)
	if err != nil {
		return nil, err
	}
	if g.Config.FitnessFunction.Type != "" {
		goals = buildConfiguredGoals(g.Config)
	}

	rnd := randsrc.New(g.Config.Seed)
	gen, err := buildGenerator(g.Config)
	if err != nil {
		return nil, err
	}
	stopCond, arch, err := buildStoppingCondition(g.Config.StoppingCondition, &goals)
	if err != nil {
		return nil, err
	}

	alg, err := buildAlgorithm(g.Config, rnd, g.Host, arch, g.Logger)
	if err != nil {
		return nil, err
	}
	if err := alg.SetChromosomeGenerator(gen); err != nil {
		return nil, err
	}
	if err := alg.SetFitnessFunctions(&goals); err != nil {
		return nil, err
	}
	if err := alg.SetStoppingCondition(stopCond); err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if g.ShowProgress {
		bar = buildProgressBar(g.Config.StoppingCondition)
	}

	result, err := runWithProgress(ctx, alg, stopCond, bar)
	if err != nil {
		return nil, err
	}

	return packageSuite(ctx, g.Host, &goals, result), nil
}

func buildConfiguredGoals(cfg config.Configuration) fitness.GoalSet {
	goals := fitness.NewGoalSet()
	switch cfg.FitnessFunction.Type {
	case config.FitnessOneMax:
		goals.Add(0, fitness.NewOneMaxExact(cfg.ChromosomeLength))
	case config.FitnessSingleBit:
		for _, k := range cfg.FitnessFunction.Targets {
			goals.Add(k, fitness.NewSingleBit(k))
		}
	case config.FitnessStatement:
		for _, s := range cfg.FitnessFunction.Targets {
			goals.Add(s, fitness.NewStatementCoverage(s))
		}
	}
	return *goals
}

func buildGenerator(cfg config.Configuration) (generator.Generator, error) {
	switch cfg.Chromosome {
	case config.ChromosomeBitString:
		mutator, crossover, err := bitMutationAndCrossover(cfg)
		if err != nil {
			return nil, err
		}
		return generator.NewBitStringGenerator(cfg.ChromosomeLength, mutator, crossover), nil

	case config.ChromosomeIntegerList:
		mutator, crossover, err := intMutationAndCrossover(cfg)
		if err != nil {
			return nil, err
		}
		return generator.NewIntegerListGenerator(cfg.ChromosomeLength, cfg.IntegerRangeMin, cfg.IntegerRangeMax, mutator, crossover), nil

	case config.ChromosomeTest, config.ChromosomeVariableLengthTest:
		crossover, err := intCrossover(cfg)
		if err != nil {
			return nil, err
		}
		g := generator.NewVariableLengthTestGenerator(cfg.InitVarLength, cfg.ChromosomeLength, nil, crossover)
		mutator := chromosome.NewVariableLengthMutation(1.0/3, 1.0/3, 1.0/3, cfg.MutationAlpha, g.Sample())
		g.Mutation = mutator
		return g, nil

	default:
		return nil, errs.NewInvalidConfigurationError(fmt.Sprintf("unknown chromosome kind %q", cfg.Chromosome), nil)
	}
}

func bitMutationAndCrossover(cfg config.Configuration) (chromosome.Mutator[bool], chromosome.CrossoverOp[bool], error) {
	if cfg.MutationOperator != config.MutationBitflip {
		return nil, nil, errs.NewInvalidConfigurationError(fmt.Sprintf("bitstring chromosomes require bitflip mutation, got %q", cfg.MutationOperator), nil)
	}
	switch cfg.CrossoverOperator {
	case config.CrossoverSinglePoint:
		return chromosome.NewBitflipMutation(), chromosome.NewSinglePointCrossover[bool](), nil
	case config.CrossoverSinglePointRelative:
		return chromosome.NewBitflipMutation(), chromosome.NewSinglePointRelativeCrossover[bool](), nil
	default:
		return nil, nil, errs.NewInvalidConfigurationError(fmt.Sprintf("unknown crossover operator %q", cfg.CrossoverOperator), nil)
	}
}

func intMutationAndCrossover(cfg config.Configuration) (chromosome.Mutator[int], chromosome.CrossoverOp[int], error) {
	if cfg.MutationOperator != config.MutationIntegerList {
		return nil, nil, errs.NewInvalidConfigurationError(fmt.Sprintf("integerlist chromosomes require integerlist mutation, got %q", cfg.MutationOperator), nil)
	}
	crossover, err := intCrossover(cfg)
	if err != nil {
		return nil, nil, err
	}
	return chromosome.NewIntegerListMutation(cfg.IntegerRangeMin, cfg.IntegerRangeMax), crossover, nil
}

func intCrossover(cfg config.Configuration) (chromosome.CrossoverOp[int], error) {
	switch cfg.CrossoverOperator {
	case config.CrossoverSinglePoint:
		return chromosome.NewSinglePointCrossover[int](), nil
	case config.CrossoverSinglePointRelative:
		return chromosome.NewSinglePointRelativeCrossover[int](), nil
	default:
		return nil, errs.NewInvalidConfigurationError(fmt.Sprintf("unknown crossover operator %q", cfg.CrossoverOperator), nil)
	}
}

func buildStoppingCondition(cfg config.StoppingConditionConfig, goals *fitness.GoalSet) (stopping.Condition, *archive.Archive, error) {
	arch := archive.New(goals)
	cond, err := buildStoppingConditionWithArchive(cfg, arch)
	if err != nil {
		return nil, nil, err
	}
	return cond, arch, nil
}

func buildStoppingConditionWithArchive(cfg config.StoppingConditionConfig, arch *archive.Archive) (stopping.Condition, error) {
	switch cfg.Type {
	case config.StoppingFixedIteration:
		return stopping.NewFixedIterations(cfg.Iterations), nil
	case config.StoppingFixedTime:
		return stopping.NewFixedTime(time.Duration(cfg.Duration * float64(time.Second))), nil
	case config.StoppingOptimal:
		return stopping.NewOptimalSolution(arch), nil
	case config.StoppingOneOf:
		conds := make([]stopping.Condition, 0, len(cfg.Conditions))
		for _, c := range cfg.Conditions {
			cond, err := buildStoppingConditionWithArchive(c, arch)
			if err != nil {
				return nil, err
			}
			conds = append(conds, cond)
		}
		return stopping.NewOneOf(conds...), nil
	default:
		return nil, errs.NewInvalidConfigurationError(fmt.Sprintf("unknown stopping-condition type %q", cfg.Type), nil)
	}
}

func buildAlgorithm(cfg config.Configuration, rnd *randsrc.Source, host execution.Host, arch *archive.Archive, logger logging.Logger) (search.Algorithm, error) {
	switch cfg.Algorithm {
	case config.AlgorithmRandom:
		return search.NewRandom(rnd, host, logger), nil
	case config.AlgorithmOnePlusOne:
		return search.NewOnePlusOne(rnd, host, arch, logger), nil
	case config.AlgorithmMOSA:
		alg := search.NewMOSA(rnd, host, arch, logger)
		if err := alg.SetProperties(propertiesOf(cfg)); err != nil {
			return nil, err
		}
		return alg, nil
	case config.AlgorithmMIO:
		alg := search.NewMIO(rnd, host, arch, logger)
		if err := alg.SetProperties(propertiesOf(cfg)); err != nil {
			return nil, err
		}
		return alg, nil
	default:
		return nil, errs.NewInvalidConfigurationError(fmt.Sprintf("unknown algorithm %q", cfg.Algorithm), nil)
	}
}

func propertiesOf(cfg config.Configuration) search.Properties {
	return search.Properties{
		PopulationSize:       cfg.PopulationSize,
		CrossoverProbability: cfg.CrossoverProbability,
		MutationProbability:  cfg.MutationProbability,

		StartOfFocusedPhase:                     cfg.StartOfFocusedPhase,
		RandomSelectionProbabilityStart:         cfg.SelectionRandomSelectionProbabilityStart,
		RandomSelectionProbabilityFocusedPhase:  cfg.SelectionRandomSelectionProbabilityFocusedPhase,
		MaxArchiveSizeStart:                     cfg.ArchiveMaxArchiveSizeStart,
		MaxArchiveSizeFocusedPhase:               cfg.ArchiveMaxArchiveSizeFocusedPhase,
		MaxMutationCountStart:                    cfg.MutationMaxMutationCountStart,
		MaxMutationCountFocusedPhase:             cfg.MutationMaxMutationCountFocusedPhase,
	}
}

func buildProgressBar(cfg config.StoppingConditionConfig) *progressbar.ProgressBar {
	if cfg.Type == config.StoppingFixedIteration {
		return progressbar.Default(int64(cfg.Iterations), "searching")
	}
	return progressbar.DefaultBytes(-1, "searching")
}

// runWithProgress runs alg.FindSolution, polling its iteration counter on a
// side goroutine only to drive the progress bar — FindSolution itself is
// single-threaded except for MOSA's internal concurrent evaluation.
func runWithProgress(ctx context.Context, alg search.Algorithm, stopCond stopping.Condition, bar *progressbar.ProgressBar) ([]chromosome.Chromosome, error) {
	if bar == nil {
		return alg.FindSolution(ctx)
	}
	defer bar.Finish()

	done := make(chan struct{})
	result := make(chan []chromosome.Chromosome, 1)
	errCh := make(chan error, 1)

	go func() {
		r, err := alg.FindSolution(ctx)
		if err != nil {
			errCh <- err
		} else {
			result <- r
		}
		close(done)
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			select {
			case err := <-errCh:
				return nil, err
			case r := <-result:
				return r, nil
			}
		case <-ticker.C:
			_ = bar.Set(alg.Iterations())
		}
	}
}

func packageSuite(ctx context.Context, host execution.Host, goals *fitness.GoalSet, chromosomes []chromosome.Chromosome) *Suite {
	suite := &Suite{}
	for _, c := range chromosomes {
		var covered []int
		snapshot := make(map[int]float64, goals.Len())
		for _, goal := range goals.Goals() {
			ff, _ := goals.Get(goal)
			in := fitness.Input{Chromosome: c}
			if tc, ok := c.(*chromosome.TestChromosome); ok && host != nil {
				if tr, err := host.Evaluate(ctx, tc); err == nil {
					in.Trace = &tr
				}
			}
			f, err := ff.Fitness(ctx, in)
			if err != nil {
				continue
			}
			snapshot[goal] = f
			if ff.IsOptimal(f) {
				covered = append(covered, goal)
			}
		}
		suite.Tests = append(suite.Tests, Test{
			Chromosome:      c,
			Length:          c.Len(),
			CoveredGoals:    covered,
			FitnessSnapshot: snapshot,
		})
	}
	return suite
}
