// Package config models the already-parsed Configuration value the search
// core consumes (spec.md §6). Parsing a configuration file is explicitly out
// of scope (spec.md §1); this package only validates a struct that has
// already been built by the caller.
package config

import (
	"fmt"

	"github.com/marvinkreis/whisker-test/internal/errs"
)

// Algorithm selects which search algorithm to build.
type Algorithm string

const (
	AlgorithmRandom      Algorithm = "random"
	AlgorithmOnePlusOne  Algorithm = "one-plus-one"
	AlgorithmSimpleGA    Algorithm = "simplega"
	AlgorithmMOSA        Algorithm = "mosa"
	AlgorithmMIO         Algorithm = "mio"
)

// TestGeneratorKind selects the façade.
type TestGeneratorKind string

const (
	TestGeneratorRandom       TestGeneratorKind = "random"
	TestGeneratorIterative    TestGeneratorKind = "iterative"
	TestGeneratorManyObjective TestGeneratorKind = "many-objective"
)

// ChromosomeKind selects the genotype.
type ChromosomeKind string

const (
	ChromosomeBitString           ChromosomeKind = "bitstring"
	ChromosomeIntegerList         ChromosomeKind = "integerlist"
	ChromosomeTest                ChromosomeKind = "test"
	ChromosomeVariableLengthTest  ChromosomeKind = "variablelengthtest"
)

// CrossoverOperator selects the crossover operator.
type CrossoverOperator string

const (
	CrossoverSinglePoint         CrossoverOperator = "singlepoint"
	CrossoverSinglePointRelative CrossoverOperator = "singlepointrelative"
)

// MutationOperator selects the mutation operator.
type MutationOperator string

const (
	MutationBitflip        MutationOperator = "bitflip"
	MutationIntegerList     MutationOperator = "integerlist"
	MutationVariableLength  MutationOperator = "variablelength"
)

// SelectionOperator selects the selection operator.
type SelectionOperator string

const (
	SelectionRank       SelectionOperator = "rank"
	SelectionTournament SelectionOperator = "tournament"
)

// StoppingConditionType selects the stopping condition.
type StoppingConditionType string

const (
	StoppingFixedIteration StoppingConditionType = "fixed-iteration"
	StoppingFixedTime      StoppingConditionType = "fixed-time"
	StoppingOptimal        StoppingConditionType = "optimal"
	StoppingOneOf          StoppingConditionType = "one-of"
)

// FitnessFunctionType selects the fitness function family.
type FitnessFunctionType string

const (
	FitnessStatement FitnessFunctionType = "statement"
	FitnessOneMax    FitnessFunctionType = "one-max"
	FitnessSingleBit FitnessFunctionType = "single-bit"
)

// StoppingConditionConfig mirrors spec.md §6's recursive stopping-condition
// configuration, supporting OneOf nesting.
type StoppingConditionConfig struct {
	Type       StoppingConditionType
	Iterations int
	Duration   float64 // seconds
	Conditions []StoppingConditionConfig
}

// FitnessFunctionConfig mirrors spec.md §6's fitness-function keys.
type FitnessFunctionConfig struct {
	Type    FitnessFunctionType
	Targets []int
}

// Configuration is the full recognized option set of spec.md §6.
type Configuration struct {
	Algorithm      Algorithm
	TestGenerator  TestGeneratorKind
	Chromosome     ChromosomeKind
	PopulationSize int
	ChromosomeLength int

	CrossoverOperator    CrossoverOperator
	CrossoverProbability float64

	MutationOperator                    MutationOperator
	MutationProbability                 float64
	MutationAlpha                       float64
	MutationMaxMutationCountStart       int
	MutationMaxMutationCountFocusedPhase int

	SelectionOperator                           SelectionOperator
	SelectionTournamentSize                     int
	SelectionRandomSelectionProbabilityStart        float64
	SelectionRandomSelectionProbabilityFocusedPhase float64

	ArchiveMaxArchiveSizeStart        int
	ArchiveMaxArchiveSizeFocusedPhase int

	StartOfFocusedPhase float64

	IntegerRangeMin, IntegerRangeMax int

	StoppingCondition StoppingConditionConfig

	FitnessFunction FitnessFunctionConfig

	InitVarLength int

	Seed int64
}

// Validate checks required keys are present and in range, per spec.md §7:
// InvalidConfiguration is raised before search begins.
func (c Configuration) Validate() error {
	switch c.Algorithm {
	case AlgorithmRandom, AlgorithmOnePlusOne, AlgorithmSimpleGA, AlgorithmMOSA, AlgorithmMIO:
	default:
		return errs.NewInvalidConfigurationError(fmt.Sprintf("unknown algorithm %q", c.Algorithm), nil)
	}

	switch c.Chromosome {
	case ChromosomeBitString, ChromosomeIntegerList, ChromosomeTest, ChromosomeVariableLengthTest:
	default:
		return errs.NewInvalidConfigurationError(fmt.Sprintf("unknown chromosome kind %q", c.Chromosome), nil)
	}

	if c.PopulationSize < 1 {
		return errs.NewInvalidConfigurationError("population-size must be >= 1", nil)
	}
	if c.ChromosomeLength < 1 {
		return errs.NewInvalidConfigurationError("chromosome-length must be >= 1", nil)
	}

	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		return errs.NewInvalidConfigurationError("crossover.probability must be within [0,1]", nil)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return errs.NewInvalidConfigurationError("mutation.probability must be within [0,1]", nil)
	}

	if c.Chromosome == ChromosomeIntegerList && c.IntegerRangeMin >= c.IntegerRangeMax {
		return errs.NewInvalidConfigurationError("integerRange.min must be less than integerRange.max", nil)
	}

	switch c.SelectionOperator {
	case SelectionRank:
	case SelectionTournament:
		if c.SelectionTournamentSize < 2 {
			return errs.NewInvalidConfigurationError("selection.tournamentSize must be >= 2", nil)
		}
	default:
		return errs.NewInvalidConfigurationError(fmt.Sprintf("unknown selection operator %q", c.SelectionOperator), nil)
	}

	if c.Algorithm == AlgorithmMIO {
		if c.StartOfFocusedPhase <= 0 || c.StartOfFocusedPhase > 1 {
			return errs.NewInvalidConfigurationError("startOfFocusedPhase must be within (0,1]", nil)
		}
	}

	if err := c.StoppingCondition.validate(); err != nil {
		return err
	}

	switch c.FitnessFunction.Type {
	case FitnessStatement, FitnessOneMax, FitnessSingleBit:
	default:
		return errs.NewInvalidConfigurationError(fmt.Sprintf("unknown fitness-function type %q", c.FitnessFunction.Type), nil)
	}

	return nil
}

func (s StoppingConditionConfig) validate() error {
	switch s.Type {
	case StoppingFixedIteration:
		if s.Iterations < 1 {
			return errs.NewInvalidConfigurationError("stopping-condition.iterations must be >= 1", nil)
		}
	case StoppingFixedTime:
		if s.Duration <= 0 {
			return errs.NewInvalidConfigurationError("stopping-condition.duration must be > 0", nil)
		}
	case StoppingOptimal:
	case StoppingOneOf:
		if len(s.Conditions) == 0 {
			return errs.NewInvalidConfigurationError("stopping-condition.conditions must be non-empty for one-of", nil)
		}
		for _, c := range s.Conditions {
			if err := c.validate(); err != nil {
				return err
			}
		}
	default:
		return errs.NewInvalidConfigurationError(fmt.Sprintf("unknown stopping-condition type %q", s.Type), nil)
	}
	return nil
}
