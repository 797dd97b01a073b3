package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Configuration {
	return Configuration{
		Algorithm:            AlgorithmRandom,
		Chromosome:           ChromosomeBitString,
		PopulationSize:       10,
		ChromosomeLength:     8,
		CrossoverOperator:    CrossoverSinglePoint,
		CrossoverProbability: 0.9,
		MutationOperator:     MutationBitflip,
		MutationProbability:  0.1,
		SelectionOperator:    SelectionRank,
		StoppingCondition:    StoppingConditionConfig{Type: StoppingFixedIteration, Iterations: 100},
		FitnessFunction:      FitnessFunctionConfig{Type: FitnessOneMax},
	}
}

func TestConfiguration_Validate(t *testing.T) {
	t.Run("accepts a well-formed configuration", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("rejects an unknown algorithm", func(t *testing.T) {
		c := validConfig()
		c.Algorithm = "nonsense"
		assert.Error(t, c.Validate())
	})

	t.Run("rejects population size below 1", func(t *testing.T) {
		c := validConfig()
		c.PopulationSize = 0
		assert.Error(t, c.Validate())
	})

	t.Run("rejects crossover probability out of range", func(t *testing.T) {
		c := validConfig()
		c.CrossoverProbability = 1.5
		assert.Error(t, c.Validate())
	})

	t.Run("rejects integer range where min >= max", func(t *testing.T) {
		c := validConfig()
		c.Chromosome = ChromosomeIntegerList
		c.MutationOperator = MutationIntegerList
		c.IntegerRangeMin = 5
		c.IntegerRangeMax = 5
		assert.Error(t, c.Validate())
	})

	t.Run("tournament selection requires a tournament size", func(t *testing.T) {
		c := validConfig()
		c.SelectionOperator = SelectionTournament
		c.SelectionTournamentSize = 1
		assert.Error(t, c.Validate())

		c.SelectionTournamentSize = 3
		assert.NoError(t, c.Validate())
	})

	t.Run("MIO requires startOfFocusedPhase within (0,1]", func(t *testing.T) {
		c := validConfig()
		c.Algorithm = AlgorithmMIO
		c.StartOfFocusedPhase = 0
		assert.Error(t, c.Validate())

		c.StartOfFocusedPhase = 0.5
		assert.NoError(t, c.Validate())
	})

	t.Run("one-of stopping condition requires at least one child", func(t *testing.T) {
		c := validConfig()
		c.StoppingCondition = StoppingConditionConfig{Type: StoppingOneOf}
		assert.Error(t, c.Validate())

		c.StoppingCondition.Conditions = []StoppingConditionConfig{{Type: StoppingFixedIteration, Iterations: 10}}
		assert.NoError(t, c.Validate())
	})

	t.Run("nested one-of validates every child", func(t *testing.T) {
		c := validConfig()
		c.StoppingCondition = StoppingConditionConfig{
			Type: StoppingOneOf,
			Conditions: []StoppingConditionConfig{
				{Type: StoppingFixedIteration, Iterations: 10},
				{Type: StoppingFixedTime, Duration: -1},
			},
		}
		assert.Error(t, c.Validate())
	})

	t.Run("rejects unknown fitness function type", func(t *testing.T) {
		c := validConfig()
		c.FitnessFunction.Type = "nonsense"
		assert.Error(t, c.Validate())
	})
}
