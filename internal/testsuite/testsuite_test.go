package testsuite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marvinkreis/whisker-test/internal/config"
	"github.com/marvinkreis/whisker-test/internal/execution"
	"github.com/marvinkreis/whisker-test/internal/logging"
)

func randomOneMaxConfig() config.Configuration {
	return config.Configuration{
		Algorithm:            config.AlgorithmRandom,
		Chromosome:           config.ChromosomeBitString,
		ChromosomeLength:     8,
		PopulationSize:       1,
		CrossoverOperator:    config.CrossoverSinglePoint,
		CrossoverProbability: 0.9,
		MutationOperator:     config.MutationBitflip,
		MutationProbability:  1.0,
		SelectionOperator:    config.SelectionRank,
		FitnessFunction:      config.FitnessFunctionConfig{Type: config.FitnessOneMax},
		StoppingCondition:    config.StoppingConditionConfig{Type: config.StoppingFixedIteration, Iterations: 500},
		Seed:                 1,
	}
}

func TestGenerator_Run_RandomOneMax(t *testing.T) {
	host := execution.NewFakeHost(nil, 0)
	gen := NewGenerator(randomOneMaxConfig(), host, logging.Noop{})

	suite, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, suite)
}

func TestGenerator_Run_RejectsInvalidConfiguration(t *testing.T) {
	cfg := randomOneMaxConfig()
	cfg.PopulationSize = 0

	host := execution.NewFakeHost(nil, 0)
	gen := NewGenerator(cfg, host, nil)

	_, err := gen.Run(context.Background())
	assert.Error(t, err)
}

func TestGenerator_Run_OnePlusOne(t *testing.T) {
	cfg := randomOneMaxConfig()
	cfg.Algorithm = config.AlgorithmOnePlusOne

	host := execution.NewFakeHost(nil, 0)
	gen := NewGenerator(cfg, host, nil)

	suite, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, suite.Tests, 1)
}

func TestGenerator_Run_OneOfStopping(t *testing.T) {
	cfg := randomOneMaxConfig()
	cfg.Algorithm = config.AlgorithmOnePlusOne
	cfg.StoppingCondition = config.StoppingConditionConfig{
		Type: config.StoppingOneOf,
		Conditions: []config.StoppingConditionConfig{
			{Type: config.StoppingFixedIteration, Iterations: 100},
			{Type: config.StoppingOptimal},
		},
	}

	host := execution.NewFakeHost(nil, 0)
	gen := NewGenerator(cfg, host, nil)

	suite, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, suite.Tests, 1)
}
