package main

import (
	"context"
	"fmt"

	"github.com/marvinkreis/whisker-test/internal/config"
	"github.com/marvinkreis/whisker-test/internal/execution"
	"github.com/marvinkreis/whisker-test/internal/logging"
	"github.com/marvinkreis/whisker-test/internal/testsuite"
)

// Demo configuration: MOSA searching a 20-bit BitString chromosome for an
// all-true OneMax goal. A real run would swap in a Host backed by the
// Scratch interpreter and a TestChromosome/StatementCoverage configuration;
// that Host implementation is out of scope here (spec.md §1).
const (
	chromosomeLength = 20
	populationSize   = 50
	maxIterations    = 200
	seed             = 42
)

func main() {
	cfg := config.Configuration{
		Algorithm:            config.AlgorithmMOSA,
		Chromosome:           config.ChromosomeBitString,
		ChromosomeLength:     chromosomeLength,
		PopulationSize:       populationSize,
		CrossoverOperator:    config.CrossoverSinglePoint,
		CrossoverProbability: 0.9,
		MutationOperator:     config.MutationBitflip,
		MutationProbability:  1.0,
		SelectionOperator:    config.SelectionRank,
		FitnessFunction: config.FitnessFunctionConfig{
			Type: config.FitnessOneMax,
		},
		StoppingCondition: config.StoppingConditionConfig{
			Type:       config.StoppingFixedIteration,
			Iterations: maxIterations,
		},
		Seed: seed,
	}

	host := execution.NewFakeHost(nil, 0)
	logger := logging.Std{}

	gen := testsuite.NewGenerator(cfg, host, logger)
	gen.ShowProgress = true

	suite, err := gen.Run(context.Background())
	if err != nil {
		panic(fmt.Sprintf("test generation failed: %v", err))
	}

	fmt.Printf("generated %d test(s)\n", len(suite.Tests))
	for i, t := range suite.Tests {
		fmt.Printf("test %d: length=%d covered=%v fitness=%v\n", i, t.Length, t.CoveredGoals, t.FitnessSnapshot)
	}
}
