// Package generator provides chromosome factories producing random initial
// chromosomes, ported from the teacher's SolutionFactory.CreateRandomSolution
// / PopulationFactory.CreateRandomPopulation pattern and generalized to the
// chromosome.Chromosome interface.
package generator

import (
	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

// Generator produces a fresh random chromosome.
type Generator interface {
	Random(rnd *randsrc.Source) chromosome.Chromosome
}

// BitStringGenerator produces BitString chromosomes of a fixed length.
type BitStringGenerator struct {
	Length    int
	Mutation  chromosome.Mutator[bool]
	Crossover chromosome.CrossoverOp[bool]
}

// NewBitStringGenerator creates a BitStringGenerator.
func NewBitStringGenerator(length int, mutation chromosome.Mutator[bool], crossover chromosome.CrossoverOp[bool]) BitStringGenerator {
	return BitStringGenerator{Length: length, Mutation: mutation, Crossover: crossover}
}

func (g BitStringGenerator) Random(rnd *randsrc.Source) chromosome.Chromosome {
	genes := make([]bool, g.Length)
	for i := range genes {
		genes[i] = rnd.NextBool()
	}
	return chromosome.NewBitString(genes, g.Mutation, g.Crossover)
}

// IntegerListGenerator produces IntegerList chromosomes of a fixed length
// with genes drawn from [Min, Max].
type IntegerListGenerator struct {
	Length    int
	Min, Max  int
	Mutation  chromosome.Mutator[int]
	Crossover chromosome.CrossoverOp[int]
}

// NewIntegerListGenerator creates an IntegerListGenerator.
func NewIntegerListGenerator(length, min, max int, mutation chromosome.Mutator[int], crossover chromosome.CrossoverOp[int]) IntegerListGenerator {
	return IntegerListGenerator{Length: length, Min: min, Max: max, Mutation: mutation, Crossover: crossover}
}

func (g IntegerListGenerator) Random(rnd *randsrc.Source) chromosome.Chromosome {
	genes := make([]int, g.Length)
	for i := range genes {
		genes[i] = rnd.NextInt(g.Min, g.Max+1)
	}
	return chromosome.NewIntegerList(genes, g.Min, g.Max, g.Mutation, g.Crossover)
}

// VariableLengthTestGenerator produces TestChromosome individuals: a
// variable-length sequence of event-index genes, each drawn from
// [0, NumEvents).
type VariableLengthTestGenerator struct {
	InitLength int
	NumEvents  int
	Mutation   chromosome.Mutator[int]
	Crossover  chromosome.CrossoverOp[int]
}

// NewVariableLengthTestGenerator creates a VariableLengthTestGenerator.
func NewVariableLengthTestGenerator(initLength, numEvents int, mutation chromosome.Mutator[int], crossover chromosome.CrossoverOp[int]) VariableLengthTestGenerator {
	return VariableLengthTestGenerator{InitLength: initLength, NumEvents: numEvents, Mutation: mutation, Crossover: crossover}
}

func (g VariableLengthTestGenerator) Random(rnd *randsrc.Source) chromosome.Chromosome {
	genes := make([]int, g.InitLength)
	for i := range genes {
		genes[i] = g.sampleEvent(rnd)
	}
	return chromosome.NewTestChromosome(genes, g.Mutation, g.Crossover)
}

func (g VariableLengthTestGenerator) sampleEvent(rnd *randsrc.Source) int {
	if g.NumEvents <= 0 {
		return 0
	}
	return rnd.NextInt(0, g.NumEvents)
}

// Sample exposes the event sampling function in the shape
// VariableLengthMutation expects, so callers can wire this generator's
// event catalogue into the mutation operator that needs to manufacture
// fresh genes on replace/insert.
func (g VariableLengthTestGenerator) Sample() func(rnd *randsrc.Source) int {
	return g.sampleEvent
}
