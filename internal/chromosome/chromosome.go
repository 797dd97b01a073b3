// Package chromosome implements the genotype model of the search core:
// BitString and IntegerList chromosomes, the Scratch-event TestChromosome,
// and the variation operators (mutation, crossover) that act on them.
//
// Chromosomes are immutable after construction: Mutate and Crossover always
// return freshly allocated values. Each concrete chromosome carries a
// reference to its (stateless) mutation and crossover operator purely for
// dispatch on variant — the operators themselves hold no per-chromosome
// state.
package chromosome

import "github.com/marvinkreis/whisker-test/internal/randsrc"

// Chromosome is the capability set the search algorithms depend on. Archives
// and populations store chromosomes behind this interface and never need to
// know the concrete genotype.
type Chromosome interface {
	// Len returns the number of genes.
	Len() int
	// Mutate returns a freshly allocated mutated chromosome.
	Mutate(rnd *randsrc.Source) Chromosome
	// Crossover combines this chromosome with another of the same concrete
	// type, producing two offspring. Returns an error if other is not the
	// same concrete variant.
	Crossover(rnd *randsrc.Source, other Chromosome) (Chromosome, Chromosome, error)
	// Clone returns a deep copy.
	Clone() Chromosome
}

// Mutator mutates a gene slice of type T, returning a freshly allocated
// result. Implementations must not modify genes in place.
type Mutator[T any] interface {
	Mutate(rnd *randsrc.Source, genes []T) []T
}

// CrossoverOp recombines two parent gene slices of type T into two offspring
// gene slices.
type CrossoverOp[T any] interface {
	Crossover(rnd *randsrc.Source, parent1, parent2 []T) ([]T, []T, error)
}

// GeneToFloat64 converts a numeric or boolean gene value to float64 for use
// in generic fitness accumulation. Ported from the teacher's
// utils.ConvertToFloat64, narrowed to the gene kinds this module actually
// produces.
func GeneToFloat64(v any) float64 {
	switch n := v.(type) {
	case bool:
		if n {
			return 1
		}
		return 0
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
