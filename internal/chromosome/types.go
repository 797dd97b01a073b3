package chromosome

import (
	"fmt"

	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

// BitString is a fixed-length sequence of boolean genes.
type BitString struct {
	Genes     []bool
	mutator   Mutator[bool]
	crossover CrossoverOp[bool]
}

// NewBitString constructs a BitString with the given genes and operators.
func NewBitString(genes []bool, mutator Mutator[bool], crossover CrossoverOp[bool]) *BitString {
	return &BitString{Genes: genes, mutator: mutator, crossover: crossover}
}

func (b *BitString) Len() int { return len(b.Genes) }

func (b *BitString) Mutate(rnd *randsrc.Source) Chromosome {
	return &BitString{Genes: b.mutator.Mutate(rnd, b.Genes), mutator: b.mutator, crossover: b.crossover}
}

func (b *BitString) Crossover(rnd *randsrc.Source, other Chromosome) (Chromosome, Chromosome, error) {
	o, ok := other.(*BitString)
	if !ok {
		return nil, nil, newCrossoverError("cannot perform crossover", fmt.Errorf("other chromosome is not a BitString"))
	}
	g1, g2, err := b.crossover.Crossover(rnd, b.Genes, o.Genes)
	if err != nil {
		return nil, nil, err
	}
	return &BitString{Genes: g1, mutator: b.mutator, crossover: b.crossover},
		&BitString{Genes: g2, mutator: o.mutator, crossover: o.crossover}, nil
}

func (b *BitString) Clone() Chromosome {
	genes := append([]bool{}, b.Genes...)
	return &BitString{Genes: genes, mutator: b.mutator, crossover: b.crossover}
}

// IntegerList is a fixed-length sequence of integer genes drawn from a
// closed range [Min, Max].
type IntegerList struct {
	Genes     []int
	Min, Max  int
	mutator   Mutator[int]
	crossover CrossoverOp[int]
}

// NewIntegerList constructs an IntegerList with the given genes, bounds and
// operators.
func NewIntegerList(genes []int, min, max int, mutator Mutator[int], crossover CrossoverOp[int]) *IntegerList {
	return &IntegerList{Genes: genes, Min: min, Max: max, mutator: mutator, crossover: crossover}
}

func (l *IntegerList) Len() int { return len(l.Genes) }

func (l *IntegerList) Mutate(rnd *randsrc.Source) Chromosome {
	return &IntegerList{Genes: l.mutator.Mutate(rnd, l.Genes), Min: l.Min, Max: l.Max, mutator: l.mutator, crossover: l.crossover}
}

func (l *IntegerList) Crossover(rnd *randsrc.Source, other Chromosome) (Chromosome, Chromosome, error) {
	o, ok := other.(*IntegerList)
	if !ok {
		return nil, nil, newCrossoverError("cannot perform crossover", fmt.Errorf("other chromosome is not an IntegerList"))
	}
	g1, g2, err := l.crossover.Crossover(rnd, l.Genes, o.Genes)
	if err != nil {
		return nil, nil, err
	}
	return &IntegerList{Genes: g1, Min: l.Min, Max: l.Max, mutator: l.mutator, crossover: l.crossover},
		&IntegerList{Genes: g2, Min: o.Min, Max: o.Max, mutator: o.mutator, crossover: o.crossover}, nil
}

func (l *IntegerList) Clone() Chromosome {
	genes := append([]int{}, l.Genes...)
	return &IntegerList{Genes: genes, Min: l.Min, Max: l.Max, mutator: l.mutator, crossover: l.crossover}
}

// TestChromosome is the Scratch-test-specific genotype: a variable-length
// sequence of integer gene indices, each referencing an input event in the
// catalogue an execution.Host exposes. Its evaluation requires a host and
// yields an execution trace; it has no evaluation method of its own and is
// evaluated by passing it to execution.Host.Evaluate (evaluation is a
// boundary call, not a pure genotype operation).
type TestChromosome struct {
	Genes     []int
	mutator   Mutator[int]
	crossover CrossoverOp[int]
}

// NewTestChromosome constructs a TestChromosome with the given event-index
// genes and operators.
func NewTestChromosome(genes []int, mutator Mutator[int], crossover CrossoverOp[int]) *TestChromosome {
	return &TestChromosome{Genes: genes, mutator: mutator, crossover: crossover}
}

func (t *TestChromosome) Len() int { return len(t.Genes) }

func (t *TestChromosome) Mutate(rnd *randsrc.Source) Chromosome {
	return &TestChromosome{Genes: t.mutator.Mutate(rnd, t.Genes), mutator: t.mutator, crossover: t.crossover}
}

func (t *TestChromosome) Crossover(rnd *randsrc.Source, other Chromosome) (Chromosome, Chromosome, error) {
	o, ok := other.(*TestChromosome)
	if !ok {
		return nil, nil, newCrossoverError("cannot perform crossover", fmt.Errorf("other chromosome is not a TestChromosome"))
	}
	g1, g2, err := t.crossover.Crossover(rnd, t.Genes, o.Genes)
	if err != nil {
		return nil, nil, err
	}
	return &TestChromosome{Genes: g1, mutator: t.mutator, crossover: t.crossover},
		&TestChromosome{Genes: g2, mutator: o.mutator, crossover: o.crossover}, nil
}

func (t *TestChromosome) Clone() Chromosome {
	genes := append([]int{}, t.Genes...)
	return &TestChromosome{Genes: genes, mutator: t.mutator, crossover: t.crossover}
}
