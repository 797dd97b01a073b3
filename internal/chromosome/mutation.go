package chromosome

import "github.com/marvinkreis/whisker-test/internal/randsrc"

// BitflipMutation flips each gene with probability 1/n, where n is the
// chromosome length, as specified for BitString chromosomes.
type BitflipMutation struct{}

// NewBitflipMutation creates a BitflipMutation operator.
func NewBitflipMutation() BitflipMutation { return BitflipMutation{} }

func (BitflipMutation) Mutate(rnd *randsrc.Source, genes []bool) []bool {
	n := len(genes)
	out := make([]bool, n)
	copy(out, genes)
	if n == 0 {
		return out
	}
	p := 1.0 / float64(n)
	for i := range out {
		if rnd.NextDouble() < p {
			out[i] = !out[i]
		}
	}
	return out
}

// IntegerListMutation replaces each gene with a uniform draw in [Min, Max]
// with probability 1/n.
type IntegerListMutation struct {
	Min, Max int
}

// NewIntegerListMutation creates an IntegerListMutation operator over the
// closed range [min, max].
func NewIntegerListMutation(min, max int) IntegerListMutation {
	return IntegerListMutation{Min: min, Max: max}
}

func (m IntegerListMutation) Mutate(rnd *randsrc.Source, genes []int) []int {
	n := len(genes)
	out := make([]int, n)
	copy(out, genes)
	if n == 0 {
		return out
	}
	p := 1.0 / float64(n)
	for i := range out {
		if rnd.NextDouble() < p {
			out[i] = rnd.NextInt(m.Min, m.Max+1)
		}
	}
	return out
}

// VariableLengthMutation may replace a gene, insert a new random gene at a
// random index, or delete a gene, biased by Alpha controlling length drift.
// Deletion never removes the last gene; there is no upper bound on length,
// so insertions can grow a chromosome past its initial or configured
// length. Sample produces a fresh random gene value for replace/insert,
// supplied by the owning generator.
type VariableLengthMutation struct {
	ReplaceProb float64
	InsertProb  float64
	DeleteProb  float64
	// Alpha biases length drift: an insert roll inserts with probability
	// Alpha and a delete roll deletes with probability 1-Alpha, so higher
	// Alpha favours growth. The bias does not depend on the current length.
	Alpha  float64
	Sample func(rnd *randsrc.Source) int
}

// NewVariableLengthMutation creates a VariableLengthMutation operator.
func NewVariableLengthMutation(replaceProb, insertProb, deleteProb, alpha float64, sample func(rnd *randsrc.Source) int) VariableLengthMutation {
	return VariableLengthMutation{
		ReplaceProb: replaceProb,
		InsertProb:  insertProb,
		DeleteProb:  deleteProb,
		Alpha:       alpha,
		Sample:      sample,
	}
}

func (m VariableLengthMutation) Mutate(rnd *randsrc.Source, genes []int) []int {
	out := make([]int, len(genes))
	copy(out, genes)

	total := m.ReplaceProb + m.InsertProb + m.DeleteProb
	if total <= 0 || len(out) == 0 {
		return out
	}

	roll := rnd.NextDouble() * total
	switch {
	case roll < m.ReplaceProb:
		idx := rnd.NextInt(0, len(out))
		out[idx] = m.Sample(rnd)
	case roll < m.ReplaceProb+m.InsertProb:
		// Alpha is the chance that an insert roll actually inserts; otherwise
		// the mutation is a no-op.
		if rnd.NextDouble() < m.Alpha {
			idx := rnd.NextInt(0, len(out)+1)
			gene := m.Sample(rnd)
			out = append(out, 0)
			copy(out[idx+1:], out[idx:])
			out[idx] = gene
		}
	default:
		if len(out) > 1 && rnd.NextDouble() < (1-m.Alpha) {
			idx := rnd.NextInt(0, len(out))
			out = append(out[:idx], out[idx+1:]...)
		}
	}
	return out
}
