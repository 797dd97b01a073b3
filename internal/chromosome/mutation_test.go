package chromosome

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

func TestBitflipMutation(t *testing.T) {
	t.Run("does not mutate in place", func(t *testing.T) {
		mut := NewBitflipMutation()
		genes := []bool{true, false, true, false, true}
		original := append([]bool{}, genes...)

		mut.Mutate(randsrc.New(1), genes)
		assert.Equal(t, original, genes)
	})

	t.Run("empty genes stay empty", func(t *testing.T) {
		mut := NewBitflipMutation()
		out := mut.Mutate(randsrc.New(1), nil)
		assert.Empty(t, out)
	})

	t.Run("eventually flips at least one bit across repeated trials", func(t *testing.T) {
		mut := NewBitflipMutation()
		genes := make([]bool, 10)
		changed := false
		for seed := int64(0); seed < 50 && !changed; seed++ {
			out := mut.Mutate(randsrc.New(seed), genes)
			for _, g := range out {
				if g {
					changed = true
					break
				}
			}
		}
		assert.True(t, changed, "expected at least one flip across 50 seeded trials")
	})
}

func TestIntegerListMutation(t *testing.T) {
	t.Run("mutated genes stay within range", func(t *testing.T) {
		mut := NewIntegerListMutation(0, 5)
		genes := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		out := mut.Mutate(randsrc.New(3), genes)
		for _, g := range out {
			assert.GreaterOrEqual(t, g, 0)
			assert.LessOrEqual(t, g, 5)
		}
	})

	t.Run("does not mutate in place", func(t *testing.T) {
		mut := NewIntegerListMutation(0, 5)
		genes := []int{1, 2, 3}
		original := append([]int{}, genes...)
		mut.Mutate(randsrc.New(1), genes)
		assert.Equal(t, original, genes)
	})
}

func TestVariableLengthMutation(t *testing.T) {
	sample := func(rnd *randsrc.Source) int { return rnd.NextInt(0, 100) }

	t.Run("replace-only never changes length", func(t *testing.T) {
		mut := NewVariableLengthMutation(1, 0, 0, 0.5, sample)
		genes := []int{1, 2, 3, 4}
		for seed := int64(0); seed < 10; seed++ {
			out := mut.Mutate(randsrc.New(seed), genes)
			assert.Len(t, out, len(genes))
		}
	})

	t.Run("insert-only never shrinks", func(t *testing.T) {
		mut := NewVariableLengthMutation(0, 1, 0, 1.0, sample)
		genes := []int{1, 2, 3}
		for seed := int64(0); seed < 10; seed++ {
			out := mut.Mutate(randsrc.New(seed), genes)
			assert.GreaterOrEqual(t, len(out), len(genes))
		}
	})

	t.Run("delete-only never grows and keeps at least one gene", func(t *testing.T) {
		mut := NewVariableLengthMutation(0, 0, 1, 0.0, sample)
		genes := []int{1, 2, 3}
		for seed := int64(0); seed < 10; seed++ {
			out := mut.Mutate(randsrc.New(seed), genes)
			assert.LessOrEqual(t, len(out), len(genes))
			assert.GreaterOrEqual(t, len(out), 1)
		}
	})

	t.Run("zero total probability is a no-op", func(t *testing.T) {
		mut := NewVariableLengthMutation(0, 0, 0, 0.5, sample)
		genes := []int{1, 2, 3}
		out := mut.Mutate(randsrc.New(1), genes)
		assert.Equal(t, genes, out)
	})

	t.Run("empty genes stay empty", func(t *testing.T) {
		mut := NewVariableLengthMutation(1.0/3, 1.0/3, 1.0/3, 0.5, sample)
		out := mut.Mutate(randsrc.New(1), nil)
		assert.Empty(t, out)
	})
}
