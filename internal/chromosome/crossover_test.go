package chromosome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

func TestSinglePointCrossover(t *testing.T) {
	cx := NewSinglePointCrossover[int]()

	t.Run("offspring preserve parent lengths", func(t *testing.T) {
		p1 := []int{1, 2, 3, 4, 5}
		p2 := []int{6, 7, 8, 9, 10}
		o1, o2, err := cx.Crossover(randsrc.New(1), p1, p2)
		require.NoError(t, err)
		assert.Len(t, o1, len(p1))
		assert.Len(t, o2, len(p2))
	})

	t.Run("empty parent is an error", func(t *testing.T) {
		_, _, err := cx.Crossover(randsrc.New(1), nil, []int{1})
		require.Error(t, err)
		var ce *CrossoverError
		assert.ErrorAs(t, err, &ce)
	})

	t.Run("single-gene parents pass through unchanged", func(t *testing.T) {
		o1, o2, err := cx.Crossover(randsrc.New(1), []int{1}, []int{2})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, o1)
		assert.Equal(t, []int{2}, o2)
	})
}

func TestSinglePointRelativeCrossover(t *testing.T) {
	cx := NewSinglePointRelativeCrossover[int]()

	t.Run("empty parent is an error", func(t *testing.T) {
		_, _, err := cx.Crossover(randsrc.New(1), nil, []int{1})
		require.Error(t, err)
		var ce *CrossoverError
		assert.ErrorAs(t, err, &ce)
	})

	t.Run("length conservation across many seeds and shapes", func(t *testing.T) {
		p1 := []int{1, 2, 3, 4, 5, 6, 7}
		p2 := []int{8, 9, 10}
		for seed := int64(0); seed < 50; seed++ {
			o1, o2, err := cx.Crossover(randsrc.New(seed), p1, p2)
			require.NoError(t, err)

			assert.Equal(t, len(p1)+len(p2), len(o1)+len(o2), "seed %d: total length must be conserved", seed)

			maxLen := len(p1)
			if len(p2) > maxLen {
				maxLen = len(p2)
			}
			assert.LessOrEqual(t, len(o1), maxLen, "seed %d: o1 length bound", seed)
			assert.LessOrEqual(t, len(o2), maxLen, "seed %d: o2 length bound", seed)
		}
	})

	t.Run("equal-length parents behave like a fixed cut", func(t *testing.T) {
		p1 := []int{1, 2, 3, 4}
		p2 := []int{5, 6, 7, 8}
		o1, o2, err := cx.Crossover(randsrc.New(2), p1, p2)
		require.NoError(t, err)
		assert.Len(t, o1, 4)
		assert.Len(t, o2, 4)
	})
}
