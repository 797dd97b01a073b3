package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

func sc(fitnesses map[int]float64) scored {
	return scored{chromosome: chromosome.NewBitString(nil, nil, nil), fitness: fitnesses}
}

func TestDominates(t *testing.T) {
	goals := []int{0, 1}

	t.Run("strictly better on one, no worse on the rest", func(t *testing.T) {
		a := sc(map[int]float64{0: 2, 1: 1})
		b := sc(map[int]float64{0: 1, 1: 1})
		assert.True(t, dominates(a, b, goals))
		assert.False(t, dominates(b, a, goals))
	})

	t.Run("neither dominates when each wins a goal", func(t *testing.T) {
		a := sc(map[int]float64{0: 2, 1: 0})
		b := sc(map[int]float64{0: 0, 1: 2})
		assert.False(t, dominates(a, b, goals))
		assert.False(t, dominates(b, a, goals))
	})

	t.Run("equal on every goal dominates neither way", func(t *testing.T) {
		a := sc(map[int]float64{0: 1, 1: 1})
		b := sc(map[int]float64{0: 1, 1: 1})
		assert.False(t, dominates(a, b, goals))
		assert.False(t, dominates(b, a, goals))
	})
}

func TestFastNonDominatedSort(t *testing.T) {
	goals := []int{0, 1}

	t.Run("partitions into fronts best to worst", func(t *testing.T) {
		best := sc(map[int]float64{0: 3, 1: 3})
		mid := sc(map[int]float64{0: 2, 1: 2})
		worst := sc(map[int]float64{0: 1, 1: 1})

		fronts := fastNonDominatedSort([]scored{worst, best, mid}, goals)
		assert.Len(t, fronts, 3)
		assert.Equal(t, best, fronts[0][0])
		assert.Equal(t, mid, fronts[1][0])
		assert.Equal(t, worst, fronts[2][0])
	})

	t.Run("mutually non-dominating individuals share the first front", func(t *testing.T) {
		a := sc(map[int]float64{0: 2, 1: 0})
		b := sc(map[int]float64{0: 0, 1: 2})
		fronts := fastNonDominatedSort([]scored{a, b}, goals)
		assert.Len(t, fronts, 1)
		assert.Len(t, fronts[0], 2)
	})

	t.Run("empty input yields no fronts", func(t *testing.T) {
		assert.Nil(t, fastNonDominatedSort(nil, goals))
	})
}

func TestSVD(t *testing.T) {
	goals := []int{0, 1}

	t.Run("score is the worst per-peer beat count", func(t *testing.T) {
		a := sc(map[int]float64{0: 1, 1: 1})
		beatsOnOne := sc(map[int]float64{0: 2, 1: 0})
		beatsOnBoth := sc(map[int]float64{0: 2, 1: 2})

		score := svd(a, []scored{a, beatsOnOne, beatsOnBoth}, goals)
		assert.Equal(t, 2, score)
	})

	t.Run("self is excluded from its own peer comparison", func(t *testing.T) {
		a := sc(map[int]float64{0: 5, 1: 5})
		score := svd(a, []scored{a}, goals)
		assert.Equal(t, 0, score)
	})
}

func TestSortFrontBySVD(t *testing.T) {
	goals := []int{0, 1}
	best := sc(map[int]float64{0: 5, 1: 5})
	worst := sc(map[int]float64{0: 0, 1: 0})

	ordered := sortFrontBySVD(randsrc.New(1), []scored{worst, best}, goals)
	assert.Equal(t, best, ordered[0])
	assert.Equal(t, worst, ordered[1])
}
