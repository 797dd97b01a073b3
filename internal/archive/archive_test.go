package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/fitness"
)

func bs(genes ...bool) chromosome.Chromosome {
	return chromosome.NewBitString(genes, nil, nil)
}

func goalSet(goals ...int) *fitness.GoalSet {
	gs := fitness.NewGoalSet()
	for _, g := range goals {
		gs.Add(g, fitness.NewOneMaxExact(3))
	}
	return gs
}

func TestArchive_Consider(t *testing.T) {
	t.Run("rejects a non-optimal candidate", func(t *testing.T) {
		a := New(goalSet(0))
		ok := a.Consider(0, bs(true, true, false), 2)
		assert.False(t, ok)
		assert.False(t, a.HasGoal(0))
	})

	t.Run("accepts the first optimal candidate", func(t *testing.T) {
		a := New(goalSet(0))
		c := bs(true, true, true)
		ok := a.Consider(0, c, 3)
		assert.True(t, ok)
		got, has := a.Get(0)
		assert.True(t, has)
		assert.Equal(t, c, got)
	})

	t.Run("replaces only with a strictly shorter optimal candidate", func(t *testing.T) {
		a := New(goalSet(0))
		longer := chromosome.NewBitString([]bool{true, true, true, false}, nil, nil)
		shorter := bs(true, true, true)

		a.Consider(0, longer, 3)
		replaced := a.Consider(0, shorter, 3)
		assert.True(t, replaced)
		got, _ := a.Get(0)
		assert.Equal(t, shorter, got)
	})

	t.Run("does not replace on a length tie", func(t *testing.T) {
		a := New(goalSet(0))
		first := bs(true, true, true)
		second := bs(true, true, true)

		a.Consider(0, first, 3)
		replaced := a.Consider(0, second, 3)
		assert.False(t, replaced)
		got, _ := a.Get(0)
		assert.Equal(t, first, got)
	})

	t.Run("unknown goal is rejected", func(t *testing.T) {
		a := New(goalSet(0))
		ok := a.Consider(99, bs(true), 1)
		assert.False(t, ok)
	})
}

func TestArchive_AllGoalsOptimal(t *testing.T) {
	t.Run("false until every goal has an entry", func(t *testing.T) {
		a := New(goalSet(0, 1))
		assert.False(t, a.AllGoalsOptimal())
		a.Consider(0, bs(true, true, true), 3)
		assert.False(t, a.AllGoalsOptimal())
		a.Consider(1, bs(true, true, true), 3)
		assert.True(t, a.AllGoalsOptimal())
	})
}

func TestArchive_Reset(t *testing.T) {
	a := New(goalSet(0))
	a.Consider(0, bs(true, true, true), 3)
	a.Reset()
	assert.False(t, a.HasGoal(0))
	assert.Empty(t, a.Values())
}

func TestArchive_Values_PreservesInsertionOrder(t *testing.T) {
	a := New(goalSet(0, 1, 2))
	c2 := bs(true, true, true)
	c0 := bs(true, true, true)
	a.Consider(2, c2, 3)
	a.Consider(0, c0, 3)
	assert.Equal(t, []chromosome.Chromosome{c2, c0}, a.Values())
}
