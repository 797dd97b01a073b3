package randsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Determinism(t *testing.T) {
	t.Run("same seed produces same sequence", func(t *testing.T) {
		a := New(7)
		b := New(7)
		for i := 0; i < 20; i++ {
			assert.Equal(t, a.NextInt(0, 1000), b.NextInt(0, 1000))
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		a := New(1)
		b := New(2)
		same := true
		for i := 0; i < 20; i++ {
			if a.NextInt(0, 1_000_000) != b.NextInt(0, 1_000_000) {
				same = false
			}
		}
		assert.False(t, same, "different seeds should not produce identical sequences")
	})
}

func TestSource_NextInt(t *testing.T) {
	t.Run("bounds are half-open", func(t *testing.T) {
		s := New(1)
		for i := 0; i < 100; i++ {
			v := s.NextInt(5, 10)
			assert.GreaterOrEqual(t, v, 5)
			assert.Less(t, v, 10)
		}
	})

	t.Run("empty range returns lo", func(t *testing.T) {
		s := New(1)
		assert.Equal(t, 5, s.NextInt(5, 5))
		assert.Equal(t, 5, s.NextInt(5, 3))
	})
}

func TestSource_NextDouble(t *testing.T) {
	s := New(1)
	for i := 0; i < 100; i++ {
		v := s.NextDouble()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestPick(t *testing.T) {
	s := New(1)
	xs := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		v := Pick(s, xs)
		assert.Contains(t, xs, v)
	}
}
