package chromosome

import (
	"fmt"

	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

// CrossoverError reports a failure to recombine two parent gene slices.
// Ported from the teacher's *CrossoverError shape.
type CrossoverError struct {
	Message string
	Wrapped error
}

func (e *CrossoverError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

func (e *CrossoverError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

func newCrossoverError(message string, wrapped error) *CrossoverError {
	return &CrossoverError{Message: message, Wrapped: wrapped}
}

// SinglePointCrossover picks one cut point in the shorter parent and swaps
// tails, producing two offspring of the original parent lengths. Ported from
// the teacher's models.SinglePointCrossover, generalized from []T fixed to
// both fixed- and variable-length callers.
type SinglePointCrossover[T any] struct{}

// NewSinglePointCrossover creates a SinglePointCrossover operator.
func NewSinglePointCrossover[T any]() SinglePointCrossover[T] {
	return SinglePointCrossover[T]{}
}

func (SinglePointCrossover[T]) Crossover(rnd *randsrc.Source, parent1, parent2 []T) ([]T, []T, error) {
	if len(parent1) == 0 || len(parent2) == 0 {
		return nil, nil, newCrossoverError("cannot perform crossover", fmt.Errorf("parent chromosomes cannot be empty"))
	}

	shorter := len(parent1)
	if len(parent2) < shorter {
		shorter = len(parent2)
	}
	if shorter == 1 {
		o1 := append([]T{}, parent1...)
		o2 := append([]T{}, parent2...)
		return o1, o2, nil
	}

	cut := rnd.NextInt(1, shorter)

	o1 := make([]T, 0, len(parent1))
	o1 = append(o1, parent1[:cut]...)
	o1 = append(o1, parent2[cut:]...)

	o2 := make([]T, 0, len(parent2))
	o2 = append(o2, parent2[:cut]...)
	o2 = append(o2, parent1[cut:]...)

	return o1, o2, nil
}

// SinglePointRelativeCrossover picks a relative cut point r in (0,1) and
// cuts each parent at floor(r*len(parent)) independently, so parents need
// not be the same length. Offspring lengths satisfy |o1|+|o2| = |p1|+|p2|,
// neither offspring is longer than max(|p1|,|p2|), and the multiset of
// genes across both offspring equals that of both parents.
type SinglePointRelativeCrossover[T any] struct{}

// NewSinglePointRelativeCrossover creates a SinglePointRelativeCrossover
// operator.
func NewSinglePointRelativeCrossover[T any]() SinglePointRelativeCrossover[T] {
	return SinglePointRelativeCrossover[T]{}
}

func (SinglePointRelativeCrossover[T]) Crossover(rnd *randsrc.Source, parent1, parent2 []T) ([]T, []T, error) {
	if len(parent1) == 0 || len(parent2) == 0 {
		return nil, nil, newCrossoverError("cannot perform crossover", fmt.Errorf("parent chromosomes cannot be empty"))
	}

	r := rnd.NextDouble()
	cut1 := int(r * float64(len(parent1)))
	cut2 := int(r * float64(len(parent2)))

	o1 := make([]T, 0, len(parent1))
	o1 = append(o1, parent1[:cut1]...)
	o1 = append(o1, parent2[cut2:]...)

	o2 := make([]T, 0, len(parent2))
	o2 = append(o2, parent2[:cut2]...)
	o2 = append(o2, parent1[cut1:]...)

	return o1, o2, nil
}
