package execution

import (
	"context"
	"fmt"

	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/errs"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/trace"
)

// FakeHost is an in-process Host standing in for the embedded interpreter,
// per spec.md §1's explicit non-goal of shipping one. Each event index maps
// to the statements it is defined to cover; Evaluate replays a
// TestChromosome's genes against that table rather than running anything.
// Used by tests and the demo CLI, never by the search core itself.
type FakeHost struct {
	// EventCoverage maps event index -> statements that event covers.
	EventCoverage map[int][]int
	// NumStatements is the size of the coverage goal space ExtractCoverageGoals
	// builds.
	NumStatements int
	// FailOnEvent, if non-negative, makes Evaluate report ErrExecutionFailure
	// whenever a chromosome contains this event index, for exercising the
	// recovery path in search.evaluate.
	FailOnEvent int
}

// NewFakeHost creates a FakeHost with no configured failure event.
func NewFakeHost(eventCoverage map[int][]int, numStatements int) *FakeHost {
	return &FakeHost{EventCoverage: eventCoverage, NumStatements: numStatements, FailOnEvent: -1}
}

func (h *FakeHost) Evaluate(ctx context.Context, c *chromosome.TestChromosome) (trace.Trace, error) {
	select {
	case <-ctx.Done():
		return trace.Trace{}, ctx.Err()
	default:
	}

	covered := make(map[int]struct{})
	for _, gene := range c.Genes {
		if h.FailOnEvent >= 0 && gene == h.FailOnEvent {
			return trace.Trace{}, fmt.Errorf("event %d: %w", gene, errs.ErrExecutionFailure)
		}
		for _, stmt := range h.EventCoverage[gene] {
			covered[stmt] = struct{}{}
		}
	}

	return trace.Trace{CoveredStatements: covered}, nil
}

func (h *FakeHost) ExtractCoverageGoals(ctx context.Context) (fitness.GoalSet, error) {
	goals := fitness.NewGoalSet()
	for s := 0; s < h.NumStatements; s++ {
		goals.Add(s, fitness.NewStatementCoverage(s))
	}
	return *goals, nil
}
