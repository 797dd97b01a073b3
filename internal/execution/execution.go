// Package execution defines the boundary between the search core and the
// external collaborator that actually runs a candidate test against the
// program under test: the embedded interpreter. The core never depends on
// the interpreter directly, only on this Host interface.
package execution

import (
	"context"

	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/trace"
)

// Host is the external collaborator: it executes a candidate test against
// the program under test and reports the observed trace, and it extracts
// the coverage goals (as fitness functions) from the program under test.
// Implementations own the embedded interpreter, the block-program loader
// and the input-event detector — all explicitly out of scope for this
// module (spec.md §1).
type Host interface {
	// Evaluate runs chromosome c against the program under test and
	// returns the observed trace. Returns errs.ErrExecutionFailure (wrapped)
	// if the run failed; callers recover locally per spec.md §7.
	Evaluate(ctx context.Context, c *chromosome.TestChromosome) (trace.Trace, error)
	// ExtractCoverageGoals returns the coverage goals for the program
	// under test as a goal-keyed set of fitness functions, in stable
	// insertion order.
	ExtractCoverageGoals(ctx context.Context) (fitness.GoalSet, error)
}
