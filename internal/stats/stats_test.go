package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	t.Run("counters accumulate", func(t *testing.T) {
		c := New()
		c.IncIterations()
		c.IncIterations()
		c.IncEvaluations(3)
		c.RecordCoverage(1)
		c.RecordCoverage(1)
		c.RecordCoverage(2)

		snap := c.Snapshot()
		assert.Equal(t, 2, snap.Iterations)
		assert.Equal(t, 3, snap.Evaluations)
		assert.Equal(t, 2, snap.Coverage[1])
		assert.Equal(t, 1, snap.Coverage[2])
	})

	t.Run("Start resets the clock without clearing counters", func(t *testing.T) {
		c := New()
		c.IncIterations()
		before := c.StartTime()
		time.Sleep(2 * time.Millisecond)
		c.Start()
		assert.True(t, c.StartTime().After(before))
		assert.Equal(t, 1, c.Snapshot().Iterations)
	})

	t.Run("Snapshot is a defensive copy", func(t *testing.T) {
		c := New()
		c.RecordCoverage(1)
		snap := c.Snapshot()
		snap.Coverage[1] = 999
		assert.Equal(t, 1, c.Snapshot().Coverage[1])
	})
}
