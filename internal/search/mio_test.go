package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marvinkreis/whisker-test/internal/archive"
	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/logging"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
	"github.com/marvinkreis/whisker-test/internal/stopping"
)

func mioProperties() Properties {
	return Properties{
		PopulationSize:                          10,
		StartOfFocusedPhase:                      0.5,
		RandomSelectionProbabilityStart:          0.5,
		RandomSelectionProbabilityFocusedPhase:   0.0,
		MaxArchiveSizeStart:                      10,
		MaxArchiveSizeFocusedPhase:               1,
		MaxMutationCountStart:                    1,
		MaxMutationCountFocusedPhase:              10,
	}
}

func TestMIO_FindSolution_SingleBitTen(t *testing.T) {
	goals := singleBitGoals(10)
	arch := archive.New(goals)

	m := NewMIO(randsrc.New(1), nil, arch, logging.Noop{})
	require.NoError(t, m.SetChromosomeGenerator(bitGenerator(10)))
	require.NoError(t, m.SetFitnessFunctions(goals))
	require.NoError(t, m.SetStoppingCondition(stopping.NewFixedIterations(1000)))
	require.NoError(t, m.SetProperties(mioProperties()))

	result, err := m.FindSolution(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result)
	assert.True(t, arch.AllGoalsOptimal(), "MIO over 1000 iterations should cover every single-bit goal on a 10-bit chromosome")
}

func TestMIO_RequiresStartOfFocusedPhase(t *testing.T) {
	m := NewMIO(randsrc.New(1), nil, nil, nil)
	err := m.SetProperties(Properties{PopulationSize: 5, StartOfFocusedPhase: 0})
	assert.Error(t, err)
}

func TestMIO_RejectsExternalSelector(t *testing.T) {
	m := NewMIO(randsrc.New(1), nil, nil, nil)
	assert.Error(t, m.SetSelectionOperator(nil))
}

func TestMIO_PhaseValue_InterpolatesThenHolds(t *testing.T) {
	m := &MIO{props: Properties{StartOfFocusedPhase: 0.5}}

	assert.Equal(t, 10.0, m.phaseValue(0, 10, 0))
	assert.Equal(t, 5.0, m.phaseValue(0.25, 10, 0))
	assert.Equal(t, 0.0, m.phaseValue(0.5, 10, 0))
	assert.Equal(t, 0.0, m.phaseValue(1.0, 10, 0), "progress past StartOfFocusedPhase holds at the focused value")
}

func TestMioBucket_CollapsesOnceCovered(t *testing.T) {
	ff := fitness.NewSingleBit(0)
	b := &mioBucket{}

	shorter := chromosome.NewBitString([]bool{true}, nil, nil)
	longer := chromosome.NewBitString([]bool{true, false}, nil, nil)

	b.insert(ff, longer, 1, 5)
	b.insert(ff, shorter, 1, 5)

	require.Len(t, b.entries, 1)
	assert.Equal(t, shorter, b.entries[0].chromosome)
}
