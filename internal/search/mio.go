package search

import (
	"context"
	"time"

	"github.com/marvinkreis/whisker-test/internal/archive"
	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/errs"
	"github.com/marvinkreis/whisker-test/internal/execution"
	"github.com/marvinkreis/whisker-test/internal/fitness"
	"github.com/marvinkreis/whisker-test/internal/generator"
	"github.com/marvinkreis/whisker-test/internal/logging"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
	"github.com/marvinkreis/whisker-test/internal/selection"
	"github.com/marvinkreis/whisker-test/internal/stopping"
)

// mioEntry is one member of a goal's bucket.
type mioEntry struct {
	chromosome chromosome.Chromosome
	fitness    float64
}

// mioBucket holds up to capacity candidates for a single goal, ranked by the
// goal's fitness function. Once a goal is covered (its best entry is
// optimal), the bucket collapses to a single entry: further insertions only
// replace it with a strictly shorter optimal candidate, mirroring
// internal/archive.Archive's tie-break rule.
type mioBucket struct {
	entries []mioEntry
}

func (b *mioBucket) covered(ff fitness.Function) bool {
	return len(b.entries) > 0 && ff.IsOptimal(b.entries[0].fitness)
}

func (b *mioBucket) best() (mioEntry, bool) {
	if len(b.entries) == 0 {
		return mioEntry{}, false
	}
	return b.entries[0], true
}

// insert considers c for this bucket and re-ranks, truncating to capacity.
func (b *mioBucket) insert(ff fitness.Function, c chromosome.Chromosome, f float64, capacity int) {
	if b.covered(ff) {
		if !ff.IsOptimal(f) {
			return
		}
		if c.Len() < b.entries[0].chromosome.Len() {
			b.entries = []mioEntry{{chromosome: c, fitness: f}}
		}
		return
	}

	b.entries = append(b.entries, mioEntry{chromosome: c, fitness: f})

	// Stable insertion sort descending by fitness (best first), ties broken
	// by shorter length, mirroring Archive.Consider's tie-break.
	for i := len(b.entries) - 1; i > 0; i-- {
		cur, prev := b.entries[i], b.entries[i-1]
		swap := false
		switch cmp := ff.Compare(cur.fitness, prev.fitness); {
		case cmp > 0:
			swap = true
		case cmp == 0 && cur.chromosome.Len() < prev.chromosome.Len():
			swap = true
		}
		if !swap {
			break
		}
		b.entries[i-1], b.entries[i] = b.entries[i], b.entries[i-1]
	}

	if capacity < 1 {
		capacity = 1
	}
	if len(b.entries) > capacity {
		b.entries = b.entries[:capacity]
	}

	if b.covered(ff) && len(b.entries) > 1 {
		b.entries = b.entries[:1]
	}
}

// MIO implements spec.md §4.7.4: a per-goal bounded archive searched by a
// single mutate-or-sample-fresh loop, with archive size, mutation count and
// random-sampling probability all interpolating from a Start value to a
// FocusedPhase value as the run progresses past StartOfFocusedPhase.
// Grounded on the teacher's mutate/evaluate/accept loop shape (executor.Loop)
// collapsed to per-goal buckets instead of a single population.
type MIO struct {
	rnd    *randsrc.Source
	host   execution.Host
	arch   *archive.Archive
	logger logging.Logger

	gen     generator.Generator
	goals   *fitness.GoalSet
	stopper stopping.Condition
	props   Properties

	iterations int
	startTime  time.Time
	buckets    map[int]*mioBucket
}

// NewMIO creates a MIO search algorithm.
func NewMIO(rnd *randsrc.Source, host execution.Host, arch *archive.Archive, logger logging.Logger) *MIO {
	if logger == nil {
		logger = logging.Noop{}
	}
	return &MIO{rnd: rnd, host: host, arch: arch, logger: logger}
}

func (m *MIO) SetChromosomeGenerator(g generator.Generator) error {
	m.gen = g
	return nil
}

func (m *MIO) SetFitnessFunctions(goals *fitness.GoalSet) error {
	m.goals = goals
	return nil
}

func (m *MIO) SetStoppingCondition(c stopping.Condition) error {
	m.stopper = c
	return nil
}

func (m *MIO) SetSelectionOperator(selection.Selector) error {
	return errs.NewUnsupportedOperationError("MIO samples its per-goal buckets directly and does not accept an external selector", nil)
}

func (m *MIO) SetProperties(p Properties) error {
	if p.PopulationSize < 1 {
		return errs.NewInvalidConfigurationError("MIO requires populationSize >= 1", nil)
	}
	if p.StartOfFocusedPhase <= 0 || p.StartOfFocusedPhase > 1 {
		return errs.NewInvalidConfigurationError("MIO requires startOfFocusedPhase within (0,1]", nil)
	}
	m.props = p
	return nil
}

func (m *MIO) Iterations() int      { return m.iterations }
func (m *MIO) StartTime() time.Time { return m.startTime }

func (m *MIO) FitnessFunctions() *fitness.GoalSet { return m.goals }

func (m *MIO) progress() stopping.Progress {
	return progressView{iterations: m.Iterations, startTime: m.StartTime}
}

// CurrentSolution returns each goal's current best bucket entry, in goal
// order, deduplicated by identity.
func (m *MIO) CurrentSolution() []chromosome.Chromosome {
	if m.goals == nil {
		return nil
	}
	var out []chromosome.Chromosome
	for _, goal := range m.goals.Goals() {
		b, ok := m.buckets[goal]
		if !ok {
			continue
		}
		if e, ok := b.best(); ok {
			out = append(out, e.chromosome)
		}
	}
	return distinctChromosomes(out)
}

// phaseValue linearly interpolates from start to focused as progress runs
// from 0 to StartOfFocusedPhase, then holds at focused (spec.md §9: phase
// progress resolves to max(iterationFraction, timeFraction)).
func (m *MIO) phaseValue(progress, start, focused float64) float64 {
	if m.props.StartOfFocusedPhase <= 0 {
		return focused
	}
	t := progress / m.props.StartOfFocusedPhase
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return start + t*(focused-start)
}

func (m *MIO) randomSelectionProbability(progress float64) float64 {
	return m.phaseValue(progress, m.props.RandomSelectionProbabilityStart, m.props.RandomSelectionProbabilityFocusedPhase)
}

func (m *MIO) maxArchiveSize(progress float64) int {
	v := m.phaseValue(progress, float64(m.props.MaxArchiveSizeStart), float64(m.props.MaxArchiveSizeFocusedPhase))
	return roundPositive(v)
}

func (m *MIO) maxMutationCount(progress float64) int {
	v := m.phaseValue(progress, float64(m.props.MaxMutationCountStart), float64(m.props.MaxMutationCountFocusedPhase))
	n := roundPositive(v)
	if n < 1 {
		n = 1
	}
	return n
}

func roundPositive(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}

// sampleSeed picks a starting chromosome for the focused mutation step: a
// uniformly random non-empty bucket's best entry, or nil if every bucket is
// still empty (forcing a fresh random chromosome instead).
func (m *MIO) sampleSeed() chromosome.Chromosome {
	var nonEmpty []*mioBucket
	for _, goal := range m.goals.Goals() {
		if b, ok := m.buckets[goal]; ok && len(b.entries) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}
	b := randsrc.Pick(m.rnd, nonEmpty)
	e, _ := b.best()
	return e.chromosome
}

// evaluateAll scores c against every goal.
func (m *MIO) evaluateAll(ctx context.Context, c chromosome.Chromosome) (map[int]float64, error) {
	out := make(map[int]float64, m.goals.Len())
	for _, goal := range m.goals.Goals() {
		ff, _ := m.goals.Get(goal)
		f, err := evaluate(ctx, m.host, ff, c)
		if err != nil {
			return nil, err
		}
		out[goal] = f
	}
	return out, nil
}

func (m *MIO) insert(c chromosome.Chromosome, fitnessByGoal map[int]float64, capacity int) {
	for _, goal := range m.goals.Goals() {
		ff, _ := m.goals.Get(goal)
		b, ok := m.buckets[goal]
		if !ok {
			b = &mioBucket{}
			m.buckets[goal] = b
		}
		b.insert(ff, c, fitnessByGoal[goal], capacity)
		if m.arch != nil {
			m.arch.Consider(goal, c, fitnessByGoal[goal])
		}
	}
}

// FindSolution runs the bucket-sampling loop until the stopping condition
// fires, returning the best known chromosome per goal.
func (m *MIO) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if m.gen == nil || m.goals == nil || m.stopper == nil {
		return nil, errs.NewInvalidConfigurationError("MIO requires a generator, fitness functions and a stopping condition", nil)
	}
	if m.props.PopulationSize < 1 {
		return nil, errs.NewInvalidConfigurationError("MIO requires populationSize >= 1", nil)
	}

	m.iterations = 0
	m.startTime = time.Now()
	m.buckets = make(map[int]*mioBucket, m.goals.Len())
	if m.arch != nil {
		m.arch.Reset()
	}

	for !m.stopper.IsFinished(m.progress()) {
		progress := stopping.PhaseProgress(m.stopper, m.progress())
		capacity := m.maxArchiveSize(progress)
		pRandom := m.randomSelectionProbability(progress)
		maxMutations := m.maxMutationCount(progress)

		var candidate chromosome.Chromosome
		seed := m.sampleSeed()
		if seed == nil || m.rnd.NextDouble() < pRandom {
			candidate = m.gen.Random(m.rnd)
		} else {
			candidate = seed
			candidateFit, err := m.evaluateAll(ctx, candidate)
			if err != nil {
				return nil, err
			}
			for i := 0; i < maxMutations; i++ {
				mutant := candidate.Mutate(m.rnd)
				mutantFit, err := m.evaluateAll(ctx, mutant)
				if err != nil {
					return nil, err
				}
				if !worseOnEveryGoal(mutantFit, candidateFit, m.goals) {
					candidate = mutant
					candidateFit = mutantFit
				}
			}
			m.insert(candidate, candidateFit, capacity)
			m.iterations++
			continue
		}

		candidateFit, err := m.evaluateAll(ctx, candidate)
		if err != nil {
			return nil, err
		}
		m.insert(candidate, candidateFit, capacity)
		m.iterations++
	}

	m.logger.Infof("MIO finished after %d iterations, %d goals with a bucket entry", m.iterations, len(m.buckets))
	return m.CurrentSolution(), nil
}

// worseOnEveryGoal reports whether candidate is strictly worse than baseline
// on every goal, the condition under which a mutation attempt is discarded
// rather than kept as the new seed.
func worseOnEveryGoal(candidate, baseline map[int]float64, goals *fitness.GoalSet) bool {
	for _, goal := range goals.Goals() {
		ff, _ := goals.Get(goal)
		if ff.Compare(candidate[goal], baseline[goal]) >= 0 {
			return false
		}
	}
	return true
}
