package search

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

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

// MOSA implements spec.md §4.7.3, the many-objective sorting algorithm.
// Offspring generation and archive update are grounded on the teacher's
// GeneticAlgorithmExecutor crossover/mutation pair; preference sorting, fast
// non-dominated sorting and sub-vector dominance are grounded on the
// retrieved NSGA-II reference's NonDominatedSort/front-fill loop, adapted
// from full Pareto dominance + crowding distance to the uncovered-goal
// dominance + SVD spec.md defines.
type MOSA struct {
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
	population []chromosome.Chromosome
	best       []chromosome.Chromosome
}

// NewMOSA creates a MOSA search algorithm.
func NewMOSA(rnd *randsrc.Source, host execution.Host, arch *archive.Archive, logger logging.Logger) *MOSA {
	if logger == nil {
		logger = logging.Noop{}
	}
	return &MOSA{rnd: rnd, host: host, arch: arch, logger: logger}
}

func (m *MOSA) SetChromosomeGenerator(g generator.Generator) error {
	m.gen = g
	return nil
}

func (m *MOSA) SetFitnessFunctions(goals *fitness.GoalSet) error {
	m.goals = goals
	return nil
}

func (m *MOSA) SetStoppingCondition(c stopping.Condition) error {
	m.stopper = c
	return nil
}

func (m *MOSA) SetSelectionOperator(selection.Selector) error {
	// MOSA always uses rank selection per spec.md §4.7.3 step a; it builds
	// its own selector internally rather than accepting an arbitrary one,
	// since the algorithm's correctness depends on the population already
	// being sorted the way its own fill step leaves it.
	return errs.NewUnsupportedOperationError("MOSA uses rank selection internally and does not accept an external selector", nil)
}

func (m *MOSA) SetProperties(p Properties) error {
	if p.PopulationSize < 1 {
		return errs.NewInvalidConfigurationError("MOSA requires populationSize >= 1", nil)
	}
	m.props = p
	return nil
}

func (m *MOSA) Iterations() int      { return m.iterations }
func (m *MOSA) StartTime() time.Time { return m.startTime }

func (m *MOSA) CurrentSolution() []chromosome.Chromosome { return m.population }

func (m *MOSA) FitnessFunctions() *fitness.GoalSet { return m.goals }

func (m *MOSA) progress() stopping.Progress {
	return progressView{iterations: m.Iterations, startTime: m.StartTime}
}

// evaluatePopulation computes every goal's fitness for every individual,
// concurrently, ported from the teacher's errgroup-bounded RefreshFitness.
func (m *MOSA) evaluatePopulation(ctx context.Context, pop []chromosome.Chromosome) ([]scored, error) {
	out := make([]scored, len(pop))
	g, gCtx := errgroup.WithContext(ctx)

	for i := range pop {
		idx := i
		g.Go(func() error {
			fitnessMap := make(map[int]float64, m.goals.Len())
			for _, goal := range m.goals.Goals() {
				ff, _ := m.goals.Get(goal)
				f, err := evaluate(gCtx, m.host, ff, pop[idx])
				if err != nil {
					return err
				}
				fitnessMap[goal] = f
			}
			out[idx] = scored{chromosome: pop[idx], fitness: fitnessMap}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MOSA) updateArchive(individuals []scored) {
	if m.arch == nil {
		return
	}
	for _, ind := range individuals {
		for _, goal := range m.goals.Goals() {
			m.arch.Consider(goal, ind.chromosome, ind.fitness[goal])
		}
	}
}

func (m *MOSA) uncoveredGoals() []int {
	var out []int
	for _, g := range m.goals.Goals() {
		if m.arch == nil || !m.arch.HasGoal(g) {
			out = append(out, g)
		}
	}
	return out
}

// preferenceSort builds the preferred front (best individual per uncovered
// goal, no duplicates) plus the remaining fronts from fast non-dominated
// sorting restricted to uncovered goals. Preserves the flagged edge case
// (spec.md §9 last bullet): when the preferred front alone already exceeds
// populationSize, the remaining individuals are appended as a single
// unsorted front rather than further sorted.
func (m *MOSA) preferenceSort(combined []scored, goals []int) [][]scored {
	chosen := make(map[chromosome.Chromosome]bool)
	var preferred []scored

	for _, goal := range goals {
		var bestIdx = -1
		for i, ind := range combined {
			if chosen[ind.chromosome] {
				continue
			}
			if bestIdx == -1 {
				bestIdx = i
				continue
			}
			ff, _ := m.goals.Get(goal)
			cmp := ff.Compare(ind.fitness[goal], combined[bestIdx].fitness[goal])
			if cmp > 0 || (cmp == 0 && ind.chromosome.Len() < combined[bestIdx].chromosome.Len()) {
				bestIdx = i
			}
		}
		if bestIdx >= 0 && !chosen[combined[bestIdx].chromosome] {
			chosen[combined[bestIdx].chromosome] = true
			preferred = append(preferred, combined[bestIdx])
		}
	}

	var remaining []scored
	for _, ind := range combined {
		if !chosen[ind.chromosome] {
			remaining = append(remaining, ind)
		}
	}

	fronts := [][]scored{preferred}
	if len(preferred) > m.props.PopulationSize {
		fronts = append(fronts, remaining)
	} else {
		fronts = append(fronts, fastNonDominatedSort(remaining, goals)...)
	}
	return fronts
}

// FindSolution runs the MOSA loop until the stopping condition fires.
func (m *MOSA) FindSolution(ctx context.Context) ([]chromosome.Chromosome, error) {
	if m.gen == nil || m.goals == nil || m.stopper == nil {
		return nil, errs.NewInvalidConfigurationError("MOSA requires a generator, fitness functions and a stopping condition", nil)
	}
	if m.props.PopulationSize < 1 {
		return nil, errs.NewInvalidConfigurationError("MOSA requires populationSize >= 1", nil)
	}

	n := m.props.PopulationSize
	m.iterations = 0
	m.startTime = time.Now()
	if m.arch != nil {
		m.arch.Reset()
	}

	parents := make([]chromosome.Chromosome, n)
	for i := range parents {
		parents[i] = m.gen.Random(m.rnd)
	}
	parentScored, err := m.evaluatePopulation(ctx, parents)
	if err != nil {
		return nil, err
	}
	m.updateArchive(parentScored)
	m.population = parents

	firstIteration := true
	for !m.stopper.IsFinished(m.progress()) {
		offspring, err := m.buildOffspring(parents, n, firstIteration)
		if err != nil {
			return nil, err
		}
		firstIteration = false

		offspringScored, err := m.evaluatePopulation(ctx, offspring)
		if err != nil {
			return nil, err
		}
		m.updateArchive(offspringScored)

		combined := append(append([]scored{}, parentScored...), offspringScored...)

		uncovered := m.uncoveredGoals()
		fronts := m.preferenceSort(combined, uncovered)

		var nextPop []scored
		for _, front := range fronts {
			if len(nextPop)+len(front) <= n {
				nextPop = append(nextPop, front...)
				continue
			}
			ordered := sortFrontBySVD(m.rnd, front, uncovered)
			remainingSlots := n - len(nextPop)
			if remainingSlots > 0 {
				nextPop = append(nextPop, ordered[:remainingSlots]...)
			}
			break
		}

		m.updateArchive(nextPop)

		// Reverse so the population is sorted ascending by quality (worst
		// first), the convention rank selection expects.
		for i, j := 0, len(nextPop)-1; i < j; i, j = i+1, j-1 {
			nextPop[i], nextPop[j] = nextPop[j], nextPop[i]
		}

		parentScored = nextPop
		parents = make([]chromosome.Chromosome, len(nextPop))
		for i, ind := range nextPop {
			parents[i] = ind.chromosome
		}
		m.population = parents

		m.best = distinctChromosomes(m.archiveOrPopulationValues())
		m.iterations++
	}

	m.best = distinctChromosomes(m.archiveOrPopulationValues())
	m.logger.Infof("MOSA finished after %d iterations, %d distinct best individuals", m.iterations, len(m.best))
	return m.best, nil
}

func (m *MOSA) archiveOrPopulationValues() []chromosome.Chromosome {
	if m.arch != nil {
		return m.arch.Values()
	}
	return m.population
}

// buildOffspring builds a population of size n: iteration 0 picks parents
// uniformly at random, later iterations use rank selection over the
// (already worst-first sorted) parent population, per spec.md §4.7.3 step
// a.
func (m *MOSA) buildOffspring(parents []chromosome.Chromosome, n int, uniform bool) ([]chromosome.Chromosome, error) {
	pop := chromosome.NewPopulation(parents)
	rankSel := selection.NewRankSelector()

	pick := func() (chromosome.Chromosome, error) {
		if uniform {
			return randsrc.Pick(m.rnd, parents), nil
		}
		return rankSel.Select(m.rnd, pop)
	}

	offspring := make([]chromosome.Chromosome, 0, n)
	for len(offspring) < n {
		p1, err := pick()
		if err != nil {
			return nil, err
		}
		p2, err := pick()
		if err != nil {
			return nil, err
		}

		var c1, c2 chromosome.Chromosome
		if m.rnd.NextDouble() < m.props.CrossoverProbability {
			c1, c2, err = p1.Crossover(m.rnd, p2)
			if err != nil {
				return nil, err
			}
		} else {
			c1, c2 = p1.Clone(), p2.Clone()
		}

		if m.rnd.NextDouble() < m.props.MutationProbability {
			c1 = c1.Mutate(m.rnd)
		}
		if m.rnd.NextDouble() < m.props.MutationProbability {
			c2 = c2.Mutate(m.rnd)
		}

		offspring = append(offspring, c1)
		if len(offspring) < n {
			offspring = append(offspring, c2)
		}
	}
	return offspring, nil
}

// distinctChromosomes deduplicates by identity while preserving order.
func distinctChromosomes(in []chromosome.Chromosome) []chromosome.Chromosome {
	seen := make(map[chromosome.Chromosome]bool, len(in))
	out := make([]chromosome.Chromosome, 0, len(in))
	for _, c := range in {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
