package search

import (
	"github.com/marvinkreis/whisker-test/internal/chromosome"
	"github.com/marvinkreis/whisker-test/internal/randsrc"
)

// scored pairs a chromosome with its per-goal fitness values, restricted to
// whatever goal set the caller is currently comparing over.
type scored struct {
	chromosome chromosome.Chromosome
	fitness    map[int]float64
}

// dominates reports whether a dominates b restricted to goals: a is no
// worse than b on every goal in goals and strictly better on at least one.
// Covered goals are excluded from goals by the caller — this exclusion is
// the defining property of preference sorting (spec.md §4.7.3).
func dominates(a, b scored, goals []int) bool {
	strictlyBetter := false
	for _, g := range goals {
		fa, fb := a.fitness[g], b.fitness[g]
		if fa < fb {
			return false
		}
		if fa > fb {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// fastNonDominatedSort partitions individuals into fronts ordered best to
// worst under the goals-restricted dominance relation. Grounded on the
// retrieved NSGA-II reference's NonDominatedSort (dominance-count
// bookkeeping, peel fronts by decrementing counts), adapted from full
// Pareto dominance to the uncovered-goal-restricted relation spec.md §4.7.3
// defines.
func fastNonDominatedSort(individuals []scored, goals []int) [][]scored {
	n := len(individuals)
	if n == 0 {
		return nil
	}

	dominatedBy := make([][]int, n)
	dominationCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if dominates(individuals[i], individuals[j], goals) {
				dominatedBy[i] = append(dominatedBy[i], j)
			} else if dominates(individuals[j], individuals[i], goals) {
				dominationCount[i]++
			}
		}
	}

	var fronts [][]scored
	currentIdx := []int{}
	for i := 0; i < n; i++ {
		if dominationCount[i] == 0 {
			currentIdx = append(currentIdx, i)
		}
	}

	for len(currentIdx) > 0 {
		front := make([]scored, 0, len(currentIdx))
		for _, idx := range currentIdx {
			front = append(front, individuals[idx])
		}
		fronts = append(fronts, front)

		var next []int
		for _, idx := range currentIdx {
			for _, dominated := range dominatedBy[idx] {
				dominationCount[dominated]--
				if dominationCount[dominated] == 0 {
					next = append(next, dominated)
				}
			}
		}
		currentIdx = next
	}

	return fronts
}

// svd computes a's sub-vector dominance score against peer population f: for
// each peer b != a, count the goals (restricted to goals) where b's fitness
// strictly beats a's; a's score is the maximum of those per-peer counts.
// Lower is better.
func svd(a scored, f []scored, goals []int) int {
	maxCount := 0
	for _, b := range f {
		if b.chromosome == a.chromosome {
			continue
		}
		count := 0
		for _, g := range goals {
			if b.fitness[g] > a.fitness[g] {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
		}
	}
	return maxCount
}

// sortFrontBySVD orders front ascending by SVD score (lowest first), with
// ties broken by a prior random shuffle so ordering is deterministic only
// under a fixed seed (spec.md §4.7.3).
func sortFrontBySVD(rnd *randsrc.Source, front []scored, goals []int) []scored {
	shuffled := make([]scored, len(front))
	copy(shuffled, front)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	scores := make([]int, len(shuffled))
	for i, a := range shuffled {
		scores[i] = svd(a, shuffled, goals)
	}

	// Stable insertion sort on the shuffled order: the shuffle already
	// fixed the tie-break order, so a stable sort by score preserves it.
	for i := 1; i < len(shuffled); i++ {
		for j := i; j > 0 && scores[j] < scores[j-1]; j-- {
			shuffled[j], shuffled[j-1] = shuffled[j-1], shuffled[j]
			scores[j], scores[j-1] = scores[j-1], scores[j]
		}
	}
	return shuffled
}
