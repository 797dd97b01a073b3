package chromosome

// Population is an ordered multiset of chromosomes. Ordering matters for
// rank selection but not for set identity.
type Population struct {
	Individuals []Chromosome
}

// NewPopulation wraps the given individuals into a Population.
func NewPopulation(individuals []Chromosome) *Population {
	return &Population{Individuals: individuals}
}

// Len returns the number of individuals.
func (p *Population) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Individuals)
}
