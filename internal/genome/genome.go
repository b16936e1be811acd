package genome

import (
	"math/rand"
)

// Genome is an ordered collection of chromosomes. Order is the declaration
// order from the DataProvider and is significant: the cell-cycle engine
// scans chromosomes in this order every step.
type Genome struct {
	chromosomes []*Chromosome
}

// NewGenome wraps an ordered slice of chromosomes into a Genome.
func NewGenome(chromosomes []*Chromosome) *Genome {
	return &Genome{chromosomes: chromosomes}
}

// Chromosomes returns the ordered chromosome list.
func (g *Genome) Chromosomes() []*Chromosome { return g.chromosomes }

// TotalSize returns the sum of every chromosome's length.
func (g *Genome) TotalSize() int {
	total := 0
	for _, c := range g.chromosomes {
		total += c.Size()
	}
	return total
}

// NReplicatedBases returns the sum of every chromosome's replicated-base
// count.
func (g *Genome) NReplicatedBases() int {
	total := 0
	for _, c := range g.chromosomes {
		total += c.NReplicatedBases()
	}
	return total
}

// IsReplicated reports whether every chromosome in the genome is fully
// replicated.
func (g *Genome) IsReplicated() bool {
	for _, c := range g.chromosomes {
		if !c.IsReplicated() {
			return false
		}
	}
	return true
}

// RandomGenomicLocation picks a chromosome weighted by its share of total
// genome size, then a base uniformly within it.
func (g *Genome) RandomGenomicLocation(rng *rand.Rand) (*GenomicLocation, error) {
	total := g.TotalSize()
	pick := rng.Intn(total)

	for _, c := range g.chromosomes {
		if pick < c.Size() {
			return NewGenomicLocation(pick, c, rng)
		}
		pick -= c.Size()
	}
	// Unreachable given pick < total, but keeps the compiler honest.
	last := g.chromosomes[len(g.chromosomes)-1]
	return NewGenomicLocation(last.Size()-1, last, rng)
}
