package genome

import (
	"fmt"
	"math/rand"
)

// GenomicLocation is a transient (base, chromosome) cursor created and
// discarded within a single step. It borrows its chromosome -- the
// chromosome is expected to outlive every location built against it within
// a cell -- and carries a reference to the owning cell's PRNG so that
// firing decisions never touch a process-global generator.
type GenomicLocation struct {
	base       int
	chromosome *Chromosome
	rng        *rand.Rand
}

// NewGenomicLocation builds a location at base on chrm. It fails if base is
// outside [0, chrm.Size()).
func NewGenomicLocation(base int, chrm *Chromosome, rng *rand.Rand) (*GenomicLocation, error) {
	if base < 0 || base >= chrm.Size() {
		return nil, fmt.Errorf("genomic location: base %d outside chromosome %q of size %d: %w", base, chrm.Code(), chrm.Size(), ErrInvalidArgument)
	}
	return &GenomicLocation{base: base, chromosome: chrm, rng: rng}, nil
}

// Base returns the location's base index.
func (l *GenomicLocation) Base() int { return l.base }

// Chromosome returns the chromosome this location was built against.
func (l *GenomicLocation) Chromosome() *Chromosome { return l.chromosome }

// IsReplicated delegates to the underlying chromosome.
func (l *GenomicLocation) IsReplicated() (bool, error) {
	return l.chromosome.BaseIsReplicated(l.base)
}

// WillActivate draws a firing decision for this location. The landscape
// value is parameterized over a reference period; dividing by period gives
// the per-step firing rate. A uniform [0,1) sample from the cell's PRNG is
// compared against that rate: the origin fires iff the sample is strictly
// less than it.
//
// useDormant does not influence this decision -- it only tells the caller
// (the cell-cycle engine) whether to apply a dormant-origin boost around
// this base after a firing decision comes back true.
func (l *GenomicLocation) WillActivate(useDormant bool, period int) (bool, error) {
	_ = useDormant
	p, err := l.chromosome.ActivationProbability(l.base)
	if err != nil {
		return false, err
	}
	rate := p / float64(period)
	return l.rng.Float64() < rate, nil
}

// GetConstitutiveOrigin returns the constitutive origin on this location's
// chromosome whose base is closest to this location, provided it lies
// within maxDistance. The second return value is false when no origin
// qualifies.
func (l *GenomicLocation) GetConstitutiveOrigin(maxDistance int) (ConstitutiveOrigin, bool) {
	var best ConstitutiveOrigin
	bestDist := maxDistance + 1
	found := false

	for _, origin := range l.chromosome.ConstitutiveOrigins() {
		dist := origin.Base - l.base
		if dist < 0 {
			dist = -dist
		}
		if dist <= maxDistance && dist < bestDist {
			best = origin
			bestDist = dist
			found = true
		}
	}

	return best, found
}

// PutFiredConstitutiveOrigin records origin as fired on this location's
// chromosome. Idempotence is not enforced; callers ensure single firing.
func (l *GenomicLocation) PutFiredConstitutiveOrigin(origin ConstitutiveOrigin) {
	l.chromosome.PutFiredConstitutiveOrigin(origin)
}
