// Package genome implements the replication-engine nucleus: the
// per-chromosome strand model, genomic-location cursor, fork state machine,
// and fork pool that the cell-cycle engine drives one discrete step at a
// time.
package genome

import (
	"fmt"
	"math"
)

// dormantStdDev is the standard deviation (in bases) of the Gaussian bump
// applied around a newly fired origin when dormant-origin boosting is
// enabled. Preserved from the original model's constant.
const dormantStdDev = 10000

// TranscriptionRegion is a half-open base interval [Start, End) that is
// shared read-only across every cell simulated against the same genome.
type TranscriptionRegion struct {
	Start int
	End   int
}

// Contains reports whether base lies inside the region.
func (r TranscriptionRegion) Contains(base int) bool {
	return base >= r.Start && base < r.End
}

// ConstitutiveOrigin is a base guaranteed to fire once per cell when the
// engine's constitutive-origin option is enabled. Shared read-only across
// cells, like TranscriptionRegion.
type ConstitutiveOrigin struct {
	Base int
}

// Chromosome holds one cell's mutable replication state for a single
// chromosome: the strand of replication timestamps and the per-base firing
// landscape are owned exclusively by this chromosome instance; the
// transcription regions and constitutive origins are shared read-only
// slices handed in by the DataProvider.
type Chromosome struct {
	code                     string
	length                   int
	strand                   []int
	landscape                []float64
	transcriptionRegions     []TranscriptionRegion
	constitutiveOrigins      []ConstitutiveOrigin
	firedConstitutiveOrigins []ConstitutiveOrigin
	nReplicatedBases         int
	nFiredOrigins            int
}

// NewChromosome constructs a chromosome with every base unreplicated.
// landscape must have exactly length entries; transcriptionRegions and
// constitutiveOrigins are kept by reference and must not be mutated by the
// caller afterward -- they are meant to be shared across every cell's copy
// of this chromosome.
func NewChromosome(code string, length int, landscape []float64, transcriptionRegions []TranscriptionRegion, constitutiveOrigins []ConstitutiveOrigin) (*Chromosome, error) {
	if length <= 0 {
		return nil, fmt.Errorf("chromosome %q: length %d: %w", code, length, ErrInvalidArgument)
	}
	if len(landscape) != length {
		return nil, fmt.Errorf("chromosome %q: landscape has %d entries, want %d: %w", code, len(landscape), length, ErrInvalidArgument)
	}

	strand := make([]int, length)
	for i := range strand {
		strand[i] = -1
	}
	// Own a private copy of the landscape -- dormant boosting and the
	// uniform-probability override both mutate it per cell.
	owned := make([]float64, length)
	copy(owned, landscape)
	clampLandscape(owned)

	return &Chromosome{
		code:                 code,
		length:               length,
		strand:               strand,
		landscape:            owned,
		transcriptionRegions: transcriptionRegions,
		constitutiveOrigins:  constitutiveOrigins,
	}, nil
}

func clampLandscape(p []float64) {
	for i, v := range p {
		if v < 0 {
			p[i] = 0
		} else if v > 1 {
			p[i] = 1
		}
	}
}

// Code returns the chromosome's identifying string.
func (c *Chromosome) Code() string { return c.code }

// Size returns the chromosome length in bases.
func (c *Chromosome) Size() int { return c.length }

func (c *Chromosome) checkBounds(base int) error {
	if base < 0 || base >= c.length {
		return fmt.Errorf("chromosome %q: base %d outside [0,%d): %w", c.code, base, c.length, ErrOutOfRange)
	}
	return nil
}

// BaseIsReplicated reports whether the given base already carries a
// replication timestamp.
func (c *Chromosome) BaseIsReplicated(base int) (bool, error) {
	if err := c.checkBounds(base); err != nil {
		return false, err
	}
	return c.strand[base] != -1, nil
}

// ActivationProbability returns the per-base origin-firing probability,
// interpreted per the reference period (see GenomicLocation.WillActivate).
func (c *Chromosome) ActivationProbability(base int) (float64, error) {
	if err := c.checkBounds(base); err != nil {
		return 0, err
	}
	return c.landscape[base], nil
}

// OverrideUniformProbability replaces the entire landscape with a constant
// value, as the engine does at cell initialization when a uniform
// probability override is configured.
func (c *Chromosome) OverrideUniformProbability(p float64) {
	for i := range c.landscape {
		c.landscape[i] = p
	}
	clampLandscape(c.landscape)
}

// SetDormantActivationProbability adds a Gaussian bump of standard
// deviation dormantStdDev centered at base to the landscape, modeling local
// backup-origin firing in the neighborhood of a just-fired origin. Values
// are clamped to 1 after the bump. Small chromosomes (length < 4*stdDev)
// have their entire landscape boosted -- this is not special-cased, it
// falls out of the window intersecting the whole chromosome.
func (c *Chromosome) SetDormantActivationProbability(base int) error {
	if err := c.checkBounds(base); err != nil {
		return err
	}

	left := base - 2*dormantStdDev
	right := base + 2*dormantStdDev
	if left < 0 {
		left = 0
	}
	if right > c.length {
		right = c.length
	}

	variance2 := 2 * float64(dormantStdDev) * float64(dormantStdDev)
	for cur := left; cur < right; cur++ {
		offset := float64(cur - base)
		c.landscape[cur] += math.Exp(-(offset * offset) / variance2)
		if c.landscape[cur] > 1 {
			c.landscape[cur] = 1
		}
	}
	return nil
}

// Replicate writes time into strand[i] for every i walked from start toward
// end inclusive, stepping by sign(end-start). It only overwrites entries
// still at -1; hitting an already-replicated base other than start stops
// the walk early. An end outside [0,length) is clamped to the nearest valid
// index. Either condition makes the call "non-normal" and Replicate returns
// false; start outside [0,length) is a bounds error -- start is itself a
// base the walk indexes into strand, so it is bounds-checked half-open like
// every other base access rather than admitting start == length.
//
// The end<0 && start>=0 case is reachable (the original implementation's
// clamp-to-zero inverts the walk direction) and preserved literally rather
// than rejected, per the upstream model.
func (c *Chromosome) Replicate(start, end, time int) (bool, error) {
	if start < 0 || start >= c.length {
		return false, fmt.Errorf("chromosome %q: replicate start %d outside [0,%d): %w", c.code, start, c.length, ErrOutOfRange)
	}

	normal := true
	if end < 0 || end >= c.length {
		if end < 0 {
			end = 0
		} else {
			end = c.length - 1
		}
		normal = false
	}

	inverted := end < start
	step := 1
	if inverted {
		step = -1
	}

	for base := start; (inverted && base > end-1) || (!inverted && base < end+1); base += step {
		if c.strand[base] == -1 {
			c.strand[base] = time
			c.nReplicatedBases++
		} else if base != start {
			normal = false
			break
		}
	}

	return normal, nil
}

// IsReplicated reports whether every base on the chromosome carries a
// timestamp.
func (c *Chromosome) IsReplicated() bool {
	return c.nReplicatedBases == c.length
}

// NReplicatedBases returns the running count of replicated bases.
func (c *Chromosome) NReplicatedBases() int { return c.nReplicatedBases }

// NFiredOrigins returns the running count of fired origins.
func (c *Chromosome) NFiredOrigins() int { return c.nFiredOrigins }

// AddFiredOrigin increments the fired-origin counter.
func (c *Chromosome) AddFiredOrigin() { c.nFiredOrigins++ }

// TranscriptionRegions returns the shared, read-only list of transcription
// regions for this chromosome.
func (c *Chromosome) TranscriptionRegions() []TranscriptionRegion {
	return c.transcriptionRegions
}

// ConstitutiveOrigins returns the shared, read-only list of constitutive
// origins for this chromosome.
func (c *Chromosome) ConstitutiveOrigins() []ConstitutiveOrigin {
	return c.constitutiveOrigins
}

// FiredConstitutiveOrigins returns the constitutive origins already
// consumed this cell.
func (c *Chromosome) FiredConstitutiveOrigins() []ConstitutiveOrigin {
	return c.firedConstitutiveOrigins
}

// PutFiredConstitutiveOrigin appends origin to the fired set. Callers are
// responsible for firing each constitutive origin only once.
func (c *Chromosome) PutFiredConstitutiveOrigin(origin ConstitutiveOrigin) {
	c.firedConstitutiveOrigins = append(c.firedConstitutiveOrigins, origin)
}

// Strand returns the underlying replication-timestamp array. Callers must
// treat it as read-only; it is exposed for output rendering.
func (c *Chromosome) Strand() []int { return c.strand }

// Equal reports whether two chromosomes share the same code, mirroring the
// original model's identity-by-code equality.
func (c *Chromosome) Equal(other *Chromosome) bool {
	if other == nil {
		return false
	}
	return c.code == other.code
}
