// Package provider implements the data-provider capability set: loading a
// chromosome's length, firing-probability landscape, transcription
// regions, and constitutive origins by code. The replication engine
// depends only on the Provider interface, never on a concrete loader.
package provider

import (
	"fmt"

	"github.com/kraklabs/redymo/internal/genome"
)

// Provider is the capability set the cell-cycle engine needs to build a
// Genome. Implementations must guarantee that the length returned by
// Length matches the slice lengths returned by ProbabilityLandscape.
type Provider interface {
	// Codes returns every chromosome code this provider knows about, in
	// the declaration order the engine must scan chromosomes in.
	Codes() ([]string, error)

	// Length returns the chromosome's length in bases.
	Length(code string) (int, error)

	// ProbabilityLandscape returns a per-base origin-firing probability
	// sequence with exactly Length(code) entries.
	ProbabilityLandscape(code string) ([]float64, error)

	// TranscriptionRegions returns the shared, read-only list of
	// transcription regions for the chromosome.
	TranscriptionRegions(code string) ([]genome.TranscriptionRegion, error)

	// ConstitutiveOrigins returns the shared, read-only list of
	// constitutive origins for the chromosome.
	ConstitutiveOrigins(code string) ([]genome.ConstitutiveOrigin, error)
}

// BuildGenome constructs a fresh Genome from a Provider, in the order
// Codes() returns. Each chromosome gets its own landscape copy; the
// transcription regions and constitutive origins are shared by reference.
func BuildGenome(p Provider) (*genome.Genome, error) {
	codes, err := p.Codes()
	if err != nil {
		return nil, fmt.Errorf("provider: list codes: %w", err)
	}

	chromosomes := make([]*genome.Chromosome, 0, len(codes))
	for _, code := range codes {
		length, err := p.Length(code)
		if err != nil {
			return nil, fmt.Errorf("provider: length of %q: %w", code, err)
		}
		landscape, err := p.ProbabilityLandscape(code)
		if err != nil {
			return nil, fmt.Errorf("provider: landscape of %q: %w", code, err)
		}
		regions, err := p.TranscriptionRegions(code)
		if err != nil {
			return nil, fmt.Errorf("provider: transcription regions of %q: %w", code, err)
		}
		origins, err := p.ConstitutiveOrigins(code)
		if err != nil {
			return nil, fmt.Errorf("provider: constitutive origins of %q: %w", code, err)
		}

		chrm, err := genome.NewChromosome(code, length, landscape, regions, origins)
		if err != nil {
			return nil, fmt.Errorf("provider: building chromosome %q: %w", code, err)
		}
		chromosomes = append(chromosomes, chrm)
	}

	return genome.NewGenome(chromosomes), nil
}
