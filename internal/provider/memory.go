package provider

import (
	"fmt"

	"github.com/kraklabs/redymo/internal/genome"
)

// ChromosomeFacts is the in-memory representation of one chromosome's
// provider-supplied facts, used by MemoryProvider and as the form
// FileProvider converts each decoded YAML chromosome descriptor into and
// caches (see yaml.go).
type ChromosomeFacts struct {
	Length               int
	ProbabilityLandscape []float64
	TranscriptionRegions []genome.TranscriptionRegion
	ConstitutiveOrigins  []genome.ConstitutiveOrigin
}

// MemoryProvider is an in-memory Provider, primarily for tests -- the Go
// analog of the original model's TestingProvider fixture.
type MemoryProvider struct {
	codes []string
	facts map[string]ChromosomeFacts
}

// NewMemoryProvider builds a MemoryProvider over the given code-to-facts
// map, preserving the order given in codes.
func NewMemoryProvider(codes []string, facts map[string]ChromosomeFacts) *MemoryProvider {
	return &MemoryProvider{codes: codes, facts: facts}
}

// NewUniformMemoryProvider builds a single-chromosome MemoryProvider with a
// constant per-base firing probability, no transcription regions, and no
// constitutive origins -- a common shape for unit tests and for
// end-to-end scenario coverage.
func NewUniformMemoryProvider(code string, size int, probability float64) *MemoryProvider {
	landscape := make([]float64, size)
	for i := range landscape {
		landscape[i] = probability
	}
	return NewMemoryProvider([]string{code}, map[string]ChromosomeFacts{
		code: {Length: size, ProbabilityLandscape: landscape},
	})
}

func (m *MemoryProvider) lookup(code string) (ChromosomeFacts, error) {
	facts, ok := m.facts[code]
	if !ok {
		return ChromosomeFacts{}, fmt.Errorf("memory provider: unknown chromosome %q", code)
	}
	return facts, nil
}

// Codes returns the configured chromosome codes in order.
func (m *MemoryProvider) Codes() ([]string, error) { return m.codes, nil }

// Length returns the configured chromosome length.
func (m *MemoryProvider) Length(code string) (int, error) {
	facts, err := m.lookup(code)
	return facts.Length, err
}

// ProbabilityLandscape returns the configured per-base landscape.
func (m *MemoryProvider) ProbabilityLandscape(code string) ([]float64, error) {
	facts, err := m.lookup(code)
	return facts.ProbabilityLandscape, err
}

// TranscriptionRegions returns the configured transcription regions.
func (m *MemoryProvider) TranscriptionRegions(code string) ([]genome.TranscriptionRegion, error) {
	facts, err := m.lookup(code)
	return facts.TranscriptionRegions, err
}

// ConstitutiveOrigins returns the configured constitutive origins.
func (m *MemoryProvider) ConstitutiveOrigins(code string) ([]genome.ConstitutiveOrigin, error) {
	facts, err := m.lookup(code)
	return facts.ConstitutiveOrigins, err
}
