package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kraklabs/redymo/internal/genome"
	"gopkg.in/yaml.v3"
)

// manifestFile is the top-level data_dir/codes.yaml listing which
// chromosome descriptors to load, in scan order.
type manifestFile struct {
	Codes []string `yaml:"codes"`
}

// chromosomeYAML is the on-disk shape of one data_dir/<code>.yaml
// descriptor.
type chromosomeYAML struct {
	Length               int       `yaml:"length"`
	ProbabilityLandscape []float64 `yaml:"probability_landscape"`
	TranscriptionRegions []struct {
		Start int `yaml:"start"`
		End   int `yaml:"end"`
	} `yaml:"transcription_regions"`
	ConstitutiveOrigins []int `yaml:"constitutive_origins"`
}

// FileProvider is a Provider backed by a directory of YAML descriptors: a
// data_dir/codes.yaml manifest plus one data_dir/<code>.yaml file per
// chromosome. Descriptors are read lazily and cached, since a single
// ensemble run may ask for the same chromosome's facts once per cell.
type FileProvider struct {
	dataDir string
	codes   []string
	mu      sync.Mutex
	cache   map[string]ChromosomeFacts
}

// NewFileProvider reads the manifest at dataDir/codes.yaml and returns a
// FileProvider ready to serve per-chromosome descriptors on demand.
func NewFileProvider(dataDir string) (*FileProvider, error) {
	manifestPath := filepath.Join(dataDir, "codes.yaml")
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("file provider: reading manifest %s: %w", manifestPath, err)
	}

	var manifest manifestFile
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("file provider: parsing manifest %s: %w", manifestPath, err)
	}

	return &FileProvider{
		dataDir: dataDir,
		codes:   manifest.Codes,
		cache:   make(map[string]ChromosomeFacts, len(manifest.Codes)),
	}, nil
}

func (f *FileProvider) load(code string) (ChromosomeFacts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if facts, ok := f.cache[code]; ok {
		return facts, nil
	}

	path := filepath.Join(f.dataDir, code+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return ChromosomeFacts{}, fmt.Errorf("file provider: reading %s: %w", path, err)
	}

	var decoded chromosomeYAML
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return ChromosomeFacts{}, fmt.Errorf("file provider: parsing %s: %w", path, err)
	}

	regions := make([]genome.TranscriptionRegion, len(decoded.TranscriptionRegions))
	for i, r := range decoded.TranscriptionRegions {
		regions[i] = genome.TranscriptionRegion{Start: r.Start, End: r.End}
	}
	origins := make([]genome.ConstitutiveOrigin, len(decoded.ConstitutiveOrigins))
	for i, base := range decoded.ConstitutiveOrigins {
		origins[i] = genome.ConstitutiveOrigin{Base: base}
	}

	facts := ChromosomeFacts{
		Length:               decoded.Length,
		ProbabilityLandscape: decoded.ProbabilityLandscape,
		TranscriptionRegions: regions,
		ConstitutiveOrigins:  origins,
	}
	f.cache[code] = facts
	return facts, nil
}

// Codes returns the manifest's chromosome codes, in declaration order.
func (f *FileProvider) Codes() ([]string, error) { return f.codes, nil }

// Length returns the descriptor's declared length.
func (f *FileProvider) Length(code string) (int, error) {
	facts, err := f.load(code)
	return facts.Length, err
}

// ProbabilityLandscape returns the descriptor's landscape.
func (f *FileProvider) ProbabilityLandscape(code string) ([]float64, error) {
	facts, err := f.load(code)
	return facts.ProbabilityLandscape, err
}

// TranscriptionRegions returns the descriptor's transcription regions.
func (f *FileProvider) TranscriptionRegions(code string) ([]genome.TranscriptionRegion, error) {
	facts, err := f.load(code)
	return facts.TranscriptionRegions, err
}

// ConstitutiveOrigins returns the descriptor's constitutive origins.
func (f *FileProvider) ConstitutiveOrigins(code string) ([]genome.ConstitutiveOrigin, error) {
	facts, err := f.load(code)
	return facts.ConstitutiveOrigins, err
}
