// Package config defines the parameter record the CLI builds and the
// engine consumes, and the YAML-file/CLI merge rule the original tool
// used: CLI flags establish the defaults, and a --config file -- applied
// after flag parsing -- overwrites whichever fields it sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parameter record shared by the CLI, the YAML loader, and
// the simulation engine.
type Config struct {
	Cells        int     `yaml:"cells"`
	Organism     string  `yaml:"organism"`
	Resources    int     `yaml:"resources"`
	Timeout      int     `yaml:"timeout"`
	Speed        int     `yaml:"speed"`
	Dormant      bool    `yaml:"dormant"`
	Name         string  `yaml:"name"`
	Seed         uint64  `yaml:"seed"`
	Period       int     `yaml:"period"`
	Constitutive int     `yaml:"constitutive"`
	DataDir      string  `yaml:"data_dir"`
	Probability  float64 `yaml:"probability"`
	Output       string  `yaml:"output"`
	Threads      int     `yaml:"threads"`
	Mode         string  `yaml:"mode"`

	// Evolution carries the fields the original CLI's out-of-scope
	// evolutionary wrapper reads. Nothing in this module acts on them;
	// they are kept only so pre-existing config files parse without
	// complaint.
	Evolution Evolution `yaml:"evolution"`
}

// Evolution mirrors the out-of-scope evolutionary search wrapper's
// parameter sub-record. Not consumed by anything in this module.
type Evolution struct {
	Population  uint64             `yaml:"population"`
	Generations uint64             `yaml:"generations"`
	Survivors   uint64             `yaml:"survivors"`
	Mutations   EvolutionMutations `yaml:"mutations"`
	Fitness     EvolutionFitness   `yaml:"fitness"`
}

// EvolutionMutations is the evolutionary wrapper's mutation-rate
// sub-record.
type EvolutionMutations struct {
	ProbabilityLandscape struct {
		Add          float64 `yaml:"add"`
		Del          float64 `yaml:"del"`
		ChangeMean   struct {
			Prob float64 `yaml:"prob"`
			Std  float64 `yaml:"std"`
		} `yaml:"change_mean"`
		ChangeStd struct {
			Prob float64 `yaml:"prob"`
			Std  float64 `yaml:"std"`
			Max  float64 `yaml:"max"`
		} `yaml:"change_std"`
	} `yaml:"probability_landscape"`
	Genes struct {
		Move struct {
			Prob float64 `yaml:"prob"`
			Std  float64 `yaml:"std"`
		} `yaml:"move"`
		Swap struct {
			Prob float64 `yaml:"prob"`
		} `yaml:"swap"`
	} `yaml:"genes"`
}

// EvolutionFitness is the evolutionary wrapper's fitness-weighting
// sub-record.
type EvolutionFitness struct {
	MinSPhase    float64 `yaml:"min_sphase"`
	MatchMFASeq  float64 `yaml:"match_mfaseq"`
	MaxCollAll   float64 `yaml:"max_coll_all"`
	MinCollAll   float64 `yaml:"min_coll_all"`
	MaxColl      struct {
		Weight float64 `yaml:"weight"`
		Gene   string  `yaml:"gene"`
	} `yaml:"max_coll"`
	MinColl struct {
		Weight float64 `yaml:"weight"`
		Gene   string  `yaml:"gene"`
	} `yaml:"min_coll"`
}

// yamlDocument is the top-level shape of a --config file: a simulation
// mode tag plus the nested parameter map, exactly as
// original_source/src/configuration.cpp's read_configuration_file expects.
type yamlDocument struct {
	Simulation string `yaml:"simulation"`
	Parameters Config `yaml:"parameters"`
}

// MergeFile loads path and overwrites whichever fields the file sets on
// cfg, in place. Fields the file omits are left untouched -- this
// reproduces the original's "file applied after CLI" precedence.
func MergeFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	doc := yamlDocument{Parameters: *cfg}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if doc.Simulation != "" {
		doc.Parameters.Mode = doc.Simulation
	}
	*cfg = doc.Parameters
	return nil
}
