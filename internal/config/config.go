// Package config loads the flat tunables that drive one espctl run from a
// TOML file, the way crownet's config package loads SimulationParameters:
// a struct of defaults overridden by DecodeFile.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// RunParameters are the tunables for one evolution run.
type RunParameters struct {
	HiddenUnits         int     // H: number of sub-populations
	SubPopulationSize   int     // M: individuals per sub-population
	TrialsPerGeneration int     // typical: 10*M
	MutationRate        float64
	BurstThreshold      int     // generations without improvement before burst mutation
	EvaluationBudget    int64
	Minimize            bool
	Seed                int64
	NumWorkers          int
	Recurrent           bool   // selects RecurrentVariant over FeedForwardVariant
	TaskName            string // "identity", "constant", "incremental-parity"
	LogDir              string
	StorePath           string
}

// DefaultRunParameters returns the "typical" values spec.md §4.6 names:
// numTrials = 10*M, numBreed = M/4 (numBreed is derived, not stored here).
func DefaultRunParameters() RunParameters {
	const poolSize = 40
	return RunParameters{
		HiddenUnits:         3,
		SubPopulationSize:   poolSize,
		TrialsPerGeneration: 10 * poolSize,
		MutationRate:        0.4,
		BurstThreshold:      20,
		EvaluationBudget:    200_000,
		Minimize:            true,
		Seed:                1,
		NumWorkers:          4,
		Recurrent:           false,
		TaskName:            "identity",
		LogDir:              "./espgo-logs",
		StorePath:           "./espgo-run.sqlite3",
	}
}

// Load decodes a TOML file at path over the defaults, so a config file
// only needs to name the fields it overrides.
func Load(path string) (RunParameters, error) {
	cfg := DefaultRunParameters()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
