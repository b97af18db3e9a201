package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRunParameters(t *testing.T) {
	cfg := DefaultRunParameters()
	assert.Equal(t, 10*cfg.SubPopulationSize, cfg.TrialsPerGeneration)
	assert.Greater(t, cfg.HiddenUnits, 0)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	content := `
HiddenUnits = 5
SubPopulationSize = 20
MutationRate = 0.5
TaskName = "constant"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.HiddenUnits)
	assert.Equal(t, 20, cfg.SubPopulationSize)
	assert.Equal(t, 0.5, cfg.MutationRate)
	assert.Equal(t, "constant", cfg.TaskName)
	// unspecified fields keep their default
	assert.Equal(t, DefaultRunParameters().Seed, cfg.Seed)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRunParameters(), cfg)
}
