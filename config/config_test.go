package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingImplicitFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "plotly", cfg.Charts)
}

func TestLoadMissingExplicitFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lapis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":9090\"\ndataFile: epitaphs.csv\ncharts: native\nwatch: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "epitaphs.csv", cfg.DataFile)
	assert.Equal(t, "native", cfg.Charts)
	assert.True(t, cfg.Watch)

	// Unset fields keep their defaults.
	assert.Equal(t, Default().Title, cfg.Title)
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lapis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
