package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_usesFlatIdentifiers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "flat", cfg.IdentifierScheme)
	assert.Equal(t, 0, cfg.MaxErrorCount)
	assert.Nil(t, cfg.FileLoader)
}

func TestLoadTOML_decodesKnownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_error_count = 50
identifier_scheme = "hierarchical"
`), 0o644))

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxErrorCount)
	assert.Equal(t, "hierarchical", cfg.IdentifierScheme)
}

func TestLoadTOML_missingFileReturnsError(t *testing.T) {
	_, err := LoadTOML("/nonexistent/path/config.toml")
	assert.Error(t, err)
}
