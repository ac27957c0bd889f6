package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "schemagen", cfg.Author)
	assert.Equal(t, "generated", cfg.Package)
	assert.Equal(t, "/api/v1", cfg.BaseURL)
	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, "migrations", cfg.MigrationDir)
	assert.Empty(t, cfg.TemplateDir)
}

func TestLoadUsesDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCHEMAGEN_AUTHOR", "backend-team")
	t.Setenv("SCHEMAGEN_BASE_URL", "/api/v2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "backend-team", cfg.Author)
	assert.Equal(t, "/api/v2", cfg.BaseURL)
	assert.Equal(t, "generated", cfg.Package, "unset keys keep their defaults")
}
