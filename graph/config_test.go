package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEO4J_URI", "")
	t.Setenv("NEO4J_USER", "")
	t.Setenv("NEO4J_PASSWORD", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.User)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEO4J_URI", "bolt://db.internal:7687")
	t.Setenv("NEO4J_PASSWORD", "sekrit")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "bolt://db.internal:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.User)
	assert.Equal(t, "sekrit", cfg.Password)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uri: bolt://filehost:7687\npassword: frompw\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt://filehost:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.User) // default survives a partial file
	assert.Equal(t, "frompw", cfg.Password)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uri: bolt://filehost:7687\n"), 0o600))
	t.Setenv("NEO4J_URI", "bolt://envhost:7687")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt://envhost:7687", cfg.URI)
}

func TestLoadConfigBadFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml {{{"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{URI: "bolt://x"}.Validate())
	assert.Error(t, Config{URI: "bolt://x", User: "u"}.Validate())
	assert.NoError(t, Config{URI: "bolt://x", User: "u", Password: "p"}.Validate())
}
