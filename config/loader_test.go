package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-route-server/routing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsMatchRoutingDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, routing.DefaultOptions(), cfg.RoutingOptions())
	assert.Equal(t, 2*time.Second, cfg.SearchTimeout())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  allowOrigins: ["https://example.org"]
dataset:
  path: data/erzurum.gob
  format: gob
  splitLoops: true
routing:
  transferPenalty: 300
  stateKeyedSearch: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "gob", cfg.Dataset.Format)
	assert.True(t, cfg.Dataset.SplitLoops)

	opts := cfg.RoutingOptions()
	assert.Equal(t, 300.0, opts.Weights.TransferPenalty)
	assert.True(t, opts.StateKeyedSearch)
	// untouched keys keep their defaults
	assert.Equal(t, 600.0, opts.PortalRadiusM)
	assert.Equal(t, 1.15, opts.Weights.WalkFactor)
	assert.Equal(t, 1024, cfg.Cache.Size)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("ROUTE_SERVER_PORT", "7070")
	t.Setenv("ROUTE_DATASET_PATH", "/srv/lines")
	t.Setenv("ROUTE_DATASET_FORMAT", "gtfs")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/srv/lines", cfg.Dataset.Path)
	assert.Equal(t, "gtfs", cfg.Dataset.Format)

	t.Setenv("ROUTE_SERVER_PORT", "eighty")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"port":         "server:\n  port: 70000\n",
		"format":       "dataset:\n  format: csv\n",
		"empty path":   "dataset:\n  path: \"\"\n",
		"curve base":   "routing:\n  curveBase: 0.5\n",
		"radius":       "routing:\n  portalRadiusM: -1\n",
		"budget":       "routing:\n  maxExplored: 0\n",
		"timeout":      "routing:\n  searchTimeoutMS: 0\n",
		"cache size":   "cache:\n  size: -1\n",
		"empty origin": "server:\n  allowOrigins: [\"\"]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}
