package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RIOT_API_KEY", "")

	v := viper.New()
	Init(v, "")
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "euw1", cfg.Region)
	assert.Equal(t, "lolmetrics.db", filepath.Base(cfg.DB))
	assert.Equal(t, filepath.Join(cfg.CacheDir, "ddragon"), cfg.DataDragonDir())
	assert.Empty(t, cfg.RiotAPIKey)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.yaml", `
region: NA1
log-level: debug
benchmarks:
  mid:
    cs_per_min: 8.5
  support:
    kda_target: 4
`)
	t.Setenv("RIOT_API_KEY", "RGAPI-bare")
	t.Setenv("LOLMETRICS_ANTHROPIC_API_KEY", "sk-prefixed")
	t.Setenv("LOLMETRICS_DB", "/tmp/x.db")

	v := viper.New()
	Init(v, path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "na1", cfg.Region)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "RGAPI-bare", cfg.RiotAPIKey)
	assert.Equal(t, "sk-prefixed", cfg.AnthropicAPIKey)
	assert.Equal(t, "/tmp/x.db", cfg.DB)

	table, err := cfg.BenchmarkTable()
	require.NoError(t, err)
	mid := table.For(model.RoleMid)
	assert.Equal(t, 8.5, mid.CSPerMin)
	// Unset fields keep the built-in value.
	assert.Equal(t, analyzer.DefaultBenchmarks()[model.RoleMid].DamagePerMin, mid.DamagePerMin)
	assert.Equal(t, 4.0, table.For(model.RoleSupport).KDATarget)
}

func TestBenchmarkTableUnknownRole(t *testing.T) {
	cfg := &Config{Benchmarks: map[string]analyzer.Benchmark{"feeder": {CSPerMin: 1}}}
	_, err := cfg.BenchmarkTable()
	assert.ErrorContains(t, err, "feeder")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	v := viper.New()
	Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "LOLMETRICS_TEST_KEY=from-file\n")
	t.Setenv("LOLMETRICS_TEST_KEY", "")
	os.Unsetenv("LOLMETRICS_TEST_KEY")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("LOLMETRICS_TEST_KEY"))
}
