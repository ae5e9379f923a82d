// Package config resolves settings from flags, environment, .env files and
// an optional .lolmetrics.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/model"
)

// Keys shared with the command flags.
const (
	KeyDB              = "db"
	KeyLogLevel        = "log-level"
	KeyRegion          = "region"
	KeyCacheDir        = "cache-dir"
	KeyRiotAPIKey      = "riot-api-key"
	KeyAnthropicAPIKey = "anthropic-api-key"
	KeyConfig          = "config"
)

const (
	envPrefix       = "LOLMETRICS"
	configName      = ".lolmetrics"
	appDir          = ".lolmetrics"
	defaultRegion   = "euw1"
	defaultLogLevel = "warn"
)

// Config is the resolved configuration.
type Config struct {
	DB              string `mapstructure:"db"`
	LogLevel        string `mapstructure:"log-level"`
	Region          string `mapstructure:"region"`
	CacheDir        string `mapstructure:"cache-dir"`
	RiotAPIKey      string `mapstructure:"riot-api-key"`
	AnthropicAPIKey string `mapstructure:"anthropic-api-key"`

	// Benchmarks holds per-role overrides keyed by role name ("mid", "adc", ...).
	Benchmarks map[string]analyzer.Benchmark `mapstructure:"benchmarks"`
}

// DefaultDir returns ~/.lolmetrics, or ./.lolmetrics when the home
// directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, appDir)
}

// Init registers defaults, config file locations and environment bindings
// on v. An empty configFile searches "." and $HOME for .lolmetrics.yaml.
func Init(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The bare names are what the Riot and Anthropic tooling document.
	_ = v.BindEnv(KeyRiotAPIKey, envPrefix+"_RIOT_API_KEY", "RIOT_API_KEY")
	_ = v.BindEnv(KeyAnthropicAPIKey, envPrefix+"_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	dir := DefaultDir()
	v.SetDefault(KeyDB, filepath.Join(dir, "lolmetrics.db"))
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyRegion, defaultRegion)
	v.SetDefault(KeyCacheDir, filepath.Join(dir, "cache"))
}

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file if one exists and unmarshals every resolved
// value. A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Region = strings.ToLower(strings.TrimSpace(cfg.Region))
	return &cfg, nil
}

// BenchmarkTable merges the configured overrides over the built-in
// benchmarks. Unknown role names are rejected.
func (c *Config) BenchmarkTable() (analyzer.Benchmarks, error) {
	overrides := make(analyzer.Benchmarks, len(c.Benchmarks))
	for name, bm := range c.Benchmarks {
		role := model.ParseRole(name)
		if role == model.RoleUnknown {
			return nil, fmt.Errorf("benchmarks: unknown role %q", name)
		}
		overrides[role] = bm
	}
	return analyzer.DefaultBenchmarks().Merge(overrides), nil
}

// DataDragonDir is the Data Dragon cache directory inside CacheDir.
func (c *Config) DataDragonDir() string {
	return filepath.Join(c.CacheDir, "ddragon")
}

// RiotCacheDir is the Riot API cache directory inside CacheDir.
func (c *Config) RiotCacheDir() string {
	return filepath.Join(c.CacheDir, "riot")
}
