package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/config"
	"github.com/pable/go-lol-metrics/internal/storage"
)

var (
	dbPath  string
	cfgFile string

	// cfg is resolved from flags, env, .env and the config file before
	// any subcommand runs.
	cfg = &config.Config{}
	vpr = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "lolmetrics",
	Short: "League of Legends gameplay analyzer",
	Long: `Score League of Legends games against per-role benchmarks, track trends
across stored analyses and recommend builds.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, config.KeyConfig, "", "config file (default .lolmetrics.yaml in . or $HOME)")
	pf.String(config.KeyDB, "", "path to SQLite database (default ~/.lolmetrics/lolmetrics.db)")
	pf.String(config.KeyLogLevel, "", "log level: debug, info, warn, error (default warn)")
	pf.String(config.KeyRegion, "", "Riot platform, e.g. euw1, na1, kr (default euw1)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(benchmarksCmd)
	rootCmd.AddCommand(championsCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(runesCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(dropCmd)
}

// setup resolves configuration and logging for every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	config.Init(vpr, cfgFile)
	if err := vpr.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	c, err := config.Load(vpr)
	if err != nil {
		return err
	}
	cfg = c
	dbPath = cfg.DB

	setupLogging(cfg.LogLevel)
	log.Debug().Str("db", dbPath).Str("region", cfg.Region).Str("config", vpr.ConfigFileUsed()).Msg("config resolved")
	return nil
}

func setupLogging(level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// openDB opens the analysis store, creating its directory if needed.
func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newAnalyzer builds an analyzer over the configured benchmarks.
func newAnalyzer() (*analyzer.Analyzer, error) {
	table, err := cfg.BenchmarkTable()
	if err != nil {
		return nil, err
	}
	return analyzer.New(table), nil
}
