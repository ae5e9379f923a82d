package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/report"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Print the per-role benchmarks games are scored against",
	Long:  "Built-in targets with any benchmarks.<role> overrides from the config file applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.BenchmarkTable()
		if err != nil {
			return err
		}
		report.PrintBenchmarks(os.Stdout, table)
		return nil
	},
}
