package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all stored analyses: count, date range,
win rate and average score, then breakdowns by role, most played champions
and players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalAnalyses == 0 {
		fmt.Fprintln(os.Stdout, "No analyses stored yet. Run 'lolmetrics fetch <name#tag>' to add some.")
		return nil
	}
	report.PrintOverview(os.Stdout, ov)

	sections := []struct {
		title, by, header string
		limit             int
	}{
		{"Roles", "role", "ROLE", 0},
		{"Most Played Champions", "champion", "CHAMPION", 10},
		{"Players", "player", "PLAYER", 10},
	}
	for _, s := range sections {
		groups, err := db.GetGroupStats(s.by, s.limit)
		if err != nil {
			return fmt.Errorf("get %s stats: %w", s.by, err)
		}
		fmt.Fprintf(os.Stdout, "\n--- %s ---\n\n", s.title)
		report.PrintGroupStats(os.Stdout, s.header, groups)
	}
	return nil
}
