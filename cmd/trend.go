package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <player>",
	Short: "Chronological per-game score trend for a player",
	Long:  "Player names match case-insensitively, with or without the #tag.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	points, err := db.GetPlayerTrend(args[0])
	if err != nil {
		return fmt.Errorf("query trend: %w", err)
	}
	if len(points) == 0 {
		fmt.Println("no analyses found")
		return nil
	}
	report.PrintTrend(os.Stdout, points)
	return nil
}
