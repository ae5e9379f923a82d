package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <match-prefix>",
	Short: "Show a stored analysis by match id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "No analysis found with match id prefix %q\n", prefix)
		return nil
	}

	m, err := db.GetMetrics(rec.MatchID, rec.PlayerName)
	if err != nil {
		return fmt.Errorf("get metrics: %w", err)
	}
	scores, err := db.GetCategoryScores(rec.MatchID, rec.PlayerName)
	if err != nil {
		return fmt.Errorf("get scores: %w", err)
	}
	fb, err := db.GetFeedback(rec.MatchID, rec.PlayerName)
	if err != nil {
		return fmt.Errorf("get feedback: %w", err)
	}
	events, err := db.GetTimeline(rec.MatchID, rec.PlayerName)
	if err != nil {
		return fmt.Errorf("get timeline: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%s  %s  %s  %s\n", rec.MatchID, rec.MatchDate, rec.PlayerName, winLoss(rec.Win))
	report.PrintGameHeader(os.Stdout, *m)
	report.PrintSummary(os.Stdout, report.FromStored(*rec, scores, fb, events))
	return nil
}
