package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the analysis database",
	Long: `Run an arbitrary SQL query against the analysis database and print results as a table.

Schema overview:
  matches(match_id, player_name, champion, role, match_date, duration, win,
    overall_score, rank_estimate, source, created_at)
  analyses(match_id, player_name, metrics_json, cs_per_min, kda, damage_per_min,
    vision_per_min, objective_participation, farm_score, combat_score,
    vision_score, objectives_score, positioning_score)
  feedback(match_id, player_name, seq, category, kind, message_key, message)
  timeline_events(match_id, player_name, seq, timestamp, event_type, pos_x, pos_y,
    description, severity)
  builds(champion, role, champ_type, keystone, primary_path, secondary_path,
    items_json, notes)

player_name is the Riot ID ("name#tag"). Quote it: WHERE player_name = 'Mid Main#EUW'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
