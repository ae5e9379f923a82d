package cmd

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <player>",
	Short: "Export a player's analyses as JSON",
	Long: `Writes every stored analysis of a player, oldest first, with per-category
scores and their averages. Output goes to stdout unless --out is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

type exportGame struct {
	MatchID      string             `json:"match_id"`
	MatchDate    string             `json:"match_date"`
	Champion     string             `json:"champion"`
	Role         string             `json:"role"`
	Win          bool               `json:"win"`
	OverallScore float64            `json:"overall_score"`
	Scores       map[string]float64 `json:"scores"`
	CSPerMin     float64            `json:"cs_per_min"`
	KDA          float64            `json:"kda"`
	VisionPerMin float64            `json:"vision_per_min"`
}

type exportDoc struct {
	Player      string             `json:"player"`
	GeneratedAt string             `json:"generated_at"`
	Games       []exportGame       `json:"games"`
	Averages    map[string]float64 `json:"averages"`
}

func runExport(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no analyses found for %q", args[0])
	}

	b, err := json.MarshalIndent(buildExport(args[0], points, time.Now().UTC()), "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if exportOut == "" {
		fmt.Println(string(b))
		return nil
	}
	if err := os.WriteFile(exportOut, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d games to %s\n", len(points), exportOut)
	return nil
}

func buildExport(player string, points []storage.TrendPoint, now time.Time) exportDoc {
	doc := exportDoc{
		Player:      player,
		GeneratedAt: now.Format(time.RFC3339),
		Averages:    make(map[string]float64),
	}
	n := float64(len(points))
	for _, p := range points {
		g := exportGame{
			MatchID:      p.MatchID,
			MatchDate:    p.MatchDate,
			Champion:     p.Champion,
			Role:         p.Role.String(),
			Win:          p.Win,
			OverallScore: p.OverallScore,
			Scores:       make(map[string]float64, len(analyzer.Categories)),
			CSPerMin:     p.CSPerMin,
			KDA:          p.KDA,
			VisionPerMin: p.VisionPerMin,
		}
		for i, c := range analyzer.Categories {
			g.Scores[c.Key()] = p.Scores[i]
			doc.Averages[c.Key()] += p.Scores[i] / n
		}
		doc.Averages["overall"] += p.OverallScore / n
		doc.Games = append(doc.Games, g)
	}
	return doc
}
