package cmd

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/report"
)

var (
	analyzeSample   bool
	analyzeTimeline string
	analyzeSave     bool
	analyzeMatchID  string
	analyzePlayer   string

	// manual entry
	analyzeRaw      model.RawGameStats
	analyzeRole     string
	analyzeDuration time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [metrics.json]",
	Short: "Score one game from a metrics file, from flags, or the built-in sample",
	Long: `Analyze a single game and print the category scores, feedback and advice.

The game comes from one of:
  - a JSON file with the game metrics (same fields 'show' stores),
  - --sample, the built-in Ahri Mid game with a short timeline,
  - flags with raw counts (--champion, --role, --duration, --kills, ...);
    per-minute values, KDA and objective participation are derived.

Examples:
  lolmetrics analyze --sample
  lolmetrics analyze game.json --timeline events.json --save
  lolmetrics analyze --champion Jinx --role adc --duration 28m30s \
    --kills 8 --deaths 3 --assists 6 --cs 210 --vision 18 --damage 21000 --gold 11800`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.BoolVar(&analyzeSample, "sample", false, "analyze the built-in sample game")
	f.StringVar(&analyzeTimeline, "timeline", "", "JSON file with timeline events")
	f.BoolVar(&analyzeSave, "save", false, "store the analysis in the database")
	f.StringVar(&analyzeMatchID, "match-id", "", "match id to store under (default: generated)")
	f.StringVar(&analyzePlayer, "player", "me", "player name to store under")

	f.StringVar(&analyzeRaw.Champion, "champion", "", "champion name (manual entry)")
	f.StringVar(&analyzeRole, "role", "", "role: top, jungle, mid, adc, support")
	f.DurationVar(&analyzeDuration, "duration", 0, "game length, e.g. 31m20s")
	f.IntVar(&analyzeRaw.Kills, "kills", 0, "kills")
	f.IntVar(&analyzeRaw.Deaths, "deaths", 0, "deaths")
	f.IntVar(&analyzeRaw.Assists, "assists", 0, "assists")
	f.IntVar(&analyzeRaw.CS, "cs", 0, "total creep score")
	f.IntVar(&analyzeRaw.JungleCS, "jungle-cs", 0, "jungle creeps")
	f.IntVar(&analyzeRaw.VisionScore, "vision", 0, "vision score")
	f.IntVar(&analyzeRaw.ControlWards, "control-wards", 0, "control wards bought")
	f.IntVar(&analyzeRaw.DamageDealt, "damage", 0, "damage dealt to champions")
	f.IntVar(&analyzeRaw.DamageTaken, "damage-taken", 0, "damage taken")
	f.IntVar(&analyzeRaw.GoldEarned, "gold", 0, "gold earned")
	f.IntVar(&analyzeRaw.DragonsParticipated, "dragons", 0, "dragons you took part in")
	f.IntVar(&analyzeRaw.TotalDragons, "total-dragons", 0, "dragons your team took")
	f.IntVar(&analyzeRaw.BaronsParticipated, "barons", 0, "barons you took part in")
	f.IntVar(&analyzeRaw.TotalBarons, "total-barons", 0, "barons your team took")
	f.IntVar(&analyzeRaw.TurretsDestroyed, "turrets", 0, "turrets destroyed")
	f.IntVar(&analyzeRaw.TurretPlates, "plates", 0, "turret plates taken")
	f.Float64Var(&analyzeRaw.TeamAverageKDA, "team-kda", 0, "average KDA of your teammates")
	f.StringVar(&analyzeRaw.Nemesis, "nemesis", "", "enemy champion that killed you most")
	f.IntVar(&analyzeRaw.TimeSpentDead, "time-dead", 0, "seconds spent dead (default: 30 per death)")
	f.Float64Var(&analyzeRaw.TimeCCOthers, "cc-time", 0, "seconds of crowd control applied")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var (
		m        model.GameMetrics
		timeline []model.TimelineEvent
		source   string
		err      error
	)
	switch {
	case analyzeSample:
		m, timeline = model.SampleGame()
		source = "sample"
	case len(args) == 1:
		if err := readJSONFile(args[0], &m); err != nil {
			return err
		}
		source = "file"
	case analyzeRaw.Champion != "":
		m, err = manualMetrics()
		if err != nil {
			return err
		}
		source = "manual"
	default:
		return fmt.Errorf("nothing to analyze: pass a metrics file, --sample, or --champion with stats")
	}

	if analyzeTimeline != "" {
		if err := readJSONFile(analyzeTimeline, &timeline); err != nil {
			return err
		}
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	res := a.AnalyzeGame(m, timeline)

	report.PrintGameHeader(os.Stdout, m)
	report.PrintSummary(os.Stdout, report.FromResult(res))
	report.PrintAdvice(os.Stdout, analyzer.AdvicePriority(res))

	if !analyzeSave {
		return nil
	}
	return saveAnalysis(m, timeline, res, source)
}

// manualMetrics validates the manual-entry flags and derives the metrics.
func manualMetrics() (model.GameMetrics, error) {
	role := model.ParseRole(analyzeRole)
	if role == model.RoleUnknown {
		return model.GameMetrics{}, fmt.Errorf("--role %q: expected top, jungle, mid, adc or support", analyzeRole)
	}
	if analyzeDuration < time.Minute {
		return model.GameMetrics{}, fmt.Errorf("--duration must be at least 1m")
	}
	raw := analyzeRaw
	raw.Role = role
	raw.DurationSec = int(analyzeDuration.Seconds())
	return model.NewGameMetrics(raw), nil
}

func saveAnalysis(m model.GameMetrics, timeline []model.TimelineEvent, res analyzer.Result, source string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now().UTC()
	id := analyzeMatchID
	if id == "" {
		id = fmt.Sprintf("%s-%d", source, now.Unix())
	}
	rec := model.MatchRecord{
		MatchID:    id,
		PlayerName: analyzePlayer,
		Champion:   m.Champion,
		Role:       m.Role,
		MatchDate:  now.Format("2006-01-02"),
		Duration:   m.GameDuration,
		Source:     source,
	}
	if err := db.InsertAnalysis(rec, m, res, timeline); err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}
	fmt.Printf("Saved as %s\n", id)
	return nil
}

func readJSONFile(path string, out interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
