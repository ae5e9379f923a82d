package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/aggregator"
	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/riot"
	"github.com/pable/go-lol-metrics/internal/storage"
)

// fetch command flags.
var (
	// fetchCount is the number of recent matches to analyze.
	fetchCount int
	// fetchQueue restricts the match list to one queue id; 0 means any.
	fetchQueue int
	// fetchNoTimeline skips the timeline request per match.
	fetchNoTimeline bool
)

// fetchCmd downloads a player's recent games from the Riot API, analyzes
// and stores each one.
var fetchCmd = &cobra.Command{
	Use:   "fetch <name#tag>",
	Short: "Fetch, analyze and store a player's recent matches",
	Long: `Resolves a Riot ID, downloads the player's most recent matches and their
timelines, scores each game and stores the analysis. Matches already stored
for the player are skipped.

Requires a Riot API key (riot-api-key in config, LOLMETRICS_RIOT_API_KEY or
RIOT_API_KEY).

Examples:
  lolmetrics fetch "Faker#KR1" --region kr --count 5
  lolmetrics fetch "Mid Main#EUW" --queue 0`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchCount, "count", 10, "number of recent matches to analyze")
	fetchCmd.Flags().IntVar(&fetchQueue, "queue", riot.QueueRankedSolo, "queue id filter (420 ranked solo, 440 flex, 0 any)")
	fetchCmd.Flags().BoolVar(&fetchNoTimeline, "no-timeline", false, "skip timeline download (no phase insights)")
}

// newRiotClient builds a Riot client from the resolved config.
func newRiotClient() *riot.Client {
	return riot.NewClient(cfg.RiotAPIKey, cfg.Region, riot.WithCacheDir(cfg.RiotCacheDir()))
}

// splitRiotID splits "name#tag" into its two parts.
func splitRiotID(id string) (string, string, error) {
	name, tag, ok := strings.Cut(strings.TrimSpace(id), "#")
	if !ok || name == "" || tag == "" {
		return "", "", fmt.Errorf("invalid Riot ID %q: expected name#tag", id)
	}
	return name, tag, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	name, tag, err := splitRiotID(args[0])
	if err != nil {
		return err
	}
	if fetchCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	return doFetch(cmd.Context(), newRiotClient(), db, a, name, tag)
}

// doFetch is the shared implementation for the fetch command and the shell.
func doFetch(ctx context.Context, client *riot.Client, db *storage.DB, a *analyzer.Analyzer, name, tag string) error {
	account, err := client.AccountByRiotID(ctx, name, tag)
	if err != nil {
		if riot.IsNotFound(err) {
			return fmt.Errorf("riot ID %s#%s not found on %s", name, tag, client.Platform())
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	player := account.RiotID()
	fmt.Printf("Player: %s  platform=%s\n", player, client.Platform())

	ids, err := client.MatchIDs(ctx, account.PUUID, fetchCount, fetchQueue)
	if err != nil {
		return fmt.Errorf("match list: %w", err)
	}
	if len(ids) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	stored := 0
	for i, id := range ids {
		prefix := fmt.Sprintf("[%d/%d] %s", i+1, len(ids), id)

		exists, err := db.MatchExists(id, player)
		if err != nil {
			return err
		}
		if exists {
			fmt.Printf("%s  already stored\n", prefix)
			continue
		}

		match, err := client.Match(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "%s  [skip] %v\n", prefix, err)
			continue
		}

		var timeline *riot.Timeline
		if !fetchNoTimeline {
			timeline, err = client.Timeline(ctx, id)
			if err != nil {
				log.Warn().Err(err).Str("match", id).Msg("timeline unavailable, analyzing without it")
				timeline = nil
			}
		}

		metrics, events, err := aggregator.Aggregate(match, timeline, account.PUUID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s  [error] aggregate: %v\n", prefix, err)
			continue
		}
		rec, err := aggregator.Record(match, account.PUUID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s  [error] record: %v\n", prefix, err)
			continue
		}
		rec.PlayerName = player

		res := a.AnalyzeGame(metrics, events)
		if err := db.InsertAnalysis(rec, metrics, res, events); err != nil {
			return fmt.Errorf("store %s: %w", id, err)
		}
		stored++
		fmt.Printf("%s  %-12s %-7s %s  score=%.1f (%s)\n",
			prefix, rec.Champion, rec.Role, winLoss(rec.Win), res.OverallScore, res.Rank())
	}

	fmt.Printf("\nDone: %d new analyses stored for %s\n", stored, player)
	return nil
}

func winLoss(win bool) string {
	if win {
		return "W"
	}
	return "L"
}
