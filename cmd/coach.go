package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/storage"
)

const coachSystemPrompt = `You are a League of Legends coach. You are given a structured analysis of
one game produced by a scoring tool, and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent statistics.
- Cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so.
- Be concise and actionable. Prioritise the critical issues and the weakest category.
- Avoid generic advice unless it explains a pattern in the data.

Glossary:
- Category scores are 0-100; 75+ is good, 50-74 average, below 50 poor.
- Benchmarks are per-role targets for CS/min, vision score/min, damage/min and KDA.
- Objective participation: % of the team's dragons and barons the player took part in.
- Nemesis: the enemy champion that killed the player most.
- Phase insights: early game is 0-15 min, mid 15-30 min, late 30+ min.`

var (
	coachModel  string
	coachAPIKey string
)

var coachCmd = &cobra.Command{
	Use:   "coach <match-prefix> <question>",
	Short: "Ask an AI coach about a stored analysis (requires an Anthropic API key)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCoach,
}

func init() {
	coachCmd.Flags().StringVar(&coachModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	coachCmd.Flags().StringVar(&coachAPIKey, "api-key", "", "Anthropic API key (falls back to anthropic-api-key / $ANTHROPIC_API_KEY)")
}

func runCoach(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("no stored analysis with match id prefix %q", args[0])
	}

	data, err := buildCoachJSON(db, *rec)
	if err != nil {
		return err
	}

	apiKey := coachAPIKey
	if apiKey == "" {
		apiKey = cfg.AnthropicAPIKey
	}
	return callAnthropic(cmd.Context(), apiKey, coachModel, data, args[1])
}

// coachDoc is the grounding document sent with the question.
type coachDoc struct {
	Match     model.MatchRecord     `json:"match"`
	Metrics   *model.GameMetrics    `json:"metrics"`
	Benchmark analyzer.Benchmark    `json:"role_benchmark"`
	Scores    map[string]float64    `json:"category_scores"`
	Feedback  map[string][]string   `json:"feedback"`
	Phases    []coachPhase          `json:"phase_insights,omitempty"`
	Timeline  []model.TimelineEvent `json:"timeline,omitempty"`
}

type coachPhase struct {
	Phase    string `json:"phase"`
	Deaths   int    `json:"deaths"`
	Severity string `json:"severity"`
	Issue    string `json:"issue"`
	Advice   string `json:"advice"`
}

// buildCoachJSON assembles everything stored about one analysis.
func buildCoachJSON(db *storage.DB, rec model.MatchRecord) (string, error) {
	metrics, err := db.GetMetrics(rec.MatchID, rec.PlayerName)
	if err != nil {
		return "", fmt.Errorf("get metrics: %w", err)
	}
	scores, err := db.GetCategoryScores(rec.MatchID, rec.PlayerName)
	if err != nil {
		return "", fmt.Errorf("get scores: %w", err)
	}
	fb, err := db.GetFeedback(rec.MatchID, rec.PlayerName)
	if err != nil {
		return "", fmt.Errorf("get feedback: %w", err)
	}
	events, err := db.GetTimeline(rec.MatchID, rec.PlayerName)
	if err != nil {
		return "", fmt.Errorf("get timeline: %w", err)
	}
	table, err := cfg.BenchmarkTable()
	if err != nil {
		return "", err
	}

	doc := coachDoc{
		Match:     rec,
		Metrics:   metrics,
		Benchmark: table.For(metrics.Role),
		Scores:    make(map[string]float64, len(scores)),
		Feedback:  make(map[string][]string),
		Timeline:  events,
	}
	for _, s := range scores {
		doc.Scores[s.Category.Key()] = s.Score
	}
	for _, f := range fb {
		k := f.Kind.String()
		doc.Feedback[k] = append(doc.Feedback[k], f.Message)
	}
	for _, p := range analyzer.AnalyzeTimeline(events) {
		doc.Phases = append(doc.Phases, coachPhase{
			Phase:    p.Phase.String(),
			Deaths:   p.Deaths,
			Severity: string(p.Severity),
			Issue:    p.Issue(),
			Advice:   p.Advice(),
		})
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY, anthropic-api-key in config, or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: coachSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})
	defer stream.Close()

	return writeCoachStream(os.Stdout, stream)
}

// eventStream is the part of the SDK's message stream the coach reads.
type eventStream interface {
	Next() bool
	Current() anthropic.MessageStreamEventUnion
	Err() error
}

// writeCoachStream copies the text deltas of s to w between two rules.
func writeCoachStream(w io.Writer, s eventStream) error {
	fmt.Fprintln(w, "\n─── Coach ───────────────────────────────────────────")
	for s.Next() {
		evt := s.Current()
		if evt.Type != "content_block_delta" {
			continue
		}
		delta := evt.AsContentBlockDelta()
		if delta.Delta.Type == "text_delta" {
			fmt.Fprint(w, delta.Delta.AsTextDelta().Text)
		}
	}
	fmt.Fprintln(w, "\n─────────────────────────────────────────────────────")

	if err := s.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
