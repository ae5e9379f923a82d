// Package report renders analyses and reference data to the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/storage"
)

// Display limits per feedback list.
const (
	maxListed          = 5
	maxRecommendations = 7
	barCells           = 20
)

var (
	good    = color.New(color.FgGreen)
	average = color.New(color.FgYellow)
	bad     = color.New(color.FgRed)
	heading = color.New(color.FgCyan, color.Bold)
	dim     = color.New(color.Faint)
)

// ScoreColor returns green for >= 75, yellow for >= 50, red otherwise.
func ScoreColor(score float64) *color.Color {
	switch {
	case score >= 75:
		return good
	case score >= 50:
		return average
	default:
		return bad
	}
}

// ScoreBar draws a 20-cell bar with one filled cell per 5 points.
func ScoreBar(score float64) string {
	filled := int(score / 5)
	if filled < 0 {
		filled = 0
	}
	if filled > barCells {
		filled = barCells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// Summary is the printable form of an analysis, built either from a fresh
// analyzer.Result or from stored rows.
type Summary struct {
	OverallScore    float64
	Rank            string
	Categories      []analyzer.CategoryScore
	Critical        []string
	Weaknesses      []string
	Strengths       []string
	Recommendations []string
	Phases          []analyzer.PhaseInsight
}

// FromResult converts an analyzer result.
func FromResult(res analyzer.Result) Summary {
	return Summary{
		OverallScore:    res.OverallScore,
		Rank:            res.Rank(),
		Categories:      res.Categories,
		Critical:        analyzer.Messages(res.Critical),
		Weaknesses:      analyzer.Messages(res.Weaknesses),
		Strengths:       analyzer.Messages(res.Strengths),
		Recommendations: analyzer.Messages(res.Recommendations),
		Phases:          res.Timeline,
	}
}

// FromStored rebuilds a summary from persisted rows. Phase insights are
// recomputed from the stored timeline.
func FromStored(rec model.MatchRecord, scores []analyzer.CategoryScore, fb []storage.StoredFeedback, timeline []model.TimelineEvent) Summary {
	s := Summary{
		OverallScore: rec.OverallScore,
		Rank:         rec.RankEstimate,
		Categories:   scores,
		Phases:       analyzer.AnalyzeTimeline(timeline),
	}
	for _, f := range fb {
		switch f.Kind {
		case analyzer.KindCritical:
			s.Critical = append(s.Critical, f.Message)
		case analyzer.KindWeakness:
			s.Weaknesses = append(s.Weaknesses, f.Message)
		case analyzer.KindStrength:
			s.Strengths = append(s.Strengths, f.Message)
		case analyzer.KindRecommendation:
			s.Recommendations = append(s.Recommendations, f.Message)
		}
	}
	return s
}

// PrintGameHeader prints the champion line and the key stats table.
func PrintGameHeader(w io.Writer, m model.GameMetrics) {
	heading.Fprintf(w, "\n%s (%s)  |  %d:%02d\n\n", m.Champion, m.Role, m.GameDuration/60, m.GameDuration%60)

	table := newTable(w)
	table.Header("K/D/A", "KDA", "TEAM_KDA", "CS", "CS/MIN", "DMG/MIN", "VISION", "CTRL_WARDS", "OBJ%", "GOLD/MIN", "DEAD")
	table.Append(
		fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists),
		fmt.Sprintf("%.2f", m.KDA),
		fmt.Sprintf("%.2f", m.TeamAverageKDA),
		strconv.Itoa(m.TotalCS),
		fmt.Sprintf("%.1f", m.CSPerMin),
		fmt.Sprintf("%.0f", m.DamagePerMin),
		strconv.Itoa(m.VisionScore),
		strconv.Itoa(m.ControlWardsBought),
		fmt.Sprintf("%.0f%%", m.ObjectiveParticipation),
		fmt.Sprintf("%.0f", m.GoldPerMin),
		fmt.Sprintf("%ds", m.TimeSpentDead),
	)
	table.Render()

	fmt.Fprintf(w, "KDA vs team: %s\n", model.KDAComparison(m))
	if m.HasNemesis() {
		bad.Fprintf(w, "Problem champion: %s\n", m.NemesisChampion)
	}
}

// PrintSummary prints the overall score, category bars, feedback lists and
// phase insights.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprint(w, "\nOverall score: ")
	ScoreColor(s.OverallScore).Fprintf(w, "%.1f/100", s.OverallScore)
	fmt.Fprintf(w, "  |  Estimated rank: %s\n\n", s.Rank)

	for _, cs := range s.Categories {
		c := ScoreColor(cs.Score)
		fmt.Fprintf(w, "  %-26s ", cs.Category)
		c.Fprint(w, ScoreBar(cs.Score))
		c.Fprintf(w, " %5.1f\n", cs.Score)
	}

	printList(w, "Critical issues", bad, s.Critical, maxListed, false)
	printList(w, "Weaknesses", average, s.Weaknesses, maxListed, false)
	printList(w, "Strengths", good, s.Strengths, maxListed, false)
	printList(w, "Recommendations", heading, s.Recommendations, maxRecommendations, true)

	if len(s.Phases) > 0 {
		heading.Fprintln(w, "\nTimeline")
		for _, p := range s.Phases {
			c := average
			if p.Severity == model.SeverityCritical {
				c = bad
			}
			c.Fprintf(w, "  [%s] %s: %s\n", strings.ToUpper(string(p.Severity)), p.Phase, p.Issue())
			fmt.Fprintf(w, "      %s\n", p.Advice())
		}
	}
	fmt.Fprintln(w)
}

func printList(w io.Writer, title string, c *color.Color, items []string, limit int, numbered bool) {
	if len(items) == 0 {
		return
	}
	heading.Fprintf(w, "\n%s\n", title)
	for i, it := range items {
		if i >= limit {
			dim.Fprintf(w, "  ... %d more\n", len(items)-limit)
			break
		}
		if numbered {
			fmt.Fprintf(w, "  %d. %s\n", i+1, it)
		} else {
			c.Fprintf(w, "  • %s\n", it)
		}
	}
}

// PrintAdvice prints the prioritized advice sections.
func PrintAdvice(w io.Writer, sections []analyzer.AdviceSection) {
	for _, s := range sections {
		heading.Fprintf(w, "\n%s\n", s.Title)
		for _, it := range s.Items {
			fmt.Fprintf(w, "  • %s\n", it)
		}
	}
	fmt.Fprintln(w)
}

// PrintBenchmarks prints the per-role targets.
func PrintBenchmarks(w io.Writer, b analyzer.Benchmarks) {
	table := newTable(w)
	table.Header("ROLE", "CS/MIN", "VISION/MIN", "DMG/MIN", "KDA_TARGET")
	for _, role := range model.Roles {
		bm := b.For(role)
		table.Append(
			role.String(),
			fmt.Sprintf("%.1f", bm.CSPerMin),
			fmt.Sprintf("%.1f", bm.VisionPerMin),
			fmt.Sprintf("%.0f", bm.DamagePerMin),
			fmt.Sprintf("%.1f", bm.KDATarget),
		)
	}
	table.Render()
}

// PrintMatchList prints stored analyses.
func PrintMatchList(w io.Writer, matches []model.MatchRecord) {
	table := newTable(w)
	table.Header("MATCH", "DATE", "PLAYER", "CHAMPION", "ROLE", "RESULT", "SCORE", "RANK", "SOURCE")
	for _, m := range matches {
		table.Append(
			m.MatchID,
			m.MatchDate,
			m.PlayerName,
			m.Champion,
			m.Role.String(),
			winLoss(m.Win),
			fmt.Sprintf("%.1f", m.OverallScore),
			m.RankEstimate,
			m.Source,
		)
	}
	table.Render()
}

// PrintTrend prints one row per game with category scores, then the
// average of each column.
func PrintTrend(w io.Writer, points []storage.TrendPoint) {
	table := newTable(w)
	header := []any{"DATE", "MATCH", "CHAMPION", "RESULT", "OVERALL"}
	for _, c := range analyzer.Categories {
		header = append(header, strings.ToUpper(c.Key()))
	}
	header = append(header, "CS/MIN", "KDA")
	table.Header(header...)

	var avg [8]float64
	for _, p := range points {
		row := []any{p.MatchDate, p.MatchID, p.Champion, winLoss(p.Win), fmt.Sprintf("%.1f", p.OverallScore)}
		avg[0] += p.OverallScore
		for i, s := range p.Scores {
			row = append(row, fmt.Sprintf("%.0f", s))
			avg[i+1] += s
		}
		avg[6] += p.CSPerMin
		avg[7] += p.KDA
		row = append(row, fmt.Sprintf("%.1f", p.CSPerMin), fmt.Sprintf("%.2f", p.KDA))
		table.Append(row...)
	}
	if n := float64(len(points)); n > 0 {
		row := []any{"", "", "AVERAGE", "", fmt.Sprintf("%.1f", avg[0]/n)}
		for i := 1; i <= 5; i++ {
			row = append(row, fmt.Sprintf("%.0f", avg[i]/n))
		}
		row = append(row, fmt.Sprintf("%.1f", avg[6]/n), fmt.Sprintf("%.2f", avg[7]/n))
		table.Append(row...)
	}
	table.Render()
}

func winLoss(win bool) string {
	if win {
		return "W"
	}
	return "L"
}

// PrintOverview prints the database-wide summary lines.
func PrintOverview(w io.Writer, ov storage.Overview) {
	fmt.Fprintf(w, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(w, "  Analyses stored : %d\n", ov.TotalAnalyses)
	fmt.Fprintf(w, "  Date range      : %s → %s\n", ov.EarliestMatch, ov.LatestMatch)
	fmt.Fprintf(w, "  Players         : %d\n", ov.UniquePlayers)
	fmt.Fprintf(w, "  Champions       : %d\n", ov.UniqueChampions)
	fmt.Fprintf(w, "  Win rate        : %.0f%%\n", model.Participation(ov.Wins, ov.TotalAnalyses))
	fmt.Fprint(w, "  Average score   : ")
	ScoreColor(ov.AvgScore).Fprintf(w, "%.1f", ov.AvgScore)
	fmt.Fprintf(w, " (%s)\n", analyzer.RankEstimate(ov.AvgScore))
}

// PrintGroupStats prints one row per group under the given key header.
func PrintGroupStats(w io.Writer, keyHeader string, groups []storage.GroupStats) {
	table := newTable(w)
	table.Header(keyHeader, "GAMES", "WIN%", "AVG_SCORE", "AVG_KDA", "AVG_CS/MIN")
	for _, g := range groups {
		table.Append(
			g.Key,
			strconv.Itoa(g.Games),
			fmt.Sprintf("%.0f%%", model.Participation(g.Wins, g.Games)),
			fmt.Sprintf("%.1f", g.AvgScore),
			fmt.Sprintf("%.2f", g.AvgKDA),
			fmt.Sprintf("%.1f", g.AvgCS),
		)
	}
	table.Render()
}
