package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/build"
	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/report"
	"github.com/pable/go-lol-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession holds what the REPL commands share.
type shellSession struct {
	cmd *cobra.Command
	db  *storage.DB
	a   *analyzer.Analyzer
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	s := &shellSession{cmd: cmd, db: db, a: a}

	cGreeting.Println("lolmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("lolmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		args := strings.Fields(rest)

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "sample":
			s.sample()
		case "list":
			s.list()
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <match-prefix>")
				continue
			}
			s.show(args[0])
		case "trend":
			if rest == "" {
				cError.Fprintln(os.Stderr, "usage: trend <player>")
				continue
			}
			s.trend(rest)
		case "fetch":
			s.fetch(rest)
		case "build":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: build <champion> <ap|ad> [enemy profiles...]")
				continue
			}
			s.build(args[0], args[1], args[2:])
		case "benchmarks":
			if table, err := cfg.BenchmarkTable(); err != nil {
				s.fail(err)
			} else {
				report.PrintBenchmarks(os.Stdout, table)
			}
		case "sql":
			s.sql(rest)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"sample", "analyze the built-in sample game"},
		{"list", "list stored analyses"},
		{"show <match-prefix>", "show a stored analysis"},
		{"trend <player>", "score trend for a player"},
		{"fetch <name#tag> [count]", "fetch and analyze recent matches"},
		{"build <champion> <ap|ad> [enemies...]", "recommend a build"},
		{"benchmarks", "per-role benchmarks"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-40s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *shellSession) fail(err error) {
	cError.Fprintf(os.Stderr, "error: %v\n", err)
}

func (s *shellSession) sample() {
	m, timeline := model.SampleGame()
	res := s.a.AnalyzeGame(m, timeline)
	report.PrintGameHeader(os.Stdout, m)
	report.PrintSummary(os.Stdout, report.FromResult(res))
	report.PrintAdvice(os.Stdout, analyzer.AdvicePriority(res))
}

func (s *shellSession) list() {
	matches, err := s.db.ListMatches(20)
	if err != nil {
		s.fail(err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No analyses stored yet.")
		return
	}
	report.PrintMatchList(os.Stdout, matches)
}

func (s *shellSession) show(prefix string) {
	if err := runShow(s.cmd, []string{prefix}); err != nil {
		s.fail(err)
	}
}

func (s *shellSession) trend(player string) {
	points, err := s.db.GetPlayerTrend(player)
	if err != nil {
		s.fail(err)
		return
	}
	if len(points) == 0 {
		cMuted.Println("no analyses found")
		return
	}
	report.PrintTrend(os.Stdout, points)
}

// fetch accepts "name#tag" with spaces in the name and an optional
// trailing count.
func (s *shellSession) fetch(rest string) {
	id := rest
	count := 5
	if i := strings.LastIndex(rest, " "); i > 0 {
		if n, err := strconv.Atoi(rest[i+1:]); err == nil {
			id, count = strings.TrimSpace(rest[:i]), n
		}
	}
	name, tag, err := splitRiotID(id)
	if err != nil {
		s.fail(err)
		return
	}
	prev := fetchCount
	fetchCount = count
	defer func() { fetchCount = prev }()

	if err := doFetch(s.cmd.Context(), newRiotClient(), s.db, s.a, name, tag); err != nil {
		s.fail(err)
	}
}

func (s *shellSession) build(champion, champType string, enemies []string) {
	b, err := build.NewRecommender(s.db).Recommend(champion, champType, "", enemies)
	if err != nil {
		s.fail(err)
		return
	}
	report.PrintBuild(os.Stdout, b)
}

func (s *shellSession) sql(query string) {
	if query == "" {
		cError.Fprintln(os.Stderr, "usage: sql <query>")
		return
	}
	cols, rows, err := s.db.QueryRaw(query)
	if err != nil {
		s.fail(err)
		return
	}
	report.PrintRows(os.Stdout, cols, rows)
}
