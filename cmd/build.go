package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/build"
	"github.com/pable/go-lol-metrics/internal/ddragon"
	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/report"
)

var (
	buildType     string
	buildRole     string
	buildEnemies  []string
	buildHighElo  int
	buildSave     bool
	buildNotes    string
	buildItemIDs  []int
	buildKeystone string
	buildPrimary  string
)

var buildCmd = &cobra.Command{
	Use:   "build <champion>",
	Short: "Recommend runes and items against an enemy composition",
	Long: `Recommends a build for a champion. A stored build for the champion (and
role, when given) wins; otherwise one is generated from the damage type and
the enemy composition.

--high-elo N additionally samples N recent challenger/master games on the
champion through the Riot API and prints the most common items.

Examples:
  lolmetrics build Ahri --type ap --enemies ad,ad,ad,assassin
  lolmetrics build Jinx --type ad --role adc --high-elo 20
  lolmetrics build add Lux --type ap --role support --items 3020,6655,3157 --notes "poke"`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

var buildAddCmd = &cobra.Command{
	Use:   "add <champion>",
	Short: "Store a pre-configured build",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuildAdd,
}

var buildListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored builds",
	Args:  cobra.NoArgs,
	RunE:  runBuildList,
}

func init() {
	for _, c := range []*cobra.Command{buildCmd, buildAddCmd} {
		c.Flags().StringVar(&buildType, "type", "", "damage type: ap or ad (required)")
		c.Flags().StringVar(&buildRole, "role", "", "role (default: any)")
		c.Flags().StringVar(&buildNotes, "notes", "", "free-form notes stored with the build")
		_ = c.MarkFlagRequired("type")
	}
	buildCmd.Flags().StringSliceVar(&buildEnemies, "enemies", nil, "enemy profiles: ap, ad, tank, assassin (comma separated)")
	buildCmd.Flags().IntVar(&buildHighElo, "high-elo", 0, "sample N high-elo games on the champion (needs a Riot API key)")
	buildCmd.Flags().BoolVar(&buildSave, "save", false, "store the recommended build as pre-configured")

	buildAddCmd.Flags().IntSliceVar(&buildItemIDs, "items", nil, "item ids in build order (default: generated)")
	buildAddCmd.Flags().StringVar(&buildKeystone, "keystone", "", "keystone rune (default: generated)")
	buildAddCmd.Flags().StringVar(&buildPrimary, "primary", "", "primary rune path (default: generated)")

	buildCmd.AddCommand(buildAddCmd)
	buildCmd.AddCommand(buildListCmd)
}

func parseBuildType() (string, error) {
	t := strings.ToUpper(strings.TrimSpace(buildType))
	if t != build.TypeAP && t != build.TypeAD {
		return "", fmt.Errorf("--type %q: expected ap or ad", buildType)
	}
	return t, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	champion := args[0]
	champType, err := parseBuildType()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	b, err := build.NewRecommender(db).Recommend(champion, champType, buildRole, buildEnemies)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	report.PrintBuild(os.Stdout, b)

	if buildSave && b.Generated {
		b.Generated = false
		b.Notes = buildNotes
		if err := db.InsertBuild(*b); err != nil {
			return fmt.Errorf("save build: %w", err)
		}
		fmt.Println("Build saved.")
	}

	if buildHighElo > 0 {
		return printHighEloBuild(cmd.Context(), champion, buildHighElo)
	}
	return nil
}

func printHighEloBuild(ctx context.Context, champion string, games int) error {
	role := model.ParseRole(buildRole)
	fmt.Printf("\nSampling high-elo games for %s (this makes many API calls)...\n", champion)
	tally, err := build.CollectHighElo(ctx, newRiotClient(), champion, role, games)
	if err != nil {
		return fmt.Errorf("high-elo scan: %w", err)
	}
	report.PrintTally(os.Stdout, champion, tally, itemNames(ctx))
	return nil
}

// itemNames maps item ids to names from Data Dragon. Lookup failures leave
// the map empty so ids print as numbers.
func itemNames(ctx context.Context) map[int]string {
	names := make(map[int]string)
	items, err := ddragon.NewClient(cfg.DataDragonDir()).Items(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("item names unavailable")
		return names
	}
	for _, it := range items {
		if id, err := strconv.Atoi(it.ID); err == nil {
			names[id] = it.Name
		}
	}
	return names
}

func runBuildAdd(cmd *cobra.Command, args []string) error {
	champType, err := parseBuildType()
	if err != nil {
		return err
	}
	role := buildRole
	if role == "" {
		role = "Flexible"
	}
	b := build.Build{
		Champion: args[0],
		Type:     champType,
		Role:     role,
		Runes:    build.RecommendRunes(champType),
		Items:    build.RecommendItems(champType, build.Threats{}),
		Notes:    buildNotes,
	}
	if buildKeystone != "" {
		b.Runes.Keystone = buildKeystone
	}
	if buildPrimary != "" {
		b.Runes.PrimaryPath = buildPrimary
		b.Runes.SecondaryPath = build.SecondaryPath(buildPrimary)
	}
	if len(buildItemIDs) > 0 {
		names := itemNames(cmd.Context())
		b.Items = b.Items[:0]
		for _, id := range buildItemIDs {
			name, ok := names[id]
			if !ok {
				name = strconv.Itoa(id)
			}
			b.Items = append(b.Items, build.Item{ID: id, Name: name})
		}
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InsertBuild(b); err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	report.PrintBuild(os.Stdout, &b)
	fmt.Println("Build saved.")
	return nil
}

func runBuildList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	builds, err := db.ListBuilds()
	if err != nil {
		return fmt.Errorf("list builds: %w", err)
	}
	if len(builds) == 0 {
		fmt.Println("No builds stored. Add one with 'lolmetrics build add'.")
		return nil
	}
	for i := range builds {
		report.PrintBuild(os.Stdout, &builds[i])
	}
	return nil
}
