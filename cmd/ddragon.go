package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-metrics/internal/ddragon"
	"github.com/pable/go-lol-metrics/internal/report"
)

// Data Dragon command flags, shared by champions, items and runes.
var (
	ddRefresh    bool
	ddClearCache bool
)

var championsCmd = &cobra.Command{
	Use:   "champions [query]",
	Short: "List champions from Data Dragon, optionally filtered by name or tag",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChampions,
}

var itemsCmd = &cobra.Command{
	Use:   "items [query]",
	Short: "List purchasable items from Data Dragon, optionally filtered by name or tag",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runItems,
}

var runesCmd = &cobra.Command{
	Use:   "runes",
	Short: "List rune paths and their keystones",
	Args:  cobra.NoArgs,
	RunE:  runRunes,
}

func init() {
	for _, c := range []*cobra.Command{championsCmd, itemsCmd, runesCmd} {
		c.Flags().BoolVar(&ddRefresh, "refresh", false, "re-download the latest patch data")
		c.Flags().BoolVar(&ddClearCache, "clear-cache", false, "delete cached Data Dragon files and exit")
	}
}

// prepareDataDragon builds the client and applies --clear-cache/--refresh.
// done is true when the command has nothing left to do.
func prepareDataDragon(cmd *cobra.Command) (client *ddragon.Client, done bool, err error) {
	client = ddragon.NewClient(cfg.DataDragonDir())
	if ddClearCache {
		if err := client.ClearCache(); err != nil {
			return nil, true, fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Data Dragon cache cleared.")
		return client, true, nil
	}
	if ddRefresh {
		if err := client.Refresh(cmd.Context()); err != nil {
			return nil, true, fmt.Errorf("refresh: %w", err)
		}
	}
	v, err := client.LatestVersion(cmd.Context())
	if err != nil {
		return nil, true, fmt.Errorf("data dragon version: %w", err)
	}
	fmt.Printf("Patch %s\n", v)
	return client, false, nil
}

func queryArg(args []string) string {
	return strings.Join(args, " ")
}

func runChampions(cmd *cobra.Command, args []string) error {
	client, done, err := prepareDataDragon(cmd)
	if err != nil || done {
		return err
	}
	champs, err := client.Champions(cmd.Context())
	if err != nil {
		return fmt.Errorf("champions: %w", err)
	}
	report.PrintChampions(os.Stdout, ddragon.FilterChampions(champs, queryArg(args)))
	return nil
}

func runItems(cmd *cobra.Command, args []string) error {
	client, done, err := prepareDataDragon(cmd)
	if err != nil || done {
		return err
	}
	items, err := client.Items(cmd.Context())
	if err != nil {
		return fmt.Errorf("items: %w", err)
	}
	report.PrintItems(os.Stdout, ddragon.FilterItems(items, queryArg(args)))
	return nil
}

func runRunes(cmd *cobra.Command, args []string) error {
	client, done, err := prepareDataDragon(cmd)
	if err != nil || done {
		return err
	}
	paths, err := client.Runes(cmd.Context())
	if err != nil {
		return fmt.Errorf("runes: %w", err)
	}
	report.PrintRunes(os.Stdout, paths)
	return nil
}
