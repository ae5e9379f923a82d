package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pable/go-lol-metrics/internal/build"
	"github.com/pable/go-lol-metrics/internal/ddragon"
)

// PrintChampions prints champion summaries from Data Dragon.
func PrintChampions(w io.Writer, champs []ddragon.Champion) {
	table := newTable(w)
	table.Header("NAME", "TITLE", "TAGS")
	for _, c := range champs {
		table.Append(c.Name, c.Title, strings.Join(c.Tags, ", "))
	}
	table.Render()
	fmt.Fprintf(w, "(%d champions)\n", len(champs))
}

// PrintItems prints purchasable items with their total cost.
func PrintItems(w io.Writer, items []ddragon.Item) {
	table := newTable(w)
	table.Header("ID", "NAME", "GOLD", "TAGS")
	for _, it := range items {
		table.Append(it.ID, it.Name, strconv.Itoa(it.Gold.Total), strings.Join(it.Tags, ", "))
	}
	table.Render()
	fmt.Fprintf(w, "(%d items)\n", len(items))
}

// PrintRunes prints each rune path with its keystones.
func PrintRunes(w io.Writer, paths []ddragon.RunePath) {
	table := newTable(w)
	table.Header("PATH", "KEYSTONES")
	for _, p := range paths {
		var names []string
		for _, r := range p.Keystones() {
			names = append(names, r.Name)
		}
		table.Append(p.Name, strings.Join(names, ", "))
	}
	table.Render()
}

// PrintBuild prints a recommended or stored build.
func PrintBuild(w io.Writer, b *build.Build) {
	origin := "stored"
	if b.Generated {
		origin = "generated"
	}
	heading.Fprintf(w, "\n%s (%s, %s) - %s build\n", b.Champion, b.Type, b.Role, origin)
	fmt.Fprintf(w, "Runes: %s (%s) + %s\n\n", b.Runes.Keystone, b.Runes.PrimaryPath, b.Runes.SecondaryPath)

	table := newTable(w)
	table.Header("#", "ITEM", "ID")
	for i, it := range b.Items {
		table.Append(strconv.Itoa(i+1), it.Name, strconv.Itoa(it.ID))
	}
	table.Render()
	if b.Notes != "" {
		dim.Fprintf(w, "%s\n", b.Notes)
	}
}

// PrintTally prints what high-elo players built on a champion. names maps
// item ids to display names; unknown ids print as numbers.
func PrintTally(w io.Writer, champion string, t *build.Tally, names map[int]string) {
	if t.Games == 0 {
		fmt.Fprintf(w, "No high-elo games found for %s.\n", champion)
		return
	}
	heading.Fprintf(w, "\nHigh-elo %s: %d games, %.0f%% win rate\n\n", champion, t.Games, t.WinRate())

	itemName := func(id int) string {
		if n, ok := names[id]; ok {
			return n
		}
		return strconv.Itoa(id)
	}

	table := newTable(w)
	table.Header("#", "CORE ITEM")
	for i, id := range t.CoreItems(6) {
		table.Append(strconv.Itoa(i+1), itemName(id))
	}
	table.Render()
	if boots := t.Boots(); boots != 0 {
		fmt.Fprintf(w, "Boots: %s\n", itemName(boots))
	}
}

// PrintRows prints a raw query result followed by the row count.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
