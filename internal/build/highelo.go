package build

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/riot"
)

// bootIDs are excluded from core items and tallied separately.
var bootIDs = map[int]bool{1001: true, 3006: true, 3009: true, 3020: true, 3047: true, 3111: true, 3117: true, 3158: true}

const (
	matchesPerPlayer = 10
	maxPlayers       = 100
	playerPool       = 250
)

// MatchSource is the subset of the Riot client used to sample games.
type MatchSource interface {
	HighEloPlayers(ctx context.Context, limit int) ([]riot.LeagueEntry, error)
	MatchIDs(ctx context.Context, puuid string, count, queue int) ([]string, error)
	Match(ctx context.Context, matchID string) (*riot.Match, error)
}

// Tally counts the final items of sampled games on one champion.
type Tally struct {
	Games int
	Wins  int
	items map[int]int
	boots map[int]int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{items: make(map[int]int), boots: make(map[int]int)}
}

// Add records one participant's game.
func (t *Tally) Add(p *riot.Participant) {
	t.Games++
	if p.Win {
		t.Wins++
	}
	// Slot 6 is the trinket.
	for _, id := range []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5} {
		switch {
		case id == 0:
		case bootIDs[id]:
			t.boots[id]++
		default:
			t.items[id]++
		}
	}
}

// WinRate returns the percentage of games won.
func (t *Tally) WinRate() float64 {
	return model.Participation(t.Wins, t.Games)
}

// CoreItems returns up to n item ids by descending frequency, ties by id.
func (t *Tally) CoreItems(n int) []int {
	return topN(t.items, n)
}

// Boots returns the most common boots, or 0.
func (t *Tally) Boots() int {
	if top := topN(t.boots, 1); len(top) > 0 {
		return top[0]
	}
	return 0
}

func topN(counts map[int]int, n int) []int {
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// CollectHighElo scans recent ranked games of challenger and master players
// for champion (and role, when set) until want games are found. Each match
// counts once even if several sampled players were in it.
func CollectHighElo(ctx context.Context, src MatchSource, champion string, role model.Role, want int) (*Tally, error) {
	players, err := src.HighEloPlayers(ctx, playerPool)
	if err != nil {
		return nil, err
	}
	if len(players) > maxPlayers {
		players = players[:maxPlayers]
	}

	tally := NewTally()
	seen := make(map[string]bool)
	for _, pl := range players {
		if tally.Games >= want {
			break
		}
		ids, err := src.MatchIDs(ctx, pl.PUUID, matchesPerPlayer, riot.QueueRankedSolo)
		if err != nil {
			log.Warn().Err(err).Str("puuid", pl.PUUID).Msg("build: skipping player")
			continue
		}
		for _, id := range ids {
			if tally.Games >= want {
				break
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			m, err := src.Match(ctx, id)
			if err != nil {
				if ctx.Err() != nil {
					return tally, ctx.Err()
				}
				log.Warn().Err(err).Str("match", id).Msg("build: skipping match")
				continue
			}
			for i := range m.Info.Participants {
				p := &m.Info.Participants[i]
				if !strings.EqualFold(p.ChampionName, champion) {
					continue
				}
				if role != model.RoleUnknown && model.ParseRole(p.TeamPosition) != role {
					continue
				}
				tally.Add(p)
				break
			}
		}
	}
	log.Info().Int("games", tally.Games).Int("matches", len(seen)).Str("champion", champion).Msg("build: high-elo scan done")
	return tally, nil
}
