package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/riot"
)

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestAnalyzeEnemyComposition(t *testing.T) {
	th := AnalyzeEnemyComposition([]string{"AP", "ap", "AP", "Tank", "AD"})
	assert.Equal(t, Threats{HighAP: true, Tank: true}, th)

	th = AnalyzeEnemyComposition([]string{"AD", "AD", "Assassin", "AD"})
	assert.True(t, th.HighAD)
	assert.True(t, th.Assassin)
	assert.False(t, th.HighAP)

	assert.Equal(t, Threats{}, AnalyzeEnemyComposition(nil))
}

func TestRecommendItems(t *testing.T) {
	tests := []struct {
		name     string
		champ    string
		threats  Threats
		expected []Item
	}{
		{"ap default", TypeAP, Threats{}, []Item{SorcerersShoes, LudensCompanion, RabadonsDeathcap}},
		{"ap vs tanks", TypeAP, Threats{Tank: true}, []Item{SorcerersShoes, LiandrysTorment, VoidStaff, RabadonsDeathcap}},
		{"ap vs everything", TypeAP, Threats{HighAP: true, HighAD: true, Tank: true, Assassin: true},
			[]Item{SorcerersShoes, LiandrysTorment, ZhonyasHourglass, BansheesVeil, VoidStaff, RabadonsDeathcap}},
		{"ad default", TypeAD, Threats{}, []Item{BerserkersGreaves, Galeforce, InfinityEdge}},
		{"ad vs assassins", TypeAD, Threats{Assassin: true}, []Item{BerserkersGreaves, ImmortalShieldbow, InfinityEdge}},
		{"ad vs ad and ap", TypeAD, Threats{HighAD: true, HighAP: true, Tank: true},
			[]Item{BerserkersGreaves, KrakenSlayer, MawOfMalmortius, InfinityEdge, LordDominiksRegard}},
		{"unknown type", "Tank", Threats{Tank: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendItems(tt.champ, tt.threats)
			assert.Equal(t, names(tt.expected), names(got))
			assert.LessOrEqual(t, len(got), maxItems)
		})
	}
}

func TestRecommendRunes(t *testing.T) {
	assert.Equal(t, Runes{"Electrocute", "Domination", "Precision"}, RecommendRunes(TypeAP))
	assert.Equal(t, Runes{"Conqueror", "Precision", "Domination"}, RecommendRunes(TypeAD))
	assert.Equal(t, "Inspiration", SecondaryPath("Sorcery"))
	assert.Equal(t, "Precision", SecondaryPath("Resolve"))
	assert.Equal(t, "Precision", SecondaryPath("Unknown"))
}

type fakeStore struct {
	builds map[string]*Build
	err    error
}

func (f fakeStore) FindBuild(champion, role string) (*Build, error) {
	return f.builds[champion+"/"+role], f.err
}

func TestRecommend_PrefersStoredBuild(t *testing.T) {
	stored := &Build{Champion: "Ahri", Role: "Mid", Items: []Item{LudensCompanion}}
	r := NewRecommender(fakeStore{builds: map[string]*Build{"Ahri/Mid": stored}})

	b, err := r.Recommend("Ahri", "ap", "Mid", nil)
	require.NoError(t, err)
	assert.Same(t, stored, b)

	b, err = r.Recommend("Ahri", "ap", "", []string{"Tank"})
	require.NoError(t, err)
	assert.True(t, b.Generated)
	assert.Equal(t, "Flexible", b.Role)
	assert.Equal(t, TypeAP, b.Type)
	assert.Contains(t, names(b.Items), VoidStaff.Name)

	_, err = NewRecommender(fakeStore{err: errors.New("boom")}).Recommend("Ahri", "AP", "", nil)
	assert.Error(t, err)

	b, err = NewRecommender(nil).Recommend("Jinx", "AD", "ADC", nil)
	require.NoError(t, err)
	assert.Equal(t, "Conqueror", b.Runes.Keystone)
}

// ---- High-elo sampling ----

type fakeSource struct {
	players []riot.LeagueEntry
	ids     map[string][]string
	matches map[string]*riot.Match
}

func (f *fakeSource) HighEloPlayers(ctx context.Context, limit int) ([]riot.LeagueEntry, error) {
	return f.players, nil
}

func (f *fakeSource) MatchIDs(ctx context.Context, puuid string, count, queue int) ([]string, error) {
	return f.ids[puuid], nil
}

func (f *fakeSource) Match(ctx context.Context, id string) (*riot.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, &riot.APIError{Status: 404, Path: id}
	}
	return m, nil
}

func matchWith(parts ...riot.Participant) *riot.Match {
	m := &riot.Match{}
	m.Info.Participants = parts
	return m
}

func TestCollectHighElo(t *testing.T) {
	ahriMid := func(win bool, items ...int) riot.Participant {
		p := riot.Participant{ChampionName: "Ahri", TeamPosition: "MIDDLE", Win: win}
		slots := []*int{&p.Item0, &p.Item1, &p.Item2, &p.Item3, &p.Item4, &p.Item5}
		for i, id := range items {
			*slots[i] = id
		}
		return p
	}
	src := &fakeSource{
		players: []riot.LeagueEntry{{PUUID: "a"}, {PUUID: "b"}},
		ids: map[string][]string{
			"a": {"M1", "M2", "M404"},
			"b": {"M2", "M3", "M4"},
		},
		matches: map[string]*riot.Match{
			"M1": matchWith(riot.Participant{ChampionName: "Zed"}, ahriMid(true, 3020, 6655, 3089)),
			"M2": matchWith(ahriMid(false, 3020, 6655, 3157)),
			"M3": matchWith(riot.Participant{ChampionName: "Ahri", TeamPosition: "UTILITY"}),
			"M4": matchWith(ahriMid(true, 3158, 6655, 3089)),
		},
	}

	tally, err := CollectHighElo(context.Background(), src, "ahri", model.RoleMid, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, tally.Games)
	assert.Equal(t, 2, tally.Wins)
	assert.InDelta(t, 66.67, tally.WinRate(), 0.01)
	assert.Equal(t, []int{6655, 3089, 3157}, tally.CoreItems(6))
	assert.Equal(t, 3020, tally.Boots())

	tally, err = CollectHighElo(context.Background(), src, "Ahri", model.RoleMid, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Games)
}
