package aggregator

import (
	"fmt"
	"testing"

	"github.com/goccy/go-json"

	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/riot"
)

// Participant ids: 1-5 blue (100), 6-10 red (200). The player is id 3.
const (
	playerPUUID = "puuid-3"
	playerID    = 3
)

// makeMatch builds a 30 minute match where every participant has KDA 2.0
// except the player, who goes 5/7/8.
func makeMatch() *riot.Match {
	champs := []string{"Garen", "LeeSin", "Ahri", "Jinx", "Thresh", "Darius", "Vi", "Zed", "Caitlyn", "Lux"}
	positions := []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}
	m := &riot.Match{}
	m.Metadata.MatchID = "EUW1_100"
	m.Info.GameDuration = 1800
	m.Info.GameCreation = 1700000000000
	for i := 0; i < 10; i++ {
		team := 100
		if i >= 5 {
			team = 200
		}
		p := riot.Participant{
			PUUID:         fmt.Sprintf("puuid-%d", i+1),
			ParticipantID: i + 1,
			TeamID:        team,
			ChampionName:  champs[i],
			TeamPosition:  positions[i%5],
			Kills:         2,
			Deaths:        2,
			Assists:       2,
		}
		m.Info.Participants = append(m.Info.Participants, p)
	}

	p := &m.Info.Participants[playerID-1]
	p.PUUID = playerPUUID
	p.RiotIDName = "Mid Main"
	p.RiotIDTagline = "EUW"
	p.Win = true
	p.Kills, p.Deaths, p.Assists = 5, 7, 8
	p.TotalMinionsKilled = 160
	p.NeutralMinionsKilled = 20
	p.TotalDamageDealtToChampions = 24000
	p.GoldEarned = 12000
	p.VisionScore = 25
	p.WardsPlaced = 12
	p.WardsKilled = 3
	p.VisionWardsBoughtInGame = 3
	p.Challenges.TurretPlatesTaken = 2
	p.TurretTakedowns = 1
	p.DragonKills = 1
	p.BaronKills = 0
	p.TotalTimeSpentDead = 180

	blue := riot.Team{TeamID: 100, Win: true}
	blue.Objectives.Dragon.Kills = 2
	m.Info.Teams = []riot.Team{blue, {TeamID: 200}}
	return m
}

func kill(tsSec int, killer, victim int, pos *riot.Position) riot.Event {
	return riot.Event{Type: riot.EventChampionKill, Timestamp: int64(tsSec) * 1000, KillerID: killer, VictimID: victim, Position: pos}
}

func makeTimeline(events ...riot.Event) *riot.Timeline {
	tl := &riot.Timeline{}
	tl.Info.Participants = []riot.TimelineParticipant{{ParticipantID: playerID, PUUID: playerPUUID}}
	tl.Info.Frames = []riot.Frame{{Timestamp: 0, Events: events}}
	return tl
}

func TestAggregate_Metrics(t *testing.T) {
	m, events, err := Aggregate(makeMatch(), nil, playerPUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events != nil {
		t.Errorf("expected no events without a timeline, got %d", len(events))
	}

	if m.Champion != "Ahri" || m.Role != model.RoleMid {
		t.Errorf("identity = %s/%s, want Ahri/Mid", m.Champion, m.Role)
	}
	if m.TotalCS != 180 || m.JungleCS != 20 {
		t.Errorf("cs = %d (jungle %d), want 180 (20)", m.TotalCS, m.JungleCS)
	}
	if m.CSPerMin != 6.0 {
		t.Errorf("cs/min = %v, want 6.0", m.CSPerMin)
	}
	if m.DamagePerMin != 800 {
		t.Errorf("dpm = %v, want 800", m.DamagePerMin)
	}
	if want := 13.0 / 7.0; m.KDA != want {
		t.Errorf("kda = %v, want %v", m.KDA, want)
	}
	if m.TeamAverageKDA != 2.0 {
		t.Errorf("team kda = %v, want 2.0 (four allies)", m.TeamAverageKDA)
	}
	if m.ObjectiveParticipation != 50 {
		t.Errorf("participation = %v, want 50", m.ObjectiveParticipation)
	}
	if m.TurretPlates != 2 || m.ControlWardsBought != 3 || m.TimeSpentDead != 180 {
		t.Errorf("plates/cw/dead = %d/%d/%d", m.TurretPlates, m.ControlWardsBought, m.TimeSpentDead)
	}
	if m.NemesisChampion != model.NemesisNone {
		t.Errorf("nemesis = %q, want None", m.NemesisChampion)
	}
}

func TestAggregate_UnknownPlayer(t *testing.T) {
	if _, _, err := Aggregate(makeMatch(), nil, "nobody"); err == nil {
		t.Error("expected error for puuid not in match")
	}
	if _, _, err := Aggregate(nil, nil, playerPUUID); err == nil {
		t.Error("expected error for nil match")
	}
}

func TestAggregate_ZeroTeamObjectives(t *testing.T) {
	match := makeMatch()
	match.Info.Teams = nil
	m, _, err := Aggregate(match, nil, playerPUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ObjectiveParticipation != 0 {
		t.Errorf("participation = %v, want 0 with no team totals", m.ObjectiveParticipation)
	}
}

func TestAggregate_ObjectiveTakedowns(t *testing.T) {
	const payload = `{
		"metadata": {"matchId": "EUW1_200"},
		"info": {
			"gameDuration": 1800,
			"participants": [{
				"puuid": "mid", "participantId": 1, "teamId": 100,
				"championName": "Ahri", "teamPosition": "MIDDLE",
				"dragonKills": 0, "baronKills": 0,
				"challenges": {"dragonTakedowns": 3, "baronTakedowns": 1}
			}],
			"teams": [{"teamId": 100, "objectives": {"dragon": {"kills": 3}, "baron": {"kills": 1}}}]
		}
	}`
	var match riot.Match
	if err := json.Unmarshal([]byte(payload), &match); err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, _, err := Aggregate(&match, nil, "mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ObjectiveParticipation != 100 {
		t.Errorf("participation = %v, want 100 (present for 4/4 objectives)", m.ObjectiveParticipation)
	}
	if m.DragonsSecured != 3 || m.BaronsSecured != 1 {
		t.Errorf("dragons/barons = %d/%d, want 3/1", m.DragonsSecured, m.BaronsSecured)
	}
}

func TestAggregate_LegacyMillisecondDuration(t *testing.T) {
	match := makeMatch()
	match.Info.GameDuration = 1800 * 1000
	m, _, err := Aggregate(match, nil, playerPUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.GameDuration != 1800 {
		t.Errorf("duration = %d, want 1800", m.GameDuration)
	}
}

// ---- Timeline ----

func TestAggregate_TimelineEvents(t *testing.T) {
	pos := &riot.Position{X: 5000, Y: 7000}
	tl := makeTimeline(
		kill(300, 8, playerID, pos),  // Zed kills player, early
		kill(500, playerID, 9, nil),  // player kills Caitlyn
		kill(1000, 0, playerID, nil), // executed by tower
		riot.Event{Type: riot.EventEliteMonsterKill, Timestamp: 1200000, KillerTeamID: 100, MonsterType: "DRAGON"},
		riot.Event{Type: riot.EventEliteMonsterKill, Timestamp: 1300000, KillerTeamID: 200, MonsterType: "BARON_NASHOR"},
		kill(1400, 1, 6, nil), // unrelated
	)

	_, events, err := Aggregate(makeMatch(), tl, playerPUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}

	want := []struct {
		ts   int
		kind model.EventKind
		sev  model.Severity
		desc string
	}{
		{300, model.EventDeath, model.SeverityCritical, "Killed by Zed"},
		{500, model.EventKill, model.SeverityInfo, "Killed Caitlyn"},
		{1000, model.EventDeath, model.SeverityWarning, "Executed"},
		{1200, model.EventObjective, model.SeverityInfo, "Dragon secured"},
	}
	for i, w := range want {
		e := events[i]
		if e.Timestamp != w.ts || e.Kind != w.kind || e.Severity != w.sev || e.Description != w.desc {
			t.Errorf("event %d = %+v, want %+v", i, e, w)
		}
	}
	if events[0].Position == nil || *events[0].Position != (model.Position{X: 5000, Y: 7000}) {
		t.Errorf("death position = %v, want (5000, 7000)", events[0].Position)
	}
	if events[1].Position != nil {
		t.Error("expected nil position when the event has none")
	}
}

func TestAggregate_Nemesis(t *testing.T) {
	tl := makeTimeline(
		kill(100, 7, playerID, nil), // Vi
		kill(200, 8, playerID, nil), // Zed
		kill(300, 8, playerID, nil),
		kill(400, 7, playerID, nil),
		kill(500, 9, playerID, nil),
	)
	m, _, err := Aggregate(makeMatch(), tl, playerPUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Vi and Zed tie on two kills; Vi killed first.
	if m.NemesisChampion != "Vi" {
		t.Errorf("nemesis = %q, want Vi", m.NemesisChampion)
	}

	tl = makeTimeline(kill(100, 7, playerID, nil), kill(200, 8, playerID, nil), kill(300, 8, playerID, nil))
	m, _, _ = Aggregate(makeMatch(), tl, playerPUUID)
	if m.NemesisChampion != "Zed" {
		t.Errorf("nemesis = %q, want Zed", m.NemesisChampion)
	}
}

func TestRecord(t *testing.T) {
	rec, err := Record(makeMatch(), playerPUUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PlayerName != "Mid Main#EUW" || rec.MatchID != "EUW1_100" || !rec.Win {
		t.Errorf("record = %+v", rec)
	}
	if rec.MatchDate != "2023-11-14" {
		t.Errorf("date = %s, want 2023-11-14", rec.MatchDate)
	}
}
