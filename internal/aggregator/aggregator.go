// Package aggregator turns Riot match-v5 payloads into the per-player
// GameMetrics and timeline events the analyzer scores.
package aggregator

import (
	"fmt"
	"time"

	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/riot"
)

// Matches from before patch 11.20 report gameDuration in milliseconds.
const msDurationThreshold = 100000

// objectiveTakedowns returns the dragons and barons the participant took part
// in, falling back to last hits when the challenges block lacks takedowns.
func objectiveTakedowns(p *riot.Participant) (dragons, barons int) {
	dragons, barons = p.DragonKills, p.BaronKills
	if d := p.Challenges.DragonTakedowns; d != nil {
		dragons = *d
	}
	if b := p.Challenges.BaronTakedowns; b != nil {
		barons = *b
	}
	return dragons, barons
}

// Aggregate computes the GameMetrics and timeline events of the participant
// identified by puuid. timeline may be nil, in which case the nemesis is
// NemesisNone and no events are returned.
func Aggregate(match *riot.Match, timeline *riot.Timeline, puuid string) (model.GameMetrics, []model.TimelineEvent, error) {
	if match == nil {
		return model.GameMetrics{}, nil, fmt.Errorf("nil match")
	}
	p := match.Participant(puuid)
	if p == nil {
		return model.GameMetrics{}, nil, fmt.Errorf("puuid %s not in match %s", puuid, match.Metadata.MatchID)
	}

	duration := gameDuration(match)

	// ---- Team context: allies' KDA and team objective totals. ----

	var allyKDA float64
	var allies int
	for i := range match.Info.Participants {
		o := &match.Info.Participants[i]
		if o.TeamID != p.TeamID || o.PUUID == p.PUUID {
			continue
		}
		allyKDA += model.KDA(o.Kills, o.Deaths, o.Assists)
		allies++
	}
	teamKDA := 0.0
	if allies > 0 {
		teamKDA = allyKDA / float64(allies)
	}

	teamObjectives := 0
	if t := match.Team(p.TeamID); t != nil {
		teamObjectives = t.Objectives.Dragon.Kills + t.Objectives.Baron.Kills
	}
	dragons, barons := objectiveTakedowns(p)
	participation := model.Participation(dragons+barons, teamObjectives)
	if participation > 100 {
		participation = 100
	}

	m := model.GameMetrics{
		Champion:               p.ChampionName,
		Role:                   model.ParseRole(p.TeamPosition),
		GameDuration:           duration,
		TotalCS:                p.TotalMinionsKilled + p.NeutralMinionsKilled,
		JungleCS:               p.NeutralMinionsKilled,
		Kills:                  p.Kills,
		Deaths:                 p.Deaths,
		Assists:                p.Assists,
		KDA:                    model.KDA(p.Kills, p.Deaths, p.Assists),
		DamageDealt:            p.TotalDamageDealtToChampions,
		DamageTaken:            p.TotalDamageTaken,
		VisionScore:            p.VisionScore,
		WardsPlaced:            p.WardsPlaced,
		WardsDestroyed:         p.WardsKilled,
		ControlWardsBought:     p.VisionWardsBoughtInGame,
		TurretPlates:           p.Challenges.TurretPlatesTaken,
		TurretsDestroyed:       p.TurretTakedowns,
		DragonsSecured:         dragons,
		BaronsSecured:          barons,
		ObjectiveParticipation: participation,
		GoldEarned:             p.GoldEarned,
		TimeCCOthers:           float64(p.TimeCCingOthers),
		TimeSpentDead:          p.TotalTimeSpentDead,
		TeamAverageKDA:         teamKDA,
		NemesisChampion:        model.NemesisNone,
	}
	m.CSPerMin = model.PerMinute(float64(m.TotalCS), duration)
	m.DamagePerMin = model.PerMinute(float64(m.DamageDealt), duration)
	m.GoldPerMin = model.PerMinute(float64(m.GoldEarned), duration)

	if timeline == nil {
		return m, nil, nil
	}

	// ---- Timeline pass: events and nemesis. ----

	pid := timeline.ParticipantID(puuid)
	if pid == 0 {
		pid = p.ParticipantID
	}
	champByID := make(map[int]string, len(match.Info.Participants))
	for _, o := range match.Info.Participants {
		champByID[o.ParticipantID] = o.ChampionName
	}

	var events []model.TimelineEvent
	killsBy := make(map[int]int)
	var killerOrder []int

	for _, frame := range timeline.Info.Frames {
		for _, ev := range frame.Events {
			ts := int(ev.Timestamp / 1000)
			switch ev.Type {
			case riot.EventChampionKill:
				switch {
				case ev.VictimID == pid:
					desc := "Executed"
					if killer, ok := champByID[ev.KillerID]; ok {
						desc = "Killed by " + killer
						if killsBy[ev.KillerID] == 0 {
							killerOrder = append(killerOrder, ev.KillerID)
						}
						killsBy[ev.KillerID]++
					}
					sev := model.SeverityWarning
					if ts < 15*60 {
						sev = model.SeverityCritical
					}
					events = append(events, newEvent(ts, model.EventDeath, ev.Position, desc, sev))
				case ev.KillerID == pid:
					desc := "Killed " + champByID[ev.VictimID]
					events = append(events, newEvent(ts, model.EventKill, ev.Position, desc, model.SeverityInfo))
				}
			case riot.EventEliteMonsterKill:
				if ev.KillerTeamID != p.TeamID {
					continue
				}
				desc := monsterName(ev.MonsterType, ev.MonsterSubType) + " secured"
				events = append(events, newEvent(ts, model.EventObjective, ev.Position, desc, model.SeverityInfo))
			}
		}
	}

	// Most kills wins; killerOrder breaks ties by earliest first kill.
	best := 0
	for _, id := range killerOrder {
		if killsBy[id] > best {
			best = killsBy[id]
			m.NemesisChampion = champByID[id]
		}
	}

	return m, events, nil
}

// Record builds the storage row for puuid's game. Scores are filled in by
// the caller after analysis.
func Record(match *riot.Match, puuid string) (model.MatchRecord, error) {
	p := match.Participant(puuid)
	if p == nil {
		return model.MatchRecord{}, fmt.Errorf("puuid %s not in match %s", puuid, match.Metadata.MatchID)
	}
	name := p.RiotIDName
	if p.RiotIDTagline != "" {
		name += "#" + p.RiotIDTagline
	}
	return model.MatchRecord{
		MatchID:    match.Metadata.MatchID,
		PlayerName: name,
		Champion:   p.ChampionName,
		Role:       model.ParseRole(p.TeamPosition),
		MatchDate:  time.UnixMilli(match.Info.GameCreation).UTC().Format("2006-01-02"),
		Duration:   gameDuration(match),
		Win:        p.Win,
		Source:     "riot",
	}, nil
}

func gameDuration(match *riot.Match) int {
	d := match.Info.GameDuration
	if d > msDurationThreshold {
		d /= 1000
	}
	return d
}

func newEvent(ts int, kind model.EventKind, pos *riot.Position, desc string, sev model.Severity) model.TimelineEvent {
	ev := model.TimelineEvent{Timestamp: ts, Kind: kind, Description: desc, Severity: sev}
	if pos != nil {
		ev.Position = &model.Position{X: pos.X, Y: pos.Y}
	}
	return ev
}

func monsterName(monster, sub string) string {
	switch monster {
	case "DRAGON":
		if sub == "ELDER_DRAGON" {
			return "Elder Dragon"
		}
		return "Dragon"
	case "BARON_NASHOR":
		return "Baron"
	case "RIFTHERALD":
		return "Rift Herald"
	case "HORDE":
		return "Voidgrubs"
	default:
		return monster
	}
}
