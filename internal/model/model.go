package model

import (
	"fmt"
	"strings"
)

// Role is the lane/position a player filled in a game.
type Role int

const (
	RoleUnknown Role = iota
	RoleTop
	RoleJungle
	RoleMid
	RoleADC
	RoleSupport
)

// Roles lists the five playable roles in lane order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

func (r Role) String() string {
	switch r {
	case RoleTop:
		return "Top"
	case RoleJungle:
		return "Jungle"
	case RoleMid:
		return "Mid"
	case RoleADC:
		return "ADC"
	case RoleSupport:
		return "Support"
	default:
		return "Unknown"
	}
}

// ParseRole maps display names, Riot teamPosition values and common aliases
// to a Role. Unrecognised input yields RoleUnknown.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return RoleTop
	case "jungle", "jg", "jungler":
		return RoleJungle
	case "mid", "middle":
		return RoleMid
	case "adc", "bot", "bottom", "carry":
		return RoleADC
	case "support", "sup", "supp", "utility":
		return RoleSupport
	default:
		return RoleUnknown
	}
}

// MarshalText encodes the role as its display name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts anything ParseRole does; unknown names are kept as RoleUnknown.
func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}

// NemesisNone is the sentinel for "no enemy champion killed this player most".
const NemesisNone = "None"

// GameMetrics is a snapshot of one completed game for one player.
// Per-minute fields, KDA and objective participation are computed by the
// producer of the record; consumers never recompute them.
type GameMetrics struct {
	Champion     string `json:"champion"`
	Role         Role   `json:"role"`
	GameDuration int    `json:"game_duration"` // seconds

	TotalCS  int     `json:"total_cs"`
	CSPerMin float64 `json:"cs_per_min"`
	JungleCS int     `json:"jungle_cs"`

	Kills        int     `json:"kills"`
	Deaths       int     `json:"deaths"`
	Assists      int     `json:"assists"`
	KDA          float64 `json:"kda"`
	DamageDealt  int     `json:"damage_dealt"`
	DamageTaken  int     `json:"damage_taken"`
	DamagePerMin float64 `json:"damage_per_min"`

	VisionScore        int `json:"vision_score"`
	WardsPlaced        int `json:"wards_placed"`
	WardsDestroyed     int `json:"wards_destroyed"`
	ControlWardsBought int `json:"control_wards_bought"`

	TurretPlates           int     `json:"turret_plates"`
	TurretsDestroyed       int     `json:"turrets_destroyed"`
	DragonsSecured         int     `json:"dragons_secured"`
	BaronsSecured          int     `json:"barons_secured"`
	ObjectiveParticipation float64 `json:"objective_participation"` // percent, 0-100

	GoldEarned int     `json:"gold_earned"`
	GoldPerMin float64 `json:"gold_per_min"`

	TimeCCOthers  float64 `json:"time_cc_others"`  // seconds of CC applied to enemies
	TimeSpentDead int     `json:"time_spent_dead"` // seconds

	TeamAverageKDA  float64 `json:"team_average_kda"`
	NemesisChampion string  `json:"nemesis_champion"`
}

// DurationMinutes returns the game length in minutes.
func (m GameMetrics) DurationMinutes() float64 {
	return float64(m.GameDuration) / 60
}

// HasNemesis reports whether a real nemesis champion is recorded.
func (m GameMetrics) HasNemesis() bool {
	n := strings.TrimSpace(m.NemesisChampion)
	return n != "" && !strings.EqualFold(n, NemesisNone)
}

// KDA returns (kills+assists)/deaths, or kills+assists when deaths is zero.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

// PerMinute scales a game total to a per-minute rate. Zero duration yields 0.
func PerMinute(total float64, durationSec int) float64 {
	if durationSec <= 0 {
		return 0
	}
	return total / (float64(durationSec) / 60)
}

// Participation returns participated/total as a percentage, or 0 when total is 0.
func Participation(participated, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(participated) / float64(total) * 100
}

// RawGameStats is the hand-entered form of a game: raw counts only.
type RawGameStats struct {
	Champion    string
	Role        Role
	DurationSec int

	Kills, Deaths, Assists int
	CS, JungleCS           int
	VisionScore            int
	ControlWards           int
	DamageDealt            int
	DamageTaken            int
	GoldEarned             int

	DragonsParticipated int
	TotalDragons        int
	BaronsParticipated  int
	TotalBarons         int
	TurretsDestroyed    int
	TurretPlates        int

	TeamAverageKDA float64
	Nemesis        string

	// Optional; estimated from deaths when zero.
	TimeSpentDead int
	TimeCCOthers  float64
}

// respawnEstimateSec is the flat per-death downtime used when the real
// time spent dead is not known.
const respawnEstimateSec = 30

// NewGameMetrics derives the per-minute and ratio fields of a GameMetrics
// from raw counts. Ward counts and time dead are estimated when absent.
func NewGameMetrics(raw RawGameStats) GameMetrics {
	totalBarons := raw.TotalBarons
	if totalBarons < raw.BaronsParticipated {
		totalBarons = raw.BaronsParticipated
	}
	dead := raw.TimeSpentDead
	if dead == 0 {
		dead = raw.Deaths * respawnEstimateSec
	}
	nemesis := strings.TrimSpace(raw.Nemesis)
	if nemesis == "" {
		nemesis = NemesisNone
	}

	return GameMetrics{
		Champion:               raw.Champion,
		Role:                   raw.Role,
		GameDuration:           raw.DurationSec,
		TotalCS:                raw.CS,
		CSPerMin:               PerMinute(float64(raw.CS), raw.DurationSec),
		JungleCS:               raw.JungleCS,
		Kills:                  raw.Kills,
		Deaths:                 raw.Deaths,
		Assists:                raw.Assists,
		KDA:                    KDA(raw.Kills, raw.Deaths, raw.Assists),
		DamageDealt:            raw.DamageDealt,
		DamageTaken:            raw.DamageTaken,
		DamagePerMin:           PerMinute(float64(raw.DamageDealt), raw.DurationSec),
		VisionScore:            raw.VisionScore,
		WardsPlaced:            raw.VisionScore / 2,
		WardsDestroyed:         raw.VisionScore / 4,
		ControlWardsBought:     raw.ControlWards,
		TurretPlates:           raw.TurretPlates,
		TurretsDestroyed:       raw.TurretsDestroyed,
		DragonsSecured:         raw.DragonsParticipated,
		BaronsSecured:          raw.BaronsParticipated,
		ObjectiveParticipation: Participation(raw.DragonsParticipated+raw.BaronsParticipated, raw.TotalDragons+totalBarons),
		GoldEarned:             raw.GoldEarned,
		GoldPerMin:             PerMinute(float64(raw.GoldEarned), raw.DurationSec),
		TimeCCOthers:           raw.TimeCCOthers,
		TimeSpentDead:          dead,
		TeamAverageKDA:         raw.TeamAverageKDA,
		NemesisChampion:        nemesis,
	}
}

// ---- Timeline ----

// EventKind classifies a timeline event. Only deaths affect scoring.
type EventKind string

const (
	EventDeath     EventKind = "death"
	EventKill      EventKind = "kill"
	EventObjective EventKind = "objective"
	EventRecall    EventKind = "recall"
)

// Severity tags a timeline event or insight.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Position is a map coordinate in game units.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// TimelineEvent is one dated occurrence in a match. Sequences are expected
// in chronological order.
type TimelineEvent struct {
	Timestamp   int       `json:"timestamp"` // seconds from game start
	Kind        EventKind `json:"event_type"`
	Position    *Position `json:"position,omitempty"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
}

// ---- Storage records ----

// MatchRecord is a lightweight stored analysis used by list/show/trend.
type MatchRecord struct {
	MatchID      string
	PlayerName   string
	Champion     string
	Role         Role
	MatchDate    string
	Duration     int // seconds
	Win          bool
	OverallScore float64
	RankEstimate string
	Source       string // "riot", "manual", "file", "sample"
}

// KDAComparison describes how a player's KDA sits against their team average.
func KDAComparison(m GameMetrics) string {
	switch {
	case m.KDA < m.TeamAverageKDA:
		return "Below team average"
	case m.KDA > m.TeamAverageKDA*1.2:
		return "Carrying the team!"
	default:
		return "Similar to team"
	}
}

// SampleGame returns a representative Mid-lane game with a short timeline,
// used for demos and smoke tests.
func SampleGame() (GameMetrics, []TimelineEvent) {
	m := GameMetrics{
		Champion:               "Ahri",
		Role:                   RoleMid,
		GameDuration:           1800,
		TotalCS:                180,
		CSPerMin:               6.0,
		JungleCS:               20,
		Kills:                  5,
		Deaths:                 7,
		Assists:                8,
		KDA:                    1.86,
		DamageDealt:            24000,
		DamageTaken:            18000,
		DamagePerMin:           800,
		VisionScore:            25,
		WardsPlaced:            15,
		WardsDestroyed:         3,
		ControlWardsBought:     3,
		TurretPlates:           2,
		TurretsDestroyed:       1,
		DragonsSecured:         1,
		BaronsSecured:          0,
		ObjectiveParticipation: 50,
		GoldEarned:             12000,
		GoldPerMin:             400,
		TimeCCOthers:           45,
		TimeSpentDead:          180,
		TeamAverageKDA:         2.4,
		NemesisChampion:        "Zed",
	}
	timeline := []TimelineEvent{
		{Timestamp: 300, Kind: EventDeath, Position: &Position{5000, 7000}, Description: "Died 1v1 in lane", Severity: SeverityWarning},
		{Timestamp: 600, Kind: EventDeath, Position: &Position{5000, 7000}, Description: "Died in lane again", Severity: SeverityCritical},
		{Timestamp: 900, Kind: EventKill, Position: &Position{6000, 6000}, Description: "Killed the enemy jungler", Severity: SeverityInfo},
		{Timestamp: 1200, Kind: EventDeath, Position: &Position{4000, 4000}, Description: "Died to a gank", Severity: SeverityWarning},
		{Timestamp: 1500, Kind: EventObjective, Description: "Dragon taken", Severity: SeverityInfo},
		{Timestamp: 1650, Kind: EventDeath, Position: &Position{5000, 5000}, Description: "Died in a teamfight", Severity: SeverityWarning},
	}
	return m, timeline
}
