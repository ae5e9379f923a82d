package analyzer

import "fmt"

// Category identifies one of the five scored areas of play.
type Category int

const (
	CategoryFarm Category = iota
	CategoryCombat
	CategoryVision
	CategoryObjectives
	CategoryPositioning
)

// Categories lists every category in analysis order.
var Categories = []Category{
	CategoryFarm,
	CategoryCombat,
	CategoryVision,
	CategoryObjectives,
	CategoryPositioning,
}

func (c Category) String() string {
	switch c {
	case CategoryFarm:
		return "Farm & CS"
	case CategoryCombat:
		return "Combat & Impact"
	case CategoryVision:
		return "Vision & Map Control"
	case CategoryObjectives:
		return "Objectives & Map Pressure"
	case CategoryPositioning:
		return "Positioning & Decisions"
	default:
		return "Unknown"
	}
}

// Key returns a short machine name for storage and JSON.
func (c Category) Key() string {
	switch c {
	case CategoryFarm:
		return "farm"
	case CategoryCombat:
		return "combat"
	case CategoryVision:
		return "vision"
	case CategoryObjectives:
		return "objectives"
	case CategoryPositioning:
		return "positioning"
	default:
		return "unknown"
	}
}

// ParseCategory is the inverse of Category.Key.
func ParseCategory(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key() == key {
			return c, true
		}
	}
	return 0, false
}

// Kind says which result list a Feedback item belongs to.
type Kind int

const (
	KindStrength Kind = iota
	KindWeakness
	KindCritical
	KindRecommendation
)

func (k Kind) String() string {
	switch k {
	case KindStrength:
		return "strength"
	case KindWeakness:
		return "weakness"
	case KindCritical:
		return "critical"
	case KindRecommendation:
		return "recommendation"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindStrength, KindWeakness, KindCritical, KindRecommendation} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Feedback is one structured observation. Key selects a message template and
// Args are the values substituted into it.
type Feedback struct {
	Category Category
	Kind     Kind
	Key      string
	Args     []any
}

// Message renders the feedback as English text.
func (f Feedback) Message() string {
	return Render(f.Key, f.Args...)
}

// Render formats a catalog message. Unknown keys render as the key itself.
func Render(key string, args ...any) string {
	tmpl, ok := catalog[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Messages renders a list of feedback items.
func Messages(items []Feedback) []string {
	out := make([]string, len(items))
	for i, f := range items {
		out[i] = f.Message()
	}
	return out
}

// Message keys.
const (
	MsgFarmExcellent     = "farm.excellent"
	MsgFarmGood          = "farm.good"
	MsgFarmAverage       = "farm.average"
	MsgFarmPracticeDaily = "farm.practice_daily"
	MsgFarmPoor          = "farm.poor"
	MsgFarmPriority      = "farm.priority"
	MsgFarmPracticeTool  = "farm.practice_tool"
	MsgFarmLateGame      = "farm.late_game"
	MsgFarmSideLanes     = "farm.side_lanes"

	MsgCombatCarrying         = "combat.carrying"
	MsgCombatUnderperforming  = "combat.underperforming"
	MsgCombatAdapt            = "combat.adapt"
	MsgCombatKDAExcellent     = "combat.kda_excellent"
	MsgCombatKDAGood          = "combat.kda_good"
	MsgCombatKDAAverage       = "combat.kda_average"
	MsgCombatKDAPoor          = "combat.kda_poor"
	MsgCombatFocusPositioning = "combat.focus_positioning"
	MsgCombatTooManyDeaths    = "combat.too_many_deaths"
	MsgCombatReviewDeaths     = "combat.review_deaths"
	MsgCombatMinimap          = "combat.minimap"
	MsgCombatNemesis          = "combat.nemesis"
	MsgCombatNemesisStudy     = "combat.nemesis_study"
	MsgCombatNemesisBuild     = "combat.nemesis_build"
	MsgCombatNemesisJungler   = "combat.nemesis_jungler"
	MsgCombatDPMExcellent     = "combat.dpm_excellent"
	MsgCombatDPMGood          = "combat.dpm_good"
	MsgCombatDPMAverage       = "combat.dpm_average"
	MsgCombatDPMPoor          = "combat.dpm_poor"
	MsgCombatJoinFights       = "combat.join_fights"

	MsgVisionExcellent         = "vision.excellent"
	MsgVisionGood              = "vision.good"
	MsgVisionAverage           = "vision.average"
	MsgVisionWardKeyAreas      = "vision.ward_key_areas"
	MsgVisionPoor              = "vision.poor"
	MsgVisionPriority          = "vision.priority"
	MsgVisionTrinket           = "vision.trinket"
	MsgVisionFewControlWards   = "vision.few_control_wards"
	MsgVisionControlWardRecall = "vision.control_ward_recall"

	MsgObjExcellent        = "objectives.excellent"
	MsgObjGood             = "objectives.good"
	MsgObjAverage          = "objectives.average"
	MsgObjBePresent        = "objectives.be_present"
	MsgObjPoor             = "objectives.poor"
	MsgObjRotate           = "objectives.rotate"
	MsgObjTurretsExcellent = "objectives.turrets_excellent"
	MsgObjTurretsGood      = "objectives.turrets_good"
	MsgObjTurretsFew       = "objectives.turrets_few"
	MsgObjPushSideLanes    = "objectives.push_side_lanes"
	MsgObjFewPlates        = "objectives.few_plates"
	MsgObjPokePlates       = "objectives.poke_plates"
	MsgObjUninvolved       = "objectives.uninvolved"
	MsgObjWardAndPing      = "objectives.ward_and_ping"

	MsgPosNoTimeline   = "positioning.no_timeline"
	MsgPosEarlyDeaths  = "positioning.early_deaths"
	MsgPosPlaySafer    = "positioning.play_safer"
	MsgPosDeathZones   = "positioning.death_zones"
	MsgPosUseVision    = "positioning.use_vision"
	MsgPosTimeDead     = "positioning.time_dead"
	MsgPosReduceDeaths = "positioning.reduce_deaths"

	MsgTimelineEarlyIssue  = "timeline.early.issue"
	MsgTimelineEarlyAdvice = "timeline.early.advice"
	MsgTimelineMidIssue    = "timeline.mid.issue"
	MsgTimelineMidAdvice   = "timeline.mid.advice"
	MsgTimelineLateIssue   = "timeline.late.issue"
	MsgTimelineLateAdvice  = "timeline.late.advice"
)

var catalog = map[string]string{
	MsgFarmExcellent:     "Excellent farm: %.1f CS/min (top tier)",
	MsgFarmGood:          "Good farm: %.1f CS/min",
	MsgFarmAverage:       "Average farm: %.1f CS/min (target: %.1f)",
	MsgFarmPracticeDaily: "Practice last-hitting in the practice tool 10 min a day",
	MsgFarmPoor:          "Very low farm: %.1f CS/min",
	MsgFarmPriority:      "PRIORITY: improve your farm, aim for at least 6 CS/min",
	MsgFarmPracticeTool:  "Use the practice tool to train last-hitting",
	MsgFarmLateGame:      "Very low CS in late game (35+ min)",
	MsgFarmSideLanes:     "Don't neglect the side lanes in late game",

	MsgCombatCarrying:         "You're carrying your team! KDA: %.2f vs team: %.2f",
	MsgCombatUnderperforming:  "Underperforming compared to your team (KDA: %.2f vs %.2f)",
	MsgCombatAdapt:            "Your team is outplaying you, adapt your playstyle",
	MsgCombatKDAExcellent:     "Excellent KDA: %.2f (very few deaths)",
	MsgCombatKDAGood:          "Good KDA: %.2f",
	MsgCombatKDAAverage:       "Average KDA: %.2f (target: %.1f)",
	MsgCombatKDAPoor:          "Very low KDA: %.2f",
	MsgCombatFocusPositioning: "Too many deaths, focus on positioning",
	MsgCombatTooManyDeaths:    "Too many deaths: %d (%.2f/min)",
	MsgCombatReviewDeaths:     "Review your deaths: bad trades? overextending? no vision?",
	MsgCombatMinimap:          "Check the minimap every 3-5 seconds",
	MsgCombatNemesis:          "Problem champion: %s kills you often",
	MsgCombatNemesisStudy:     "Study the matchup against %s",
	MsgCombatNemesisBuild:     "Build defensively against %s (Zhonya's, Banshee's, etc.)",
	MsgCombatNemesisJungler:   "Ask your jungler for help dealing with %s",
	MsgCombatDPMExcellent:     "Excellent damage impact: %.0f DPM",
	MsgCombatDPMGood:          "Good damage impact: %.0f DPM",
	MsgCombatDPMAverage:       "Average damage impact: %.0f DPM",
	MsgCombatDPMPoor:          "Very low damage impact: %.0f DPM",
	MsgCombatJoinFights:       "Take part in more fights and teamfights",

	MsgVisionExcellent:         "Excellent vision: %.1f score/min",
	MsgVisionGood:              "Good vision: %.1f score/min",
	MsgVisionAverage:           "Average vision: %.1f score/min",
	MsgVisionWardKeyAreas:      "Place more wards in key areas (objectives, enemy jungle)",
	MsgVisionPoor:              "Very low vision: %.1f score/min",
	MsgVisionPriority:          "PRIORITY: buy and place more control wards",
	MsgVisionTrinket:           "Use your trinket as soon as it is available",
	MsgVisionFewControlWards:   "Very few control wards bought: %d",
	MsgVisionControlWardRecall: "Buy at least one control ward every recall",

	MsgObjExcellent:        "Excellent objective participation: %.0f%%",
	MsgObjGood:             "Good objective participation: %.0f%%",
	MsgObjAverage:          "Average objective participation: %.0f%%",
	MsgObjBePresent:        "Be present for dragon and baron takes",
	MsgObjPoor:             "Very low objective participation: %.0f%%",
	MsgObjRotate:           "PRIORITY: rotate to objectives with your team",
	MsgObjTurretsExcellent: "Excellent turret destruction: %d",
	MsgObjTurretsGood:      "Good turret destruction: %d",
	MsgObjTurretsFew:       "Few turrets destroyed: %d",
	MsgObjPushSideLanes:    "Push the side lanes to take turrets",
	MsgObjFewPlates:        "Few turret plates taken",
	MsgObjPokePlates:       "Poke the turret for plates in early game (before 14 min)",
	MsgObjUninvolved:       "Barely involved in major objectives",
	MsgObjWardAndPing:      "Ward around objectives and ping so your team rotates",

	MsgPosNoTimeline:   "Timeline not available, limited analysis",
	MsgPosEarlyDeaths:  "Too many early game deaths: %d",
	MsgPosPlaySafer:    "Laning phase too aggressive, play safer early",
	MsgPosDeathZones:   "Several deaths in the same areas",
	MsgPosUseVision:    "These areas are dangerous, get vision before going there",
	MsgPosTimeDead:     "Too much time spent dead: %.1f%%",
	MsgPosReduceDeaths: "Every death is lost opportunity, focus on dying less",

	MsgTimelineEarlyIssue:  "%d deaths in early game",
	MsgTimelineEarlyAdvice: "Laning phase too aggressive, respect the enemy laner and their jungler",
	MsgTimelineMidIssue:    "%d deaths in mid game",
	MsgTimelineMidAdvice:   "Avoid farming alone without vision, group with your team",
	MsgTimelineLateIssue:   "%d deaths in late game",
	MsgTimelineLateAdvice:  "Late game deaths lose games, play ultra safe",
}
