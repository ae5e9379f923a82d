// Package analyzer scores one player's game against per-role benchmarks and
// produces categorized feedback. It is a pure computation: no I/O and no
// shared mutable state, so one Analyzer may be used from many goroutines.
package analyzer

import (
	"github.com/pable/go-lol-metrics/internal/model"
)

// Analyzer scores games against a fixed benchmark table.
type Analyzer struct {
	benchmarks Benchmarks
}

// New returns an Analyzer over a private copy of benchmarks. A nil table
// means every role uses the fallback targets.
func New(benchmarks Benchmarks) *Analyzer {
	return &Analyzer{benchmarks: benchmarks.clone()}
}

// Benchmarks returns a copy of the table the analyzer scores against.
func (a *Analyzer) Benchmarks() Benchmarks {
	return a.benchmarks.clone()
}

// CategoryScore is one entry of the per-category score breakdown.
type CategoryScore struct {
	Category Category
	Score    float64
}

// CategoryResult is the outcome of a single category analyzer.
type CategoryResult struct {
	Category Category
	Score    float64
	Feedback []Feedback
}

func (r *CategoryResult) add(kind Kind, key string, args ...any) {
	r.Feedback = append(r.Feedback, Feedback{Category: r.Category, Kind: kind, Key: key, Args: args})
}

// Result is the full analysis of one game.
type Result struct {
	OverallScore    float64
	Categories      []CategoryScore // always the five categories, in analysis order
	Strengths       []Feedback
	Weaknesses      []Feedback
	Critical        []Feedback
	Recommendations []Feedback
	Timeline        []PhaseInsight // empty unless a timeline was supplied
}

// Score returns the score of category c, or 0 if absent.
func (r Result) Score(c Category) float64 {
	for _, cs := range r.Categories {
		if cs.Category == c {
			return cs.Score
		}
	}
	return 0
}

// Rank returns the rank estimate for the overall score.
func (r Result) Rank() string {
	return RankEstimate(r.OverallScore)
}

// AnalyzeGame runs the five category analyzers and merges their results.
// The overall score is the unweighted mean of the category scores. A
// non-empty timeline also yields phase insights, which do not affect scoring.
func (a *Analyzer) AnalyzeGame(m model.GameMetrics, timeline []model.TimelineEvent) Result {
	results := []CategoryResult{
		a.analyzeFarm(m),
		a.analyzeCombat(m),
		a.analyzeVision(m),
		analyzeObjectives(m),
		analyzePositioning(m, timeline),
	}

	var res Result
	var total float64
	for _, cr := range results {
		cr.Score = clampScore(cr.Score)
		res.Categories = append(res.Categories, CategoryScore{Category: cr.Category, Score: cr.Score})
		total += cr.Score
		for _, f := range cr.Feedback {
			switch f.Kind {
			case KindStrength:
				res.Strengths = append(res.Strengths, f)
			case KindWeakness:
				res.Weaknesses = append(res.Weaknesses, f)
			case KindCritical:
				res.Critical = append(res.Critical, f)
			case KindRecommendation:
				res.Recommendations = append(res.Recommendations, f)
			}
		}
	}
	res.OverallScore = total / float64(len(results))

	if len(timeline) > 0 {
		res.Timeline = AnalyzeTimeline(timeline)
	}
	return res
}

// analyzeFarm scores CS against the role's expected total for the game length.
func (a *Analyzer) analyzeFarm(m model.GameMetrics) CategoryResult {
	target := a.benchmarks.For(m.Role).CSPerMin
	expected := target * m.DurationMinutes()
	efficiency := ratio(float64(m.TotalCS), expected) * 100

	r := CategoryResult{Category: CategoryFarm}
	switch {
	case efficiency >= 90:
		r.Score = 100
		r.add(KindStrength, MsgFarmExcellent, m.CSPerMin)
	case efficiency >= 75:
		r.Score = 85
		r.add(KindStrength, MsgFarmGood, m.CSPerMin)
	case efficiency >= 60:
		r.Score = 60
		r.add(KindWeakness, MsgFarmAverage, m.CSPerMin, target)
		r.add(KindRecommendation, MsgFarmPracticeDaily)
	default:
		r.Score = 40
		r.add(KindCritical, MsgFarmPoor, m.CSPerMin)
		r.add(KindRecommendation, MsgFarmPriority)
		r.add(KindRecommendation, MsgFarmPracticeTool)
	}

	// Under 7 CS/min at the 35 minute mark; informational only.
	if m.GameDuration > 35*60 && m.TotalCS < 7*35 {
		r.add(KindCritical, MsgFarmLateGame)
		r.add(KindRecommendation, MsgFarmSideLanes)
	}
	return r
}

// analyzeCombat starts at 50 and stacks the team-relative KDA, absolute KDA
// and damage adjustments. Death rate and nemesis rules only add feedback.
func (a *Analyzer) analyzeCombat(m model.GameMetrics) CategoryResult {
	bm := a.benchmarks.For(m.Role)
	r := CategoryResult{Category: CategoryCombat, Score: 50}

	vsTeam := 1.0
	if m.TeamAverageKDA > 0 {
		vsTeam = m.KDA / m.TeamAverageKDA
	}
	switch {
	case vsTeam >= 1.3:
		r.Score += 15
		r.add(KindStrength, MsgCombatCarrying, m.KDA, m.TeamAverageKDA)
	case vsTeam <= 0.7:
		r.Score -= 15
		r.add(KindCritical, MsgCombatUnderperforming, m.KDA, m.TeamAverageKDA)
		r.add(KindRecommendation, MsgCombatAdapt)
	}

	switch {
	case m.KDA >= bm.KDATarget*1.5:
		r.Score += 25
		r.add(KindStrength, MsgCombatKDAExcellent, m.KDA)
	case m.KDA >= bm.KDATarget:
		r.Score += 15
		r.add(KindStrength, MsgCombatKDAGood, m.KDA)
	case m.KDA >= bm.KDATarget*0.7:
		r.Score += 5
		r.add(KindWeakness, MsgCombatKDAAverage, m.KDA, bm.KDATarget)
	default:
		r.Score -= 10
		r.add(KindCritical, MsgCombatKDAPoor, m.KDA)
		r.add(KindRecommendation, MsgCombatFocusPositioning)
	}

	// More than one death every four minutes.
	deathsPerMin := model.PerMinute(float64(m.Deaths), m.GameDuration)
	if deathsPerMin > 0.25 {
		r.add(KindCritical, MsgCombatTooManyDeaths, m.Deaths, deathsPerMin)
		r.add(KindRecommendation, MsgCombatReviewDeaths)
		r.add(KindRecommendation, MsgCombatMinimap)
	}

	if m.HasNemesis() {
		r.add(KindCritical, MsgCombatNemesis, m.NemesisChampion)
		r.add(KindRecommendation, MsgCombatNemesisStudy, m.NemesisChampion)
		r.add(KindRecommendation, MsgCombatNemesisBuild, m.NemesisChampion)
		r.add(KindRecommendation, MsgCombatNemesisJungler, m.NemesisChampion)
	}

	dpm := ratio(m.DamagePerMin, bm.DamagePerMin)
	switch {
	case dpm >= 1.2:
		r.Score += 25
		r.add(KindStrength, MsgCombatDPMExcellent, m.DamagePerMin)
	case dpm >= 0.9:
		r.Score += 15
		r.add(KindStrength, MsgCombatDPMGood, m.DamagePerMin)
	case dpm >= 0.7:
		r.Score += 5
		r.add(KindWeakness, MsgCombatDPMAverage, m.DamagePerMin)
	default:
		r.add(KindCritical, MsgCombatDPMPoor, m.DamagePerMin)
		r.add(KindRecommendation, MsgCombatJoinFights)
	}
	return r
}

// analyzeVision buckets vision score per minute against the role target.
func (a *Analyzer) analyzeVision(m model.GameMetrics) CategoryResult {
	target := a.benchmarks.For(m.Role).VisionPerMin
	perMin := model.PerMinute(float64(m.VisionScore), m.GameDuration)
	vr := ratio(perMin, target)

	r := CategoryResult{Category: CategoryVision}
	switch {
	case vr >= 1.2:
		r.Score = 100
		r.add(KindStrength, MsgVisionExcellent, perMin)
	case vr >= 0.9:
		r.Score = 80
		r.add(KindStrength, MsgVisionGood, perMin)
	case vr >= 0.6:
		r.Score = 60
		r.add(KindWeakness, MsgVisionAverage, perMin)
		r.add(KindRecommendation, MsgVisionWardKeyAreas)
	default:
		r.Score = 30
		r.add(KindCritical, MsgVisionPoor, perMin)
		r.add(KindRecommendation, MsgVisionPriority)
		r.add(KindRecommendation, MsgVisionTrinket)
	}

	// Roughly one control ward every three minutes is expected.
	expectedControlWards := m.DurationMinutes() * 0.3
	if float64(m.ControlWardsBought) < expectedControlWards*0.5 {
		r.add(KindCritical, MsgVisionFewControlWards, m.ControlWardsBought)
		r.add(KindRecommendation, MsgVisionControlWardRecall)
	}
	return r
}

// analyzeObjectives buckets objective participation; turret, plate and
// involvement rules only add feedback.
func analyzeObjectives(m model.GameMetrics) CategoryResult {
	r := CategoryResult{Category: CategoryObjectives}
	p := m.ObjectiveParticipation
	switch {
	case p >= 70:
		r.Score = 90
		r.add(KindStrength, MsgObjExcellent, p)
	case p >= 50:
		r.Score = 75
		r.add(KindStrength, MsgObjGood, p)
	case p >= 30:
		r.Score = 60
		r.add(KindWeakness, MsgObjAverage, p)
		r.add(KindRecommendation, MsgObjBePresent)
	default:
		r.Score = 40
		r.add(KindCritical, MsgObjPoor, p)
		r.add(KindRecommendation, MsgObjRotate)
	}

	switch {
	case m.TurretsDestroyed >= 5:
		r.add(KindStrength, MsgObjTurretsExcellent, m.TurretsDestroyed)
	case m.TurretsDestroyed >= 3:
		r.add(KindStrength, MsgObjTurretsGood, m.TurretsDestroyed)
	case m.TurretsDestroyed <= 1:
		r.add(KindWeakness, MsgObjTurretsFew, m.TurretsDestroyed)
		r.add(KindRecommendation, MsgObjPushSideLanes)
	}

	if m.TurretPlates < 2 && lanesForPlates(m.Role) {
		r.add(KindWeakness, MsgObjFewPlates)
		r.add(KindRecommendation, MsgObjPokePlates)
	}

	weighted := m.TurretsDestroyed + m.DragonsSecured + 2*m.BaronsSecured
	if weighted < 3 && p < 40 {
		r.add(KindCritical, MsgObjUninvolved)
		r.add(KindRecommendation, MsgObjWardAndPing)
	}
	return r
}

func lanesForPlates(role model.Role) bool {
	return role == model.RoleTop || role == model.RoleMid || role == model.RoleADC
}

// analyzePositioning starts at 70 and needs a timeline for anything beyond a
// generic note.
func analyzePositioning(m model.GameMetrics, timeline []model.TimelineEvent) CategoryResult {
	r := CategoryResult{Category: CategoryPositioning, Score: 70}
	if len(timeline) == 0 {
		r.add(KindRecommendation, MsgPosNoTimeline)
		return r
	}

	var early, positioned int
	for _, e := range timeline {
		if e.Kind != model.EventDeath {
			continue
		}
		if e.Timestamp < earlyGameEnd {
			early++
		}
		if e.Position != nil {
			positioned++
		}
	}

	if early >= 3 {
		r.Score -= 20
		r.add(KindCritical, MsgPosEarlyDeaths, early)
		r.add(KindRecommendation, MsgPosPlaySafer)
	}

	// Only the count of located deaths is checked, not how close they are.
	if positioned >= 3 {
		r.add(KindWeakness, MsgPosDeathZones)
		r.add(KindRecommendation, MsgPosUseVision)
	}

	deadPct := ratio(float64(m.TimeSpentDead), float64(m.GameDuration)) * 100
	if deadPct > 15 {
		r.Score -= 15
		r.add(KindCritical, MsgPosTimeDead, deadPct)
		r.add(KindRecommendation, MsgPosReduceDeaths)
	}
	return r
}

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
