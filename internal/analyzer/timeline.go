package analyzer

import (
	"github.com/pable/go-lol-metrics/internal/model"
)

// Phase boundaries in seconds from game start.
const (
	earlyGameEnd = 15 * 60
	midGameEnd   = 30 * 60
)

// Phase is a slice of the game clock.
type Phase int

const (
	PhaseEarly Phase = iota
	PhaseMid
	PhaseLate
)

func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "Early Game (0-15 min)"
	case PhaseMid:
		return "Mid Game (15-30 min)"
	case PhaseLate:
		return "Late Game (30+ min)"
	default:
		return "Unknown"
	}
}

// PhaseOf returns the phase a timestamp falls in.
func PhaseOf(ts int) Phase {
	switch {
	case ts < earlyGameEnd:
		return PhaseEarly
	case ts < midGameEnd:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// PhaseInsight flags a phase with too many deaths.
type PhaseInsight struct {
	Phase     Phase
	Deaths    int
	Severity  model.Severity
	IssueKey  string
	AdviceKey string
}

// Issue renders the issue text, e.g. "2 deaths in early game".
func (p PhaseInsight) Issue() string { return Render(p.IssueKey, p.Deaths) }

// Advice renders the fixed advice for the phase.
func (p PhaseInsight) Advice() string { return Render(p.AdviceKey) }

type phaseRule struct {
	phase     Phase
	threshold int
	severity  model.Severity
	issue     string
	advice    string
}

var phaseRules = []phaseRule{
	{PhaseEarly, 2, model.SeverityCritical, MsgTimelineEarlyIssue, MsgTimelineEarlyAdvice},
	{PhaseMid, 3, model.SeverityWarning, MsgTimelineMidIssue, MsgTimelineMidAdvice},
	{PhaseLate, 2, model.SeverityCritical, MsgTimelineLateIssue, MsgTimelineLateAdvice},
}

// AnalyzeTimeline counts deaths per game phase and returns an insight for
// each phase over its threshold, in phase order. Other event kinds are ignored.
func AnalyzeTimeline(events []model.TimelineEvent) []PhaseInsight {
	var deaths [3]int
	for _, e := range events {
		if e.Kind == model.EventDeath {
			deaths[PhaseOf(e.Timestamp)]++
		}
	}

	var out []PhaseInsight
	for _, rule := range phaseRules {
		n := deaths[rule.phase]
		if n < rule.threshold {
			continue
		}
		out = append(out, PhaseInsight{
			Phase:     rule.phase,
			Deaths:    n,
			Severity:  rule.severity,
			IssueKey:  rule.issue,
			AdviceKey: rule.advice,
		})
	}
	return out
}

// RankEstimate maps an overall score to a rough ladder tier. Each lower
// bound is inclusive.
func RankEstimate(score float64) string {
	switch {
	case score >= 90:
		return "Diamond+"
	case score >= 80:
		return "Platinum"
	case score >= 70:
		return "Gold"
	case score >= 60:
		return "Silver"
	case score >= 50:
		return "Bronze"
	default:
		return "Iron"
	}
}

// AdviceSection is one titled block of the prioritized advice.
type AdviceSection struct {
	Title string
	Items []string
}

// Section caps for AdvicePriority.
const (
	maxPriorityCritical        = 3
	maxPriorityRecommendations = 5
	maxPriorityStrengths       = 3
)

// AdvicePriority condenses a result into the few things to work on first:
// the top critical issues, then recommendations, then strengths to keep.
// Empty sections are omitted.
func AdvicePriority(r Result) []AdviceSection {
	var out []AdviceSection
	add := func(title string, items []Feedback, limit int) {
		if len(items) == 0 {
			return
		}
		if len(items) > limit {
			items = items[:limit]
		}
		out = append(out, AdviceSection{Title: title, Items: Messages(items)})
	}
	add("Critical priorities", r.Critical, maxPriorityCritical)
	add("Top recommendations", r.Recommendations, maxPriorityRecommendations)
	add("Strengths to keep", r.Strengths, maxPriorityStrengths)
	return out
}
