package analyzer

import "github.com/pable/go-lol-metrics/internal/model"

// Benchmark holds the target per-role rates a game is scored against.
type Benchmark struct {
	CSPerMin     float64 `mapstructure:"cs_per_min" json:"cs_per_min"`
	VisionPerMin float64 `mapstructure:"vision_score_per_min" json:"vision_score_per_min"`
	DamagePerMin float64 `mapstructure:"damage_per_min" json:"damage_per_min"`
	KDATarget    float64 `mapstructure:"kda_target" json:"kda_target"`
}

// Fallback targets used for a role missing from the table.
const (
	fallbackCSPerMin     = 6.0
	fallbackVisionPerMin = 1.5
	fallbackDamagePerMin = 600
	fallbackKDATarget    = 2.5
)

// Benchmarks maps each role to its targets. Treat it as read-only once built.
type Benchmarks map[model.Role]Benchmark

// DefaultBenchmarks returns the built-in Iron-to-Gold averages.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		model.RoleTop:     {CSPerMin: 6.5, VisionPerMin: 1.2, DamagePerMin: 600, KDATarget: 2.5},
		model.RoleJungle:  {CSPerMin: 5.0, VisionPerMin: 1.5, DamagePerMin: 500, KDATarget: 2.8},
		model.RoleMid:     {CSPerMin: 7.0, VisionPerMin: 1.0, DamagePerMin: 700, KDATarget: 2.6},
		model.RoleADC:     {CSPerMin: 7.5, VisionPerMin: 0.8, DamagePerMin: 800, KDATarget: 3.0},
		model.RoleSupport: {CSPerMin: 1.5, VisionPerMin: 2.5, DamagePerMin: 300, KDATarget: 3.5},
	}
}

// For returns the targets for role, filling any missing or zero field with
// the fallback value.
func (b Benchmarks) For(role model.Role) Benchmark {
	bm := b[role]
	if bm.CSPerMin == 0 {
		bm.CSPerMin = fallbackCSPerMin
	}
	if bm.VisionPerMin == 0 {
		bm.VisionPerMin = fallbackVisionPerMin
	}
	if bm.DamagePerMin == 0 {
		bm.DamagePerMin = fallbackDamagePerMin
	}
	if bm.KDATarget == 0 {
		bm.KDATarget = fallbackKDATarget
	}
	return bm
}

// Merge returns a copy of b with the non-zero fields of overrides applied.
// Neither input is modified.
func (b Benchmarks) Merge(overrides Benchmarks) Benchmarks {
	out := make(Benchmarks, len(b)+len(overrides))
	for role, bm := range b {
		out[role] = bm
	}
	for role, o := range overrides {
		bm := out[role]
		if o.CSPerMin > 0 {
			bm.CSPerMin = o.CSPerMin
		}
		if o.VisionPerMin > 0 {
			bm.VisionPerMin = o.VisionPerMin
		}
		if o.DamagePerMin > 0 {
			bm.DamagePerMin = o.DamagePerMin
		}
		if o.KDATarget > 0 {
			bm.KDATarget = o.KDATarget
		}
		out[role] = bm
	}
	return out
}

func (b Benchmarks) clone() Benchmarks {
	return Benchmarks{}.Merge(b)
}
