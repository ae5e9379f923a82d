// Package build recommends items and runes for a champion given the enemy
// team's damage profile.
package build

import (
	"strings"
)

// Champion damage profiles.
const (
	TypeAP = "AP"
	TypeAD = "AD"
)

// Item is an item id with its display name.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Items referenced by the rule set.
var (
	SorcerersShoes     = Item{3020, "Sorcerer's Shoes"}
	BerserkersGreaves  = Item{3006, "Berserker's Greaves"}
	LiandrysTorment    = Item{6653, "Liandry's Torment"}
	LudensCompanion    = Item{6655, "Luden's Companion"}
	ImmortalShieldbow  = Item{6673, "Immortal Shieldbow"}
	KrakenSlayer       = Item{6672, "Kraken Slayer"}
	Galeforce          = Item{6671, "Galeforce"}
	ZhonyasHourglass   = Item{3157, "Zhonya's Hourglass"}
	MawOfMalmortius    = Item{3156, "Maw of Malmortius"}
	BansheesVeil       = Item{3102, "Banshee's Veil"}
	VoidStaff          = Item{3135, "Void Staff"}
	RabadonsDeathcap   = Item{3089, "Rabadon's Deathcap"}
	InfinityEdge       = Item{3031, "Infinity Edge"}
	LordDominiksRegard = Item{3036, "Lord Dominik's Regards"}
)

const maxItems = 6

// Threats summarizes an enemy team composition.
type Threats struct {
	HighAP   bool
	HighAD   bool
	Tank     bool
	Assassin bool
}

// AnalyzeEnemyComposition reads a list of enemy profiles ("AP", "AD",
// "Tank", "Assassin"). Three or more AP or AD enemies mark a heavy damage
// type. Matching is case-insensitive.
func AnalyzeEnemyComposition(enemies []string) Threats {
	var t Threats
	var ap, ad int
	for _, e := range enemies {
		switch strings.ToLower(strings.TrimSpace(e)) {
		case "ap":
			ap++
		case "ad":
			ad++
		case "tank":
			t.Tank = true
		case "assassin":
			t.Assassin = true
		}
	}
	t.HighAP = ap >= 3
	t.HighAD = ad >= 3
	return t
}

// Runes is a rune page outline.
type Runes struct {
	Keystone      string `json:"keystone"`
	PrimaryPath   string `json:"primary_path"`
	SecondaryPath string `json:"secondary_path"`
}

// Build is a full recommendation.
type Build struct {
	Champion  string `json:"champion"`
	Type      string `json:"type"`
	Role      string `json:"role"`
	Runes     Runes  `json:"runes"`
	Items     []Item `json:"items"`
	Generated bool   `json:"generated"` // false for a stored build
	Notes     string `json:"notes,omitempty"`
}

// Store looks up pre-configured builds. A nil build with nil error means
// none matched.
type Store interface {
	FindBuild(champion, role string) (*Build, error)
}

// Recommender produces builds, preferring stored ones.
type Recommender struct {
	store Store
}

// NewRecommender returns a Recommender. store may be nil.
func NewRecommender(store Store) *Recommender {
	return &Recommender{store: store}
}

// Recommend returns the stored build for champion (and role, when set) if
// one exists, otherwise a generated one.
func (r *Recommender) Recommend(champion, champType, role string, enemies []string) (*Build, error) {
	if r.store != nil {
		b, err := r.store.FindBuild(champion, role)
		if err != nil {
			return nil, err
		}
		if b != nil {
			return b, nil
		}
	}

	champType = strings.ToUpper(champType)
	if role == "" {
		role = "Flexible"
	}
	return &Build{
		Champion:  champion,
		Type:      champType,
		Role:      role,
		Runes:     RecommendRunes(champType),
		Items:     RecommendItems(champType, AnalyzeEnemyComposition(enemies)),
		Generated: true,
	}, nil
}

// RecommendItems applies the boots, core, defensive and offensive rules in
// that order and keeps at most six items.
func RecommendItems(champType string, t Threats) []Item {
	var items []Item
	ap := champType == TypeAP
	ad := champType == TypeAD

	switch {
	case ap:
		items = append(items, SorcerersShoes)
	case ad:
		items = append(items, BerserkersGreaves)
	}

	switch {
	case ap && t.Tank:
		items = append(items, LiandrysTorment)
	case ap:
		items = append(items, LudensCompanion)
	case ad && t.Assassin:
		items = append(items, ImmortalShieldbow)
	case ad && t.Tank:
		items = append(items, KrakenSlayer)
	case ad:
		items = append(items, Galeforce)
	}

	if t.Assassin || t.HighAD {
		if ap {
			items = append(items, ZhonyasHourglass)
		} else if ad && t.HighAP {
			items = append(items, MawOfMalmortius)
		}
	}
	if t.HighAP && ap {
		items = append(items, BansheesVeil)
	}

	if ap {
		if t.Tank {
			items = append(items, VoidStaff)
		}
		items = append(items, RabadonsDeathcap)
	} else if ad {
		items = append(items, InfinityEdge)
		if t.Tank {
			items = append(items, LordDominiksRegard)
		}
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}

// secondaryPath maps a primary rune tree to its usual secondary.
var secondaryPath = map[string]string{
	"Precision":   "Domination",
	"Domination":  "Precision",
	"Sorcery":     "Inspiration",
	"Resolve":     "Precision",
	"Inspiration": "Sorcery",
}

// SecondaryPath returns the secondary tree for primary, defaulting to Precision.
func SecondaryPath(primary string) string {
	if s, ok := secondaryPath[primary]; ok {
		return s
	}
	return "Precision"
}

// RecommendRunes picks a keystone by damage profile.
func RecommendRunes(champType string) Runes {
	var r Runes
	switch champType {
	case TypeAP:
		r.Keystone, r.PrimaryPath = "Electrocute", "Domination"
	case TypeAD:
		r.Keystone, r.PrimaryPath = "Conqueror", "Precision"
	default:
		r.PrimaryPath = "Precision"
	}
	r.SecondaryPath = SecondaryPath(r.PrimaryPath)
	return r
}
