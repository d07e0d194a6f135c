package perks

import (
	"fmt"

	"github.com/talgya/statblob/internal/build"
	"github.com/talgya/statblob/internal/entropy"
	"github.com/talgya/statblob/internal/geometry"
)

// Landmark is a hand-authored major perk.
type Landmark struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	AngleDeg    float64 `yaml:"angle_deg"`
	Radius      float64 `yaml:"radius"`
}

// TierSpec controls one randomized tier.
type TierSpec struct {
	Count          int     `yaml:"count"`
	Cost           float64 `yaml:"cost"`
	MinRadiusRatio float64 `yaml:"min_radius_ratio"` // Floor as a fraction of the envelope limit
}

// GenConfig holds catalog generation parameters.
type GenConfig struct {
	Limits    build.Limits
	Seed      int64 // Recorded on the catalog and mixed into IDs and themes
	MajorCost float64
	Majors    []Landmark
	Giants    TierSpec
	Stars     TierSpec
}

// DefaultGenConfig returns the stock catalog: nine majors, 40 giants, 300 stars.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Limits:    build.DefaultLimits(),
		MajorCost: TierMajor.DefaultCost(),
		Majors:    DefaultMajors(),
		Giants:    TierSpec{Count: 40, Cost: TierGiant.DefaultCost(), MinRadiusRatio: 0.4},
		Stars:     TierSpec{Count: 300, Cost: TierStar.DefaultCost(), MinRadiusRatio: 0.2},
	}
}

// DefaultMajors places one major at each axis landmark and two at each
// sector midpoint.
func DefaultMajors() []Landmark {
	dexStr := geometry.Degrees(geometry.Sectors[0].Midpoint())
	strInt := geometry.Degrees(geometry.Sectors[1].Midpoint())
	intDex := geometry.Degrees(geometry.Sectors[2].Midpoint())

	return []Landmark{
		{"Warrior", "Increase area of effect by 30%", geometry.StrengthDeg, 80},
		{"Ranger", "+ 2 additional projectiles", geometry.DexterityDeg, 80},
		{"Mage", "Spells chain to 2 additional targets", geometry.IntelligenceDeg, 80},
		{"Duelist", "Attack speed scales with STR/DEX", dexStr, 40},
		{"Monk", "Unarmed strikes stun enemies", dexStr, 55},
		{"Ranger-Mage", "Arrows deal 5% more elemental damage", intDex, 40},
		{"Arcane Trickster", "Teleport on crit", intDex, 55},
		{"Battlemage", "Gain Energy Shield based on INT", strInt, 40},
		{"Paladin", "Heal allies on hit", strInt, 55},
	}
}

// Envelope returns the best-case governing values at sector parameter t and
// the radius they produce. It assumes the third axis sits at its floor and
// the remaining budget slides linearly from v1 to v2 across the sector.
//
// This is a linear approximation of the true budget frontier, kept exactly
// as written: changing it moves every generated perk.
func Envelope(l build.Limits, t float64) (maxV1, maxV2, limit float64) {
	maxV1 = l.MaxStat - l.Range()*t
	maxV2 = l.MinStat + l.Range()*t
	return maxV1, maxV2, geometry.EllipseRadius(maxV1, maxV2, t)
}

// Generate builds the full catalog. All randomness comes from src, so a
// seeded source always produces the same catalog.
func Generate(cfg GenConfig, src entropy.Source) *Catalog {
	total := len(cfg.Majors) + cfg.Giants.Count + cfg.Stars.Count
	perks := make([]Perk, 0, total)
	themes := newThemeField(cfg.Seed)

	for _, lm := range cfg.Majors {
		ord := len(perks)
		perks = append(perks, Perk{
			ID:          perkID(cfg.Seed, ord, lm.Name),
			Ordinal:     ord,
			Tier:        TierMajor,
			Name:        lm.Name,
			Description: lm.Description,
			Theme:       keystoneTheme,
			Angle:       geometry.Normalize(geometry.Radians(lm.AngleDeg)),
			Radius:      lm.Radius,
			Cost:        cfg.MajorCost,
		})
	}

	for _, tier := range []struct {
		tier Tier
		spec TierSpec
	}{
		{TierGiant, cfg.Giants},
		{TierStar, cfg.Stars},
	} {
		for i := 0; i < tier.spec.Count; i++ {
			ord := len(perks)
			name := fmt.Sprintf("%s %d", tier.tier.Label(), i+1)
			angle, radius := place(cfg.Limits, tier.spec.MinRadiusRatio, src)
			perks = append(perks, Perk{
				ID:          perkID(cfg.Seed, ord, name),
				Ordinal:     ord,
				Tier:        tier.tier,
				Name:        name,
				Description: "Passive bonus",
				Theme:       themes.at(angle, radius),
				Angle:       angle,
				Radius:      radius,
				Cost:        tier.spec.Cost,
			})
		}
	}

	return newCatalog(cfg.Seed, perks)
}

// place draws one random point guaranteed to lie inside the reachable
// envelope and no closer to the center than minRatio of it.
// Draw order is fixed: sector, t, radius.
func place(l build.Limits, minRatio float64, src entropy.Source) (angle, radius float64) {
	s := geometry.Sectors[src.IntN(len(geometry.Sectors))]
	t := src.Float64()

	_, _, limit := Envelope(l, t)
	lo := limit * minRatio
	radius = lo + src.Float64()*(limit-lo)

	return geometry.Normalize(s.AngleAt(t)), radius
}
