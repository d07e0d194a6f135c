// Package perks defines perk points and generates the static perk catalog:
// nine hand-placed majors plus two randomized tiers scattered inside the
// area a player could ever reach under the point budget.
package perks

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/statblob/internal/geometry"
)

// Tier ranks a perk for rendering emphasis.
type Tier uint8

const (
	TierMajor Tier = iota // Hand-authored "supernova"
	TierGiant             // Randomized, high floor
	TierStar              // Randomized, low floor
)

// Label returns the legend name for the tier.
func (t Tier) Label() string {
	switch t {
	case TierMajor:
		return "Supernova"
	case TierGiant:
		return "Red Giant"
	case TierStar:
		return "Star"
	default:
		return "Unknown"
	}
}

// DefaultCost returns the stock cost weight for the tier.
func (t Tier) DefaultCost() float64 {
	switch t {
	case TierMajor:
		return 10
	case TierGiant:
		return 5
	default:
		return 2
	}
}

// Perk is a fixed point on the plot. It is never mutated after generation;
// whether it is unlocked is derived from the live build on every query.
type Perk struct {
	ID          uuid.UUID `json:"id"`
	Ordinal     int       `json:"ordinal"` // Position in the catalog
	Tier        Tier      `json:"tier"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`  // Bonus family, flavor only
	Angle       float64   `json:"angle"`  // Radians, [0, 2π)
	Radius      float64   `json:"radius"` // Stat units, at most MaxStat
	Cost        float64   `json:"cost"`
}

// landmarkTolerance is how close (degrees) a perk must sit to a landmark for
// its requirement to name that axis alone.
const landmarkTolerance = 5.0

// Requirement describes which stats gate the perk, e.g. "80 STR" at a
// landmark or "55 STR + DEX" inside a sector.
func Requirement(p Perk) string {
	deg := geometry.Degrees(geometry.Normalize(p.Angle))
	for _, a := range geometry.Axes {
		if math.Abs(deg-geometry.Degrees(a.Landmark())) < landmarkTolerance {
			return fmt.Sprintf("%.0f %s", p.Radius, a)
		}
	}

	s, _ := geometry.SectorOf(p.Angle)
	first, second := s.From, s.To
	if second < first {
		first, second = second, first
	}
	return fmt.Sprintf("%.0f %s + %s", p.Radius, first, second)
}

var catalogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("statblob/perks"))

// perkID derives a stable identifier so a regenerated catalog matches a
// stored one row for row.
func perkID(seed int64, ordinal int, name string) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte(fmt.Sprintf("%d:%d:%s", seed, ordinal, name)))
}
