// Package geometry provides the polar model of a three-axis build: landmark angles,
// the sector table, and the elliptical boundary formula.
// Everything here is pure math on stat units; nothing holds state.
package geometry

import "math"

// Axis identifies one of the three build attributes.
type Axis uint8

const (
	Strength     Axis = iota // Landmark at 135°
	Dexterity                // Landmark at 45°
	Intelligence             // Landmark at 270°
)

// AxisCount is fixed; the sector table below assumes exactly three axes.
const AxisCount = 3

// Axes lists every axis in storage order.
var Axes = [AxisCount]Axis{Strength, Dexterity, Intelligence}

// Landmark angles in degrees. The spacing is uneven on purpose:
// DEX→STR spans 90°, STR→INT and INT→DEX span 135° each.
const (
	DexterityDeg    = 45.0
	StrengthDeg     = 135.0
	IntelligenceDeg = 270.0
)

// Landmark angles in radians.
var (
	DexterityAngle    = Radians(DexterityDeg)
	StrengthAngle     = Radians(StrengthDeg)
	IntelligenceAngle = Radians(IntelligenceDeg)
)

// String returns the short label used in tooltips ("STR", "DEX", "INT").
func (a Axis) String() string {
	switch a {
	case Strength:
		return "STR"
	case Dexterity:
		return "DEX"
	case Intelligence:
		return "INT"
	default:
		return "???"
	}
}

// Name returns the full attribute name.
func (a Axis) Name() string {
	switch a {
	case Strength:
		return "Strength"
	case Dexterity:
		return "Dexterity"
	case Intelligence:
		return "Intelligence"
	default:
		return "Unknown"
	}
}

// Landmark returns the angle (radians) at which this axis alone sets the radius.
func (a Axis) Landmark() float64 {
	switch a {
	case Strength:
		return StrengthAngle
	case Dexterity:
		return DexterityAngle
	default:
		return IntelligenceAngle
	}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// Normalize wraps an angle into [0, 2π).
func Normalize(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// Mod of a tiny negative value can round up to exactly 2π.
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
