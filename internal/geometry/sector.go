package geometry

import "math"

// Sector is one angular span of the plot, governed by an ordered axis pair.
// From is active at Start (t=0), To is active at End (t=1).
type Sector struct {
	Index int
	From  Axis
	To    Axis
	Start float64 // Radians
	End   float64 // Radians; unwrapped (may exceed 2π) for the wraparound sector
}

// Sectors is the fixed partition of the circle, in the order the
// generator picks from.
var Sectors = [AxisCount]Sector{
	{Index: 0, From: Dexterity, To: Strength, Start: DexterityAngle, End: StrengthAngle},
	{Index: 1, From: Strength, To: Intelligence, Start: StrengthAngle, End: IntelligenceAngle},
	{Index: 2, From: Intelligence, To: Dexterity, Start: IntelligenceAngle, End: DexterityAngle + 2*math.Pi},
}

// Width returns the angular span in radians.
func (s Sector) Width() float64 {
	return s.End - s.Start
}

// AngleAt returns the unwrapped angle at local parameter t.
func (s Sector) AngleAt(t float64) float64 {
	return s.Start + t*(s.End-s.Start)
}

// Midpoint returns the circular mean of the two bounding landmarks,
// normalized to [0, 2π). The wraparound sector averages 270° with 405°.
func (s Sector) Midpoint() float64 {
	return Normalize((s.Start + s.End) / 2)
}

// Wraps reports whether the sector crosses 0°.
func (s Sector) Wraps() bool {
	return s.End > 2*math.Pi
}

// SectorOf resolves the sector that owns angle and the local parameter
// t ∈ [0,1) within it. Boundaries belong to the sector they open.
func SectorOf(angle float64) (Sector, float64) {
	a := Normalize(angle)

	switch {
	case a >= DexterityAngle && a < StrengthAngle:
		s := Sectors[0]
		return s, (a - s.Start) / s.Width()
	case a >= StrengthAngle && a < IntelligenceAngle:
		s := Sectors[1]
		return s, (a - s.Start) / s.Width()
	default:
		s := Sectors[2]
		if a < IntelligenceAngle {
			a += 2 * math.Pi
		}
		return s, (a - s.Start) / s.Width()
	}
}

// EllipseRadius interpolates the boundary between two governing values.
// It is the polar form of a quarter ellipse with semi-axes v1 (at t=0)
// and v2 (at t=1); equal values give a circle.
func EllipseRadius(v1, v2, t float64) float64 {
	if v1 < 1 && v2 < 1 {
		return 0
	}
	phi := t * (math.Pi / 2)
	return (v1 * v2) / math.Sqrt(math.Pow(v2*math.Cos(phi), 2)+math.Pow(v1*math.Sin(phi), 2))
}
