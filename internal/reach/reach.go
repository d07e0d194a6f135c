// Package reach answers how far the live build extends at any angle and
// whether a perk falls inside it. Every answer is recomputed from the build
// on each call; nothing is cached.
package reach

import (
	"math"

	"github.com/talgya/statblob/internal/geometry"
	"github.com/talgya/statblob/internal/perks"
)

// Epsilon absorbs float drift at exact landmark boundaries.
const Epsilon = 0.5

// DefaultSamples is the number of outline vertices drawn per frame.
const DefaultSamples = 90

// Reader exposes the axis values of a build. *build.State satisfies it.
type Reader interface {
	Value(a geometry.Axis) float64
}

// CurrentRadius returns the boundary of the reachable shape at angle.
func CurrentRadius(b Reader, angle float64) float64 {
	s, t := geometry.SectorOf(angle)
	return geometry.EllipseRadius(b.Value(s.From), b.Value(s.To), t)
}

// Reaches reports whether a point at (angle, radius) lies inside the shape.
func Reaches(b Reader, angle, radius float64) bool {
	return radius <= CurrentRadius(b, angle)+Epsilon
}

// IsUnlocked reports whether the build currently reaches p.
func IsUnlocked(b Reader, p perks.Perk) bool {
	return Reaches(b, p.Angle, p.Radius)
}

// Vertex is one sampled point of the blob outline.
type Vertex struct {
	Angle  float64 // Radians
	Radius float64 // Stat units
}

// Outline samples the boundary at evenly spaced angles starting from 0.
// The result traces the blob as a closed polygon.
func Outline(b Reader, samples int) []Vertex {
	if samples <= 0 {
		return nil
	}
	out := make([]Vertex, samples)
	for i := range out {
		a := float64(i) / float64(samples) * 2 * math.Pi
		out[i] = Vertex{Angle: a, Radius: CurrentRadius(b, a)}
	}
	return out
}
