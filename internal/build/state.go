// Package build holds the live three-axis build and the limits that bound it.
// All mutation goes through Adjust, which clamps against both the per-axis
// ceiling and the global point budget in one place.
package build

import (
	"fmt"

	"github.com/talgya/statblob/internal/geometry"
)

// Limits bounds every axis and the build as a whole.
type Limits struct {
	MinStat  float64 `yaml:"min_stat"`  // Floor for every axis
	MaxStat  float64 `yaml:"max_stat"`  // Ceiling for every axis
	MaxTotal float64 `yaml:"max_total"` // Budget shared by all three axes
	Step     float64 `yaml:"step"`      // Size of one +/- click
}

// DefaultLimits returns the stock 10/100/120 build with a step of 5.
func DefaultLimits() Limits {
	return Limits{
		MinStat:  10,
		MaxStat:  100,
		MaxTotal: 120,
		Step:     5,
	}
}

// Validate checks that the bounds are ordered and that the budget can carry
// one axis to its ceiling while the other two sit at the floor. Perk
// placement assumes that build is legal.
func (l Limits) Validate() error {
	if l.MinStat < 0 {
		return fmt.Errorf("min_stat must be non-negative, got %v", l.MinStat)
	}
	if l.MaxStat <= l.MinStat {
		return fmt.Errorf("max_stat (%v) must exceed min_stat (%v)", l.MaxStat, l.MinStat)
	}
	if peak := l.MaxStat + l.MinStat*(geometry.AxisCount-1); l.MaxTotal < peak {
		return fmt.Errorf("max_total (%v) must be at least max_stat + 2*min_stat (%v)", l.MaxTotal, peak)
	}
	if l.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", l.Step)
	}
	return nil
}

// Range returns MaxStat - MinStat.
func (l Limits) Range() float64 {
	return l.MaxStat - l.MinStat
}

// budgetSlack absorbs float rounding when fractional steps fill the budget exactly.
const budgetSlack = 1e-9

// State is the single live build. The zero value is not usable; call NewState.
type State struct {
	limits Limits
	values [geometry.AxisCount]float64
}

// NewState creates a build with every axis at its floor. limits must pass Validate.
func NewState(limits Limits) *State {
	s := &State{limits: limits}
	s.Reset()
	return s
}

// Limits returns the bounds this build was created with.
func (s *State) Limits() Limits {
	return s.limits
}

// Value returns the current value of one axis.
func (s *State) Value(a geometry.Axis) float64 {
	return s.values[a]
}

// Values returns a copy of all three axis values, indexed by geometry.Axis.
func (s *State) Values() [geometry.AxisCount]float64 {
	return s.values
}

// Total returns the points spent across all axes.
func (s *State) Total() float64 {
	total := 0.0
	for _, v := range s.values {
		total += v
	}
	return total
}

// Remaining returns the unspent global budget.
func (s *State) Remaining() float64 {
	return s.limits.MaxTotal - s.Total()
}

// CanIncrease reports whether an increment on a would change anything.
func (s *State) CanIncrease(a geometry.Axis) bool {
	return s.Remaining() > 0 && s.limits.MaxStat-s.values[a] > 0
}

// CanDecrease reports whether a decrement on a would change anything.
func (s *State) CanDecrease(a geometry.Axis) bool {
	return s.values[a] > s.limits.MinStat
}

// Adjust moves one axis by delta and returns the change actually applied.
// Decrements stop at the floor; increments stop at whichever of the axis
// ceiling and the global budget is hit first.
func (s *State) Adjust(a geometry.Axis, delta float64) float64 {
	before := s.values[a]

	switch {
	case delta < 0:
		s.values[a] = max(before+delta, s.limits.MinStat)
	case delta > 0:
		inc := min(delta, s.limits.MaxStat-before, s.Remaining())
		if inc > 0 {
			s.values[a] = min(before+inc, s.limits.MaxStat)
		}
	}

	s.mustHold()
	return s.values[a] - before
}

// Increment adds one step to a.
func (s *State) Increment(a geometry.Axis) float64 {
	return s.Adjust(a, s.limits.Step)
}

// Decrement removes one step from a.
func (s *State) Decrement(a geometry.Axis) float64 {
	return s.Adjust(a, -s.limits.Step)
}

// Reset returns every axis to its floor.
func (s *State) Reset() {
	for i := range s.values {
		s.values[i] = s.limits.MinStat
	}
	s.mustHold()
}

// mustHold panics if a clamp let the build leave its bounds.
func (s *State) mustHold() {
	for _, a := range geometry.Axes {
		v := s.values[a]
		if v < s.limits.MinStat || v > s.limits.MaxStat {
			panic(fmt.Sprintf("build: %s=%v outside [%v, %v]", a, v, s.limits.MinStat, s.limits.MaxStat))
		}
	}
	if total := s.Total(); total > s.limits.MaxTotal+budgetSlack {
		panic(fmt.Sprintf("build: total %v exceeds budget %v", total, s.limits.MaxTotal))
	}
}
