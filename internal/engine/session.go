// Package engine ties the live build to the perk catalog. A Session is the
// one context object the presentation layer holds; every build mutation
// goes through it.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/statblob/internal/build"
	"github.com/talgya/statblob/internal/geometry"
	"github.com/talgya/statblob/internal/perks"
	"github.com/talgya/statblob/internal/reach"
)

// maxEvents bounds the adjustment history kept for display.
const maxEvents = 100

// Session holds the live build and the immutable catalog.
type Session struct {
	build   *build.State
	catalog *perks.Catalog
	Events  []Event // Recent adjustments, oldest first
	seq     uint64
}

// Event records one build adjustment.
type Event struct {
	Seq         uint64 `json:"seq"`
	Description string `json:"description"`
	Category    string `json:"category"` // "adjust", "reset"
}

// Change reports the effect of one mutation. Unlocked and Locked list the
// perks whose status flipped, found by comparing before and after.
type Change struct {
	Axis     geometry.Axis // Adjusted axis; unset when Reset is true
	Reset    bool          // Every axis returned to the floor
	Before   [geometry.AxisCount]float64
	After    [geometry.AxisCount]float64
	Unlocked []perks.Perk
	Locked   []perks.Perk
}

// Applied reports whether the mutation changed the build at all.
func (c Change) Applied() bool {
	return c.Before != c.After
}

// NewSession creates a session with a floor build over catalog.
func NewSession(limits build.Limits, catalog *perks.Catalog) *Session {
	return &Session{
		build:   build.NewState(limits),
		catalog: catalog,
	}
}

// Catalog returns the perk catalog.
func (s *Session) Catalog() *perks.Catalog {
	return s.catalog
}

// Limits returns the build limits.
func (s *Session) Limits() build.Limits {
	return s.build.Limits()
}

// Value returns one axis of the live build.
func (s *Session) Value(a geometry.Axis) float64 {
	return s.build.Value(a)
}

// Values returns all three axes of the live build.
func (s *Session) Values() [geometry.AxisCount]float64 {
	return s.build.Values()
}

// Total returns the points spent.
func (s *Session) Total() float64 {
	return s.build.Total()
}

// Remaining returns the unspent budget.
func (s *Session) Remaining() float64 {
	return s.build.Remaining()
}

// CanIncrease reports whether Increment(a) would change the build.
func (s *Session) CanIncrease(a geometry.Axis) bool {
	return s.build.CanIncrease(a)
}

// CanDecrease reports whether Decrement(a) would change the build.
func (s *Session) CanDecrease(a geometry.Axis) bool {
	return s.build.CanDecrease(a)
}

// AdjustAxis moves one axis by delta. Clamping happens inside build.State.
func (s *Session) AdjustAxis(a geometry.Axis, delta float64) Change {
	return s.mutate(Change{Axis: a}, "adjust", func() { s.build.Adjust(a, delta) })
}

// Increment adds one step to a.
func (s *Session) Increment(a geometry.Axis) Change {
	return s.AdjustAxis(a, s.build.Limits().Step)
}

// Decrement removes one step from a.
func (s *Session) Decrement(a geometry.Axis) Change {
	return s.AdjustAxis(a, -s.build.Limits().Step)
}

// ResetBuildState returns every axis to its floor.
func (s *Session) ResetBuildState() Change {
	return s.mutate(Change{Reset: true}, "reset", s.build.Reset)
}

// CurrentRadius returns the live boundary at angle.
func (s *Session) CurrentRadius(angle float64) float64 {
	return reach.CurrentRadius(s.build, angle)
}

// IsUnlocked reports whether the live build reaches p.
func (s *Session) IsUnlocked(p perks.Perk) bool {
	return reach.IsUnlocked(s.build, p)
}

// Outline samples the live blob.
func (s *Session) Outline(samples int) []reach.Vertex {
	return reach.Outline(s.build, samples)
}

// UnlockedCount returns how many catalog perks the build reaches.
func (s *Session) UnlockedCount() (unlocked, total int) {
	for i := 0; i < s.catalog.Len(); i++ {
		if s.IsUnlocked(s.catalog.At(i)) {
			unlocked++
		}
	}
	return unlocked, s.catalog.Len()
}

func (s *Session) mutate(change Change, category string, apply func()) Change {
	before := s.unlockedSet()
	change.Before = s.build.Values()

	apply()

	change.After = s.build.Values()
	if !change.Applied() {
		return change
	}

	for i := 0; i < s.catalog.Len(); i++ {
		p := s.catalog.At(i)
		now := s.IsUnlocked(p)
		switch {
		case now && !before[i]:
			change.Unlocked = append(change.Unlocked, p)
		case !now && before[i]:
			change.Locked = append(change.Locked, p)
		}
	}

	s.record(category, change)
	return change
}

// unlockedSet snapshots perk status for one mutation's flip report only.
func (s *Session) unlockedSet() []bool {
	set := make([]bool, s.catalog.Len())
	for i := range set {
		set[i] = s.IsUnlocked(s.catalog.At(i))
	}
	return set
}

func (s *Session) record(category string, c Change) {
	s.seq++

	var desc string
	if c.Reset {
		desc = "build reset to floor"
	} else {
		desc = fmt.Sprintf("%s %.0f -> %.0f", c.Axis, c.Before[c.Axis], c.After[c.Axis])
	}

	s.Events = append(s.Events, Event{Seq: s.seq, Description: desc, Category: category})
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}

	slog.Debug("build changed",
		"event", desc,
		"total", s.build.Total(),
		"unlocked", len(c.Unlocked),
		"locked", len(c.Locked),
	)
}
