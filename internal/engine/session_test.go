package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statblob/internal/build"
	"github.com/talgya/statblob/internal/entropy"
	"github.com/talgya/statblob/internal/geometry"
	"github.com/talgya/statblob/internal/perks"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := perks.DefaultGenConfig()
	cfg.Seed = 42
	return NewSession(build.DefaultLimits(), perks.Generate(cfg, entropy.NewSeeded(cfg.Seed)))
}

func TestSessionStartsAtFloor(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, [3]float64{10, 10, 10}, s.Values())
	assert.Equal(t, 90.0, s.Remaining())
	assert.InDelta(t, 10, s.CurrentRadius(geometry.StrengthAngle), 1e-9)
}

func TestAdjustAxisReportsFlips(t *testing.T) {
	s := newTestSession(t)
	warrior, ok := s.Catalog().Lookup("Warrior")
	require.True(t, ok)
	assert.False(t, s.IsUnlocked(warrior))

	c := s.AdjustAxis(geometry.Strength, 70)
	require.True(t, c.Applied())
	assert.False(t, c.Reset)
	assert.Equal(t, geometry.Strength, c.Axis)
	assert.Equal(t, 80.0, c.After[geometry.Strength])
	assert.Equal(t, 10.0, c.Before[geometry.Strength])
	assert.True(t, s.IsUnlocked(warrior))

	names := make([]string, 0, len(c.Unlocked))
	for _, p := range c.Unlocked {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Warrior")
	assert.Empty(t, c.Locked)

	c = s.AdjustAxis(geometry.Strength, -5)
	assert.Contains(t, c.Locked, warrior)
	assert.False(t, s.IsUnlocked(warrior))
}

func TestIncrementsStopWhenBudgetExhausted(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 6; i++ {
		for _, a := range geometry.Axes {
			s.Increment(a)
		}
	}
	assert.Equal(t, [3]float64{40, 40, 40}, s.Values())

	for _, a := range geometry.Axes {
		assert.False(t, s.CanIncrease(a))
		c := s.Increment(a)
		assert.False(t, c.Applied())
		assert.Empty(t, c.Unlocked)
	}
}

func TestResetBuildState(t *testing.T) {
	s := newTestSession(t)
	s.AdjustAxis(geometry.Intelligence, 90)
	unlocked, _ := s.UnlockedCount()
	require.Positive(t, unlocked)

	c := s.ResetBuildState()
	assert.True(t, c.Applied())
	assert.True(t, c.Reset)
	assert.Equal(t, [3]float64{10, 10, 10}, s.Values())
	assert.NotEmpty(t, c.Locked)

	require.NotEmpty(t, s.Events)
	last := s.Events[len(s.Events)-1]
	assert.Equal(t, "reset", last.Category)
}

func TestUnlockedCountMatchesPredicate(t *testing.T) {
	s := newTestSession(t)
	s.AdjustAxis(geometry.Dexterity, 45)
	s.AdjustAxis(geometry.Strength, 45)

	want := 0
	for _, p := range s.Catalog().All() {
		if s.IsUnlocked(p) {
			want++
		}
	}
	got, total := s.UnlockedCount()
	assert.Equal(t, want, got)
	assert.Equal(t, 349, total)
}

func TestOutlineFollowsBuild(t *testing.T) {
	s := newTestSession(t)
	s.AdjustAxis(geometry.Dexterity, 90)
	out := s.Outline(8) // 0°, 45°, 90° ...
	require.Len(t, out, 8)
	assert.InDelta(t, 100, out[1].Radius, 1e-9)
}

func TestEventsAreBounded(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < maxEvents+20; i++ {
		s.Increment(geometry.Strength)
		s.Decrement(geometry.Strength)
	}
	assert.Len(t, s.Events, maxEvents)
	assert.Equal(t, "STR 15 -> 10", s.Events[len(s.Events)-1].Description)
}
