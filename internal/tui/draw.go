package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/talgya/statblob/internal/geometry"
	"github.com/talgya/statblob/internal/perks"
)

// canvas is the part of tcell.Screen the renderer needs.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

const (
	panelWidth = 34
	barWidth   = 10
	labelPad   = 1.1 // Axis labels sit just outside the plot edge
)

var (
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleOutline = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleSpoke   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleLocked  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBad     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGood    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	sectorStyles = [3]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorOlive),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
		tcell.StyleDefault.Foreground(tcell.ColorTeal),
	}
	axisStyles = [geometry.AxisCount]tcell.Style{
		geometry.Strength:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		geometry.Dexterity:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		geometry.Intelligence: tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	}
)

// Glyph returns the plot rune for a tier.
func Glyph(t perks.Tier) rune {
	switch t {
	case perks.TierMajor:
		return '◆'
	case perks.TierGiant:
		return '●'
	default:
		return '·'
	}
}

func tierStyle(t perks.Tier) tcell.Style {
	switch t {
	case perks.TierMajor:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case perks.TierGiant:
		return tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// projection maps polar stat coordinates to cells. Rows are twice as tall as
// columns, so vertical offsets are halved.
type projection struct {
	cx, cy int
	unit   float64 // Columns per stat point
	left   int     // First plot column
	w, h   int
}

func (a *App) projection(w, h int) projection {
	plotW := w - panelWidth
	fit := math.Min(float64(plotW)/2-2, float64(h-2))
	if fit < 1 {
		fit = 1
	}
	return projection{
		cx:   panelWidth + plotW/2 + a.panX,
		cy:   h/2 + a.panY,
		unit: fit / a.session.Limits().MaxStat * a.zoom,
		left: panelWidth,
		w:    w,
		h:    h,
	}
}

func (p projection) point(angle, radius float64) (x, y int) {
	dx := radius * math.Cos(angle) * p.unit
	dy := radius * math.Sin(angle) * p.unit / 2
	return p.cx + int(math.Round(dx)), p.cy - int(math.Round(dy))
}

func (p projection) visible(x, y int) bool {
	return x >= p.left && x < p.w && y >= 0 && y < p.h
}

func (p projection) put(c canvas, x, y int, r rune, style tcell.Style) {
	if p.visible(x, y) {
		c.SetContent(x, y, r, nil, style)
	}
}

func (p projection) line(c canvas, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	stepLine(x0, y0, x1, y1, func(x, y int) {
		p.put(c, x, y, r, style)
	})
}

// stepLine visits every cell on the segment from (x0, y0) to (x1, y1),
// both ends included, moving at most one cell per axis per step.
func stepLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// render draws one full frame.
func (a *App) render(c canvas) {
	w, h := c.Size()
	a.renderPlot(c, a.projection(w, h))
	a.renderPanel(c, h)
}

func (a *App) renderPlot(c canvas, p projection) {
	maxStat := a.session.Limits().MaxStat

	// Sector arcs along the plot edge.
	for _, s := range geometry.Sectors {
		steps := int(geometry.Degrees(s.Width()))
		for i := 0; i < steps; i++ {
			x, y := p.point(s.AngleAt(float64(i)/float64(steps)), maxStat)
			p.put(c, x, y, '.', sectorStyles[s.Index])
		}
	}

	// Spokes and labels.
	for _, ax := range geometry.Axes {
		x, y := p.point(ax.Landmark(), maxStat)
		p.line(c, p.cx, p.cy, x, y, '·', styleSpoke)
		lx, ly := p.point(ax.Landmark(), maxStat*labelPad)
		for i, r := range ax.String() {
			p.put(c, lx-1+i, ly, r, axisStyles[ax])
		}
	}

	// Blob outline.
	outline := a.session.Outline(a.samples)
	for i, v := range outline {
		next := outline[(i+1)%len(outline)]
		x0, y0 := p.point(v.Angle, v.Radius)
		x1, y1 := p.point(next.Angle, next.Radius)
		p.line(c, x0, y0, x1, y1, '*', styleOutline)
	}

	// Perks, majors last so they stay on top.
	focus, hasFocus := a.focused()
	for _, tier := range []perks.Tier{perks.TierStar, perks.TierGiant, perks.TierMajor} {
		for _, pk := range a.session.Catalog().ByTier(tier) {
			style := styleLocked
			if a.session.IsUnlocked(pk) {
				style = tierStyle(tier)
			}
			if hasFocus && pk.ID == focus.ID {
				style = style.Reverse(true)
			}
			x, y := p.point(pk.Angle, pk.Radius)
			p.put(c, x, y, Glyph(tier), style)
		}
	}
}

func (a *App) renderPanel(c canvas, h int) {
	s := a.session
	l := s.Limits()
	y := 0
	line := func(text string, style tcell.Style) {
		if y < h {
			drawText(c, 1, y, panelWidth-2, text, style)
		}
		y++
	}

	line(fmt.Sprintf("STATBLOB  seed %d", s.Catalog().Seed()), styleTitle)
	line("", styleText)

	for _, ax := range geometry.Axes {
		v := s.Value(ax)
		filled := int(math.Round(barWidth * (v - l.MinStat) / l.Range()))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		keys := axisKeys[ax]
		line(fmt.Sprintf("%s %3.0f %s  %c- %c+", ax, v, bar, keys[0], keys[1]), axisStyles[ax])
	}
	line("", styleText)

	line(fmt.Sprintf("Points   %.0f / %.0f", s.Total(), l.MaxTotal), styleText)
	unlocked, total := s.UnlockedCount()
	line(fmt.Sprintf("Unlocked %d / %d", unlocked, total), styleText)
	line(fmt.Sprintf("Zoom     %.2fx", a.zoom), styleDim)
	line("", styleText)

	for _, t := range []perks.Tier{perks.TierMajor, perks.TierGiant, perks.TierStar} {
		line(fmt.Sprintf("%c %s", Glyph(t), t.Label()), tierStyle(t))
	}
	line("", styleText)

	if pk, ok := a.focused(); ok {
		line(pk.Name, styleTitle)
		line(fmt.Sprintf("Cost %.0f  %s", pk.Cost, pk.Theme), styleText)
		line("Needs "+perks.Requirement(pk), styleText)
		line(pk.Description, styleDim)
		if s.IsUnlocked(pk) {
			line("UNLOCKED", styleGood)
		} else {
			line("LOCKED", styleBad)
		}
		line("", styleText)
	}

	line(a.status, styleText)
	line("", styleText)
	line("r reset  +/- zoom  arrows pan", styleDim)
	line("tab focus  esc quit", styleDim)
}

// drawText writes s from (x, y), cut at width runes.
func drawText(c canvas, x, y, width int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		if i >= width {
			return
		}
		c.SetContent(x+i, y, r, nil, style)
		i++
	}
}
