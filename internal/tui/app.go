// Package tui is the terminal front end: a stat panel on the left and the
// build blob with its perk field in the middle.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/talgya/statblob/internal/engine"
	"github.com/talgya/statblob/internal/perks"
)

const (
	minZoom  = 0.1
	maxZoom  = 10
	zoomStep = 1.25
	panStep  = 2
)

// App owns the terminal view of one session.
type App struct {
	session *engine.Session
	samples int

	majors []perks.Perk // Focus ring for Tab/Shift-Tab
	focus  int

	zoom       float64
	panX, panY int

	status string // Result of the last adjustment
}

// NewApp creates a view over session. samples is the outline resolution.
func NewApp(session *engine.Session, samples int) *App {
	return &App{
		session: session,
		samples: samples,
		majors:  session.Catalog().ByTier(perks.TierMajor),
		zoom:    1,
		status:  "ready",
	}
}

// Run opens the terminal and processes input until the user quits or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go forwardEvents(screen.PollEvent, events, done)

	a.draw(screen)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handle(actionFor(ev.Key(), ev.Rune())) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
			a.draw(screen)
		}
	}
}

// forwardEvents feeds poll results into events until poll returns nil (the
// screen was finalized) or done is closed.
func forwardEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (a *App) draw(screen tcell.Screen) {
	screen.Clear()
	a.render(screen)
	screen.Show()
}

// handle applies one action. It returns false when the app should exit.
func (a *App) handle(act action) bool {
	switch act.kind {
	case actQuit:
		return false
	case actIncrease:
		a.report(a.session.Increment(act.axis))
	case actDecrease:
		a.report(a.session.Decrement(act.axis))
	case actReset:
		a.report(a.session.ResetBuildState())
	case actZoomIn:
		a.zoom = math.Min(a.zoom*zoomStep, maxZoom)
	case actZoomOut:
		a.zoom = math.Max(a.zoom/zoomStep, minZoom)
	case actPan:
		a.panX += act.dx * panStep
		a.panY += act.dy * panStep
	case actFocusNext:
		if n := len(a.majors); n > 0 {
			a.focus = (a.focus + 1) % n
		}
	case actFocusPrev:
		if n := len(a.majors); n > 0 {
			a.focus = (a.focus - 1 + n) % n
		}
	}
	return true
}

func (a *App) report(c engine.Change) {
	if !c.Applied() {
		a.status = "no points to move"
		return
	}
	last := a.session.Events[len(a.session.Events)-1]
	a.status = fmt.Sprintf("%s  +%d/-%d", last.Description, len(c.Unlocked), len(c.Locked))
	for _, p := range c.Unlocked {
		if p.Tier == perks.TierMajor {
			slog.Info("major perk unlocked", "perk", p.Name)
		}
	}
}

// focused returns the major perk shown in the tooltip.
func (a *App) focused() (perks.Perk, bool) {
	if len(a.majors) == 0 {
		return perks.Perk{}, false
	}
	return a.majors[a.focus], true
}
