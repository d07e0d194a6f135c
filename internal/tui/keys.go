package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/talgya/statblob/internal/geometry"
)

type actionKind uint8

const (
	actNone actionKind = iota
	actQuit
	actIncrease
	actDecrease
	actReset
	actZoomIn
	actZoomOut
	actPan
	actFocusNext
	actFocusPrev
)

type action struct {
	kind   actionKind
	axis   geometry.Axis
	dx, dy int // Pan direction in cells
}

// axisKeys lists the decrease/increase runes per axis.
var axisKeys = [geometry.AxisCount][2]rune{
	geometry.Strength:     {'q', 'w'},
	geometry.Dexterity:    {'a', 's'},
	geometry.Intelligence: {'z', 'x'},
}

// actionFor maps a key press to an action. r is only consulted for
// tcell.KeyRune.
func actionFor(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{kind: actQuit}
	case tcell.KeyTab:
		return action{kind: actFocusNext}
	case tcell.KeyBacktab:
		return action{kind: actFocusPrev}
	case tcell.KeyUp:
		return action{kind: actPan, dy: -1}
	case tcell.KeyDown:
		return action{kind: actPan, dy: 1}
	case tcell.KeyLeft:
		return action{kind: actPan, dx: -1}
	case tcell.KeyRight:
		return action{kind: actPan, dx: 1}
	case tcell.KeyRune:
	default:
		return action{}
	}

	for _, a := range geometry.Axes {
		switch r {
		case axisKeys[a][0]:
			return action{kind: actDecrease, axis: a}
		case axisKeys[a][1]:
			return action{kind: actIncrease, axis: a}
		}
	}

	switch r {
	case 'r', 'R':
		return action{kind: actReset}
	case '+', '=':
		return action{kind: actZoomIn}
	case '-', '_':
		return action{kind: actZoomOut}
	}
	return action{}
}
