// Package events defines the canonical naming of remote-control input.
//
// Remotes, terminals and scripts all spell the same six presses differently.
// The taxonomy provides:
//   - Canonical NavigationEvent names ("up", "down", "left", "right", "select", "back")
//   - Normalization of platform spellings to the canonical names
//   - Parsing of comma or space separated event scripts used by `tvnav replay`
//
// # Accepted spellings
//
// Normalization is case-insensitive and accepts:
//   - 'up', 'dpad_up', 'arrowup', 'k' → up (and likewise for down/left/right, with j/h/l)
//   - 'select', 'enter', 'ok', 'center', 'dpad_center' → select
//   - 'back', 'esc', 'escape', 'menu', 'backspace' → back
//
// The TV event names of the react-native tvOS event handler ('up', 'select',
// 'playPause' and so on) are a subset; non-navigation events such as
// 'playPause' are rejected rather than mapped.
package events

import (
	"fmt"
	"strings"

	"github.com/marcus/tvnav/internal/models"
)

// UnknownEventError is returned when a spelling does not map to a remote event
type UnknownEventError struct {
	Name string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown navigation event %q", e.Name)
}

// Normalize maps a platform spelling to its canonical NavigationEvent.
// Returns the event and true if recognized, or empty string and false.
func Normalize(name string) (models.NavigationEvent, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "dpad_up", "arrowup", "k":
		return models.EventUp, true
	case "down", "dpad_down", "arrowdown", "j":
		return models.EventDown, true
	case "left", "dpad_left", "arrowleft", "h":
		return models.EventLeft, true
	case "right", "dpad_right", "arrowright", "l":
		return models.EventRight, true
	case "select", "enter", "ok", "center", "dpad_center":
		return models.EventSelect, true
	case "back", "esc", "escape", "menu", "backspace":
		return models.EventBack, true
	default:
		return "", false
	}
}

// Parse parses a single event name, returning an *UnknownEventError if it is
// not recognized.
func Parse(name string) (models.NavigationEvent, error) {
	ev, ok := Normalize(name)
	if !ok {
		return "", &UnknownEventError{Name: name}
	}
	return ev, nil
}

// ParseScript splits a script like "down,down right select" into events.
// Blank entries are skipped. The first unrecognized entry stops parsing.
func ParseScript(script string) ([]models.NavigationEvent, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]models.NavigationEvent, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// Arrow returns a compact glyph for an event, used in trace output.
func Arrow(ev models.NavigationEvent) string {
	switch ev {
	case models.EventUp:
		return "\u2191" // ↑
	case models.EventDown:
		return "\u2193" // ↓
	case models.EventLeft:
		return "\u2190" // ←
	case models.EventRight:
		return "\u2192" // →
	case models.EventSelect:
		return "\u23ce" // ⏎
	case models.EventBack:
		return "\u21a9" // ↩
	default:
		return string(ev)
	}
}
