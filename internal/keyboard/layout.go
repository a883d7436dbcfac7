package keyboard

import (
	"strings"

	"github.com/marcus/tvnav/internal/models"
)

// Special key names understood by HandleKey
const (
	KeyBackspace = "backspace"
	KeySpace     = "space"
	KeyClear     = "clear"
	KeyDone      = "done"
)

// ModeKey returns the key that switches the keyboard to mode
func ModeKey(mode models.KeyboardMode) string {
	return "mode:" + string(mode)
}

// Key is one cell of the on-screen keyboard
type Key struct {
	Name  string // value passed to HandleKey
	Label string // what the host draws
}

// Special reports whether the key is not a plain glyph
func (k Key) Special() bool {
	return isSpecialName(k.Name)
}

type layout struct {
	cols int
	rows []string
}

var controls = []Key{
	{Name: KeySpace, Label: "␣"},
	{Name: KeyBackspace, Label: "⌫"},
	{Name: KeyClear, Label: "clr"},
	{Name: KeyDone, Label: "ok"},
}

var layouts = map[models.KeyboardMode]layout{
	models.ModeLetters: {
		cols: 7,
		rows: []string{"abcdefg", "hijklmn", "opqrstu", "vwxyz-'"},
	},
	models.ModeNumbers: {
		cols: 3,
		rows: []string{"123", "456", "789", ".0-"},
	},
	models.ModeSymbols: {
		cols: 7,
		rows: []string{"!@#$%&*", "()_=+?/", ".,:;\"'~"},
	},
}

// glyphSet is the set of printable glyphs of each mode, built once from the
// layouts.
var glyphSet = func() map[models.KeyboardMode]map[string]bool {
	out := make(map[models.KeyboardMode]map[string]bool, len(layouts))
	for mode, l := range layouts {
		set := make(map[string]bool)
		for _, row := range l.rows {
			for _, r := range row {
				set[string(r)] = true
			}
		}
		out[mode] = set
	}
	return out
}()

// Columns returns how many keys wide the keyboard is in mode
func Columns(mode models.KeyboardMode) int {
	if l, ok := layouts[mode]; ok {
		return l.cols
	}
	return layouts[models.ModeLetters].cols
}

// Layout returns the keys of mode in row-major order. Glyph rows are exactly
// Columns wide, so every cell is a key. The mode switches and the control
// keys follow the glyphs.
func Layout(mode models.KeyboardMode) []Key {
	l, ok := layouts[mode]
	if !ok {
		mode = models.ModeLetters
		l = layouts[mode]
	}

	var keys []Key
	for _, row := range l.rows {
		for _, r := range row {
			keys = append(keys, Key{Name: string(r), Label: string(r)})
		}
	}

	for _, m := range []models.KeyboardMode{models.ModeLetters, models.ModeNumbers, models.ModeSymbols} {
		if m == mode {
			continue
		}
		keys = append(keys, Key{Name: ModeKey(m), Label: modeLabel(m)})
	}
	return append(keys, controls...)
}

// At returns the key at index in mode's layout
func At(mode models.KeyboardMode, index int) (Key, bool) {
	keys := Layout(mode)
	if index < 0 || index >= len(keys) {
		return Key{}, false
	}
	return keys[index], true
}

func modeLabel(m models.KeyboardMode) string {
	switch m {
	case models.ModeNumbers:
		return "123"
	case models.ModeSymbols:
		return "#+="
	default:
		return "abc"
	}
}

func isSpecialName(name string) bool {
	switch name {
	case KeyBackspace, KeySpace, KeyClear, KeyDone:
		return true
	}
	_, ok := modeFromKey(name)
	return ok
}

func modeFromKey(name string) (models.KeyboardMode, bool) {
	rest, ok := strings.CutPrefix(name, "mode:")
	if !ok {
		return "", false
	}
	m := models.KeyboardMode(rest)
	return m, models.IsValidMode(m)
}
