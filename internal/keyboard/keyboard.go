// Package keyboard drives an on-screen character keyboard for devices that
// only have a remote. The keyboard is a two-state machine, Hidden or
// Visible(mode), editing a text value whose caret is always at the end.
package keyboard

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/marcus/tvnav/internal/models"
)

// State is the observable state of an InputMethod
type State struct {
	Visible bool
	Mode    models.KeyboardMode
}

func (s State) String() string {
	if !s.Visible {
		return "Hidden"
	}
	return fmt.Sprintf("Visible(%s)", s.Mode)
}

// InputMethod is the keyboard state machine. Like the focus controller it is
// owned by one event loop and is not safe for concurrent use.
type InputMethod struct {
	visible   bool
	mode      models.KeyboardMode
	value     string
	maxLength int
	trim      bool

	onTextChange       func(string)
	onVisibilityChange func(bool)
	onCommit           func(string)
}

// Option configures an InputMethod
type Option func(*InputMethod)

// WithMaxLength limits the value to n grapheme clusters. Zero means no limit.
func WithMaxLength(n int) Option {
	return func(im *InputMethod) {
		if n > 0 {
			im.maxLength = n
		}
	}
}

// WithOnTextChange is called after every keystroke that changed the value.
func WithOnTextChange(fn func(string)) Option {
	return func(im *InputMethod) { im.onTextChange = fn }
}

// WithOnVisibilityChange is called whenever the keyboard is shown or hidden.
func WithOnVisibilityChange(fn func(bool)) Option {
	return func(im *InputMethod) { im.onVisibilityChange = fn }
}

// WithOnCommit is called with the final value when done is pressed.
func WithOnCommit(fn func(string)) Option {
	return func(im *InputMethod) { im.onCommit = fn }
}

// WithValue sets the initial value
func WithValue(v string) Option {
	return func(im *InputMethod) { im.value = v }
}

// WithTrimOnCommit controls whether done strips surrounding whitespace.
// Enabled by default.
func WithTrimOnCommit(enabled bool) Option {
	return func(im *InputMethod) { im.trim = enabled }
}

// New creates a hidden keyboard in letters mode
func New(opts ...Option) *InputMethod {
	im := &InputMethod{
		mode: models.ModeLetters,
		trim: true,
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.maxLength > 0 && uniseg.GraphemeClusterCount(im.value) > im.maxLength {
		im.value = truncate(im.value, im.maxLength)
	}
	return im
}

// State returns the current state
func (im *InputMethod) State() State {
	return State{Visible: im.visible, Mode: im.mode}
}

// Visible reports whether the keyboard is showing
func (im *InputMethod) Visible() bool { return im.visible }

// Mode returns the active glyph set
func (im *InputMethod) Mode() models.KeyboardMode { return im.mode }

// Value returns the current text
func (im *InputMethod) Value() string { return im.value }

// Len returns the length of the value in grapheme clusters
func (im *InputMethod) Len() int {
	return uniseg.GraphemeClusterCount(im.value)
}

// SetValue replaces the value without notifying onTextChange, for hosts that
// change the underlying field themselves.
func (im *InputMethod) SetValue(v string) {
	im.value = v
}

// Show makes the keyboard visible
func (im *InputMethod) Show() {
	im.setVisible(true)
}

// Hide dismisses the keyboard. The value is kept.
func (im *InputMethod) Hide() {
	im.setVisible(false)
}

func (im *InputMethod) setVisible(v bool) {
	if im.visible == v {
		return
	}
	im.visible = v
	if im.onVisibilityChange != nil {
		im.onVisibilityChange(v)
	}
}

// SwitchMode changes the glyph set. The value is untouched and unknown modes
// are ignored.
func (im *InputMethod) SwitchMode(mode models.KeyboardMode) bool {
	if !models.IsValidMode(mode) || mode == im.mode {
		return false
	}
	im.mode = mode
	return true
}

// HandleKey applies one key press and reports whether anything changed.
// Keys pressed while hidden, glyphs outside the active mode and keystrokes
// past the max length are dropped.
func (im *InputMethod) HandleKey(key string) bool {
	if !im.visible {
		return false
	}

	switch key {
	case KeyBackspace:
		if im.value == "" {
			return false
		}
		return im.setValue(dropLast(im.value))

	case KeySpace:
		return im.appendText(" ")

	case KeyClear:
		return im.setValue("")

	case KeyDone:
		im.commit()
		return true
	}

	if mode, ok := modeFromKey(key); ok {
		return im.SwitchMode(mode)
	}
	if glyphSet[im.mode][key] {
		return im.appendText(key)
	}
	return false
}

// Press applies the key at index of the current layout, as selected on the
// keyboard grid.
func (im *InputMethod) Press(index int) bool {
	k, ok := At(im.mode, index)
	if !ok {
		return false
	}
	return im.HandleKey(k.Name)
}

func (im *InputMethod) appendText(s string) bool {
	if im.maxLength > 0 && uniseg.GraphemeClusterCount(im.value)+uniseg.GraphemeClusterCount(s) > im.maxLength {
		return false
	}
	return im.setValue(im.value + s)
}

func (im *InputMethod) setValue(v string) bool {
	if v == im.value {
		return false
	}
	im.value = v
	if im.onTextChange != nil {
		im.onTextChange(v)
	}
	return true
}

func (im *InputMethod) commit() {
	if im.trim {
		im.setValue(strings.TrimSpace(im.value))
	}
	if im.onCommit != nil {
		im.onCommit(im.value)
	}
	im.Hide()
}

// dropLast removes the final grapheme cluster of s
func dropLast(s string) string {
	last := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		last, _ = gr.Positions()
	}
	return s[:last]
}

// truncate keeps the first n grapheme clusters of s
func truncate(s string, n int) string {
	gr := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && gr.Next(); i++ {
		_, end = gr.Positions()
	}
	return s[:end]
}
