package keyboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/marcus/tvnav/internal/models"
)

type recorder struct {
	texts      []string
	visibility []bool
	commits    []string
}

func (r *recorder) options() []Option {
	return []Option{
		WithOnTextChange(func(s string) { r.texts = append(r.texts, s) }),
		WithOnVisibilityChange(func(v bool) { r.visibility = append(r.visibility, v) }),
		WithOnCommit(func(s string) { r.commits = append(r.commits, s) }),
	}
}

func TestTypingScenario(t *testing.T) {
	rec := &recorder{}
	im := New(rec.options()...)
	im.Show()

	for _, k := range []string{"h", "i", KeyBackspace, KeySpace, KeyDone} {
		im.HandleKey(k)
	}

	if got := im.Value(); got != "h" {
		t.Errorf("value = %q, want %q", got, "h")
	}
	if !reflect.DeepEqual(rec.commits, []string{"h"}) {
		t.Errorf("commits = %q, want [h]", rec.commits)
	}
	if !reflect.DeepEqual(rec.visibility, []bool{true, false}) {
		t.Errorf("visibility = %v, want [true false]", rec.visibility)
	}
	wantTexts := []string{"h", "hi", "h", "h ", "h"}
	if !reflect.DeepEqual(rec.texts, wantTexts) {
		t.Errorf("text changes = %q, want %q", rec.texts, wantTexts)
	}
	if im.Visible() {
		t.Error("keyboard should be hidden after done")
	}
}

func TestInitialState(t *testing.T) {
	im := New()
	if got := im.State().String(); got != "Hidden" {
		t.Errorf("initial state = %s, want Hidden", got)
	}
	im.Show()
	if got := im.State().String(); got != "Visible(letters)" {
		t.Errorf("state = %s, want Visible(letters)", got)
	}
}

func TestKeysIgnoredWhileHidden(t *testing.T) {
	rec := &recorder{}
	im := New(rec.options()...)
	if im.HandleKey("a") {
		t.Error("hidden keyboard accepted a key")
	}
	if im.Value() != "" || len(rec.texts) != 0 {
		t.Errorf("value = %q, texts = %q", im.Value(), rec.texts)
	}
}

func TestBackspaceOnEmpty(t *testing.T) {
	rec := &recorder{}
	im := New(rec.options()...)
	im.Show()
	if im.HandleKey(KeyBackspace) {
		t.Error("backspace on empty buffer reported a change")
	}
	if len(rec.texts) != 0 {
		t.Errorf("onTextChange fired on a no-op: %q", rec.texts)
	}
}

func TestBackspaceRemovesGrapheme(t *testing.T) {
	im := New(WithValue("café"))
	im.Show()
	im.HandleKey(KeyBackspace)
	if got := im.Value(); got != "caf" {
		t.Errorf("after backspace = %q, want %q", got, "caf")
	}
}

func TestMaxLength(t *testing.T) {
	im := New(WithMaxLength(3))
	im.Show()
	for _, k := range []string{"a", "b", "c", "d", KeySpace} {
		im.HandleKey(k)
	}
	if got := im.Value(); got != "abc" {
		t.Errorf("value = %q, want %q", got, "abc")
	}
	if im.Len() != 3 {
		t.Errorf("Len() = %d, want 3", im.Len())
	}
}

func TestMaxLengthTruncatesInitialValue(t *testing.T) {
	im := New(WithValue("abcdef"), WithMaxLength(4))
	if got := im.Value(); got != "abcd" {
		t.Errorf("value = %q, want abcd", got)
	}
}

func TestClear(t *testing.T) {
	im := New(WithValue("hello"))
	im.Show()
	if !im.HandleKey(KeyClear) {
		t.Error("clear should report a change")
	}
	if im.Value() != "" {
		t.Errorf("value = %q after clear", im.Value())
	}
}

func TestModeSwitchKeepsBuffer(t *testing.T) {
	im := New()
	im.Show()
	im.HandleKey("a")
	if !im.HandleKey(ModeKey(models.ModeNumbers)) {
		t.Fatal("mode key ignored")
	}
	if im.Mode() != models.ModeNumbers {
		t.Fatalf("mode = %s", im.Mode())
	}
	im.HandleKey("7")
	if im.HandleKey("b") {
		t.Error("letter accepted in numbers mode")
	}
	im.HandleKey(ModeKey(models.ModeSymbols))
	im.HandleKey("!")
	if got := im.Value(); got != "a7!" {
		t.Errorf("value = %q, want a7!", got)
	}
}

func TestSwitchModeInvalid(t *testing.T) {
	im := New()
	if im.SwitchMode("emoji") {
		t.Error("unknown mode accepted")
	}
	if im.SwitchMode(models.ModeLetters) {
		t.Error("switching to the active mode reported a change")
	}
	if im.HandleKey("mode:emoji") {
		t.Error("unknown mode key accepted")
	}
}

func TestDoneWithoutTrim(t *testing.T) {
	rec := &recorder{}
	opts := append(rec.options(), WithValue(" x "), WithTrimOnCommit(false))
	im := New(opts...)
	im.Show()
	im.HandleKey(KeyDone)
	if !reflect.DeepEqual(rec.commits, []string{" x "}) {
		t.Errorf("commits = %q", rec.commits)
	}
	if len(rec.texts) != 0 {
		t.Errorf("no text change expected, got %q", rec.texts)
	}
}

func TestShowHideNotifyOnChangeOnly(t *testing.T) {
	rec := &recorder{}
	im := New(rec.options()...)
	im.Hide()
	im.Show()
	im.Show()
	im.Hide()
	if !reflect.DeepEqual(rec.visibility, []bool{true, false}) {
		t.Errorf("visibility = %v", rec.visibility)
	}
}

func TestPress(t *testing.T) {
	im := New()
	im.Show()
	// Row 0 of letters starts with a
	if !im.Press(0) || im.Value() != "a" {
		t.Fatalf("Press(0) value = %q", im.Value())
	}
	// Index 27 closes the last letter row
	if !im.Press(27) || im.Value() != "a'" {
		t.Errorf("Press(27) value = %q", im.Value())
	}
	if im.Press(-1) || im.Press(1000) {
		t.Error("out of range press accepted")
	}
}

func TestLayout(t *testing.T) {
	for _, mode := range []models.KeyboardMode{models.ModeLetters, models.ModeNumbers, models.ModeSymbols} {
		t.Run(string(mode), func(t *testing.T) {
			keys := Layout(mode)
			cols := Columns(mode)

			glyphRows := len(layouts[mode].rows)
			specials := keys[glyphRows*cols:]
			if len(specials) != 6 {
				t.Fatalf("got %d special keys, want 6", len(specials))
			}
			for _, k := range specials {
				if !k.Special() {
					t.Errorf("%q should be special", k.Name)
				}
				if k.Name == ModeKey(mode) {
					t.Errorf("layout offers a switch to its own mode")
				}
			}
			for _, row := range layouts[mode].rows {
				if n := len([]rune(row)); n != cols {
					t.Errorf("row %q has %d keys, want %d", row, n, cols)
				}
			}
			for _, k := range keys[:glyphRows*cols] {
				if !glyphSet[mode][k.Name] {
					t.Errorf("glyph %q not in set", k.Name)
				}
			}
			for i := range keys {
				if k, ok := At(mode, i); !ok || k.Name == "" {
					t.Errorf("At(%d) = %+v, %v; want a key", i, k, ok)
				}
			}
		})
	}
}

func TestAutoShow(t *testing.T) {
	im := New()
	a := NewAutoShow(im, 0)
	if a.Delay() != DefaultShowDelay {
		t.Errorf("delay = %v", a.Delay())
	}

	ticket := a.Focus()
	if !a.Pending() {
		t.Fatal("focus should arm a show")
	}
	if !a.Fire(ticket) || !im.Visible() {
		t.Fatal("fire should show the keyboard")
	}
	if a.Fire(ticket) {
		t.Error("ticket fired twice")
	}
}

func TestAutoShowCanceledByBlur(t *testing.T) {
	im := New()
	a := NewAutoShow(im, 50*time.Millisecond)

	ticket := a.Focus()
	a.Blur()
	if a.Fire(ticket) || im.Visible() {
		t.Error("blur should cancel the pending show")
	}

	// Focus passing through twice: only the latest ticket counts
	old := a.Focus()
	latest := a.Focus()
	if a.Fire(old) {
		t.Error("superseded ticket fired")
	}
	if !a.Fire(latest) {
		t.Error("latest ticket should fire")
	}
}
