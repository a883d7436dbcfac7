package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/tvnav/internal/models"
)

func detail() *Modal {
	return New("Golden Hour", WithText("A short film.")).
		AddButton("Play", "play").
		AddButton("My List", "mylist").
		AddButton("Close", "close")
}

func TestModalButtonNavigation(t *testing.T) {
	m := detail()
	if m.Focused() != 0 {
		t.Fatalf("initial focus = %d, want 0", m.Focused())
	}

	m.Handle(models.EventRight)
	m.Handle(models.EventRight)
	m.Handle(models.EventRight) // clamps at the end
	if m.Focused() != 2 {
		t.Errorf("focus = %d, want 2", m.Focused())
	}

	// Up/Down have nowhere to go
	m.Handle(models.EventUp)
	m.Handle(models.EventDown)
	if m.Focused() != 2 {
		t.Errorf("vertical move changed focus to %d", m.Focused())
	}

	m.Handle(models.EventLeft)
	action, closed := m.Handle(models.EventSelect)
	if action != "mylist" || closed {
		t.Errorf("Select = (%q, %v), want (mylist, false)", action, closed)
	}
}

func TestModalBackCloses(t *testing.T) {
	m := detail()
	action, closed := m.Handle(models.EventBack)
	if action != "" || !closed {
		t.Errorf("Back = (%q, %v), want (\"\", true)", action, closed)
	}
}

func TestModalWithoutButtons(t *testing.T) {
	m := New("Subscription required", WithVariant(VariantAlert))
	if action, closed := m.Handle(models.EventSelect); action != "" || closed {
		t.Errorf("Select on empty row = (%q, %v)", action, closed)
	}
	if !strings.Contains(ansi.Strip(m.Render()), "back to close") {
		t.Error("empty button row should show the close hint")
	}
}

func TestModalRender(t *testing.T) {
	m := detail()
	m.Handle(models.EventRight)
	raw := m.Render()
	if !strings.Contains(raw, ButtonStyle.Render("Play")) || !strings.Contains(raw, ButtonFocused.Render("My List")) {
		t.Error("buttons should use the plain and focused button styles")
	}
	out := ansi.Strip(raw)
	for _, want := range []string{"Golden Hour", "A short film.", "Play", "My List", "Close"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Heading\n\nSome **bold** words.", 40, "notty")
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Heading") || !strings.Contains(plain, "bold") {
		t.Errorf("markdown render = %q", plain)
	}

	m := New("Doc", WithMarkdown("plain paragraph"), WithMarkdownStyle("notty"), WithWidth(48))
	if !strings.Contains(ansi.Strip(m.Render()), "plain paragraph") {
		t.Error("markdown body missing from render")
	}
}
