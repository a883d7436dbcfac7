package modal

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/tvnav/internal/focus"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/region"
)

// ButtonsRegion is the region id of the button row
const ButtonsRegion = "modal-buttons"

const defaultWidth = 56

// Variant selects the modal's border color
type Variant int

const (
	VariantDefault Variant = iota
	VariantAlert
)

// Button is one entry of the button row
type Button struct {
	Label  string
	Action string
}

// Modal is a dialog with a body and a row of buttons
type Modal struct {
	title   string
	text    string
	md      string
	mdStyle string
	width   int
	variant Variant
	buttons []Button

	ctrl  *focus.Controller
	reg   *region.Registry
	state models.FocusState
}

// Option configures a Modal
type Option func(*Modal)

// WithWidth sets the outer width in cells
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the visual style
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithText sets a plain text body
func WithText(s string) Option {
	return func(m *Modal) { m.text = s }
}

// WithMarkdown sets a markdown body rendered with glamour
func WithMarkdown(md string) Option {
	return func(m *Modal) { m.md = md }
}

// WithMarkdownStyle picks the glamour standard style ("dark", "light",
// "notty"). The default is "dark".
func WithMarkdownStyle(style string) Option {
	return func(m *Modal) { m.mdStyle = style }
}

// New creates a modal without buttons
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:   title,
		width:   defaultWidth,
		mdStyle: "dark",
		ctrl:    focus.New(focus.WithThreshold(-1)),
		reg:     region.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sync()
	return m
}

// AddButton appends a button to the row
func (m *Modal) AddButton(label, action string) *Modal {
	m.buttons = append(m.buttons, Button{Label: label, Action: action})
	m.sync()
	return m
}

func (m *Modal) sync() {
	// A single region can never collide
	_ = m.reg.Register([]models.Region{{
		ID:        ButtonsRegion,
		Kind:      models.KindStrip,
		ItemCount: len(m.buttons),
		Enabled:   true,
	}})
	if m.state.ActiveRegionID == "" {
		m.state = focus.Initial(m.reg, ButtonsRegion)
	}
	m.state = focus.Reconcile(m.state, m.reg)
}

// Title returns the modal title
func (m *Modal) Title() string { return m.title }

// Buttons returns the button row
func (m *Modal) Buttons() []Button { return m.buttons }

// Focused returns the index of the focused button
func (m *Modal) Focused() int { return m.state.ActiveIndex }

// Handle applies one remote press. Select returns the focused button's
// action; Back reports closed without an action.
func (m *Modal) Handle(ev models.NavigationEvent) (action string, closed bool) {
	next, effects := m.ctrl.HandleEvent(ev, m.state, m.reg)
	m.state = next
	for _, e := range effects {
		switch e.Kind {
		case models.EffectBack:
			return "", true
		case models.EffectSelectItem:
			if e.Index >= 0 && e.Index < len(m.buttons) {
				return m.buttons[e.Index].Action, false
			}
		}
	}
	return "", false
}

// Render draws the modal box
func (m *Modal) Render() string {
	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	var sb strings.Builder
	sb.WriteString(ModalTitle.Render(m.title))
	sb.WriteString("\n\n")
	if body := m.body(inner); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.renderButtons())

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(m.variant)).
		Padding(0, 1).
		Width(m.width - 2)
	return style.Render(sb.String())
}

func (m *Modal) body(width int) string {
	if m.md != "" {
		return strings.Trim(RenderMarkdown(m.md, width, m.mdStyle), "\n")
	}
	if m.text != "" {
		return lipgloss.NewStyle().Width(width).Render(m.text)
	}
	return ""
}

func (m *Modal) renderButtons() string {
	if len(m.buttons) == 0 {
		return MutedText.Render("back to close")
	}
	focused := ButtonFocused
	if m.variant == VariantAlert {
		focused = ButtonAlertFocused
	}
	parts := make([]string, 0, len(m.buttons)*2)
	for i, b := range m.buttons {
		if i > 0 {
			parts = append(parts, " ")
		}
		if i == m.state.ActiveIndex {
			parts = append(parts, focused.Render(b.Label))
		} else {
			parts = append(parts, ButtonStyle.Render(b.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderMarkdown renders md with a glamour standard style wrapped to width.
// Rendering failures fall back to the raw text.
func RenderMarkdown(md string, width int, style string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
