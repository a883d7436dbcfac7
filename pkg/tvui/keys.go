package tvui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/tvnav/internal/events"
	"github.com/marcus/tvnav/internal/models"
)

// KeyMap binds terminal keys to remote buttons and host commands
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding

	Refresh  key.Binding
	Search   key.Binding
	Channels key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns arrows/vim keys for the remote and letters for the
// host commands
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),

		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Channels: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "channels")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// binding returns the remote binding for ev
func (k *KeyMap) binding(ev models.NavigationEvent) *key.Binding {
	switch ev {
	case models.EventUp:
		return &k.Up
	case models.EventDown:
		return &k.Down
	case models.EventLeft:
		return &k.Left
	case models.EventRight:
		return &k.Right
	case models.EventSelect:
		return &k.Select
	case models.EventBack:
		return &k.Back
	}
	return nil
}

// Apply replaces the keys of remote buttons from a config keymap
// (event name → keys). Help text keeps its description and shows the first
// key.
func (k *KeyMap) Apply(keymap map[string][]string) error {
	for name, keys := range keymap {
		ev, err := events.Parse(name)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return fmt.Errorf("keymap %s: no keys", name)
		}
		b := k.binding(ev)
		b.SetKeys(keys...)
		b.SetHelp(keys[0], b.Help().Desc)
	}
	return nil
}

// Event maps a key press to a remote button
func (k KeyMap) Event(msg tea.KeyMsg) (models.NavigationEvent, bool) {
	for _, ev := range models.AllEvents() {
		if key.Matches(msg, *k.binding(ev)) {
			return ev, true
		}
	}
	return "", false
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Search, k.Channels, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Refresh},
		{k.Search, k.Channels, k.Help, k.Quit},
	}
}
