// Package tvui is the terminal host for the tvnav screens. It turns key
// presses into remote events, runs the fetches and timers a screen asks for
// and draws the regions with lipgloss.
package tvui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/config"
	"github.com/marcus/tvnav/internal/logging"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/screens"
	"github.com/marcus/tvnav/pkg/tvui/modal"
)

// Library is the writable part of the catalog the detail modal uses
type Library interface {
	AddToMyList(ctx context.Context, videoID string) error
	RemoveFromMyList(ctx context.Context, videoID string) error
}

// Options configures a Model
type Options struct {
	Fetcher *catalog.Fetcher
	Library Library        // nil hides the My List button
	Config  *config.Config // nil means defaults
	Logger  *logging.Logger
	BaseDir string // watched for config changes; empty disables watching
	Screen  string // first screen, defaults to home
}

// screen is one entry of the navigation stack
type screen struct {
	name    string
	mount   string
	session *screens.Session
	logger  *slog.Logger
}

// Model is the bubbletea model of the browser
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher *catalog.Fetcher
	library Library
	cfg     *config.Config
	logger  *logging.Logger
	baseDir string
	first   string

	keys KeyMap
	help help.Model

	stack []*screen
	modal *modal.Modal
	video *models.Video // behind the open detail modal

	status    string
	statusSeq int
	width     int
	height    int

	configCh chan configMsg
}

// New creates the model. The first screen is mounted by Init.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	first := opts.Screen
	if first == "" {
		first = screens.ScreenHome
	}

	keys := DefaultKeyMap()
	if err := keys.Apply(cfg.Keymap); err != nil {
		logger.Warn("keymap ignored", "err", err)
		keys = DefaultKeyMap()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ctx:     ctx,
		cancel:  cancel,
		fetcher: opts.Fetcher,
		library: opts.Library,
		cfg:     cfg,
		logger:  logger,
		baseDir: opts.BaseDir,
		first:   first,
		keys:    keys,
		help:    help.New(),
		width:   100,
		height:  40,
	}
}

// Init mounts the first screen. The config watcher starts with it.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return pushMsg{name: m.first} }
}

// pushMsg mounts a screen on top of the stack
type pushMsg struct {
	name string
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pushMsg:
		var cmds []tea.Cmd
		if m.configCh == nil && m.baseDir != "" {
			cmds = append(cmds, m.startWatch())
		}
		var cmd tea.Cmd
		m, cmd = m.push(msg.name)
		return m, tea.Batch(append(cmds, cmd)...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fetchedMsg:
		s := m.screenByMount(msg.mount)
		if s == nil {
			return m, nil
		}
		for _, res := range msg.results {
			if res.Err != nil {
				m = m.setStatus(fmt.Sprintf("load %s failed: %v", res.Ticket.RegionID, res.Err))
			}
			s.session.Apply(res)
		}
		return m, m.statusCmd()

	case keyboardMsg:
		if s := m.top(); s != nil && s.mount == msg.mount {
			s.session.FireKeyboard(msg.ticket)
		}
		return m, nil

	case videoMsg:
		if msg.err != nil {
			m = m.setStatus("load video failed: " + msg.err.Error())
			return m, m.statusCmd()
		}
		m = m.openDetail(msg.video)
		return m, nil

	case myListMsg:
		return m.myListDone(msg)

	case configMsg:
		m = m.applyConfig(msg)
		return m, tea.Batch(waitConfigCmd(m.configCh), m.statusCmd())

	case statusTimeoutMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.modal != nil {
		ev, ok := m.keys.Event(msg)
		if !ok {
			return m, nil
		}
		return m.handleModal(ev)
	}

	s := m.top()
	if s == nil {
		return m, nil
	}
	typing := s.session.Keyboard() != nil && s.session.Keyboard().Visible()

	switch {
	case !typing && key.Matches(msg, m.keys.Quit):
		return m.quit()
	case !typing && key.Matches(msg, m.keys.Refresh):
		reqs := s.session.Refresh("")
		return m, fetchesCmd(m.ctx, m.fetcher, s.mount, reqs, false)
	case !typing && key.Matches(msg, m.keys.Search):
		return m.push(screens.ScreenSearch)
	case !typing && key.Matches(msg, m.keys.Channels):
		return m.push(screens.ScreenChannels)
	}

	ev, ok := m.keys.Event(msg)
	if !ok {
		return m, nil
	}
	return m.handleOutcome(s, s.session.Handle(ev))
}

// handleOutcome turns a session outcome into commands
func (m Model) handleOutcome(s *screen, out screens.Outcome) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	cmds = append(cmds, fetchesCmd(m.ctx, m.fetcher, s.mount, out.Fetches, false))
	if out.ArmKeyboard != nil {
		cmds = append(cmds, armKeyboardCmd(s.session.ShowDelay(), s.mount, *out.ArmKeyboard))
	}
	if out.Selected != nil {
		id := out.Selected.Item.VideoID
		if id == "" {
			id = out.Selected.Item.ID
		}
		s.logger.Debug("selected", "region", out.Selected.RegionID, "index", out.Selected.Index, "video", id)
		cmds = append(cmds, loadVideoCmd(m.ctx, m.fetcher, id))
	}
	if out.Back {
		var cmd tea.Cmd
		var next tea.Model
		next, cmd = m.pop()
		return next, tea.Batch(append(cmds, cmd)...)
	}
	return m, tea.Batch(cmds...)
}

// push mounts a new screen unless it is already on top
func (m Model) push(name string) (Model, tea.Cmd) {
	if s := m.top(); s != nil && s.name == name {
		return m, nil
	}
	layout, ok := screens.ByName(name)
	if !ok {
		m = m.setStatus("unknown screen " + name)
		return m, m.statusCmd()
	}

	logger, mount := m.logger.Screen(name)
	threshold := m.cfg.ThresholdRows
	sess := screens.NewSession(layout, screens.Options{
		Threshold:         &threshold,
		RowUp:             m.cfg.GridRowUp,
		KeyboardMaxLength: m.cfg.KeyboardMaxLength,
		ShowDelay:         time.Duration(m.cfg.KeyboardShowDelayMS) * time.Millisecond,
		Logger:            logger,
	})
	s := &screen{name: name, mount: mount, session: sess, logger: logger}
	m.stack = append(m.stack, s)

	out := sess.Mount()
	logger.Info("screen mounted", "fetches", len(out.Fetches))

	cmds := []tea.Cmd{fetchesCmd(m.ctx, m.fetcher, mount, out.Fetches, true)}
	if out.ArmKeyboard != nil {
		cmds = append(cmds, armKeyboardCmd(sess.ShowDelay(), mount, *out.ArmKeyboard))
	}
	return m, tea.Batch(cmds...)
}

// pop leaves the top screen, quitting from the last one
func (m Model) pop() (tea.Model, tea.Cmd) {
	if len(m.stack) <= 1 {
		return m.quit()
	}
	left := m.stack[len(m.stack)-1]
	left.logger.Debug("screen closed")
	m.stack = m.stack[:len(m.stack)-1]
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m Model) top() *screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m Model) screenByMount(mount string) *screen {
	for _, s := range m.stack {
		if s.mount == mount {
			return s
		}
	}
	return nil
}

func (m Model) setStatus(s string) Model {
	m.status = s
	m.statusSeq++
	return m
}

func (m Model) statusCmd() tea.Cmd {
	if m.status == "" {
		return nil
	}
	return statusTimeoutCmd(m.statusSeq)
}

// startWatch forwards config file changes into the program
func (m *Model) startWatch() tea.Cmd {
	ch := make(chan configMsg, 1)
	err := config.Watch(m.ctx, m.baseDir, func(cfg *config.Config, err error) {
		select {
		case ch <- configMsg{cfg: cfg, err: err}:
		case <-m.ctx.Done():
		}
	})
	if err != nil {
		m.logger.Warn("config watch disabled", "err", err)
		return nil
	}
	m.configCh = ch
	return waitConfigCmd(ch)
}

// applyConfig takes the reloadable settings: log level and keymap. Focus and
// keyboard settings apply to screens mounted afterwards.
func (m Model) applyConfig(msg configMsg) Model {
	if msg.err != nil {
		m.logger.Warn("config reload failed", "err", msg.err)
		return m.setStatus("config: " + msg.err.Error())
	}
	keys := DefaultKeyMap()
	if err := keys.Apply(msg.cfg.Keymap); err != nil {
		m.logger.Warn("keymap ignored", "err", err)
		return m.setStatus("config: " + err.Error())
	}
	m.keys = keys
	m.cfg = msg.cfg
	m.logger.SetLevel(msg.cfg.LogLevel)
	m.logger.Info("config reloaded", "level", msg.cfg.LogLevel)
	return m.setStatus("config reloaded")
}

// Screen returns the name of the screen on top
func (m Model) Screen() string {
	if s := m.top(); s != nil {
		return s.name
	}
	return ""
}

// Session returns the session of the screen on top
func (m Model) Session() *screens.Session {
	if s := m.top(); s != nil {
		return s.session
	}
	return nil
}

// Depth returns the number of screens on the stack
func (m Model) Depth() int { return len(m.stack) }

// Modal returns the open modal, nil when none is open
func (m Model) Modal() *modal.Modal { return m.modal }

// Status returns the status line
func (m Model) Status() string { return m.status }
