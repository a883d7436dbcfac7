package tvui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/screens"
	"github.com/marcus/tvnav/pkg/tvui/modal"
)

// Modal actions
const (
	actionPlay   = "play"
	actionMyList = "mylist"
	actionClose  = "close"
)

// crown marks paid items
const crown = "♛"

// detailMarkdown is the body of the detail modal
func detailMarkdown(v *models.Video) string {
	var sb strings.Builder
	if v.Description != "" {
		sb.WriteString(v.Description)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "**Category:** %s  \n", v.Category)
	fmt.Fprintf(&sb, "**Duration:** %d min  \n", v.Duration/60)
	fmt.Fprintf(&sb, "**Views:** %d", v.Views)
	if v.Paid() {
		sb.WriteString("\n\n" + crown + " *Subscribers only*")
	}
	return sb.String()
}

// openDetail shows the detail modal for v
func (m Model) openDetail(v *models.Video) Model {
	md := modal.New(v.Title,
		modal.WithMarkdown(detailMarkdown(v)),
		modal.WithWidth(min(72, max(40, m.width-10))),
	)
	md.AddButton("Play", actionPlay)
	if m.library != nil {
		label := "Add to My List"
		if v.InMyList {
			label = "Remove from My List"
		}
		md.AddButton(label, actionMyList)
	}
	md.AddButton("Close", actionClose)

	m.modal = md
	m.video = v
	return m
}

// subscriptionAlert replaces the detail modal when a paid video is played
func subscriptionAlert(v *models.Video) *modal.Modal {
	return modal.New(crown+" Subscription required",
		modal.WithVariant(modal.VariantAlert),
		modal.WithText(fmt.Sprintf("%q is available to subscribers only.", v.Title)),
	).AddButton("OK", actionClose)
}

func (m Model) closeModal() Model {
	m.modal = nil
	m.video = nil
	return m
}

// handleModal routes a remote press to the open modal. Back closes it.
func (m Model) handleModal(ev models.NavigationEvent) (tea.Model, tea.Cmd) {
	action, closed := m.modal.Handle(ev)
	if closed {
		return m.closeModal(), nil
	}

	switch action {
	case actionPlay:
		v := m.video
		if v.Paid() {
			m.modal = subscriptionAlert(v)
			return m, nil
		}
		m = m.closeModal().setStatus("▶ Playing " + v.Title)
		return m, m.statusCmd()

	case actionMyList:
		v := *m.video
		m = m.closeModal()
		return m, toggleMyListCmd(m.ctx, m.library, v)

	case actionClose:
		return m.closeModal(), nil
	}
	return m, nil
}

// myListDone reports a toggle and reloads Home grids showing My List
func (m Model) myListDone(msg myListMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m = m.setStatus("my list: " + msg.err.Error())
		return m, m.statusCmd()
	}
	if msg.added {
		m = m.setStatus("Added to My List")
	} else {
		m = m.setStatus("Removed from My List")
	}

	cmds := []tea.Cmd{m.statusCmd()}
	for _, s := range m.stack {
		if s.name != screens.ScreenHome || !models.HomeTabs[s.session.Tab()].MyList {
			continue
		}
		var reqs []screens.FetchRequest
		reqs = append(reqs, s.session.Refresh(screens.RegionTrending)...)
		reqs = append(reqs, s.session.Refresh(screens.RegionLatest)...)
		cmds = append(cmds, fetchesCmd(m.ctx, m.fetcher, s.mount, reqs, false))
	}
	return m, tea.Batch(cmds...)
}
