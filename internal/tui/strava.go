package tui

import (
	"context"
	"fmt"
	"strings"

	"fittrack/internal/auth"
	"fittrack/internal/metrics"
	"fittrack/internal/service"
	"fittrack/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StravaModel is the Strava connection and sync screen.
type StravaModel struct {
	svc *Services

	connected bool
	token     *store.StravaToken
	loading   bool
	busy      bool // connecting or syncing; global keys are suspended
	result    *service.SyncResult
	err       error
}

// NewStravaModel creates a new Strava screen model
func NewStravaModel(svc *Services) StravaModel {
	return StravaModel{svc: svc, loading: true}
}

// Init initializes the Strava screen
func (m StravaModel) Init() tea.Cmd {
	return m.loadStatus
}

type stravaStatusMsg struct {
	connected bool
	token     *store.StravaToken
	err       error
}

func (m StravaModel) loadStatus() tea.Msg {
	connected, token, err := m.svc.Auth.Status(m.svc.UserID)
	return stravaStatusMsg{connected: connected, token: token, err: err}
}

type connectDoneMsg struct {
	err error
}

type syncDoneMsg struct {
	result *service.SyncResult
	err    error
}

// Update handles messages
func (m StravaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stravaStatusMsg:
		m.loading = false
		m.connected = msg.connected
		m.token = msg.token
		m.err = msg.err
		return m, nil

	case connectDoneMsg:
		m.busy = false
		m.err = msg.err
		m.loading = true
		return m, m.loadStatus

	case syncDoneMsg:
		m.busy = false
		m.result = msg.result
		m.err = msg.err
		if msg.err == nil {
			return m, func() tea.Msg { return SyncCompleteMsg{} }
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "c":
			if !m.connected {
				m.busy = true
				m.err = nil
				return m, m.runConnect
			}
		case "s", "enter":
			if m.connected {
				m.busy = true
				m.err = nil
				m.result = nil
				return m, m.runSync
			}
		case "x":
			if m.connected {
				return m, m.runDisconnect
			}
		case "r":
			m.loading = true
			return m, m.loadStatus
		}
	}
	return m, nil
}

func (m StravaModel) runConnect() tea.Msg {
	_, err := auth.Authorize(context.Background(), m.svc.Auth, m.svc.UserID)
	return connectDoneMsg{err: err}
}

func (m StravaModel) runSync() tea.Msg {
	result, err := m.svc.Sync.SyncActivities(context.Background(), m.svc.UserID, service.MaxSyncActivities)
	return syncDoneMsg{result: result, err: err}
}

func (m StravaModel) runDisconnect() tea.Msg {
	if err := m.svc.Auth.Disconnect(m.svc.UserID); err != nil {
		return stravaStatusMsg{err: err}
	}
	return m.loadStatus()
}

// View renders the Strava screen
func (m StravaModel) View() string {
	var sections []string
	sections = append(sections, cardTitleStyle.Render("Strava"))

	if m.loading {
		sections = append(sections, "\n  Loading...")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
	}

	if m.busy {
		if m.connected {
			sections = append(sections, "\n  Syncing activities from Strava...")
		} else {
			sections = append(sections, "\n  Waiting for authorization in your browser...")
			sections = append(sections, statusStyle.Render("  (the authorization URL was printed to the terminal)"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if !m.connected {
		sections = append(sections, m.renderDisconnected())
	} else {
		sections = append(sections, m.renderConnected())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m StravaModel) renderDisconnected() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, "  Not connected to Strava.")
	lines = append(lines, "")
	lines = append(lines, "  Connecting lets FitTrack import your activities as workouts.")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  Press 'c' to connect"))
	return strings.Join(lines, "\n")
}

func (m StravaModel) renderConnected() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, successStyle.Render("  Connected as "+m.token.AthleteName))

	lastSync := "never"
	if m.token.LastSync != nil {
		lastSync = metrics.FormatRelativeTime(*m.token.LastSync)
	}
	lines = append(lines, statusStyle.Render("  Last sync: "+lastSync))

	if m.result != nil {
		lines = append(lines, "")
		if m.result.Imported > 0 {
			lines = append(lines, successStyle.Render(fmt.Sprintf("  %d activities imported", m.result.Imported)))
		} else {
			lines = append(lines, statusStyle.Render("  No new activities"))
		}
		if m.result.Skipped > 0 {
			lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d already imported", m.result.Skipped)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  s/enter: sync now  x: disconnect  r: refresh"))
	return strings.Join(lines, "\n")
}
