package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Workouts"},
		{"3", "Nutrition"},
		{"4", "Goals"},
		{"5", "Strava"},
		{"6", "Profile"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	listSection := m.renderSection("Lists", []keyHelp{
		{"j / down", "Move cursor down"},
		{"k / up", "Move cursor up"},
		{"a", "Add entry"},
		{"d", "Delete entry (workouts)"},
		{"r", "Refresh"},
	})
	sections = append(sections, listSection)

	formSection := m.renderSection("Forms", []keyHelp{
		{"tab", "Next field"},
		{"shift+tab", "Previous field"},
		{"left / right", "Change a selection"},
		{"enter on Save", "Submit"},
		{"esc", "Cancel"},
	})
	sections = append(sections, formSection)

	stravaSection := m.renderSection("Strava Screen", []keyHelp{
		{"c", "Connect account"},
		{"s / enter", "Sync activities"},
		{"x", "Disconnect"},
	})
	sections = append(sections, stravaSection)

	xpSection := m.renderXPHelp()
	sections = append(sections, xpSection)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderXPHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Earning XP"))
	lines = append(lines, "")

	rewards := []struct {
		name string
		desc string
	}{
		{"Workout logged", "50 XP, plus 25 XP for the first workout of the day"},
		{"Goal achieved", "100 XP, awarded once per goal"},
		{"Streak milestone", "75 XP each full week of consecutive workout days"},
		{"Meal logged", "10 XP"},
	}

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	for _, r := range rewards {
		lines = append(lines, "  "+helpKeyStyle.Render(r.name))
		lines = append(lines, "  "+mutedStyle.Render(r.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
