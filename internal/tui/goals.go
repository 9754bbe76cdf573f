package tui

import (
	"fmt"
	"strconv"
	"strings"

	"fittrack/internal/service"
	"fittrack/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var goalTypes = []string{"weight", "workout_frequency", "calories_burned", "distance", "water_intake"}
var goalFrequencies = []string{"daily", "weekly", "monthly"}

// GoalsModel is the goals screen: list, add form, and progress updates.
type GoalsModel struct {
	svc *Services

	goals   []store.Goal
	cursor  int
	loading bool
	err     error

	// editing covers both the add form and the inline progress update
	editing  bool
	mode     goalFormMode
	inputs   []textinput.Model
	focusIdx int
	typeIdx  int
	freqIdx  int
	formErr  string
	status   string

	progressInput textinput.Model
}

type goalFormMode int

const (
	goalFormAdd goalFormMode = iota
	goalFormProgress
)

// Add form field indexes
const (
	gfTarget = iota
	gfUnit
	gfCount
)

// NewGoalsModel creates a new goals model
func NewGoalsModel(svc *Services) GoalsModel {
	inputs := make([]textinput.Model, gfCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 24
	}
	inputs[gfTarget].Placeholder = "3"
	inputs[gfUnit].Placeholder = "workouts"

	progress := textinput.New()
	progress.CharLimit = 12

	return GoalsModel{
		svc:           svc,
		loading:       true,
		inputs:        inputs,
		progressInput: progress,
	}
}

// Init initializes the goals screen
func (m GoalsModel) Init() tea.Cmd {
	return m.loadGoals
}

type goalsLoadedMsg struct {
	goals []store.Goal
	err   error
}

func (m GoalsModel) loadGoals() tea.Msg {
	goals, err := m.svc.Store.ListGoals(m.svc.UserID)
	return goalsLoadedMsg{goals: goals, err: err}
}

type goalSavedMsg struct {
	xp  int
	err error
}

// Update handles messages
func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.goals = msg.goals
		if m.cursor >= len(m.goals) {
			m.cursor = 0
		}
		return m, nil

	case goalSavedMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.editing = false
		if msg.xp > 0 {
			m.status = fmt.Sprintf("Goal achieved! +%d XP", msg.xp)
		} else {
			m.status = "Saved."
		}
		m.loading = true
		return m, m.loadGoals

	case tea.KeyMsg:
		if m.editing {
			if m.mode == goalFormAdd {
				return m.updateAddForm(msg)
			}
			return m.updateProgressForm(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case "a", "n":
			m.openAddForm()
			return m, nil
		case "enter", "u":
			if len(m.goals) > 0 && m.cursor < len(m.goals) {
				m.editing = true
				m.mode = goalFormProgress
				m.formErr = ""
				m.progressInput.SetValue("")
				return m, m.progressInput.Focus()
			}
		case "x":
			if len(m.goals) > 0 && m.cursor < len(m.goals) {
				id := m.goals[m.cursor].ID
				return m, func() tea.Msg {
					if err := m.svc.Store.DeactivateGoal(id); err != nil {
						return goalsLoadedMsg{err: err}
					}
					return m.loadGoals()
				}
			}
		case "r":
			m.loading = true
			return m, m.loadGoals
		}
	}
	return m, nil
}

func (m *GoalsModel) openAddForm() {
	m.editing = true
	m.mode = goalFormAdd
	m.formErr = ""
	m.status = ""
	m.focusIdx = 0
	m.typeIdx = 0
	m.freqIdx = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

// Focus order for the add form: type selector, frequency selector, then
// the text inputs, then Save.
func (m GoalsModel) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lastIdx := gfCount + 2 // two selectors before the inputs, Save after

	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "left", "right":
		forward := msg.String() == "right"
		switch m.focusIdx {
		case 0:
			m.typeIdx = cycle(m.typeIdx, len(goalTypes), forward)
			return m, nil
		case 1:
			m.freqIdx = cycle(m.freqIdx, len(goalFrequencies), forward)
			return m, nil
		}
	case "tab", "down", "enter":
		if msg.String() == "enter" && m.focusIdx == lastIdx {
			return m.submitAddForm()
		}
		m.focusIdx++
		if m.focusIdx > lastIdx {
			m.focusIdx = 0
		}
		return m, m.refocus()
	case "shift+tab", "up":
		m.focusIdx--
		if m.focusIdx < 0 {
			m.focusIdx = lastIdx
		}
		return m, m.refocus()
	}

	if m.focusIdx >= 2 && m.focusIdx < 2+gfCount {
		var cmd tea.Cmd
		m.inputs[m.focusIdx-2], cmd = m.inputs[m.focusIdx-2].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *GoalsModel) refocus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focusIdx >= 2 && m.focusIdx < 2+gfCount {
		return m.inputs[m.focusIdx-2].Focus()
	}
	return nil
}

func (m GoalsModel) submitAddForm() (tea.Model, tea.Cmd) {
	target, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[gfTarget].Value()), 64)
	if err != nil || target <= 0 {
		m.formErr = "target must be a positive number"
		return m, nil
	}

	input := service.GoalInput{
		Type:      goalTypes[m.typeIdx],
		Target:    target,
		Unit:      strings.TrimSpace(m.inputs[gfUnit].Value()),
		Frequency: goalFrequencies[m.freqIdx],
	}

	return m, func() tea.Msg {
		if _, err := m.svc.Progress.AddGoal(m.svc.UserID, input); err != nil {
			return goalSavedMsg{err: err}
		}
		return goalSavedMsg{}
	}
}

func (m GoalsModel) updateProgressForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		current, err := strconv.ParseFloat(strings.TrimSpace(m.progressInput.Value()), 64)
		if err != nil || current < 0 {
			m.formErr = "progress must be a non-negative number"
			return m, nil
		}
		goalID := m.goals[m.cursor].ID
		return m, func() tea.Msg {
			xp, err := m.svc.Progress.UpdateGoalProgress(m.svc.UserID, goalID, current)
			return goalSavedMsg{xp: xp, err: err}
		}
	}

	var cmd tea.Cmd
	m.progressInput, cmd = m.progressInput.Update(msg)
	return m, cmd
}

// View renders the goals screen
func (m GoalsModel) View() string {
	if m.editing {
		if m.mode == goalFormAdd {
			return m.viewAddForm()
		}
		return m.viewProgressForm()
	}

	if m.loading {
		return "\n  Loading goals..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render("Goals"))

	if m.status != "" {
		sections = append(sections, successStyle.Render("  "+m.status))
	}

	if len(m.goals) == 0 {
		sections = append(sections, "\n  No goals yet. Press 'a' to set one.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for i, g := range m.goals {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		ratio := 0.0
		if g.Target > 0 {
			ratio = g.Current / g.Target
		}
		bar := RenderProgressBar(ratio, 20)

		state := ""
		switch {
		case g.Achieved():
			state = successStyle.Render(" achieved")
		case !g.IsActive:
			state = statusStyle.Render(" inactive")
		}

		label := fmt.Sprintf("%s%-18s %s %.1f/%.1f %s (%s)%s",
			cursor, g.Type, bar, g.Current, g.Target, g.Unit, g.Frequency, state)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(label))
		} else {
			sections = append(sections, tableRowStyle.Render(label))
		}
	}

	sections = append(sections, statusStyle.Render("\n  a: add  enter/u: update progress  x: deactivate  j/k: navigate"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m GoalsModel) viewAddForm() string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render("New Goal"))

	selector := func(label, value string, focused bool) string {
		v := "< " + value + " >"
		if focused {
			v = formFocusedStyle.Render(v)
		}
		return "  " + formLabelStyle.Render(label) + v
	}

	lines = append(lines, selector("Type", goalTypes[m.typeIdx], m.focusIdx == 0))
	lines = append(lines, selector("Frequency", goalFrequencies[m.freqIdx], m.focusIdx == 1))

	fieldLabels := []string{"Target", "Unit"}
	for i, in := range m.inputs {
		lines = append(lines, "  "+formLabelStyle.Render(fieldLabels[i])+in.View())
	}

	saveLabel := "[ Save ]"
	if m.focusIdx == gfCount+2 {
		saveLabel = formFocusedStyle.Render(saveLabel)
	}
	lines = append(lines, "", "  "+saveLabel)

	if m.formErr != "" {
		lines = append(lines, "", errorStyle.Render("  "+m.formErr))
	}

	lines = append(lines, "", statusStyle.Render("  tab: next field  left/right: change selection  esc: cancel"))
	return strings.Join(lines, "\n")
}

func (m GoalsModel) viewProgressForm() string {
	g := m.goals[m.cursor]
	var lines []string
	lines = append(lines, cardTitleStyle.Render("Update Progress"))
	lines = append(lines, fmt.Sprintf("  %s: %.1f / %.1f %s", g.Type, g.Current, g.Target, g.Unit))
	lines = append(lines, "")
	lines = append(lines, "  "+formLabelStyle.Render("New value")+m.progressInput.View())

	if m.formErr != "" {
		lines = append(lines, "", errorStyle.Render("  "+m.formErr))
	}

	lines = append(lines, "", statusStyle.Render("  enter: save  esc: cancel"))
	return strings.Join(lines, "\n")
}

func cycle(idx, length int, forward bool) int {
	if forward {
		return (idx + 1) % length
	}
	return (idx + length - 1) % length
}
