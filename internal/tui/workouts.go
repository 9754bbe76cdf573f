package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fittrack/internal/metrics"
	"fittrack/internal/service"
	"fittrack/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// workoutTypes are the types offered in the add form, in display order.
var workoutTypes = []string{
	"running", "cycling", "swimming", "walking", "weightlifting",
	"strength", "hiit", "cardio", "yoga", "flexibility", "sports", "custom",
}

// WorkoutsModel is the workout log screen: a paged list with an inline
// add form.
type WorkoutsModel struct {
	svc *Services

	workouts []store.Workout
	cursor   int
	offset   int
	pageSize int
	loading  bool
	err      error

	// Add form state
	editing   bool
	inputs    []textinput.Model
	focusIdx  int
	typeIdx   int
	formErr   string
	lastAward string
}

// Form field indexes
const (
	wfName = iota
	wfDuration
	wfCalories
	wfNotes
	wfCount
)

// NewWorkoutsModel creates a new workouts model
func NewWorkoutsModel(svc *Services) WorkoutsModel {
	inputs := make([]textinput.Model, wfCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 64
	}
	inputs[wfName].Placeholder = "Morning Run"
	inputs[wfDuration].Placeholder = "30"
	inputs[wfDuration].CharLimit = 4
	inputs[wfCalories].Placeholder = "blank = estimate"
	inputs[wfCalories].CharLimit = 5
	inputs[wfNotes].Placeholder = "optional"

	return WorkoutsModel{
		svc:      svc,
		pageSize: 12,
		loading:  true,
		inputs:   inputs,
	}
}

// Init initializes the workouts screen
func (m WorkoutsModel) Init() tea.Cmd {
	return m.loadPage
}

type workoutsLoadedMsg struct {
	workouts []store.Workout
	err      error
}

func (m WorkoutsModel) loadPage() tea.Msg {
	workouts, err := m.svc.Store.ListWorkouts(m.svc.UserID, m.pageSize, m.offset)
	return workoutsLoadedMsg{workouts: workouts, err: err}
}

type workoutLoggedMsg struct {
	xp  int
	err error
}

// Update handles messages
func (m WorkoutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workoutsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.workouts = msg.workouts
		if m.cursor >= len(m.workouts) {
			m.cursor = 0
		}
		return m, nil

	case workoutLoggedMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.editing = false
		m.lastAward = fmt.Sprintf("Workout logged! +%d XP", msg.xp)
		m.loading = true
		return m, m.loadPage

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
				m.loading = true
				return m, m.loadPage
			}
		case "down", "j":
			if m.cursor < len(m.workouts)-1 {
				m.cursor++
			} else if len(m.workouts) == m.pageSize {
				m.offset += m.pageSize
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "a", "n":
			m.openForm()
			return m, nil
		case "d":
			if len(m.workouts) > 0 && m.cursor < len(m.workouts) {
				id := m.workouts[m.cursor].ID
				return m, func() tea.Msg {
					if err := m.svc.Store.DeleteWorkout(id); err != nil {
						return workoutsLoadedMsg{err: err}
					}
					return m.loadPage()
				}
			}
		case "r":
			m.loading = true
			return m, m.loadPage
		}
	}
	return m, nil
}

func (m *WorkoutsModel) openForm() {
	m.editing = true
	m.formErr = ""
	m.lastAward = ""
	m.focusIdx = 0
	m.typeIdx = 0
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}

func (m WorkoutsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "left", "right":
		// Cycle the workout type with arrows while the type row is focused
		if m.focusIdx == 0 {
			if msg.String() == "right" {
				m.typeIdx = (m.typeIdx + 1) % len(workoutTypes)
			} else {
				m.typeIdx = (m.typeIdx + len(workoutTypes) - 1) % len(workoutTypes)
			}
			return m, nil
		}
	case "tab", "down", "enter":
		if msg.String() == "enter" && m.focusIdx == wfCount+1 {
			return m.submitForm()
		}
		m.focusIdx++
		if m.focusIdx > wfCount+1 {
			m.focusIdx = 0
		}
		return m, m.refocus()
	case "shift+tab", "up":
		m.focusIdx--
		if m.focusIdx < 0 {
			m.focusIdx = wfCount + 1
		}
		return m, m.refocus()
	}

	// The type selector (focusIdx 0) takes no text; inputs are offset by one
	if m.focusIdx > 0 && m.focusIdx <= wfCount {
		var cmd tea.Cmd
		m.inputs[m.focusIdx-1], cmd = m.inputs[m.focusIdx-1].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *WorkoutsModel) refocus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focusIdx > 0 && m.focusIdx <= wfCount {
		return m.inputs[m.focusIdx-1].Focus()
	}
	return nil
}

func (m WorkoutsModel) submitForm() (tea.Model, tea.Cmd) {
	duration, err := strconv.Atoi(strings.TrimSpace(m.inputs[wfDuration].Value()))
	if err != nil || duration <= 0 {
		m.formErr = "duration must be a positive number of minutes"
		return m, nil
	}

	calories := 0
	if raw := strings.TrimSpace(m.inputs[wfCalories].Value()); raw != "" {
		calories, err = strconv.Atoi(raw)
		if err != nil || calories < 0 {
			m.formErr = "calories must be a number"
			return m, nil
		}
	}

	input := service.WorkoutInput{
		Type:     workoutTypes[m.typeIdx],
		Name:     strings.TrimSpace(m.inputs[wfName].Value()),
		Duration: duration,
		Calories: calories,
		Notes:    strings.TrimSpace(m.inputs[wfNotes].Value()),
	}
	if input.Name == "" {
		input.Name = input.Type
	}

	return m, func() tea.Msg {
		_, xp, err := m.svc.Progress.LogWorkout(m.svc.UserID, input)
		return workoutLoggedMsg{xp: xp, err: err}
	}
}

// View renders the workouts screen
func (m WorkoutsModel) View() string {
	if m.editing {
		return m.viewForm()
	}

	if m.loading {
		return "\n  Loading workouts..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render("Workout Log"))

	if m.lastAward != "" {
		sections = append(sections, successStyle.Render("  "+m.lastAward))
	}

	if len(m.workouts) == 0 {
		sections = append(sections, "\n  No workouts yet. Press 'a' to log one.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-12s  %-22s  %-14s  %8s  %8s  %-7s",
		"Date", "Name", "Type", "Duration", "Calories", "Source"))
	sections = append(sections, header)

	now := time.Now()
	for i, w := range m.workouts {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		row := fmt.Sprintf("%s%-12s  %-22s  %-14s  %8s  %8s  %-7s",
			cursor,
			metrics.FormatDate(w.Date, now),
			truncateName(w.Name, 22),
			w.Type,
			metrics.FormatDuration(w.Duration),
			metrics.FormatCalories(float64(w.Calories)),
			w.Source,
		)
		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	sections = append(sections, statusStyle.Render("\n  a: add  d: delete  j/k: navigate  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m WorkoutsModel) viewForm() string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render("Log Workout"))

	typeLabel := formLabelStyle.Render("Type")
	typeValue := "< " + workoutTypes[m.typeIdx] + " >"
	if m.focusIdx == 0 {
		typeValue = formFocusedStyle.Render(typeValue)
	}
	lines = append(lines, "  "+typeLabel+typeValue)

	fieldLabels := []string{"Name", "Duration (min)", "Calories", "Notes"}
	for i, in := range m.inputs {
		lines = append(lines, "  "+formLabelStyle.Render(fieldLabels[i])+in.View())
	}

	saveLabel := "[ Save ]"
	if m.focusIdx == wfCount+1 {
		saveLabel = formFocusedStyle.Render(saveLabel)
	}
	lines = append(lines, "", "  "+saveLabel)

	if m.formErr != "" {
		lines = append(lines, "", errorStyle.Render("  "+m.formErr))
	}

	lines = append(lines, "", statusStyle.Render("  tab: next field  left/right: change type  enter on Save: submit  esc: cancel"))
	return strings.Join(lines, "\n")
}
