package tui

import (
	"fmt"
	"strconv"
	"strings"

	"fittrack/internal/metrics"
	"fittrack/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var genders = []string{"male", "female", "other"}
var activityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}
var goalTypesProfile = []string{"lose", "maintain", "gain"}

// ProfileModel is the profile screen: a view of the stored profile with
// an edit form.
type ProfileModel struct {
	svc *Services

	user    *store.User
	loading bool
	err     error

	editing     bool
	inputs      []textinput.Model
	focusIdx    int
	genderIdx   int
	activityIdx int
	goalIdx     int
	formErr     string
	status      string
}

// Edit form field indexes
const (
	pfName = iota
	pfWeight
	pfHeight
	pfAge
	pfTargetWeight
	pfCount
)

// selectors come after the text inputs in the focus order
const pfSelectors = 3

// NewProfileModel creates a new profile model
func NewProfileModel(svc *Services) ProfileModel {
	inputs := make([]textinput.Model, pfCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 32
	}
	inputs[pfWeight].Placeholder = "kg"
	inputs[pfHeight].Placeholder = "cm"
	inputs[pfAge].Placeholder = "years"
	inputs[pfTargetWeight].Placeholder = "kg, optional"

	return ProfileModel{svc: svc, loading: true, inputs: inputs}
}

// Init initializes the profile screen
func (m ProfileModel) Init() tea.Cmd {
	return m.loadUser
}

type profileLoadedMsg struct {
	user *store.User
	err  error
}

func (m ProfileModel) loadUser() tea.Msg {
	user, err := m.svc.Store.GetUser(m.svc.UserID)
	return profileLoadedMsg{user: user, err: err}
}

type profileSavedMsg struct {
	err error
}

// Update handles messages
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.user = msg.user
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.editing = false
		m.status = "Profile saved."
		m.loading = true
		return m, m.loadUser

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "e", "enter":
			if m.user != nil {
				m.openForm()
				return m, m.inputs[pfName].Focus()
			}
		case "r":
			m.loading = true
			return m, m.loadUser
		}
	}
	return m, nil
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}

func (m *ProfileModel) openForm() {
	m.editing = true
	m.formErr = ""
	m.status = ""
	m.focusIdx = 0

	u := m.user
	m.inputs[pfName].SetValue(u.DisplayName)
	if u.Weight > 0 {
		m.inputs[pfWeight].SetValue(strconv.FormatFloat(u.Weight, 'f', -1, 64))
	}
	if u.Height > 0 {
		m.inputs[pfHeight].SetValue(strconv.FormatFloat(u.Height, 'f', -1, 64))
	}
	if u.Age > 0 {
		m.inputs[pfAge].SetValue(strconv.Itoa(u.Age))
	}
	if u.TargetWeight != nil {
		m.inputs[pfTargetWeight].SetValue(strconv.FormatFloat(*u.TargetWeight, 'f', -1, 64))
	} else {
		m.inputs[pfTargetWeight].SetValue("")
	}
	m.genderIdx = indexOf(genders, u.Gender)
	m.activityIdx = indexOf(activityLevels, u.ActivityLevel)
	m.goalIdx = indexOf(goalTypesProfile, u.GoalType)

	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m ProfileModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lastIdx := pfCount + pfSelectors // Save button

	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "left", "right":
		forward := msg.String() == "right"
		switch m.focusIdx {
		case pfCount:
			m.genderIdx = cycle(m.genderIdx, len(genders), forward)
			return m, nil
		case pfCount + 1:
			m.activityIdx = cycle(m.activityIdx, len(activityLevels), forward)
			return m, nil
		case pfCount + 2:
			m.goalIdx = cycle(m.goalIdx, len(goalTypesProfile), forward)
			return m, nil
		}
	case "tab", "down", "enter":
		if msg.String() == "enter" && m.focusIdx == lastIdx {
			return m.submitForm()
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

	if m.focusIdx < pfCount {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProfileModel) refocus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focusIdx < pfCount {
		return m.inputs[m.focusIdx].Focus()
	}
	return nil
}

func (m ProfileModel) submitForm() (tea.Model, tea.Cmd) {
	parse := func(idx int, label string) (float64, bool) {
		raw := strings.TrimSpace(m.inputs[idx].Value())
		if raw == "" {
			return 0, true
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			m.formErr = label + " must be a non-negative number"
			return 0, false
		}
		return v, true
	}

	weight, ok := parse(pfWeight, "weight")
	if !ok {
		return m, nil
	}
	height, ok := parse(pfHeight, "height")
	if !ok {
		return m, nil
	}
	target, ok := parse(pfTargetWeight, "target weight")
	if !ok {
		return m, nil
	}

	age := 0
	if raw := strings.TrimSpace(m.inputs[pfAge].Value()); raw != "" {
		var err error
		age, err = strconv.Atoi(raw)
		if err != nil || age < 0 {
			m.formErr = "age must be a non-negative number"
			return m, nil
		}
	}

	updated := *m.user
	updated.DisplayName = strings.TrimSpace(m.inputs[pfName].Value())
	updated.Weight = weight
	updated.Height = height
	updated.Age = age
	updated.Gender = genders[m.genderIdx]
	updated.ActivityLevel = activityLevels[m.activityIdx]
	updated.GoalType = goalTypesProfile[m.goalIdx]
	if target > 0 {
		updated.TargetWeight = &target
	} else {
		updated.TargetWeight = nil
	}

	return m, func() tea.Msg {
		return profileSavedMsg{err: m.svc.Store.UpdateUser(&updated)}
	}
}

// View renders the profile screen
func (m ProfileModel) View() string {
	if m.editing {
		return m.viewForm()
	}

	if m.loading {
		return "\n  Loading profile..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render("Profile"))

	if m.status != "" {
		sections = append(sections, successStyle.Render("  "+m.status))
	}

	u := m.user
	name := u.DisplayName
	if name == "" {
		name = "(not set)"
	}

	lines := []string{
		RenderMetric("Name", name),
		RenderMetric("Weight", metrics.FormatWeight(u.Weight, "kg")),
		RenderMetric("Height", fmt.Sprintf("%.0f cm", u.Height)),
		RenderMetric("Age", strconv.Itoa(u.Age)),
		RenderMetric("Gender", u.Gender),
		RenderMetric("Activity", u.ActivityLevel),
		RenderMetric("Goal", u.GoalType),
	}
	if u.TargetWeight != nil {
		lines = append(lines, RenderMetric("Target weight", metrics.FormatWeight(*u.TargetWeight, "kg")))
	}

	card := cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	sections = append(sections, card)

	if !u.ProfileComplete() {
		sections = append(sections, warningStyle.Render("  Weight, height, and age are needed for BMI, BMR, and TDEE."))
	}

	sections = append(sections, statusStyle.Render("\n  e: edit  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ProfileModel) viewForm() string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render("Edit Profile"))

	fieldLabels := []string{"Name", "Weight (kg)", "Height (cm)", "Age", "Target (kg)"}
	for i, in := range m.inputs {
		lines = append(lines, "  "+formLabelStyle.Render(fieldLabels[i])+in.View())
	}

	selector := func(label, value string, focused bool) string {
		v := "< " + value + " >"
		if focused {
			v = formFocusedStyle.Render(v)
		}
		return "  " + formLabelStyle.Render(label) + v
	}
	lines = append(lines, selector("Gender", genders[m.genderIdx], m.focusIdx == pfCount))
	lines = append(lines, selector("Activity", activityLevels[m.activityIdx], m.focusIdx == pfCount+1))
	lines = append(lines, selector("Goal", goalTypesProfile[m.goalIdx], m.focusIdx == pfCount+2))

	saveLabel := "[ Save ]"
	if m.focusIdx == pfCount+pfSelectors {
		saveLabel = formFocusedStyle.Render(saveLabel)
	}
	lines = append(lines, "", "  "+saveLabel)

	if m.formErr != "" {
		lines = append(lines, "", errorStyle.Render("  "+m.formErr))
	}

	lines = append(lines, "", statusStyle.Render("  tab: next field  left/right: change selection  esc: cancel"))
	return strings.Join(lines, "\n")
}
