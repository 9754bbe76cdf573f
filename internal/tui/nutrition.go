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

var mealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// NutritionModel is the meal log screen.
type NutritionModel struct {
	svc *Services

	meals    []store.Meal
	offset   int
	pageSize int
	loading  bool
	err      error

	editing   bool
	inputs    []textinput.Model
	focusIdx  int
	typeIdx   int
	formErr   string
	lastAward string
}

// Form field indexes
const (
	mfName = iota
	mfCalories
	mfProtein
	mfCarbs
	mfFat
	mfCount
)

// NewNutritionModel creates a new nutrition model
func NewNutritionModel(svc *Services) NutritionModel {
	inputs := make([]textinput.Model, mfCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 48
	}
	inputs[mfName].Placeholder = "Oatmeal with berries"
	inputs[mfCalories].Placeholder = "350"
	inputs[mfCalories].CharLimit = 5
	inputs[mfProtein].Placeholder = "grams"
	inputs[mfCarbs].Placeholder = "grams"
	inputs[mfFat].Placeholder = "grams"

	return NutritionModel{
		svc:      svc,
		pageSize: 12,
		loading:  true,
		inputs:   inputs,
	}
}

// Init initializes the nutrition screen
func (m NutritionModel) Init() tea.Cmd {
	return m.loadPage
}

type mealsLoadedMsg struct {
	meals []store.Meal
	err   error
}

func (m NutritionModel) loadPage() tea.Msg {
	meals, err := m.svc.Store.ListMeals(m.svc.UserID, m.pageSize, m.offset)
	return mealsLoadedMsg{meals: meals, err: err}
}

type mealLoggedMsg struct {
	xp  int
	err error
}

// Update handles messages
func (m NutritionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mealsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.meals = msg.meals
		return m, nil

	case mealLoggedMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.editing = false
		m.lastAward = fmt.Sprintf("Meal logged! +%d XP", msg.xp)
		m.loading = true
		return m, m.loadPage

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "a", "n":
			m.openForm()
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadPage
		}
	}
	return m, nil
}

func (m *NutritionModel) openForm() {
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

func (m NutritionModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "left", "right":
		if m.focusIdx == 0 {
			if msg.String() == "right" {
				m.typeIdx = (m.typeIdx + 1) % len(mealTypes)
			} else {
				m.typeIdx = (m.typeIdx + len(mealTypes) - 1) % len(mealTypes)
			}
			return m, nil
		}
	case "tab", "down", "enter":
		if msg.String() == "enter" && m.focusIdx == mfCount+1 {
			return m.submitForm()
		}
		m.focusIdx++
		if m.focusIdx > mfCount+1 {
			m.focusIdx = 0
		}
		return m, m.refocus()
	case "shift+tab", "up":
		m.focusIdx--
		if m.focusIdx < 0 {
			m.focusIdx = mfCount + 1
		}
		return m, m.refocus()
	}

	if m.focusIdx > 0 && m.focusIdx <= mfCount {
		var cmd tea.Cmd
		m.inputs[m.focusIdx-1], cmd = m.inputs[m.focusIdx-1].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *NutritionModel) refocus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focusIdx > 0 && m.focusIdx <= mfCount {
		return m.inputs[m.focusIdx-1].Focus()
	}
	return nil
}

func (m NutritionModel) submitForm() (tea.Model, tea.Cmd) {
	calories, err := strconv.Atoi(strings.TrimSpace(m.inputs[mfCalories].Value()))
	if err != nil || calories <= 0 {
		m.formErr = "calories must be a positive number"
		return m, nil
	}

	macro := func(idx int) (float64, error) {
		raw := strings.TrimSpace(m.inputs[idx].Value())
		if raw == "" {
			return 0, nil
		}
		return strconv.ParseFloat(raw, 64)
	}

	protein, err := macro(mfProtein)
	if err != nil {
		m.formErr = "protein must be a number of grams"
		return m, nil
	}
	carbs, err := macro(mfCarbs)
	if err != nil {
		m.formErr = "carbs must be a number of grams"
		return m, nil
	}
	fat, err := macro(mfFat)
	if err != nil {
		m.formErr = "fat must be a number of grams"
		return m, nil
	}

	input := service.MealInput{
		Name:     strings.TrimSpace(m.inputs[mfName].Value()),
		Type:     mealTypes[m.typeIdx],
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	}
	if input.Name == "" {
		m.formErr = "name is required"
		return m, nil
	}

	return m, func() tea.Msg {
		_, xp, err := m.svc.Progress.LogMeal(m.svc.UserID, input)
		return mealLoggedMsg{xp: xp, err: err}
	}
}

// View renders the nutrition screen
func (m NutritionModel) View() string {
	if m.editing {
		return m.viewForm()
	}

	if m.loading {
		return "\n  Loading meals..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render("Nutrition Log"))

	if m.lastAward != "" {
		sections = append(sections, successStyle.Render("  "+m.lastAward))
	}

	if len(m.meals) == 0 {
		sections = append(sections, "\n  No meals logged. Press 'a' to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-12s  %-24s  %-10s  %8s  %6s  %6s  %6s",
		"Date", "Name", "Type", "Calories", "P (g)", "C (g)", "F (g)"))
	sections = append(sections, header)

	now := time.Now()
	for _, meal := range m.meals {
		row := tableRowStyle.Render(fmt.Sprintf("%-12s  %-24s  %-10s  %8s  %6.0f  %6.0f  %6.0f",
			metrics.FormatDate(meal.Date, now),
			truncateName(meal.Name, 24),
			meal.Type,
			metrics.FormatCalories(float64(meal.Calories)),
			meal.Protein,
			meal.Carbs,
			meal.Fat,
		))
		sections = append(sections, row)
	}

	sections = append(sections, statusStyle.Render("\n  a: add meal  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m NutritionModel) viewForm() string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render("Log Meal"))

	typeLabel := formLabelStyle.Render("Meal")
	typeValue := "< " + mealTypes[m.typeIdx] + " >"
	if m.focusIdx == 0 {
		typeValue = formFocusedStyle.Render(typeValue)
	}
	lines = append(lines, "  "+typeLabel+typeValue)

	fieldLabels := []string{"Name", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}
	for i, in := range m.inputs {
		lines = append(lines, "  "+formLabelStyle.Render(fieldLabels[i])+in.View())
	}

	saveLabel := "[ Save ]"
	if m.focusIdx == mfCount+1 {
		saveLabel = formFocusedStyle.Render(saveLabel)
	}
	lines = append(lines, "", "  "+saveLabel)

	if m.formErr != "" {
		lines = append(lines, "", errorStyle.Render("  "+m.formErr))
	}

	lines = append(lines, "", statusStyle.Render("  tab: next field  left/right: change meal type  esc: cancel"))
	return strings.Join(lines, "\n")
}
