package tui

import (
	"fmt"
	"time"

	"fittrack/internal/metrics"
	"fittrack/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	svc     *Services
	summary *service.Summary
	loading bool
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(svc *Services) DashboardModel {
	return DashboardModel{
		svc:     svc,
		loading: true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	summary, err := m.svc.Dashboard.BuildSummary(m.svc.UserID)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{summary: summary}
}

type dashboardDataMsg struct {
	summary *service.Summary
	err     error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.summary == nil {
		return "\n  No data available."
	}

	var sections []string

	// Top row: level progress and today's calories side by side
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLevelCard(), "  ", m.renderTodayCard())
	sections = append(sections, topRow)

	// Health metrics, when the profile has enough data
	if m.summary.Metrics != nil {
		sections = append(sections, m.renderHealthCard())
	} else {
		sections = append(sections, statusStyle.Render("  Complete your profile ('6') to see BMI, BMR, and TDEE."))
	}

	// Weekly calorie chart
	if hasNonZero(m.summary.WeekBurned) {
		sections = append(sections, m.renderChart())
	}

	// Recent workouts
	sections = append(sections, m.renderRecentWorkouts())

	sections = append(sections, statusStyle.Render("Press 'r' to refresh, '2' to log a workout, '5' to sync Strava"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderLevelCard() string {
	title := cardTitleStyle.Render("Progress")
	p := m.summary.Progress

	bar := RenderProgressBar(float64(p.CurrentXP)/float64(p.XPToNextLevel()), 24)

	streakLine := "No active streak"
	if m.summary.Streak.Current > 0 {
		streakLine = streakStyle.Render(fmt.Sprintf("%d day streak", m.summary.Streak.Current))
	}

	lines := []string{
		levelStyle.Render(fmt.Sprintf("Level %d", p.Level)),
		bar,
		statusStyle.Render(fmt.Sprintf("%d / %d XP", p.CurrentXP, p.XPToNextLevel())),
		"",
		streakLine,
		statusStyle.Render(fmt.Sprintf("Longest: %d days", m.summary.Streak.Longest)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderTodayCard() string {
	title := cardTitleStyle.Render("Today")

	lines := []string{
		RenderMetric("Burned", metrics.FormatCalories(float64(m.summary.CaloriesBurned))),
		RenderMetric("Consumed", metrics.FormatCalories(float64(m.summary.CaloriesEaten))),
	}
	if m.summary.Metrics != nil {
		net := m.summary.CaloriesEaten - m.summary.CaloriesBurned - m.summary.Metrics.TDEE
		lines = append(lines, RenderMetric("Net vs TDEE", fmt.Sprintf("%+d kcal", net)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderHealthCard() string {
	title := cardTitleStyle.Render("Health Metrics")
	h := m.summary.Metrics

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(h.BMIColor))

	lines := []string{
		RenderMetric("BMI", fmt.Sprintf("%.1f ", h.BMI)+categoryStyle.Render(h.BMICategory)),
		RenderMetric("BMR", fmt.Sprintf("%.0f kcal/day", h.BMR)),
		RenderMetric("TDEE", fmt.Sprintf("%d kcal/day", h.TDEE)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(46).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Calories Burned - Last 7 Days")

	graph := asciigraph.Plot(m.summary.WeekBurned,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentWorkouts() string {
	title := cardTitleStyle.Render("Recent Workouts")

	if len(m.summary.RecentWorkouts) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No workouts yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-12s  %-22s  %-14s  %8s  %8s",
		"Date", "Name", "Type", "Duration", "Calories"))

	now := time.Now()
	rows := []string{header}
	for _, w := range m.summary.RecentWorkouts {
		row := tableRowStyle.Render(fmt.Sprintf("%-12s  %-22s  %-14s  %8s  %8s",
			metrics.FormatDate(w.Date, now),
			truncateName(w.Name, 22),
			w.Type,
			metrics.FormatDuration(w.Duration),
			metrics.FormatCalories(float64(w.Calories)),
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func hasNonZero(series []float64) bool {
	for _, v := range series {
		if v != 0 {
			return true
		}
	}
	return false
}
