package tui

import (
	"fittrack/internal/auth"
	"fittrack/internal/service"
	"fittrack/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenWorkouts
	ScreenNutrition
	ScreenGoals
	ScreenStrava
	ScreenProfile
	ScreenHelp
)

// Services bundles everything the screens need
type Services struct {
	Store     *store.Store
	Dashboard *service.DashboardService
	Progress  *service.ProgressService
	Sync      *service.SyncService
	Auth      *auth.Manager
	UserID    string
}

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard DashboardModel
	workouts  WorkoutsModel
	nutrition NutritionModel
	goals     GoalsModel
	strava    StravaModel
	profile   ProfileModel
	help      HelpModel

	svc *Services

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(svc *Services) *App {
	return &App{
		screen:    ScreenDashboard,
		svc:       svc,
		dashboard: NewDashboardModel(svc),
		workouts:  NewWorkoutsModel(svc),
		nutrition: NewNutritionModel(svc),
		goals:     NewGoalsModel(svc),
		strava:    NewStravaModel(svc),
		profile:   NewProfileModel(svc),
		help:      NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// editing reports whether the current screen has a form open, so global
// keybindings don't swallow typed digits.
func (a *App) editing() bool {
	switch a.screen {
	case ScreenWorkouts:
		return a.workouts.editing
	case ScreenNutrition:
		return a.nutrition.editing
	case ScreenGoals:
		return a.goals.editing
	case ScreenProfile:
		return a.profile.editing
	case ScreenStrava:
		return a.strava.busy
	}
	return false
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !a.editing() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				a.dashboard = NewDashboardModel(a.svc)
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenWorkouts
				return a, a.workouts.Init()
			case "3":
				a.screen = ScreenNutrition
				return a, a.nutrition.Init()
			case "4":
				a.screen = ScreenGoals
				return a, a.goals.Init()
			case "5":
				a.screen = ScreenStrava
				return a, a.strava.Init()
			case "6":
				a.screen = ScreenProfile
				return a, a.profile.Init()
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case SyncCompleteMsg:
		// Refresh dashboard after a successful sync
		a.screen = ScreenDashboard
		a.dashboard = NewDashboardModel(a.svc)
		return a, a.dashboard.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenWorkouts:
		var m tea.Model
		m, cmd = a.workouts.Update(msg)
		a.workouts = m.(WorkoutsModel)
	case ScreenNutrition:
		var m tea.Model
		m, cmd = a.nutrition.Update(msg)
		a.nutrition = m.(NutritionModel)
	case ScreenGoals:
		var m tea.Model
		m, cmd = a.goals.Update(msg)
		a.goals = m.(GoalsModel)
	case ScreenStrava:
		var m tea.Model
		m, cmd = a.strava.Update(msg)
		a.strava = m.(StravaModel)
	case ScreenProfile:
		var m tea.Model
		m, cmd = a.profile.Update(msg)
		a.profile = m.(ProfileModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("FitTrack")
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenWorkouts:
		content = a.workouts.View()
	case ScreenNutrition:
		content = a.nutrition.View()
	case ScreenGoals:
		content = a.goals.View()
	case ScreenStrava:
		content = a.strava.View()
	case ScreenProfile:
		content = a.profile.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Workouts", ScreenWorkouts},
		{"3", "Nutrition", ScreenNutrition},
		{"4", "Goals", ScreenGoals},
		{"5", "Strava", ScreenStrava},
		{"6", "Profile", ScreenProfile},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// SyncCompleteMsg is sent when a Strava sync finishes successfully
type SyncCompleteMsg struct{}
