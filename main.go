package main

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"fittrack/internal/auth"
	"fittrack/internal/config"
	"fittrack/internal/service"
	"fittrack/internal/store"
	"fittrack/internal/tui"
)

// localUserID is the single profile a local install tracks.
const localUserID = "local"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nA config file was created at:\n  %s/config.json\n\n", configDir)
		fmt.Println("To import from Strava, add your API credentials there.")
		fmt.Println("Get them from: https://www.strava.com/settings/api")
		cfg = &config.Config{}
		*cfg = config.DefaultConfig()
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Ensure the local profile exists
	if err := ensureLocalUser(db); err != nil {
		return fmt.Errorf("creating local profile: %w", err)
	}

	// Wire services
	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})
	manager := auth.NewManager(oauthCfg, db)

	svc := &tui.Services{
		Store:     db,
		Dashboard: service.NewDashboardService(db),
		Progress:  service.NewProgressService(db),
		Sync:      service.NewSyncService(db, manager),
		Auth:      manager,
		UserID:    localUserID,
	}

	// Launch TUI
	app := tui.NewApp(svc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func ensureLocalUser(db *store.Store) error {
	_, err := db.GetUser(localUserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return db.CreateUser(&store.User{
			ID:            localUserID,
			Gender:        "other",
			ActivityLevel: "moderate",
			GoalType:      "maintain",
		})
	}
	return err
}
