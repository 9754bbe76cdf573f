package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Display.WeightUnit != "kg" {
		t.Errorf("Display.WeightUnit = %q, want %q", cfg.Display.WeightUnit, "kg")
	}
	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}

	// Strava config should be empty by default
	if cfg.Strava.ClientID != "" {
		t.Errorf("Strava.ClientID should be empty, got %q", cfg.Strava.ClientID)
	}
	if cfg.Strava.ClientSecret != "" {
		t.Errorf("Strava.ClientSecret should be empty, got %q", cfg.Strava.ClientSecret)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "empty config is valid",
			config:      Config{},
			expectError: false,
		},
		{
			name: "valid units",
			config: Config{
				Display: DisplayConfig{WeightUnit: "lbs", DistanceUnit: "mi"},
			},
			expectError: false,
		},
		{
			name: "bad weight unit",
			config: Config{
				Display: DisplayConfig{WeightUnit: "stone"},
			},
			expectError: true,
			errContains: "weight_unit",
		},
		{
			name: "bad distance unit",
			config: Config{
				Display: DisplayConfig{DistanceUnit: "furlongs"},
			},
			expectError: true,
			errContains: "distance_unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestValidateStrava(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name: "valid credentials",
			config: Config{
				Strava: StravaConfig{ClientID: "12345", ClientSecret: "abc123secret"},
			},
			expectError: false,
		},
		{
			name:        "empty client ID",
			config:      Config{Strava: StravaConfig{ClientSecret: "abc123secret"}},
			expectError: true,
			errContains: "client_id",
		},
		{
			name: "placeholder client ID",
			config: Config{
				Strava: StravaConfig{ClientID: "YOUR_CLIENT_ID", ClientSecret: "abc123secret"},
			},
			expectError: true,
			errContains: "client_id",
		},
		{
			name:        "empty client secret",
			config:      Config{Strava: StravaConfig{ClientID: "12345"}},
			expectError: true,
			errContains: "client_secret",
		},
		{
			name: "placeholder client secret",
			config: Config{
				Strava: StravaConfig{ClientID: "12345", ClientSecret: "YOUR_CLIENT_SECRET"},
			},
			expectError: true,
			errContains: "client_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateStrava()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}
