package service

import (
	"strings"
	"testing"
	"time"

	"fittrack/internal/strava"
)

func TestMapActivityTypes(t *testing.T) {
	tests := []struct {
		stravaType string
		want       string
	}{
		{"Run", "running"},
		{"Ride", "cycling"},
		{"Swim", "swimming"},
		{"Walk", "walking"},
		{"Hike", "walking"},
		{"WeightTraining", "weightlifting"},
		{"Workout", "hiit"},
		{"CrossFit", "hiit"},
		{"Yoga", "yoga"},
		{"Elliptical", "cardio"},
		{"StairStepper", "cardio"},
		{"Rowing", "cardio"},
		{"Kitesurf", "custom"},
		{"", "custom"},
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.stravaType, func(t *testing.T) {
			w := MapActivity(strava.Activity{ID: 1, Type: tt.stravaType, MovingTime: 600}, "u1", now)
			if w.Type != tt.want {
				t.Errorf("MapActivity(%q).Type = %q, want %q", tt.stravaType, w.Type, tt.want)
			}
		})
	}
}

func TestMapActivityCalorieFallback(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// No calories reported: 30 minutes at 8 kcal/min
	a := strava.Activity{
		ID:         42,
		Name:       "Morning Run",
		Type:       "Run",
		MovingTime: 1800,
		Distance:   5230,
		StartDate:  "2025-06-14T07:30:00Z",
	}
	w := MapActivity(a, "u1", now)

	if w.Duration != 30 {
		t.Errorf("Duration = %d, want 30", w.Duration)
	}
	if w.Calories != 240 {
		t.Errorf("Calories = %d, want 240 (fallback)", w.Calories)
	}
	if w.Source != "strava" {
		t.Errorf("Source = %q, want strava", w.Source)
	}
	if w.StravaID == nil || *w.StravaID != 42 {
		t.Errorf("StravaID = %v, want 42", w.StravaID)
	}
	if want := "Imported from Strava. Distance: 5.23km"; w.Notes != want {
		t.Errorf("Notes = %q, want %q", w.Notes, want)
	}
	if !w.Date.Equal(time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want parsed start date", w.Date)
	}

	// Reported calories win over the fallback
	a.Calories = 500
	w = MapActivity(a, "u1", now)
	if w.Calories != 500 {
		t.Errorf("Calories = %d, want 500 (reported)", w.Calories)
	}
}

func TestMapActivityDegradedFields(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Unparseable start date falls back to the import time
	w := MapActivity(strava.Activity{ID: 7, Type: "Run", MovingTime: 90, StartDate: "not-a-date"}, "u1", now)
	if !w.Date.Equal(now) {
		t.Errorf("Date = %v, want import time on bad start date", w.Date)
	}

	// Seconds round to the nearest minute
	if w.Duration != 2 {
		t.Errorf("Duration = %d, want 2 (90s rounds up)", w.Duration)
	}

	if !strings.HasPrefix(w.Notes, "Imported from Strava.") {
		t.Errorf("Notes = %q", w.Notes)
	}
}
