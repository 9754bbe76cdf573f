package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/store"
)

func TestBuildSummary(t *testing.T) {
	s := store.NewTestStore(t)
	if err := s.CreateUser(&store.User{
		ID: "u1", Weight: 70, Height: 175, Age: 25,
		Gender: "male", ActivityLevel: "moderate", GoalType: "maintain",
	}); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	d := NewDashboardService(s)
	d.now = func() time.Time { return now }

	// A workout today, one two days ago, and a meal today
	for _, w := range []store.Workout{
		{ID: uuid.NewString(), UserID: "u1", Type: "running", Name: "Run",
			Duration: 30, Calories: 300, Date: now, CreatedAt: now, Source: "manual"},
		{ID: uuid.NewString(), UserID: "u1", Type: "cycling", Name: "Ride",
			Duration: 60, Calories: 550, Date: now.AddDate(0, 0, -2), CreatedAt: now, Source: "manual"},
	} {
		if err := s.InsertWorkout(&w); err != nil {
			t.Fatalf("InsertWorkout: %v", err)
		}
	}
	if err := s.InsertMeal(&store.Meal{
		ID: uuid.NewString(), UserID: "u1", Name: "Lunch", Type: "lunch",
		Calories: 600, Date: now, CreatedAt: now,
	}); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}

	sum, err := d.BuildSummary("u1")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}

	if sum.CaloriesBurned != 300 {
		t.Errorf("CaloriesBurned = %d, want 300 (today only)", sum.CaloriesBurned)
	}
	if sum.CaloriesEaten != 600 {
		t.Errorf("CaloriesEaten = %d, want 600", sum.CaloriesEaten)
	}

	if len(sum.WeekBurned) != 7 {
		t.Fatalf("WeekBurned length = %d, want 7", len(sum.WeekBurned))
	}
	if sum.WeekBurned[6] != 300 {
		t.Errorf("WeekBurned[6] = %v, want 300 (today)", sum.WeekBurned[6])
	}
	if sum.WeekBurned[4] != 550 {
		t.Errorf("WeekBurned[4] = %v, want 550 (two days ago)", sum.WeekBurned[4])
	}
	if sum.WeekBurned[5] != 0 {
		t.Errorf("WeekBurned[5] = %v, want 0 (empty day)", sum.WeekBurned[5])
	}

	if sum.Metrics == nil {
		t.Fatal("Metrics nil for complete profile")
	}
	if sum.Metrics.BMICategory != "Normal" {
		t.Errorf("BMICategory = %q, want Normal", sum.Metrics.BMICategory)
	}
	if sum.Metrics.BMR != 1673.75 {
		t.Errorf("BMR = %v, want 1673.75", sum.Metrics.BMR)
	}
	if sum.Metrics.TDEE != 2594 {
		t.Errorf("TDEE = %d, want 2594", sum.Metrics.TDEE)
	}

	if len(sum.RecentWorkouts) != 2 || sum.RecentWorkouts[0].Name != "Run" {
		t.Errorf("RecentWorkouts = %+v", sum.RecentWorkouts)
	}

	if sum.Progress.Level != 1 {
		t.Errorf("Progress.Level = %d, want 1 for new user", sum.Progress.Level)
	}
}

func TestBuildSummaryIncompleteProfile(t *testing.T) {
	s := store.NewTestStore(t)
	if err := s.CreateUser(&store.User{
		ID: "u1", Gender: "female", ActivityLevel: "light", GoalType: "lose",
	}); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	d := NewDashboardService(s)
	sum, err := d.BuildSummary("u1")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if sum.Metrics != nil {
		t.Error("Metrics computed for incomplete profile")
	}
}
