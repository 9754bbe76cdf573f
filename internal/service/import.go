package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/store"
	"fittrack/internal/strava"
)

// stravaTypeMap translates Strava activity types to workout types.
// Unrecognized types become "custom".
var stravaTypeMap = map[string]string{
	"Run":            "running",
	"Ride":           "cycling",
	"Swim":           "swimming",
	"Walk":           "walking",
	"Hike":           "walking",
	"WeightTraining": "weightlifting",
	"Workout":        "hiit",
	"Yoga":           "yoga",
	"CrossFit":       "hiit",
	"Elliptical":     "cardio",
	"StairStepper":   "cardio",
	"Rowing":         "cardio",
}

// fallbackCaloriesPerMinute is the flat estimate used when Strava does
// not report calories. It deliberately does not share the MET-based
// path used for manual workouts; unifying the two would silently change
// historical imports.
const fallbackCaloriesPerMinute = 8

// MapActivity converts a Strava activity into a workout record for the
// given user. Malformed or missing optional fields degrade to defaults;
// the mapper itself never fails.
func MapActivity(a strava.Activity, userID string, now time.Time) *store.Workout {
	durationMinutes := int(math.Round(float64(a.MovingTime) / 60))

	calories := int(math.Round(a.Calories))
	if calories <= 0 {
		calories = durationMinutes * fallbackCaloriesPerMinute
	}

	workoutType, ok := stravaTypeMap[a.Type]
	if !ok {
		workoutType = "custom"
	}

	date := now
	if parsed, err := time.Parse(time.RFC3339, a.StartDate); err == nil {
		date = parsed
	}

	stravaID := a.ID
	return &store.Workout{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      workoutType,
		Name:      a.Name,
		Duration:  durationMinutes,
		Calories:  calories,
		Notes:     fmt.Sprintf("Imported from Strava. Distance: %.2fkm", a.Distance/1000),
		Date:      date,
		CreatedAt: now,
		Source:    "strava",
		StravaID:  &stravaID,
	}
}
