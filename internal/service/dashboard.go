package service

import (
	"time"

	"fittrack/internal/metrics"
	"fittrack/internal/progression"
	"fittrack/internal/store"
)

// DashboardService assembles the read models the TUI screens render.
type DashboardService struct {
	store *store.Store
	now   func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(s *store.Store) *DashboardService {
	return &DashboardService{store: s, now: time.Now}
}

// HealthMetrics are the derived numbers for a complete profile.
type HealthMetrics struct {
	BMI         float64
	BMICategory string
	BMIColor    string
	BMR         float64
	TDEE        int
}

// Summary is everything the dashboard screen shows.
type Summary struct {
	User           *store.User
	Progress       progression.Progress
	Streak         *store.Streak
	Metrics        *HealthMetrics // nil until the profile is complete
	CaloriesBurned int            // today
	CaloriesEaten  int            // today
	WeekBurned     []float64      // last 7 days, oldest first
	RecentWorkouts []store.Workout
}

// BuildSummary gathers the dashboard data for a user.
func (d *DashboardService) BuildSummary(userID string) (*Summary, error) {
	user, err := d.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	stored, err := d.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}

	streak, err := d.store.GetStreak(userID)
	if err != nil {
		return nil, err
	}

	now := d.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	burned, err := d.store.SumCaloriesBetween(userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	eaten, err := d.store.SumMealCaloriesBetween(userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	week, err := d.weekBurned(userID, dayStart)
	if err != nil {
		return nil, err
	}

	recent, err := d.store.ListWorkouts(userID, 5, 0)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		User: user,
		Progress: progression.Progress{
			Level:     stored.Level,
			CurrentXP: stored.CurrentXP,
			TotalXP:   stored.TotalXP,
		},
		Streak:         streak,
		CaloriesBurned: burned,
		CaloriesEaten:  eaten,
		WeekBurned:     week,
		RecentWorkouts: recent,
	}

	if user.ProfileComplete() {
		summary.Metrics = computeHealthMetrics(user)
	}

	return summary, nil
}

// weekBurned returns daily workout calorie totals for the 7 days ending
// today, oldest first. Days with no workouts are zero, so the chart
// keeps its shape.
func (d *DashboardService) weekBurned(userID string, dayStart time.Time) ([]float64, error) {
	series := make([]float64, 7)
	for i := 0; i < 7; i++ {
		from := dayStart.AddDate(0, 0, i-6)
		total, err := d.store.SumCaloriesBetween(userID, from, from.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		series[i] = float64(total)
	}
	return series, nil
}

func computeHealthMetrics(u *store.User) *HealthMetrics {
	bmi := metrics.BMI(u.Weight, u.Height)
	category, color := metrics.BMICategory(bmi)
	bmr := metrics.BMR(u.Weight, u.Height, u.Age, u.Gender)
	return &HealthMetrics{
		BMI:         bmi,
		BMICategory: category,
		BMIColor:    color,
		BMR:         bmr,
		TDEE:        metrics.TDEE(bmr, u.ActivityLevel),
	}
}
