package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/metrics"
	"fittrack/internal/progression"
	"fittrack/internal/store"
)

// streakMilestoneInterval is how many consecutive days earn the streak
// milestone bonus (every full week).
const streakMilestoneInterval = 7

// ProgressService owns XP awards, streak maintenance, and the logging
// operations that trigger them.
type ProgressService struct {
	store *store.Store
	now   func() time.Time
}

// NewProgressService creates a progress service.
func NewProgressService(s *store.Store) *ProgressService {
	return &ProgressService{store: s, now: time.Now}
}

// AwardXP adds XP to a user's progress and persists the result.
// Negative amounts are rejected; zero is a no-op that still reads the
// current state.
func (p *ProgressService) AwardXP(userID string, amount int) (progression.Progress, error) {
	if amount < 0 {
		return progression.Progress{}, fmt.Errorf("xp amount must be non-negative, got %d", amount)
	}

	stored, err := p.store.GetProgress(userID)
	if err != nil {
		return progression.Progress{}, err
	}

	updated := progression.Award(progression.Progress{
		Level:     stored.Level,
		CurrentXP: stored.CurrentXP,
		TotalXP:   stored.TotalXP,
	}, amount)

	if err := p.store.SaveProgress(&store.Progress{
		UserID:    userID,
		Level:     updated.Level,
		CurrentXP: updated.CurrentXP,
		TotalXP:   updated.TotalXP,
	}); err != nil {
		return progression.Progress{}, err
	}

	return updated, nil
}

// WorkoutInput is a manually logged workout.
type WorkoutInput struct {
	Type     string
	Name     string
	Duration int // minutes
	Calories int // 0 means estimate from the user's weight and MET table
	Notes    string
	Date     time.Time
}

// LogWorkout stores a workout, awards XP (with a first-workout-of-the-day
// bonus), and updates the user's streak. Returns the stored workout and
// the XP earned.
func (p *ProgressService) LogWorkout(userID string, in WorkoutInput) (*store.Workout, int, error) {
	user, err := p.store.GetUser(userID)
	if err != nil {
		return nil, 0, err
	}

	calories := in.Calories
	if calories <= 0 {
		calories = metrics.CaloriesBurned(in.Duration, user.Weight, in.Type)
	}

	date := in.Date
	if date.IsZero() {
		date = p.now()
	}

	firstOfDay, err := p.store.CountWorkoutsOnDay(userID, date)
	if err != nil {
		return nil, 0, err
	}

	workout := &store.Workout{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      in.Type,
		Name:      in.Name,
		Duration:  in.Duration,
		Calories:  calories,
		Notes:     in.Notes,
		Date:      date,
		CreatedAt: p.now(),
		Source:    "manual",
	}
	if err := p.store.InsertWorkout(workout); err != nil {
		return nil, 0, err
	}

	xp := progression.XPWorkoutComplete
	if firstOfDay == 0 {
		xp += progression.XPFirstWorkoutOfDay
	}

	streak, err := p.RecomputeStreak(userID)
	if err != nil {
		return nil, 0, err
	}
	if streak.Current > 0 && streak.Current%streakMilestoneInterval == 0 {
		xp += progression.XPStreakMilestone
	}

	if _, err := p.AwardXP(userID, xp); err != nil {
		return nil, 0, err
	}

	return workout, xp, nil
}

// MealInput is a manually logged meal.
type MealInput struct {
	Name     string
	Type     string
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
	Date     time.Time
}

// LogMeal stores a meal and awards the meal-logged XP.
func (p *ProgressService) LogMeal(userID string, in MealInput) (*store.Meal, int, error) {
	date := in.Date
	if date.IsZero() {
		date = p.now()
	}

	meal := &store.Meal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      in.Name,
		Type:      in.Type,
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		Date:      date,
		CreatedAt: p.now(),
	}
	if err := p.store.InsertMeal(meal); err != nil {
		return nil, 0, err
	}

	xp := progression.XPMealLogged
	if _, err := p.AwardXP(userID, xp); err != nil {
		return nil, 0, err
	}

	return meal, xp, nil
}

// GoalInput is a new goal.
type GoalInput struct {
	Type      string
	Target    float64
	Unit      string
	Frequency string
	EndDate   *time.Time
}

// AddGoal stores a new active goal.
func (p *ProgressService) AddGoal(userID string, in GoalInput) (*store.Goal, error) {
	goal := &store.Goal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      in.Type,
		Target:    in.Target,
		Unit:      in.Unit,
		Frequency: in.Frequency,
		StartDate: p.now(),
		EndDate:   in.EndDate,
		IsActive:  true,
		CreatedAt: p.now(),
	}
	if err := p.store.InsertGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateGoalProgress writes a goal's current value. The first time a
// goal reaches its target the goal-achieved XP is awarded; later
// updates never re-award it. Returns the XP earned (0 or 100).
func (p *ProgressService) UpdateGoalProgress(userID, goalID string, current float64) (int, error) {
	goal, err := p.store.GetGoal(goalID)
	if err != nil {
		return 0, err
	}

	xp := 0
	var achievedAt *time.Time
	if current >= goal.Target && goal.AchievedAt == nil {
		now := p.now()
		achievedAt = &now
		xp = progression.XPGoalAchieved
	}

	if err := p.store.UpdateGoalProgress(goalID, current, achievedAt); err != nil {
		return 0, err
	}

	if xp > 0 {
		if _, err := p.AwardXP(userID, xp); err != nil {
			return 0, err
		}
	}

	return xp, nil
}

// RecomputeStreak recalculates the user's current streak from workout
// history and maintains the monotonic longest value.
func (p *ProgressService) RecomputeStreak(userID string) (*store.Streak, error) {
	now := p.now()
	dates, err := p.store.ListWorkoutDates(userID, now.AddDate(-1, 0, 0))
	if err != nil {
		return nil, err
	}

	current := progression.CurrentStreak(dates, now)

	streak, err := p.store.GetStreak(userID)
	if err != nil {
		return nil, err
	}

	streak.Current = current
	if current > streak.Longest {
		streak.Longest = current
	}
	if len(dates) > 0 {
		latest := dates[0]
		for _, d := range dates[1:] {
			if d.After(latest) {
				latest = d
			}
		}
		streak.LastActivityDate = &latest
	}

	if err := p.store.SaveStreak(streak); err != nil {
		return nil, err
	}
	return streak, nil
}

// SetNowFunc overrides the service clock. Tests only.
func (p *ProgressService) SetNowFunc(now func() time.Time) {
	p.now = now
}
