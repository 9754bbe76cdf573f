package store

import (
	"errors"
	"testing"
	"time"
)

func seedUser(t *testing.T, s *Store, id string) {
	t.Helper()
	u := &User{
		ID:            id,
		Email:         id + "@example.com",
		Weight:        70,
		Height:        175,
		Age:           25,
		Gender:        "male",
		ActivityLevel: "moderate",
		GoalType:      "maintain",
	}
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
}

func TestUserLifecycle(t *testing.T) {
	s := NewTestStore(t)

	if _, err := s.GetUser("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetUser(missing) err = %v, want ErrUserNotFound", err)
	}

	seedUser(t, s, "u1")

	u, err := s.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Weight != 70 || u.ActivityLevel != "moderate" {
		t.Errorf("unexpected user: %+v", u)
	}
	if !u.ProfileComplete() {
		t.Error("seeded profile should be complete")
	}

	u.Weight = 68.5
	if err := s.UpdateUser(u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	u, _ = s.GetUser("u1")
	if u.Weight != 68.5 {
		t.Errorf("weight after update = %v, want 68.5", u.Weight)
	}

	// Creating a user also seeds progress and streak rows
	p, err := s.GetProgress("u1")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if p.Level != 1 || p.TotalXP != 0 {
		t.Errorf("starting progress = %+v", p)
	}
	st, err := s.GetStreak("u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if st.Current != 0 || st.Longest != 0 {
		t.Errorf("starting streak = %+v", st)
	}
}

func TestStravaTokenLifecycle(t *testing.T) {
	s := NewTestStore(t)
	seedUser(t, s, "u1")

	if _, err := s.GetStravaToken("u1"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("GetStravaToken err = %v, want ErrNoToken", err)
	}

	expires := time.Now().Add(6 * time.Hour).Truncate(time.Second)
	tok := &StravaToken{
		UserID:       "u1",
		AthleteID:    12345,
		AthleteName:  "Ada Lovelace",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    expires,
		ConnectedAt:  time.Now().Truncate(time.Second),
	}
	if err := s.SaveStravaToken(tok); err != nil {
		t.Fatalf("SaveStravaToken: %v", err)
	}

	got, err := s.GetStravaToken("u1")
	if err != nil {
		t.Fatalf("GetStravaToken: %v", err)
	}
	if got.AthleteID != 12345 || got.AccessToken != "access-1" {
		t.Errorf("unexpected token: %+v", got)
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, expires)
	}
	if got.LastSync != nil {
		t.Error("LastSync should be nil before first sync")
	}

	// Token rotation preserves athlete identity
	newExpires := expires.Add(6 * time.Hour)
	if err := s.UpdateStravaTokens("u1", "access-2", "refresh-2", newExpires); err != nil {
		t.Fatalf("UpdateStravaTokens: %v", err)
	}
	got, _ = s.GetStravaToken("u1")
	if got.AccessToken != "access-2" || got.RefreshToken != "refresh-2" {
		t.Errorf("tokens not rotated: %+v", got)
	}
	if got.AthleteID != 12345 || got.AthleteName != "Ada Lovelace" {
		t.Errorf("athlete identity not preserved: %+v", got)
	}

	if err := s.UpdateLastSync("u1", time.Now()); err != nil {
		t.Fatalf("UpdateLastSync: %v", err)
	}
	got, _ = s.GetStravaToken("u1")
	if got.LastSync == nil {
		t.Error("LastSync not recorded")
	}

	// Disconnect is idempotent
	if err := s.DeleteStravaToken("u1"); err != nil {
		t.Fatalf("DeleteStravaToken: %v", err)
	}
	if err := s.DeleteStravaToken("u1"); err != nil {
		t.Fatalf("DeleteStravaToken (second call): %v", err)
	}
	if _, err := s.GetStravaToken("u1"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("token still present after disconnect: %v", err)
	}

	// Rotating tokens with no record stored fails
	if err := s.UpdateStravaTokens("u1", "a", "r", newExpires); !errors.Is(err, ErrNoToken) {
		t.Fatalf("UpdateStravaTokens(disconnected) err = %v, want ErrNoToken", err)
	}
}

func TestWorkoutInsertAndQuery(t *testing.T) {
	s := NewTestStore(t)
	seedUser(t, s, "u1")

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	for i, w := range []Workout{
		{ID: "w1", UserID: "u1", Type: "running", Name: "Morning Run", Duration: 30, Calories: 294, Date: now},
		{ID: "w2", UserID: "u1", Type: "yoga", Name: "Evening Yoga", Duration: 45, Calories: 118, Date: now.AddDate(0, 0, -1)},
		{ID: "w3", UserID: "u1", Type: "cycling", Name: "Ride", Duration: 60, Calories: 551, Date: now.AddDate(0, 0, -2)},
	} {
		w.Source = "manual"
		w.CreatedAt = now
		if err := s.InsertWorkout(&w); err != nil {
			t.Fatalf("InsertWorkout %d: %v", i, err)
		}
	}

	workouts, err := s.ListWorkouts("u1", 10, 0)
	if err != nil {
		t.Fatalf("ListWorkouts: %v", err)
	}
	if len(workouts) != 3 {
		t.Fatalf("ListWorkouts returned %d, want 3", len(workouts))
	}
	if workouts[0].ID != "w1" {
		t.Errorf("expected newest first, got %q", workouts[0].ID)
	}

	dates, err := s.ListWorkoutDates("u1", now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("ListWorkoutDates: %v", err)
	}
	if len(dates) != 3 {
		t.Errorf("ListWorkoutDates returned %d, want 3", len(dates))
	}

	count, err := s.CountWorkoutsOnDay("u1", now)
	if err != nil {
		t.Fatalf("CountWorkoutsOnDay: %v", err)
	}
	if count != 1 {
		t.Errorf("CountWorkoutsOnDay = %d, want 1", count)
	}

	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	total, err := s.SumCaloriesBetween("u1", dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SumCaloriesBetween: %v", err)
	}
	if total != 294 {
		t.Errorf("SumCaloriesBetween = %d, want 294", total)
	}
}

func TestWorkoutDayBucketsMixedZones(t *testing.T) {
	// Imported workouts carry UTC dates while manual ones carry the
	// local offset. Both are stored in UTC, so day-bucket queries with
	// local bounds see them on the same calendar day.
	s := NewTestStore(t)
	seedUser(t, s, "u1")

	local := time.FixedZone("UTC+12", 12*60*60)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, local)

	stravaID := int64(111)
	imported := &Workout{
		ID: "w1", UserID: "u1", Type: "running", Name: "Imported Run",
		Duration: 30, Calories: 240,
		// 10:00 today in UTC+12, as Strava reports it
		Date:      time.Date(2025, 6, 14, 22, 0, 0, 0, time.UTC),
		CreatedAt: now, Source: "strava", StravaID: &stravaID,
	}
	manual := &Workout{
		ID: "w2", UserID: "u1", Type: "yoga", Name: "Evening Yoga",
		Duration: 20, Calories: 53,
		Date:      time.Date(2025, 6, 15, 9, 30, 0, 0, local),
		CreatedAt: now, Source: "manual",
	}
	for _, w := range []*Workout{imported, manual} {
		if err := s.InsertWorkout(w); err != nil {
			t.Fatalf("InsertWorkout %s: %v", w.ID, err)
		}
	}

	count, err := s.CountWorkoutsOnDay("u1", now)
	if err != nil {
		t.Fatalf("CountWorkoutsOnDay: %v", err)
	}
	if count != 2 {
		t.Errorf("CountWorkoutsOnDay = %d, want 2", count)
	}

	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, local)
	total, err := s.SumCaloriesBetween("u1", dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SumCaloriesBetween: %v", err)
	}
	if total != 293 {
		t.Errorf("SumCaloriesBetween = %d, want 293", total)
	}

	// The import is the later instant but its UTC string compares lower
	// than the manual workout's +12:00 string; normalized storage keeps
	// the order right
	dates, err := s.ListWorkoutDates("u1", now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("ListWorkoutDates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("ListWorkoutDates returned %d, want 2", len(dates))
	}
	if !dates[0].Equal(imported.Date) {
		t.Errorf("newest date = %v, want %v", dates[0], imported.Date)
	}
}

func TestWorkoutStravaDedup(t *testing.T) {
	s := NewTestStore(t)
	seedUser(t, s, "u1")

	stravaID := int64(987654)
	now := time.Now()
	w := &Workout{
		ID: "w1", UserID: "u1", Type: "running", Name: "Imported Run",
		Duration: 30, Calories: 240, Date: now, CreatedAt: now,
		Source: "strava", StravaID: &stravaID,
	}
	if err := s.InsertWorkout(w); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	dup := *w
	dup.ID = "w2"
	if err := s.InsertWorkout(&dup); !errors.Is(err, ErrDuplicateWorkout) {
		t.Fatalf("duplicate insert err = %v, want ErrDuplicateWorkout", err)
	}

	// Same Strava id for a different user is fine
	seedUser(t, s, "u2")
	other := *w
	other.ID = "w3"
	other.UserID = "u2"
	if err := s.InsertWorkout(&other); err != nil {
		t.Fatalf("insert for other user: %v", err)
	}

	// Manual workouts have no Strava id and never collide
	for _, id := range []string{"m1", "m2"} {
		m := &Workout{ID: id, UserID: "u1", Type: "yoga", Name: "Yoga",
			Duration: 20, Calories: 53, Date: now, CreatedAt: now, Source: "manual"}
		if err := s.InsertWorkout(m); err != nil {
			t.Fatalf("manual insert %s: %v", id, err)
		}
	}
}

func TestProgressAndStreakPersistence(t *testing.T) {
	s := NewTestStore(t)
	seedUser(t, s, "u1")

	p := &Progress{UserID: "u1", Level: 3, CurrentXP: 50, TotalXP: 300}
	if err := s.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	got, err := s.GetProgress("u1")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if *got != *p {
		t.Errorf("progress = %+v, want %+v", got, p)
	}

	last := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	st := &Streak{UserID: "u1", Current: 4, Longest: 9, LastActivityDate: &last}
	if err := s.SaveStreak(st); err != nil {
		t.Fatalf("SaveStreak: %v", err)
	}
	gotSt, err := s.GetStreak("u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if gotSt.Current != 4 || gotSt.Longest != 9 {
		t.Errorf("streak = %+v", gotSt)
	}
	if gotSt.LastActivityDate == nil || !gotSt.LastActivityDate.Equal(last) {
		t.Errorf("LastActivityDate = %v, want %v", gotSt.LastActivityDate, last)
	}
}

func TestMealsAndGoals(t *testing.T) {
	s := NewTestStore(t)
	seedUser(t, s, "u1")

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	meal := &Meal{
		ID: "m1", UserID: "u1", Name: "Oatmeal", Type: "breakfast",
		Calories: 350, Protein: 12, Carbs: 60, Fat: 6,
		Date: now, CreatedAt: now,
	}
	if err := s.InsertMeal(meal); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}

	meals, err := s.ListMeals("u1", 10, 0)
	if err != nil {
		t.Fatalf("ListMeals: %v", err)
	}
	if len(meals) != 1 || meals[0].Name != "Oatmeal" {
		t.Errorf("meals = %+v", meals)
	}

	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	total, err := s.SumMealCaloriesBetween("u1", dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SumMealCaloriesBetween: %v", err)
	}
	if total != 350 {
		t.Errorf("meal calories = %d, want 350", total)
	}

	goal := &Goal{
		ID: "g1", UserID: "u1", Type: "workouts", Target: 5, Current: 0,
		Unit: "workouts", Frequency: "weekly", StartDate: now, IsActive: true,
		CreatedAt: now,
	}
	if err := s.InsertGoal(goal); err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}

	achieved := now.AddDate(0, 0, 3)
	if err := s.UpdateGoalProgress("g1", 5, &achieved); err != nil {
		t.Fatalf("UpdateGoalProgress: %v", err)
	}
	g, err := s.GetGoal("g1")
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if !g.Achieved() {
		t.Errorf("goal should be achieved: %+v", g)
	}
	if g.AchievedAt == nil {
		t.Error("AchievedAt not recorded")
	}

	// achieved_at is first-write-wins
	later := achieved.AddDate(0, 0, 2)
	if err := s.UpdateGoalProgress("g1", 7, &later); err != nil {
		t.Fatalf("UpdateGoalProgress (second): %v", err)
	}
	g, _ = s.GetGoal("g1")
	if !g.AchievedAt.Equal(achieved) {
		t.Errorf("AchievedAt overwritten: %v, want %v", g.AchievedAt, achieved)
	}

	if err := s.DeactivateGoal("g1"); err != nil {
		t.Fatalf("DeactivateGoal: %v", err)
	}
	goals, _ := s.ListGoals("u1")
	if len(goals) != 1 || goals[0].IsActive {
		t.Errorf("goal should be inactive: %+v", goals)
	}
}
