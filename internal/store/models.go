package store

import "time"

// User is a profile row. Weight is kg, height is cm.
type User struct {
	ID            string
	Email         string
	DisplayName   string
	Weight        float64
	Height        float64
	Age           int
	Gender        string
	ActivityLevel string
	GoalType      string
	TargetWeight  *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileComplete reports whether the user has entered the anthropometric
// fields the metric formulas need.
func (u *User) ProfileComplete() bool {
	return u.Weight > 0 && u.Height > 0 && u.Age > 0
}

// Progress is the persisted XP and level state for a user.
type Progress struct {
	UserID    string
	Level     int
	CurrentXP int
	TotalXP   int
}

// Streak is the persisted streak state for a user.
type Streak struct {
	UserID           string
	Current          int
	Longest          int
	LastActivityDate *time.Time
}

// StravaToken is a user's Strava connection credential. AthleteID is
// captured at first connection and preserved across refreshes.
type StravaToken struct {
	UserID       string
	AthleteID    int64
	AthleteName  string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	ConnectedAt  time.Time
	LastSync     *time.Time
}

// Workout is a logged workout, either manual or imported from Strava.
type Workout struct {
	ID        string
	UserID    string
	Type      string
	Name      string
	Duration  int // minutes
	Calories  int
	Notes     string
	Date      time.Time
	CreatedAt time.Time
	Source    string // "manual" or "strava"
	StravaID  *int64
}

// Meal is a logged meal. Macros are grams.
type Meal struct {
	ID        string
	UserID    string
	Name      string
	Type      string // breakfast, lunch, dinner, snack
	Calories  int
	Protein   float64
	Carbs     float64
	Fat       float64
	Date      time.Time
	CreatedAt time.Time
}

// Goal is a user goal with a numeric target.
type Goal struct {
	ID         string
	UserID     string
	Type       string
	Target     float64
	Current    float64
	Unit       string
	Frequency  string // daily, weekly, monthly
	StartDate  time.Time
	EndDate    *time.Time
	IsActive   bool
	AchievedAt *time.Time
	CreatedAt  time.Time
}

// Achieved reports whether the goal has reached its target.
func (g *Goal) Achieved() bool {
	return g.Current >= g.Target
}
