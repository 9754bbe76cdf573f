package progression

import "math"

// XP awards for user actions. Logging a workout is worth 50 XP, with a
// 25 XP bonus for the first workout of the day.
const (
	XPWorkoutComplete   = 50
	XPGoalAchieved      = 100
	XPStreakMilestone   = 75
	XPFirstWorkoutOfDay = 25
	XPPersonalRecord    = 150
	XPMealLogged        = 10
	XPWaterGoalMet      = 15
)

// Progress is a user's XP and level state. CurrentXP is always in
// [0, XPForLevel(Level)); TotalXP is the lifetime sum of all awards.
type Progress struct {
	Level     int
	CurrentXP int
	TotalXP   int
}

// XPToNextLevel returns the threshold for the progress's current level.
func (p Progress) XPToNextLevel() int {
	return XPForLevel(p.Level)
}

// XPForLevel returns the XP needed to advance past the given level.
// The curve is geometric: level 1 needs 100, level 2 needs 150,
// level 3 needs 225 (floor applied at each level).
func XPForLevel(level int) int {
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// Award adds XP to a progress state, carrying overflow into level-ups.
// An amount of 0 is a no-op. Negative amounts are a caller error and are
// not checked here; callers must reject them before awarding.
func Award(p Progress, amount int) Progress {
	p.CurrentXP += amount
	p.TotalXP += amount

	for p.CurrentXP >= XPForLevel(p.Level) {
		p.CurrentXP -= XPForLevel(p.Level)
		p.Level++
	}

	return p
}

// FromTotalXP recomputes level and current XP from a lifetime total.
// Award and FromTotalXP agree: awarding in any increments that sum to
// the same total yields the same state.
func FromTotalXP(totalXP int) Progress {
	return Award(Progress{Level: 1}, totalXP)
}

// NewProgress returns the starting state for a new user.
func NewProgress() Progress {
	return Progress{Level: 1}
}
