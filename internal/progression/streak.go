package progression

import (
	"sort"
	"time"
)

// CurrentStreak counts consecutive days with at least one activity,
// ending today or yesterday relative to now. If the most recent activity
// is older than yesterday the streak is 0. Duplicate dates on the same
// day are collapsed and never double-count.
//
// Days are bucketed in now's location: imported activities carry UTC
// timestamps while manual ones are local, and both must land on the
// user's calendar day.
func CurrentStreak(activityDates []time.Time, now time.Time) int {
	if len(activityDates) == 0 {
		return 0
	}

	// Normalize to midnight and dedupe
	seen := make(map[time.Time]bool, len(activityDates))
	days := make([]time.Time, 0, len(activityDates))
	for _, d := range activityDates {
		day := midnight(d.In(now.Location()))
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := midnight(now)
	yesterday := today.AddDate(0, 0, -1)

	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			streak++
		} else {
			break
		}
	}

	return streak
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
