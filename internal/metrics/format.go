package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber renders large counts compactly: 1234 -> "1.2K",
// 2500000 -> "2.5M". Smaller values get thousands separators.
func FormatNumber(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return humanize.Comma(int64(n))
	}
}

// FormatCalories renders a calorie value for display.
func FormatCalories(calories float64) string {
	return fmt.Sprintf("%d kcal", int(math.Round(calories)))
}

// FormatDuration renders minutes as "45 min" or "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatWeight renders a weight stored in kg in the requested unit.
func FormatWeight(kg float64, unit string) string {
	if unit == "lbs" {
		return fmt.Sprintf("%.1f lbs", kg*2.20462)
	}
	return fmt.Sprintf("%.1f kg", kg)
}

// FormatDistance renders a distance in km, switching to meters under 1 km.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.2f km", km)
}

// FormatDate renders a date as "Today", "Yesterday", or "Jan 2, 2006".
func FormatDate(date, now time.Time) string {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch day(date) {
	case day(now):
		return "Today"
	case day(now).AddDate(0, 0, -1):
		return "Yesterday"
	}
	return date.Format("Jan 2, 2006")
}

// FormatRelativeTime renders how long ago a timestamp was ("2 days ago").
func FormatRelativeTime(t time.Time) string {
	return humanize.Time(t)
}
