package strava

// Activity is a Strava activity summary from /athlete/activities.
type Activity struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	SportType          string  `json:"sport_type"`
	StartDate          string  `json:"start_date"`
	MovingTime         int     `json:"moving_time"`  // seconds
	ElapsedTime        int     `json:"elapsed_time"` // seconds
	Distance           float64 `json:"distance"`     // meters
	TotalElevationGain float64 `json:"total_elevation_gain"`
	AverageSpeed       float64 `json:"average_speed"` // m/s
	MaxSpeed           float64 `json:"max_speed"`     // m/s
	AverageHeartrate   float64 `json:"average_heartrate"`
	MaxHeartrate       float64 `json:"max_heartrate"`
	Calories           float64 `json:"calories"` // absent for most list responses
}

// Athlete is the athlete identity Strava includes in the token exchange
// response.
type Athlete struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// FullName joins the athlete's first and last name for display.
func (a Athlete) FullName() string {
	switch {
	case a.Firstname == "":
		return a.Lastname
	case a.Lastname == "":
		return a.Firstname
	default:
		return a.Firstname + " " + a.Lastname
	}
}
