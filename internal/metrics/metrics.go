package metrics

import "math"

// Gender values accepted by BMR.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Activity levels accepted by TDEE.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// activityMultipliers maps activity level to its TDEE multiplier.
// This is the single source of truth for valid activity levels.
var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// metValues maps workout type to its MET (metabolic equivalent) value.
// Unknown types fall back to the "custom" entry.
var metValues = map[string]float64{
	"running":       8.0,
	"cycling":       7.5,
	"weightlifting": 3.0,
	"yoga":          2.5,
	"swimming":      6.0,
	"hiit":          8.0,
	"cardio":        6.0,
	"strength":      3.5,
	"flexibility":   2.5,
	"sports":        7.0,
	"walking":       3.5,
	"custom":        4.0,
}

// BMI computes body mass index from weight in kg and height in cm.
// Callers are responsible for supplying positive inputs.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMICategory classifies a BMI value. Boundaries are inclusive-low:
// exactly 18.5 is Normal, exactly 25 is Overweight, exactly 30 is Obese.
// The returned color is a hex code for display.
func BMICategory(bmi float64) (category, color string) {
	switch {
	case bmi < 18.5:
		return "Underweight", "#3B82F6"
	case bmi < 25:
		return "Normal", "#10B981"
	case bmi < 30:
		return "Overweight", "#F59E0B"
	default:
		return "Obese", "#EF4444"
	}
}

// BMR computes basal metabolic rate using the Mifflin-St Jeor equation.
// Any gender other than "male" uses the female constant.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// TDEE scales a BMR by the activity level multiplier and rounds to the
// nearest calorie. Unknown activity levels are treated as moderate.
func TDEE(bmr float64, activityLevel string) int {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers[ActivityModerate]
	}
	return int(math.Round(bmr * mult))
}

// MET returns the MET value for a workout type, falling back to the
// custom value for unrecognized types.
func MET(workoutType string) float64 {
	if met, ok := metValues[workoutType]; ok {
		return met
	}
	return metValues["custom"]
}

// CaloriesBurned estimates calories burned for a workout using the
// standard MET formula: kcal/min = MET * 3.5 * weightKg / 200.
func CaloriesBurned(durationMinutes int, weightKg float64, workoutType string) int {
	perMinute := MET(workoutType) * 3.5 * weightKg / 200
	return int(math.Round(perMinute * float64(durationMinutes)))
}
