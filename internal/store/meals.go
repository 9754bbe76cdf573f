package store

import (
	"database/sql"
	"time"
)

// InsertMeal stores a meal.
func (s *Store) InsertMeal(m *Meal) error {
	_, err := s.db.Exec(`
		INSERT INTO meals (id, user_id, name, type, calories, protein, carbs,
			fat, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.UserID, m.Name, m.Type, m.Calories, m.Protein, m.Carbs,
		m.Fat, formatStoredTime(m.Date), formatStoredTime(m.CreatedAt))
	return err
}

// ListMeals returns a user's meals ordered by date descending.
func (s *Store) ListMeals(userID string, limit, offset int) ([]Meal, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, type, calories, protein, carbs, fat, date, created_at
		FROM meals
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []Meal
	for rows.Next() {
		var m Meal
		var date, createdAt string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Type, &m.Calories,
			&m.Protein, &m.Carbs, &m.Fat, &date, &createdAt); err != nil {
			return nil, err
		}
		m.Date = parseStoredTime(date)
		m.CreatedAt = parseStoredTime(createdAt)
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// SumMealCaloriesBetween totals meal calories for a user in [from, to).
func (s *Store) SumMealCaloriesBetween(userID string, from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(calories) FROM meals
		WHERE user_id = ? AND date >= ? AND date < ?
	`, userID, formatStoredTime(from), formatStoredTime(to)).Scan(&total)
	return int(total.Int64), err
}
