package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// InsertWorkout stores a workout. Imported workouts carry a Strava id;
// inserting a duplicate Strava id for the same user returns
// ErrDuplicateWorkout.
func (s *Store) InsertWorkout(w *Workout) error {
	_, err := s.db.Exec(`
		INSERT INTO workouts (id, user_id, type, name, duration, calories,
			notes, date, created_at, source, strava_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.UserID, w.Type, w.Name, w.Duration, w.Calories,
		w.Notes, formatStoredTime(w.Date), formatStoredTime(w.CreatedAt),
		w.Source, nullInt64(w.StravaID))
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateWorkout
	}
	return err
}

// ErrDuplicateWorkout is returned when a Strava activity has already
// been imported for the user.
var ErrDuplicateWorkout = errors.New("workout already imported")

// GetWorkout retrieves a workout by id.
func (s *Store) GetWorkout(id string) (*Workout, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, type, name, duration, calories, notes, date,
		       created_at, source, strava_id
		FROM workouts
		WHERE id = ?
	`, id)

	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	return w, err
}

// ListWorkouts returns a user's workouts ordered by date descending.
func (s *Store) ListWorkouts(userID string, limit, offset int) ([]Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, type, name, duration, calories, notes, date,
		       created_at, source, strava_id
		FROM workouts
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// ListWorkoutDates returns the dates of all of a user's workouts since
// the given time, for streak computation.
func (s *Store) ListWorkoutDates(userID string, since time.Time) ([]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT date FROM workouts
		WHERE user_id = ? AND date >= ?
		ORDER BY date DESC
	`, userID, formatStoredTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		dates = append(dates, parseStoredTime(raw))
	}
	return dates, rows.Err()
}

// CountWorkoutsOnDay returns how many workouts a user logged on the
// calendar day containing t.
func (s *Store) CountWorkoutsOnDay(userID string, t time.Time) (int, error) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM workouts
		WHERE user_id = ? AND date >= ? AND date < ?
	`, userID, formatStoredTime(dayStart), formatStoredTime(dayEnd)).Scan(&count)
	return count, err
}

// SumCaloriesBetween totals workout calories for a user in [from, to).
func (s *Store) SumCaloriesBetween(userID string, from, to time.Time) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(calories) FROM workouts
		WHERE user_id = ? AND date >= ? AND date < ?
	`, userID, formatStoredTime(from), formatStoredTime(to)).Scan(&total)
	return int(total.Int64), err
}

// DeleteWorkout removes a workout by id.
func (s *Store) DeleteWorkout(id string) error {
	result, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (*Workout, error) {
	var w Workout
	var date, createdAt string
	var stravaID sql.NullInt64
	err := row.Scan(&w.ID, &w.UserID, &w.Type, &w.Name, &w.Duration,
		&w.Calories, &w.Notes, &date, &createdAt, &w.Source, &stravaID)
	if err != nil {
		return nil, err
	}
	w.Date = parseStoredTime(date)
	w.CreatedAt = parseStoredTime(createdAt)
	if stravaID.Valid {
		w.StravaID = &stravaID.Int64
	}
	return &w, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. modernc.org/sqlite doesn't export a typed error for this, so
// match on the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
