package store

import (
	"database/sql"
	"errors"
	"time"
)

// GetUser retrieves a user profile by id.
func (s *Store) GetUser(id string) (*User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, display_name, weight, height, age, gender,
		       activity_level, goal_type, target_weight, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id)

	var u User
	var targetWeight sql.NullFloat64
	var createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Weight, &u.Height,
		&u.Age, &u.Gender, &u.ActivityLevel, &u.GoalType, &targetWeight,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if targetWeight.Valid {
		u.TargetWeight = &targetWeight.Float64
	}
	u.CreatedAt = parseStoredTime(createdAt)
	u.UpdatedAt = parseStoredTime(updatedAt)
	return &u, nil
}

// CreateUser inserts a new user with starting progress and streak rows.
func (s *Store) CreateUser(u *User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO users (id, email, display_name, weight, height, age,
		                   gender, activity_level, goal_type, target_weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.DisplayName, u.Weight, u.Height, u.Age,
		u.Gender, u.ActivityLevel, u.GoalType, nullFloat(u.TargetWeight)); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT INTO user_progress (user_id) VALUES (?)`, u.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO streaks (user_id) VALUES (?)`, u.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateUser writes profile fields for an existing user.
func (s *Store) UpdateUser(u *User) error {
	result, err := s.db.Exec(`
		UPDATE users
		SET email = ?, display_name = ?, weight = ?, height = ?, age = ?,
		    gender = ?, activity_level = ?, goal_type = ?, target_weight = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, u.Email, u.DisplayName, u.Weight, u.Height, u.Age,
		u.Gender, u.ActivityLevel, u.GoalType, nullFloat(u.TargetWeight), u.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// formatStoredTime renders a timestamp for storage. Timestamps are
// stored in UTC so that RFC3339 strings compare correctly in SQL
// regardless of the offset a caller's time carries.
func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseStoredTime parses timestamps written by SQLite's CURRENT_TIMESTAMP
// or by our own RFC3339 writes.
func parseStoredTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
