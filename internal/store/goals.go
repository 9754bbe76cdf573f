package store

import (
	"database/sql"
	"errors"
	"time"
)

// InsertGoal stores a goal.
func (s *Store) InsertGoal(g *Goal) error {
	var endDate any
	if g.EndDate != nil {
		endDate = formatStoredTime(*g.EndDate)
	}
	_, err := s.db.Exec(`
		INSERT INTO goals (id, user_id, type, target, current, unit, frequency,
			start_date, end_date, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.UserID, g.Type, g.Target, g.Current, g.Unit, g.Frequency,
		formatStoredTime(g.StartDate), endDate, boolToInt(g.IsActive),
		formatStoredTime(g.CreatedAt))
	return err
}

// ListGoals returns a user's goals, active first, newest first within each.
func (s *Store) ListGoals(userID string) ([]Goal, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, type, target, current, unit, frequency,
		       start_date, end_date, is_active, achieved_at, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY is_active DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// GetGoal retrieves a goal by id.
func (s *Store) GetGoal(id string) (*Goal, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, type, target, current, unit, frequency,
		       start_date, end_date, is_active, achieved_at, created_at
		FROM goals
		WHERE id = ?
	`, id)

	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	return g, err
}

// UpdateGoalProgress writes the goal's current value, and records the
// first time it reached its target.
func (s *Store) UpdateGoalProgress(id string, current float64, achievedAt *time.Time) error {
	var achieved any
	if achievedAt != nil {
		achieved = formatStoredTime(*achievedAt)
	}
	result, err := s.db.Exec(`
		UPDATE goals
		SET current = ?,
		    achieved_at = COALESCE(achieved_at, ?)
		WHERE id = ?
	`, current, achieved, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// DeactivateGoal marks a goal inactive.
func (s *Store) DeactivateGoal(id string) error {
	result, err := s.db.Exec(`UPDATE goals SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func scanGoal(row scanner) (*Goal, error) {
	var g Goal
	var startDate, createdAt string
	var endDate, achievedAt sql.NullString
	var isActive int
	err := row.Scan(&g.ID, &g.UserID, &g.Type, &g.Target, &g.Current, &g.Unit,
		&g.Frequency, &startDate, &endDate, &isActive, &achievedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	g.StartDate = parseStoredTime(startDate)
	g.CreatedAt = parseStoredTime(createdAt)
	g.IsActive = isActive == 1
	if endDate.Valid {
		ed := parseStoredTime(endDate.String)
		g.EndDate = &ed
	}
	if achievedAt.Valid {
		aa := parseStoredTime(achievedAt.String)
		g.AchievedAt = &aa
	}
	return &g, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
