package store

import (
	"database/sql"
	"errors"
)

// GetProgress retrieves the persisted XP state for a user.
func (s *Store) GetProgress(userID string) (*Progress, error) {
	row := s.db.QueryRow(`
		SELECT user_id, level, current_xp, total_xp
		FROM user_progress
		WHERE user_id = ?
	`, userID)

	var p Progress
	err := row.Scan(&p.UserID, &p.Level, &p.CurrentXP, &p.TotalXP)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProgress writes the XP state for a user.
func (s *Store) SaveProgress(p *Progress) error {
	_, err := s.db.Exec(`
		INSERT INTO user_progress (user_id, level, current_xp, total_xp, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			level = excluded.level,
			current_xp = excluded.current_xp,
			total_xp = excluded.total_xp,
			updated_at = CURRENT_TIMESTAMP
	`, p.UserID, p.Level, p.CurrentXP, p.TotalXP)
	return err
}

// GetStreak retrieves the persisted streak state for a user.
func (s *Store) GetStreak(userID string) (*Streak, error) {
	row := s.db.QueryRow(`
		SELECT user_id, current, longest, last_activity_date
		FROM streaks
		WHERE user_id = ?
	`, userID)

	var st Streak
	var lastActivity sql.NullString
	err := row.Scan(&st.UserID, &st.Current, &st.Longest, &lastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastActivity.Valid {
		la := parseStoredTime(lastActivity.String)
		st.LastActivityDate = &la
	}
	return &st, nil
}

// SaveStreak writes the streak state for a user.
func (s *Store) SaveStreak(st *Streak) error {
	var lastActivity any
	if st.LastActivityDate != nil {
		lastActivity = formatStoredTime(*st.LastActivityDate)
	}
	_, err := s.db.Exec(`
		INSERT INTO streaks (user_id, current, longest, last_activity_date, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			current = excluded.current,
			longest = excluded.longest,
			last_activity_date = excluded.last_activity_date,
			updated_at = CURRENT_TIMESTAMP
	`, st.UserID, st.Current, st.Longest, lastActivity)
	return err
}
