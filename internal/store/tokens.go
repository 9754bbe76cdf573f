package store

import (
	"database/sql"
	"errors"
	"time"
)

// GetStravaToken retrieves the stored Strava token record for a user.
func (s *Store) GetStravaToken(userID string) (*StravaToken, error) {
	row := s.db.QueryRow(`
		SELECT user_id, athlete_id, athlete_name, access_token, refresh_token,
		       expires_at, connected_at, last_sync
		FROM strava_tokens
		WHERE user_id = ?
	`, userID)

	var t StravaToken
	var expiresAt int64
	var connectedAt string
	var lastSync sql.NullString
	err := row.Scan(&t.UserID, &t.AthleteID, &t.AthleteName, &t.AccessToken,
		&t.RefreshToken, &expiresAt, &connectedAt, &lastSync)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, err
	}

	t.ExpiresAt = time.Unix(expiresAt, 0)
	t.ConnectedAt = parseStoredTime(connectedAt)
	if lastSync.Valid {
		ls := parseStoredTime(lastSync.String)
		t.LastSync = &ls
	}
	return &t, nil
}

// SaveStravaToken stores or replaces the token record for a user.
func (s *Store) SaveStravaToken(t *StravaToken) error {
	_, err := s.db.Exec(`
		INSERT INTO strava_tokens (user_id, athlete_id, athlete_name,
			access_token, refresh_token, expires_at, connected_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			athlete_name = excluded.athlete_name,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP
	`, t.UserID, t.AthleteID, t.AthleteName, t.AccessToken, t.RefreshToken,
		t.ExpiresAt.Unix(), formatStoredTime(t.ConnectedAt))
	return err
}

// UpdateStravaTokens rotates the access/refresh token pair after a
// refresh, leaving athlete identity untouched.
func (s *Store) UpdateStravaTokens(userID, accessToken, refreshToken string, expiresAt time.Time) error {
	result, err := s.db.Exec(`
		UPDATE strava_tokens
		SET access_token = ?, refresh_token = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`, accessToken, refreshToken, expiresAt.Unix(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoToken
	}
	return nil
}

// UpdateLastSync records when activities were last imported.
func (s *Store) UpdateLastSync(userID string, at time.Time) error {
	_, err := s.db.Exec(`
		UPDATE strava_tokens
		SET last_sync = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`, formatStoredTime(at), userID)
	return err
}

// DeleteStravaToken removes a user's token record. Deleting a record
// that doesn't exist is not an error, so disconnect is idempotent.
func (s *Store) DeleteStravaToken(userID string) error {
	_, err := s.db.Exec(`DELETE FROM strava_tokens WHERE user_id = ?`, userID)
	return err
}
