package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// User profiles
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			weight REAL NOT NULL DEFAULT 0,
			height REAL NOT NULL DEFAULT 0,
			age INTEGER NOT NULL DEFAULT 0,
			gender TEXT NOT NULL DEFAULT '',
			activity_level TEXT NOT NULL DEFAULT 'moderate',
			goal_type TEXT NOT NULL DEFAULT 'maintain',
			target_weight REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// XP and level state (one row per user)
		`CREATE TABLE IF NOT EXISTS user_progress (
			user_id TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 1,
			current_xp INTEGER NOT NULL DEFAULT 0,
			total_xp INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Streak state (one row per user)
		`CREATE TABLE IF NOT EXISTS streaks (
			user_id TEXT PRIMARY KEY,
			current INTEGER NOT NULL DEFAULT 0,
			longest INTEGER NOT NULL DEFAULT 0,
			last_activity_date TEXT,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Strava connection (one row per user)
		`CREATE TABLE IF NOT EXISTS strava_tokens (
			user_id TEXT PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			athlete_name TEXT NOT NULL DEFAULT '',
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			connected_at TEXT NOT NULL,
			last_sync TEXT,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Logged workouts (manual and imported)
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			duration INTEGER NOT NULL,
			calories INTEGER NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			source TEXT NOT NULL DEFAULT 'manual',
			strava_id INTEGER,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, date)`,

		// Re-running a Strava sync must not duplicate imported workouts
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_workouts_strava_id
			ON workouts(user_id, strava_id) WHERE strava_id IS NOT NULL`,

		// Logged meals
		`CREATE TABLE IF NOT EXISTS meals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			calories INTEGER NOT NULL,
			protein REAL NOT NULL DEFAULT 0,
			carbs REAL NOT NULL DEFAULT 0,
			fat REAL NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_meals_user_date ON meals(user_id, date)`,

		// Goals
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			target REAL NOT NULL,
			current REAL NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT '',
			frequency TEXT NOT NULL DEFAULT 'daily',
			start_date TEXT NOT NULL,
			end_date TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			achieved_at TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_goals_user_active ON goals(user_id, is_active)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
