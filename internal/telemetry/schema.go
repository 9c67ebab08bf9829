package telemetry

import (
	"database/sql"

	"codeberg.org/evhjem/hubdrive/internal/errors"
)

// initSchema initializes the database schema for session recording
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS session_log (
            timestamp_ms INTEGER PRIMARY KEY,
            power INTEGER,
            instant_power REAL,
            avg_power_full REAL,
            avg_power_window REAL,
            gear TEXT,
            mode TEXT,
            raw_left_trigger INTEGER,
            raw_right_trigger INTEGER,
            angle INTEGER,
            braking INTEGER,
            lights_enabled INTEGER
        )
    `)
	if err != nil {
		return errFactory.Wrap(ErrStorageInit, err)
	}

	return nil
}
