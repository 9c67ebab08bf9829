package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/evhjem/hubdrive/internal/errors"
	"codeberg.org/evhjem/hubdrive/internal/logger"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func newRepository(cfg Config) (*sqliteRepository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing session repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) store(snapshot *Snapshot) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`
        INSERT INTO session_log (
            timestamp_ms, power, instant_power,
            avg_power_full, avg_power_window,
            gear, mode,
            raw_left_trigger, raw_right_trigger,
            angle, braking, lights_enabled
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp_ms) DO UPDATE SET
            power = excluded.power,
            instant_power = excluded.instant_power,
            avg_power_full = excluded.avg_power_full,
            avg_power_window = excluded.avg_power_window,
            gear = excluded.gear,
            mode = excluded.mode,
            raw_left_trigger = excluded.raw_left_trigger,
            raw_right_trigger = excluded.raw_right_trigger,
            angle = excluded.angle,
            braking = excluded.braking,
            lights_enabled = excluded.lights_enabled
    `,
		snapshot.Timestamp.UnixMilli(),
		snapshot.Power,
		snapshot.InstantPower,
		snapshot.AvgPowerFull,
		snapshot.AvgPowerWindow,
		snapshot.Gear,
		snapshot.Mode,
		snapshot.RawLeftTrigger,
		snapshot.RawRightTrigger,
		snapshot.Angle,
		boolToInt(snapshot.Braking),
		boolToInt(snapshot.LightsEnabled),
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}
	return nil
}
