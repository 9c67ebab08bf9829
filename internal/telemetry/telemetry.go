package telemetry

import (
	"context"

	"codeberg.org/evhjem/hubdrive/internal/errors"
	"codeberg.org/evhjem/hubdrive/internal/logger"
)

type service struct {
	repo *sqliteRepository
	cfg  Config
}

// No-op implementation used when recording is disabled
type noopRecorder struct{}

func NewRecorder(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Session recording disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := newRepository(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Msg("Session recorder initialized")

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	if snapshot == nil {
		return errFactory.New(ErrInvalidSnapshot)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.store(snapshot); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.close(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}
	return nil
}

func (*noopRecorder) Record(_ context.Context, _ *Snapshot) error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}
