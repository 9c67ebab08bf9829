package telemetry

import (
	"context"

	"codeberg.org/evhjem/hubdrive/internal/logger"
)

// Pump decouples session recording from the producer through a depth-1
// latest-value slot: a new snapshot overwrites an undelivered one, so the
// producer never waits on storage. Intermediate snapshots may be dropped;
// the last offered snapshot is recorded before the pump exits.
type Pump struct {
	recorder Recorder

	slot chan *Snapshot
	done chan struct{}
}

// StartPump starts the recording goroutine. It runs until ctx is canceled;
// call Wait before closing the recorder.
func StartPump(ctx context.Context, recorder Recorder) *Pump {
	p := &Pump{
		recorder: recorder,
		slot:     make(chan *Snapshot, 1),
		done:     make(chan struct{}),
	}

	go p.run(ctx)

	return p
}

func (p *Pump) run(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			// Drain once so the final session state is recorded, not
			// dropped. The run context is already done, so the write gets
			// a fresh one.
			select {
			case snapshot := <-p.slot:
				if err := p.recorder.Record(context.Background(), snapshot); err != nil {
					logger.Debug().Err(err).Msg("Final session record failed")
				}
			default:
			}
			return

		case snapshot := <-p.slot:
			if err := p.recorder.Record(ctx, snapshot); err != nil {
				logger.Debug().Err(err).Msg("Session record failed")
			}
		}
	}
}

// Offer hands a snapshot to the pump, replacing any undelivered one. Never
// blocks.
func (p *Pump) Offer(snapshot *Snapshot) {
	for {
		select {
		case p.slot <- snapshot:
			return
		default:
		}

		select {
		case <-p.slot:
		default:
		}
	}
}

// Wait blocks until the pump has exited and the final snapshot, if any, has
// been recorded.
func (p *Pump) Wait() {
	<-p.done
}
