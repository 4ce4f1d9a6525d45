package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// RunEvery runs the job immediately and then on every tick until the
// context is cancelled. Job failures are logged, never fatal; the
// schedule keeps going.
func RunEvery(ctx context.Context, job Job, interval time.Duration) {
	run := func() {
		if err := job.Run(ctx); err != nil {
			log.Error().Err(err).Str("job", job.Name()).Msg("job run failed")
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
