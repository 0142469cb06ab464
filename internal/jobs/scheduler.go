package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper drops expired sessions from a store that cannot expire them on its own.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	log      zerolog.Logger
}

// NewScheduler accepts a nil sweeper, in which case Start is a no-op.
func NewScheduler(sweeper Sweeper, schedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sweeper:  sweeper,
		schedule: schedule,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.sweeper == nil || s.schedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.sweepSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and returns a context that is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.sweeper.Sweep(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("expired sessions swept")
	}
}
