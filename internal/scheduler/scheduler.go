// internal/scheduler/scheduler.go
//
// Background jobs:
//   - average: recomputes the average attempts remaining across active
//     games. Runs on an interval and on demand after a game is created.
//   - reminder: emails players who have unfinished games.

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// AverageJob recomputes the published average.
type AverageJob interface {
	Recompute(ctx context.Context) (float64, bool, error)
}

// ReminderJob sends one round of reminder emails.
type ReminderJob interface {
	Run(ctx context.Context) (int, error)
}

type Options struct {
	AverageInterval  time.Duration
	ReminderInterval time.Duration
}

type Scheduler struct {
	sched   gocron.Scheduler
	average gocron.Job
	ctx     context.Context
	cancel  context.CancelFunc
}

// New registers both jobs. A nil reminder skips the reminder job.
func New(avg AverageJob, reminder ReminderJob, opts Options) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{sched: sched, ctx: ctx, cancel: cancel}

	s.average, err = sched.NewJob(
		gocron.DurationJob(opts.AverageInterval),
		gocron.NewTask(func() {
			v, ok, err := avg.Recompute(s.ctx)
			if err != nil {
				log.Error().Err(err).Msg("recompute average attempts")
				return
			}
			if ok {
				log.Debug().Float64("average", v).Msg("average attempts published")
			}
		}),
		gocron.WithName("average-attempts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("schedule average job: %w", err)
	}

	if reminder != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(opts.ReminderInterval),
			gocron.NewTask(func() {
				n, err := reminder.Run(s.ctx)
				if err != nil {
					log.Error().Err(err).Msg("send reminders")
					return
				}
				log.Info().Int("sent", n).Msg("reminders sent")
			}),
			gocron.WithName("reminders"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("schedule reminder job: %w", err)
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// TriggerAverage runs the average job now, outside its interval.
func (s *Scheduler) TriggerAverage() {
	if err := s.average.RunNow(); err != nil {
		log.Warn().Err(err).Msg("trigger average job")
	}
}

// Shutdown stops the jobs and waits for running ones to return.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	return s.sched.Shutdown()
}
