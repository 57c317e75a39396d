package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/journal"
)

type taskFn func(ctx context.Context) error

type Scheduler struct {
	scheduler gocron.Scheduler
}

func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{scheduler: s}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// NewIntervalJob runs fn every interval. A run still in progress when the
// next one is due pushes that run back.
func (s *Scheduler) NewIntervalJob(name string, fn taskFn, interval time.Duration, startImmediately bool) error {
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if startImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskWithRecover(fn, name)),
		opts...,
	)
	if err != nil {
		slog.Error("scheduler creating job error", slog.String("jobName", name), slog.Any("error", err))
		return err
	}
	return nil
}

func taskWithRecover(fn taskFn, jobName string) func(ctx context.Context) {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error(
					"panic recovered in scheduler job",
					slog.String("jobName", jobName),
					slog.Any("panic", r),
					slog.String("stacktrace", string(debug.Stack())),
				)
			}
		}()

		slog.Debug("job start", slog.String("jobName", jobName))

		if err := fn(ctx); err != nil {
			slog.Error("job failed", slog.String("jobName", jobName), slog.Any("error", err))
			return
		}
		slog.Debug("job completed", slog.String("jobName", jobName))
	}
}

// IndexSnapshot returns a job that journals the current composite index.
// Having no traded symbol yet is not a failure.
func IndexSnapshot(calc *exchange.Calculator, j journal.Journal) taskFn {
	return func(ctx context.Context) error {
		idx, err := calc.Index()
		if errors.Is(err, exchange.ErrNoDataForIndex) {
			slog.Debug("index snapshot skipped", slog.String("reason", err.Error()))
			return nil
		}
		if err != nil {
			return err
		}
		slog.Info("index snapshot", slog.Float64("gbce", idx.Value), slog.Int("symbols", len(idx.Symbols)))
		return j.RecordIndex(journal.IndexSnapshot{
			Time:    idx.Time,
			Index:   idx.Value,
			Symbols: len(idx.Symbols),
		})
	}
}
