package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daybooker/infras/metrics"
	"daybooker/infras/otel"
	"daybooker/shared/constant"
	"daybooker/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Job func(ctx context.Context) error

type Scheduler interface {
	Register(name, spec string, job Job) error
	Start()
	Stop(ctx context.Context) error
}

type schedulerImpl struct {
	cron    *cron.Cron
	otel    otel.Otel
	metrics metrics.Metrics

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func New(otel otel.Otel, metrics metrics.Metrics) Scheduler {
	logger := cronLogger{}

	return &schedulerImpl{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		otel:    otel,
		metrics: metrics,
		entries: map[string]cron.EntryID{},
	}
}

func (s *schedulerImpl) Register(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("job %s already registered", name)
	}

	id, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	s.entries[name] = id

	log.Info().Str("job", name).Str("spec", spec).Msg("Scheduled job registered")

	return nil
}

func (s *schedulerImpl) run(name string, job Job) {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+"."+name)
	defer scope.End()

	start := time.Now()
	err := job(ctx)

	s.metrics.JobExecuted(name, err, time.Since(start))

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", name).Msg("Scheduled job failed")

		return
	}

	log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("Scheduled job finished")
}

func (s *schedulerImpl) Start() {
	s.cron.Start()

	log.Info().Int("jobs", len(s.entries)).Msg("Scheduler started")
}

// Stop waits for running jobs until ctx is done.
func (s *schedulerImpl) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		log.Info().Msg("Scheduler stopped")

		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop interrupted: %w", ctx.Err())
	}
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
