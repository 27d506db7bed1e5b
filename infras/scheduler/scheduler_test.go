package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	metricsMocks "daybooker/infras/metrics/mocks"
	"daybooker/infras/otel/mocks"
	"daybooker/infras/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Register(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s scheduler.Scheduler)
		jobName string
		spec    string
		wantErr bool
	}{
		{
			name:    "valid descriptor",
			setup:   func(_ scheduler.Scheduler) {},
			jobName: "expire-pending",
			spec:    "@every 5m",
		},
		{
			name:    "valid cron expression",
			setup:   func(_ scheduler.Scheduler) {},
			jobName: "complete-past",
			spec:    "*/15 * * * *",
		},
		{
			name:    "invalid spec",
			setup:   func(_ scheduler.Scheduler) {},
			jobName: "broken",
			spec:    "every now and then",
			wantErr: true,
		},
		{
			name: "duplicate name",
			setup: func(s scheduler.Scheduler) {
				_ = s.Register("deactivate-promotions", "@hourly", func(context.Context) error { return nil })
			},
			jobName: "deactivate-promotions",
			spec:    "@hourly",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scheduler.New(mocks.NewOtel(), metricsMocks.NewMetrics())
			tt.setup(s)

			err := s.Register(tt.jobName, tt.spec, func(context.Context) error { return errors.New("unused") })
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduler_RunsJob(t *testing.T) {
	s := scheduler.New(mocks.NewOtel(), metricsMocks.NewMetrics())

	ran := make(chan struct{}, 1)

	require.NoError(t, s.Register("tick", "@every 1s", func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}

		return nil
	}))

	s.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, s.Stop(ctx))
}
