package jobs_test

import (
	"context"
	"errors"
	"testing"

	"daybooker/config"
	schedulerMocks "daybooker/infras/scheduler/mocks"
	bookingMocks "daybooker/internal/domains/booking/service/mocks"
	promotionMocks "daybooker/internal/domains/promotion/service/mocks"
	"daybooker/internal/jobs"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	scheduler *schedulerMocks.MockScheduler
	booking   *bookingMocks.MockBooking
	promotion *promotionMocks.MockPromotion
	jobs      *jobs.Jobs
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Scheduler.ExpirePendingSpec = "@every 5m"
	cfg.Scheduler.CompletePastSpec = "@every 15m"
	cfg.Scheduler.DeactivatePromotionsSpec = "@hourly"

	f := &fixture{
		scheduler: schedulerMocks.NewMockScheduler(ctrl),
		booking:   bookingMocks.NewMockBooking(ctrl),
		promotion: promotionMocks.NewMockPromotion(ctrl),
	}

	f.jobs = jobs.New(cfg, f.scheduler, f.booking, f.promotion)

	return f
}

func TestJobs_Register(t *testing.T) {
	t.Run("registers every job", func(t *testing.T) {
		f := newFixture(t)

		f.scheduler.EXPECT().Register(jobs.ExpirePending, "@every 5m", gomock.Any()).Return(nil)
		f.scheduler.EXPECT().Register(jobs.CompletePast, "@every 15m", gomock.Any()).Return(nil)
		f.scheduler.EXPECT().Register(jobs.DeactivatePromotions, "@hourly", gomock.Any()).Return(nil)

		assert.NoError(t, f.jobs.Register())
	})

	t.Run("stops on invalid spec", func(t *testing.T) {
		f := newFixture(t)

		f.scheduler.EXPECT().Register(jobs.ExpirePending, gomock.Any(), gomock.Any()).Return(errors.New("bad spec"))

		assert.Error(t, f.jobs.Register())
	})
}

func TestJobs_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("expire pending", func(t *testing.T) {
		f := newFixture(t)

		f.booking.EXPECT().ExpirePending(gomock.Any()).Return(int64(3), nil)

		assert.NoError(t, f.jobs.Run(ctx, jobs.ExpirePending))
	})

	t.Run("complete past", func(t *testing.T) {
		f := newFixture(t)

		f.booking.EXPECT().CompletePast(gomock.Any()).Return(int64(0), errors.New("boom"))

		assert.Error(t, f.jobs.Run(ctx, jobs.CompletePast))
	})

	t.Run("deactivate promotions", func(t *testing.T) {
		f := newFixture(t)

		f.promotion.EXPECT().DeactivateExpired(gomock.Any()).Return(int64(1), nil)

		assert.NoError(t, f.jobs.Run(ctx, jobs.DeactivatePromotions))
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)

		assert.Error(t, f.jobs.Run(ctx, "reindex"))
	})
}
