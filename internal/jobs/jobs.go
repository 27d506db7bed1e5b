package jobs

import (
	"context"
	"fmt"

	"daybooker/config"
	"daybooker/infras/scheduler"
	bookingService "daybooker/internal/domains/booking/service"
	promotionService "daybooker/internal/domains/promotion/service"

	"github.com/rs/zerolog/log"
)

const (
	ExpirePending        = "expire-pending"
	CompletePast         = "complete-past"
	DeactivatePromotions = "deactivate-promotions"
)

type Jobs struct {
	cfg       *config.Config
	scheduler scheduler.Scheduler
	booking   bookingService.Booking
	promotion promotionService.Promotion
}

func New(cfg *config.Config, scheduler scheduler.Scheduler, booking bookingService.Booking, promotion promotionService.Promotion) *Jobs {
	return &Jobs{
		cfg:       cfg,
		scheduler: scheduler,
		booking:   booking,
		promotion: promotion,
	}
}

// Register adds every maintenance job to the scheduler.
func (j *Jobs) Register() error {
	jobs := []struct {
		name string
		spec string
		job  scheduler.Job
	}{
		{ExpirePending, j.cfg.Scheduler.ExpirePendingSpec, j.expirePending},
		{CompletePast, j.cfg.Scheduler.CompletePastSpec, j.completePast},
		{DeactivatePromotions, j.cfg.Scheduler.DeactivatePromotionsSpec, j.deactivatePromotions},
	}

	for _, job := range jobs {
		if err := j.scheduler.Register(job.name, job.spec, job.job); err != nil {
			return fmt.Errorf("failed to register %s: %w", job.name, err)
		}
	}

	return nil
}

// Run executes a single job by name, outside of the schedule.
func (j *Jobs) Run(ctx context.Context, name string) error {
	switch name {
	case ExpirePending:
		return j.expirePending(ctx)
	case CompletePast:
		return j.completePast(ctx)
	case DeactivatePromotions:
		return j.deactivatePromotions(ctx)
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

func (j *Jobs) expirePending(ctx context.Context) error {
	expired, err := j.booking.ExpirePending(ctx)
	if err != nil {
		return fmt.Errorf("failed to expire pending bookings: %w", err)
	}

	log.Info().Int64("expired", expired).Msg("Expired pending bookings")

	return nil
}

func (j *Jobs) completePast(ctx context.Context) error {
	completed, err := j.booking.CompletePast(ctx)
	if err != nil {
		return fmt.Errorf("failed to complete past bookings: %w", err)
	}

	log.Info().Int64("completed", completed).Msg("Completed past bookings")

	return nil
}

func (j *Jobs) deactivatePromotions(ctx context.Context) error {
	deactivated, err := j.promotion.DeactivateExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate expired promotions: %w", err)
	}

	log.Info().Int64("deactivated", deactivated).Msg("Deactivated expired promotions")

	return nil
}
