package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"daybooker/config"
	"daybooker/infras/kafka"
	"daybooker/infras/otel"
	"daybooker/internal/domains/activitylog/model/dto"
	"daybooker/internal/domains/activitylog/repository"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	gRepo "daybooker/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ActivityLog interface {
	// Record publishes the event. Without brokers the event is stored directly.
	Record(ctx context.Context, event dto.Event)
	Store(ctx context.Context, event dto.Event) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetActivityLogsResponse, error)
}

type serviceImpl struct {
	repo  repository.ActivityLog
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.ActivityLog, kafka kafka.Client, cfg *config.Config, otel otel.Otel) ActivityLog {
	return &serviceImpl{
		repo:  repo,
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, event dto.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if event.UserID == "" {
		event.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	}

	if event.IP == "" {
		event.IP, _ = ctx.Value(constant.ContextKeyClientIP).(string)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Activity, kafka.Message{Key: event.EntityID, Value: event})
		if err == nil {
			return
		}

		if !errors.Is(err, kafka.ErrNoBrokers) {
			log.Warn().Err(err).Str("action", event.Action).Msg("failed to publish activity event, storing directly")
		}

		if err := s.Store(c, event); err != nil {
			log.Error().Err(err).Str("action", event.Action).Msg("failed to store activity event")
		}
	}()
}

func (s *serviceImpl) Store(ctx context.Context, event dto.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Store")
	defer scope.End()
	defer scope.TraceIfError(err)

	activity, err := event.ToModel()
	if err != nil {
		log.Error().Err(err).Msg("failed to build activity log")

		return fmt.Errorf("failed to build activity log: %w", err)
	}

	if err = s.repo.Insert(ctx, activity); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Debug().Str("id", activity.ID).Msg("activity log already stored")

			return nil
		}

		log.Error().Err(err).Msg("failed to insert activity log")

		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetActivityLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count activity logs")

		return res, fmt.Errorf("failed to count activity logs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity logs")

		return res, fmt.Errorf("failed to get activity logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
