package service

import (
	"context"
	"fmt"

	"daybooker/config"
	"daybooker/infras/otel"
	activityDto "daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"
	"daybooker/internal/domains/partner/model"
	"daybooker/internal/domains/partner/model/dto"
	"daybooker/internal/domains/partner/repository"
	userModel "daybooker/internal/domains/user/model"
	userRepo "daybooker/internal/domains/user/repository"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"

	"github.com/rs/zerolog/log"
)

type Partner interface {
	GetSettings(ctx context.Context) (dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) error
	Get(ctx context.Context, partnerID string) (dto.SettingsResponse, error)
	ListPartners(ctx context.Context, req gDto.QueryParams, filter dto.PartnerFilter) (dto.GetPartnersResponse, error)
	SetCommissionRate(ctx context.Context, partnerID string, req dto.SetCommissionRequest) error
}

type serviceImpl struct {
	repo     repository.Partner
	userRepo userRepo.User
	activity activityService.ActivityLog
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Partner, userRepo userRepo.User, activity activityService.ActivityLog, cfg *config.Config, otel otel.Otel) Partner {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		activity: activity,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) GetSettings(ctx context.Context) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)

	settings, err := s.settings(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(settings)

	return res, nil
}

func (s *serviceImpl) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateSettingsRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	userID, _ := shared.UserFromContext(ctx)

	if _, err = s.settings(ctx, userID); err != nil {
		return err
	}

	err = s.repo.Update(ctx, shared.TransformFields(req, userID), shared.FilterByID(userID, model.FieldPartnerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update partner settings")

		return fmt.Errorf("failed to update partner settings: %w", err)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, partnerID string) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings, err := s.settings(ctx, partnerID)
	if err != nil {
		return res, err
	}

	res.FromModel(settings)

	return res, nil
}

func (s *serviceImpl) ListPartners(ctx context.Context, req gDto.QueryParams, filter dto.PartnerFilter) (res dto.GetPartnersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPartners")
	defer scope.End()
	defer scope.TraceIfError(err)

	group := filter.ToFilter()

	total, err := s.repo.CountPartners(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count partners")

		return res, fmt.Errorf("failed to count partners: %w", err)
	}

	partners, err := s.repo.GetAllPartners(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get partners")

		return res, fmt.Errorf("failed to get partners: %w", err)
	}

	res.FromModels(partners, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) SetCommissionRate(ctx context.Context, partnerID string, req dto.SetCommissionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetCommissionRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.settings(ctx, partnerID)
	if err != nil {
		return err
	}

	userID, _ := shared.UserFromContext(ctx)

	// A zero rate is a valid value, so the field is set explicitly.
	fields := shared.TransformFields(req, userID)
	fields[model.FieldCommissionRate] = *req.CommissionRate

	if err = s.repo.Update(ctx, fields, shared.FilterByID(partnerID, model.FieldPartnerID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update commission rate")

		return fmt.Errorf("failed to update commission rate: %w", err)
	}

	s.activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionCommissionUpdated,
		Entity:   model.EntityName,
		EntityID: partnerID,
		Details:  map[string]any{"from": current.CommissionRate, "to": *req.CommissionRate},
	})

	return nil
}

// settings returns the partner's settings, creating the defaults for partner
// accounts that were promoted by an admin and never got a row.
func (s *serviceImpl) settings(ctx context.Context, partnerID string) (model.PartnerSettings, error) {
	settings, err := s.repo.Get(ctx, shared.FilterByID(partnerID, model.FieldPartnerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get partner settings")

		return settings, fmt.Errorf("failed to get partner settings: %w", err)
	}

	if settings.ID != constant.Empty {
		return settings, nil
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByFields(userModel.TableName, map[string]any{
		userModel.FieldID:   partnerID,
		userModel.FieldRole: constant.RolePartner,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get partner")

		return settings, fmt.Errorf("failed to get partner: %w", err)
	}

	if user.ID == constant.Empty {
		return settings, failure.NotFound("partner not found")
	}

	settings = dto.NewSettings(partnerID, user.Email, constant.SystemUser, s.cfg.Booking.DefaultCommissionRate, s.cfg.Booking.DefaultCancellationHours)

	if err = s.repo.Insert(ctx, settings); err != nil && !gRepo.IsUniqueViolation(err) {
		log.Error().Err(err).Msg("failed to create partner settings")

		return settings, fmt.Errorf("failed to create partner settings: %w", err)
	}

	return settings, nil
}
