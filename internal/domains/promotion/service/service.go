package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"daybooker/infras/otel"
	activityDto "daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"
	"daybooker/internal/domains/promotion/model"
	"daybooker/internal/domains/promotion/model/dto"
	"daybooker/internal/domains/promotion/repository"
	"daybooker/internal/pricing"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/rs/zerolog/log"
)

const maxPercentage = 100

type Promotion interface {
	Create(ctx context.Context, req dto.CreatePromotionRequest) (dto.PromotionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPromotionsResponse, error)
	Get(ctx context.Context, id string) (dto.PromotionResponse, error)
	Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) error
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, req dto.ValidatePromotionRequest) (dto.ValidatePromotionResponse, error)
	// Evaluate resolves code for a hotel order of amount cents and returns the
	// promotion with the discount it grants. Rejections are 400 failures.
	Evaluate(ctx context.Context, code, hotelID string, amount int64) (model.Promotion, int64, error)
	DeactivateExpired(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo     repository.Promotion
	activity activityService.ActivityLog
	otel     otel.Otel
}

func New(repo repository.Promotion, activity activityService.ActivityLog, otel otel.Otel) Promotion {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		otel:     otel,
	}
}

func validateDiscount(discountType string, value float64) error {
	if discountType == model.DiscountTypePercentage && value > maxPercentage {
		return failure.BadRequestFromString("percentage discount cannot exceed 100")
	}

	return nil
}

func validateWindow(startsAt, endsAt time.Time) error {
	if !endsAt.After(startsAt) {
		return failure.BadRequestFromString("ends_at must be after starts_at")
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePromotionRequest) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return res, err
	}

	startsAt, err := timezone.Parse(constant.DateFormat, req.StartsAt)
	if err != nil {
		return res, failure.BadRequestFromString("invalid starts_at")
	}

	endsAt, err := timezone.Parse(constant.DateFormat, req.EndsAt)
	if err != nil {
		return res, failure.BadRequestFromString("invalid ends_at")
	}

	if err = validateWindow(startsAt, endsAt); err != nil {
		return res, err
	}

	user, _ := shared.UserFromContext(ctx)
	promotion := req.ToModel(user, startsAt, endsAt)

	if err = s.repo.Insert(ctx, promotion); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict("promotion code already exists")
		}

		log.Error().Err(err).Msg("failed to create promotion")

		return res, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionPromotionCreated,
		Entity:   model.EntityName,
		EntityID: promotion.ID,
		Details:  map[string]any{"code": promotion.Code},
	})

	res.FromModel(promotion)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPromotionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count promotions")

		return res, fmt.Errorf("failed to count promotions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotions")

		return res, fmt.Errorf("failed to get promotions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	promotion, err := s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(promotion)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePromotionRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.get(ctx, filter)
	if err != nil {
		return err
	}

	if req.DiscountValue != nil {
		if err = validateDiscount(current.DiscountType, *req.DiscountValue); err != nil {
			return err
		}
	}

	user, _ := shared.UserFromContext(ctx)
	updatedFields := shared.TransformFields(req, user)

	startsAt, endsAt := current.StartsAt, current.EndsAt

	if req.StartsAt != constant.Empty {
		if startsAt, err = timezone.Parse(constant.DateFormat, req.StartsAt); err != nil {
			return failure.BadRequestFromString("invalid starts_at")
		}

		updatedFields[model.FieldStartsAt] = startsAt
	}

	if req.EndsAt != constant.Empty {
		if endsAt, err = timezone.Parse(constant.DateFormat, req.EndsAt); err != nil {
			return failure.BadRequestFromString("invalid ends_at")
		}

		updatedFields[model.FieldEndsAt] = endsAt
	}

	if err = validateWindow(startsAt, endsAt); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update promotion")

		return fmt.Errorf("failed to update promotion: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if _, err = s.get(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete promotion")

		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	return nil
}

func (s *serviceImpl) Validate(ctx context.Context, req dto.ValidatePromotionRequest) (res dto.ValidatePromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Validate")
	defer scope.End()
	defer scope.TraceIfError(err)

	promotion, discount, err := s.Evaluate(ctx, req.Code, req.HotelID, req.Amount)
	if err != nil {
		return res, err
	}

	res = dto.ValidatePromotionResponse{
		PromotionID: promotion.ID,
		Code:        promotion.Code,
		Discount:    discount,
		Total:       req.Amount - discount,
	}

	return res, nil
}

func (s *serviceImpl) Evaluate(ctx context.Context, code, hotelID string, amount int64) (promotion model.Promotion, discount int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Evaluate")
	defer scope.End()
	defer scope.TraceIfError(err)

	promotion, err = s.repo.Get(ctx, shared.FilterByID(dto.NormaliseCode(code), model.FieldCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return promotion, 0, fmt.Errorf("failed to get promotion: %w", err)
	}

	if err = Check(promotion, hotelID, amount, timezone.Now()); err != nil {
		return promotion, 0, err
	}

	return promotion, pricing.Discount(promotion.DiscountType, promotion.DiscountValue, amount), nil
}

// Check returns the reason promotion cannot be applied to the order, if any.
func Check(promotion model.Promotion, hotelID string, amount int64, now time.Time) error {
	switch {
	case promotion.ID == constant.Empty || !promotion.Active:
		return failure.BadRequestFromString("invalid promotion code")
	case now.Before(promotion.StartsAt):
		return failure.BadRequestFromString("promotion has not started yet")
	case now.After(promotion.EndsAt):
		return failure.BadRequestFromString("promotion has expired")
	case promotion.HotelID != nil && *promotion.HotelID != hotelID:
		return failure.BadRequestFromString("promotion is not valid for this hotel")
	case amount < promotion.MinAmount:
		return failure.BadRequestFromString("order amount is below the promotion minimum")
	case promotion.MaxUses > 0 && promotion.UsedCount >= promotion.MaxUses:
		return failure.BadRequestFromString("promotion usage limit reached")
	}

	return nil
}

func (s *serviceImpl) DeactivateExpired(ctx context.Context) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeactivateExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err = s.repo.DeactivateExpired(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to deactivate expired promotions")

		return 0, fmt.Errorf("failed to deactivate expired promotions: %w", err)
	}

	return affected, nil
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (model.Promotion, error) {
	promotion, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return promotion, fmt.Errorf("failed to get promotion: %w", err)
	}

	if promotion.ID == constant.Empty {
		return promotion, failure.NotFound("promotion not found")
	}

	return promotion, nil
}
