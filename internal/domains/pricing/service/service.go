package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"daybooker/config"
	"daybooker/infras/otel"
	availabilityModel "daybooker/internal/domains/availability/model"
	availabilityRepo "daybooker/internal/domains/availability/repository"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	"daybooker/internal/domains/pricing/model"
	"daybooker/internal/domains/pricing/model/dto"
	"daybooker/internal/domains/pricing/repository"
	promotionService "daybooker/internal/domains/promotion/service"
	roomTypeModel "daybooker/internal/domains/roomtype/model"
	roomTypeRepo "daybooker/internal/domains/roomtype/repository"
	timeSlotModel "daybooker/internal/domains/timeslot/model"
	timeSlotRepo "daybooker/internal/domains/timeslot/repository"
	"daybooker/internal/pricing"
	"daybooker/shared"
	"daybooker/shared/cache"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	"daybooker/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheHotelRules = "pricing_rule:hotel"
)

type Pricing interface {
	Create(ctx context.Context, req dto.CreatePricingRuleRequest, hotelID string) (dto.PricingRuleResponse, error)
	GetAllByHotel(ctx context.Context, hotelID string) ([]dto.PricingRuleResponse, error)
	Get(ctx context.Context, id string) (dto.PricingRuleResponse, error)
	Update(ctx context.Context, req dto.UpdatePricingRuleRequest, id string) error
	Delete(ctx context.Context, id string) error
	// Rules returns the active rules of a hotel in engine form.
	Rules(ctx context.Context, hotelID string) ([]pricing.Rule, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	repo             repository.PricingRule
	hotelRepo        hotelRepo.Hotel
	roomTypeRepo     roomTypeRepo.RoomType
	timeSlotRepo     timeSlotRepo.TimeSlot
	availabilityRepo availabilityRepo.Availability
	promotion        promotionService.Promotion
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(
	repo repository.PricingRule,
	hotelRepo hotelRepo.Hotel,
	roomTypeRepo roomTypeRepo.RoomType,
	timeSlotRepo timeSlotRepo.TimeSlot,
	availabilityRepo availabilityRepo.Availability,
	promotion promotionService.Promotion,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Pricing {
	return &serviceImpl{
		repo:             repo,
		hotelRepo:        hotelRepo,
		roomTypeRepo:     roomTypeRepo,
		timeSlotRepo:     timeSlotRepo,
		availabilityRepo: availabilityRepo,
		promotion:        promotion,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePricingRuleRequest, hotelID string) (res dto.PricingRuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = dto.ValidateValue(req.RuleType, req.Value); err != nil {
		return res, err
	}

	startDate, err := dto.ParseDay(req.StartDate)
	if err != nil {
		return res, err
	}

	endDate, err := dto.ParseDay(req.EndDate)
	if err != nil {
		return res, err
	}

	if err = dto.ValidateRange(startDate, endDate); err != nil {
		return res, err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, hotelID); err != nil {
		return res, err
	}

	if err = s.checkScope(ctx, hotelID, req.RoomTypeID, req.TimeSlotID); err != nil {
		return res, err
	}

	user, _ := shared.UserFromContext(ctx)
	rule := req.ToModel(hotelID, user, startDate, endDate)

	if err = s.repo.Insert(ctx, rule); err != nil {
		log.Error().Err(err).Msg("failed to create pricing rule")

		return res, fmt.Errorf("failed to create pricing rule: %w", err)
	}

	s.invalidate(ctx, hotelID)

	res.FromModel(rule)

	return res, nil
}

// checkScope requires the optional room type and slot of a rule to belong to the hotel.
func (s *serviceImpl) checkScope(ctx context.Context, hotelID, roomTypeID, timeSlotID string) error {
	if roomTypeID != constant.Empty {
		exist, err := s.roomTypeRepo.Exist(ctx, shared.FilterByFields(roomTypeModel.TableName, map[string]any{
			roomTypeModel.FieldID:      roomTypeID,
			roomTypeModel.FieldHotelID: hotelID,
		}))
		if err != nil {
			log.Error().Err(err).Msg("failed to check room type")

			return fmt.Errorf("failed to check room type: %w", err)
		}

		if !exist {
			return failure.BadRequestFromString("room type does not belong to this hotel")
		}
	}

	if timeSlotID != constant.Empty {
		exist, err := s.timeSlotRepo.Exist(ctx, shared.FilterByFields(timeSlotModel.TableName, map[string]any{
			timeSlotModel.FieldID:      timeSlotID,
			timeSlotModel.FieldHotelID: hotelID,
		}))
		if err != nil {
			log.Error().Err(err).Msg("failed to check time slot")

			return fmt.Errorf("failed to check time slot: %w", err)
		}

		if !exist {
			return failure.BadRequestFromString("time slot does not belong to this hotel")
		}
	}

	return nil
}

func (s *serviceImpl) GetAllByHotel(ctx context.Context, hotelID string) (res []dto.PricingRuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllByHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, hotelID); err != nil {
		return res, err
	}

	rules, err := s.hotelRules(ctx, hotelID, false)
	if err != nil {
		return res, err
	}

	return dto.FromModels(rules), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PricingRuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	rule, err := s.authorizeRule(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(rule)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePricingRuleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	rule, err := s.authorizeRule(ctx, id)
	if err != nil {
		return err
	}

	if req.Value != nil {
		if err = dto.ValidateValue(rule.RuleType, *req.Value); err != nil {
			return err
		}
	}

	user, _ := shared.UserFromContext(ctx)
	updatedFields := shared.TransformFields(req, user)

	startDate, endDate := rule.StartDate, rule.EndDate

	if req.StartDate != constant.Empty {
		if startDate, err = dto.ParseDay(req.StartDate); err != nil {
			return err
		}

		updatedFields[model.FieldStartDate] = startDate
	}

	if req.EndDate != constant.Empty {
		if endDate, err = dto.ParseDay(req.EndDate); err != nil {
			return err
		}

		updatedFields[model.FieldEndDate] = endDate
	}

	if err = dto.ValidateRange(startDate, endDate); err != nil {
		return err
	}

	if req.DaysOfWeek != nil {
		updatedFields[model.FieldDaysOfWeek] = pq.Int64Array(req.DaysOfWeek)
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update pricing rule")

		return fmt.Errorf("failed to update pricing rule: %w", err)
	}

	s.invalidate(ctx, rule.HotelID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	rule, err := s.authorizeRule(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete pricing rule")

		return fmt.Errorf("failed to delete pricing rule: %w", err)
	}

	s.invalidate(ctx, rule.HotelID)

	return nil
}

func (s *serviceImpl) Rules(ctx context.Context, hotelID string) (res []pricing.Rule, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rules")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheHotelRules, hotelID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	rules, err := s.hotelRules(ctx, hotelID, true)
	if err != nil {
		return nil, err
	}

	res = dto.ToRules(rules)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing rules to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := timezone.ParseDay(req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date")
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByFields(roomTypeModel.TableName, map[string]any{
		roomTypeModel.FieldID:      req.RoomTypeID,
		roomTypeModel.FieldHotelID: req.HotelID,
		roomTypeModel.FieldActive:  true,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type not found")
	}

	exist, err := s.timeSlotRepo.Exist(ctx, shared.FilterByFields(timeSlotModel.TableName, map[string]any{
		timeSlotModel.FieldID:      req.TimeSlotID,
		timeSlotModel.FieldHotelID: req.HotelID,
		timeSlotModel.FieldActive:  true,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to check time slot")

		return res, fmt.Errorf("failed to check time slot: %w", err)
	}

	if !exist {
		return res, failure.NotFound("time slot not found")
	}

	availability, err := s.availabilityRepo.Get(ctx, shared.FilterByFields(availabilityModel.TableName, map[string]any{
		availabilityModel.FieldRoomTypeID: req.RoomTypeID,
		availabilityModel.FieldTimeSlotID: req.TimeSlotID,
		availabilityModel.FieldDate:       date,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	rules, err := s.Rules(ctx, req.HotelID)
	if err != nil {
		return res, err
	}

	quote := pricing.Calculate(pricing.Input{
		BasePrice:     roomType.BasePrice,
		PriceOverride: availability.PriceOverride,
		RoomTypeID:    req.RoomTypeID,
		TimeSlotID:    req.TimeSlotID,
		Date:          date,
	}, rules)

	res = dto.QuoteResponse{
		BasePrice:    quote.BasePrice,
		UnitPrice:    quote.UnitPrice,
		Rooms:        req.Rooms,
		Subtotal:     quote.UnitPrice * int64(req.Rooms),
		AppliedRules: quote.AppliedRules,
	}
	res.Total = res.Subtotal

	if req.PromoCode != constant.Empty {
		promotion, discount, err := s.promotion.Evaluate(ctx, req.PromoCode, req.HotelID, res.Subtotal)
		if err != nil {
			return res, err
		}

		res.PromotionID = promotion.ID
		res.Discount = discount
		res.Total = res.Subtotal - discount
	}

	return res, nil
}

func (s *serviceImpl) hotelRules(ctx context.Context, hotelID string, activeOnly bool) ([]model.PricingRule, error) {
	fields := map[string]any{model.FieldHotelID: hotelID}
	if activeOnly {
		fields[model.FieldActive] = true
	}

	rules, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldPriority, SortDir: gDto.SortDirAsc}, shared.FilterByFields(model.TableName, fields))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing rules")

		return nil, fmt.Errorf("failed to get pricing rules: %w", err)
	}

	return rules, nil
}

func (s *serviceImpl) authorizeRule(ctx context.Context, id string) (model.PricingRule, error) {
	rule, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing rule")

		return rule, fmt.Errorf("failed to get pricing rule: %w", err)
	}

	if rule.ID == constant.Empty {
		return rule, failure.NotFound("pricing rule not found")
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, rule.HotelID); err != nil {
		return rule, err
	}

	return rule, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, hotelID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheHotelRules, hotelID)); err != nil {
			log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to delete pricing rule cache")
		}
	}()
}

