package service

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	hotelModel "daybooker/internal/domains/hotel/model"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	"daybooker/internal/domains/timeslot/model"
	"daybooker/internal/domains/timeslot/model/dto"
	"daybooker/internal/domains/timeslot/repository"
	"daybooker/shared"
	"daybooker/shared/cache"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"

	"github.com/rs/zerolog/log"
)

type TimeSlot interface {
	Create(ctx context.Context, req dto.CreateTimeSlotRequest, hotelID string) (dto.TimeSlotResponse, error)
	GetAllByHotel(ctx context.Context, hotelID string) ([]dto.TimeSlotResponse, error)
	Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.TimeSlot
	hotelRepo hotelRepo.Hotel
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.TimeSlot, hotelRepo hotelRepo.Hotel, cache cache.RedisCache, otel otel.Otel) TimeSlot {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTimeSlotRequest, hotelID string) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = dto.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return res, err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, hotelID); err != nil {
		return res, err
	}

	user, _ := shared.UserFromContext(ctx)
	slot := req.ToModel(hotelID, user)

	if err = s.repo.Insert(ctx, slot); err != nil {
		log.Error().Err(err).Msg("failed to create time slot")

		return res, fmt.Errorf("failed to create time slot: %w", err)
	}

	s.invalidate(ctx, hotelID)

	res.FromModel(slot)

	return res, nil
}

// GetAllByHotel lists slots ordered by start time. Inactive slots are only listed for
// the hotel's managers.
func (s *serviceImpl) GetAllByHotel(ctx context.Context, hotelID string) (res []dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllByHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if !hotelService.CanManage(ctx, hotel) {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTimeSlotRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	start, end := current.StartTime, current.EndTime
	if req.StartTime != constant.Empty {
		start = req.StartTime
	}

	if req.EndTime != constant.Empty {
		end = req.EndTime
	}

	if err = dto.ValidateWindow(start, end); err != nil {
		return err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, current.HotelID); err != nil {
		return err
	}

	user, _ := shared.UserFromContext(ctx)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update time slot")

		return fmt.Errorf("failed to update time slot: %w", err)
	}

	s.invalidate(ctx, current.HotelID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, current.HotelID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString("time slot has bookings; deactivate it instead")
		}

		log.Error().Err(err).Msg("failed to delete time slot")

		return fmt.Errorf("failed to delete time slot: %w", err)
	}

	s.invalidate(ctx, current.HotelID)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.TimeSlot, error) {
	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return slot, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return slot, failure.NotFound("time slot not found")
	}

	return slot, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, hotelID string) {
	go func() {
		hotelService.InvalidateHotel(context.WithoutCancel(ctx), s.cache, hotelID)
	}()
}
