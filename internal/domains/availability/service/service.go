package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"daybooker/config"
	"daybooker/infras/otel"
	"daybooker/internal/domains/availability/model"
	"daybooker/internal/domains/availability/model/dto"
	"daybooker/internal/domains/availability/repository"
	hotelModel "daybooker/internal/domains/hotel/model"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	pricingService "daybooker/internal/domains/pricing/service"
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
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	BulkUpdate(ctx context.Context, req dto.BulkUpdateRequest) (dto.BulkUpdateResponse, error)
	Calendar(ctx context.Context, req dto.CalendarRequest) ([]dto.AvailabilityResponse, error)
	Check(ctx context.Context, hotelID, date string) (dto.CheckResponse, error)
}

type serviceImpl struct {
	repo         repository.Availability
	hotelRepo    hotelRepo.Hotel
	roomTypeRepo roomTypeRepo.RoomType
	timeSlotRepo timeSlotRepo.TimeSlot
	pricing      pricingService.Pricing
	transactor   gRepo.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Availability,
	hotelRepo hotelRepo.Hotel,
	roomTypeRepo roomTypeRepo.RoomType,
	timeSlotRepo timeSlotRepo.TimeSlot,
	pricing pricingService.Pricing,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		repo:         repo,
		hotelRepo:    hotelRepo,
		roomTypeRepo: roomTypeRepo,
		timeSlotRepo: timeSlotRepo,
		pricing:      pricing,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) BulkUpdate(ctx context.Context, req dto.BulkUpdateRequest) (res dto.BulkUpdateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BulkUpdate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("one of available_rooms, price_override or is_closed is required")
	}

	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return res, err
	}

	roomType, err := s.authorizeRoomType(ctx, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	if req.AvailableRooms != nil && *req.AvailableRooms > roomType.TotalRooms {
		return res, failure.BadRequestFromString(fmt.Sprintf("available_rooms cannot exceed total rooms (%d)", roomType.TotalRooms))
	}

	slotIDs := slices.Compact(slices.Sorted(slices.Values(req.TimeSlotIDs)))

	count, err := s.timeSlotRepo.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: timeSlotModel.FieldID, Value: slotIDs, Operator: gDto.FilterOperatorIn, Table: timeSlotModel.TableName},
			gDto.Filter{Field: timeSlotModel.FieldHotelID, Value: roomType.HotelID, Operator: gDto.FilterOperatorEq, Table: timeSlotModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots")

		return res, fmt.Errorf("failed to count time slots: %w", err)
	}

	if count != len(slotIDs) {
		return res, failure.BadRequestFromString("time slots must belong to the room type's hotel")
	}

	req.TimeSlotIDs = slotIDs
	user, _ := shared.UserFromContext(ctx)
	models := req.ToModels(start, end, roomType.TotalRooms, user)

	if len(models) == 0 {
		return res, nil
	}

	fields := repository.UpsertFields{
		AvailableRooms: req.AvailableRooms != nil,
		PriceOverride:  req.PriceOverride != nil,
		IsClosed:       req.IsClosed != nil,
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		affected, err := s.repo.UpsertBulkTx(ctx, tx, models, fields)
		res.Affected = affected

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update availability")

		return res, fmt.Errorf("failed to update availability: %w", err)
	}

	log.Info().Str("room_type_id", req.RoomTypeID).Int64("affected", res.Affected).Msg("availability updated")

	go hotelService.InvalidateHotel(context.WithoutCancel(ctx), s.cache, roomType.HotelID)

	return res, nil
}

func (s *serviceImpl) Calendar(ctx context.Context, req dto.CalendarRequest) (res []dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := s.parseRange(req.From, req.To)
	if err != nil {
		return res, err
	}

	roomType, err := s.authorizeRoomType(ctx, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	slots, err := s.timeSlotRepo.GetAll(ctx, gDto.QueryParams{SortBy: timeSlotModel.FieldStartTime, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(timeSlotModel.TableName, map[string]any{timeSlotModel.FieldHotelID: roomType.HotelID}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	rows, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomTypeID, Value: req.RoomTypeID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldDate, ArgName: "date_from", Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldDate, ArgName: "date_to", Value: to, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	stored := make(map[string]model.Availability, len(rows))
	for _, row := range rows {
		stored[dto.Key(row.TimeSlotID, row.Date)] = row
	}

	res = make([]dto.AvailabilityResponse, 0, dto.Days(from, to)*len(slots))

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, slot := range slots {
			row, ok := stored[dto.Key(slot.ID, day)]
			if !ok {
				row = model.Availability{RoomTypeID: req.RoomTypeID, TimeSlotID: slot.ID, Date: day, AvailableRooms: roomType.TotalRooms}
			}

			var item dto.AvailabilityResponse
			item.FromModel(row)
			res = append(res, item)
		}
	}

	return res, nil
}

// Check lists remaining rooms and the quoted unit price of every active room
// type and slot of a hotel on date.
func (s *serviceImpl) Check(ctx context.Context, hotelID, date string) (res dto.CheckResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.ParseDay(date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date")
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || (hotel.Status != hotelModel.StatusApproved && !hotelService.CanManage(ctx, hotel)) {
		return res, failure.NotFound("hotel not found")
	}

	roomTypes, err := s.roomTypeRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomTypeModel.FieldBasePrice, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(roomTypeModel.TableName, map[string]any{roomTypeModel.FieldHotelID: hotelID, roomTypeModel.FieldActive: true}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	slots, err := s.timeSlotRepo.GetAll(ctx, gDto.QueryParams{SortBy: timeSlotModel.FieldStartTime, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(timeSlotModel.TableName, map[string]any{timeSlotModel.FieldHotelID: hotelID, timeSlotModel.FieldActive: true}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res = dto.CheckResponse{HotelID: hotelID, Date: date, Items: []dto.CheckItem{}}

	if len(roomTypes) == 0 || len(slots) == 0 {
		return res, nil
	}

	roomTypeIDs := make([]string, len(roomTypes))
	for i, roomType := range roomTypes {
		roomTypeIDs[i] = roomType.ID
	}

	rows, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomTypeID, Value: roomTypeIDs, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldDate, Value: day, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	stored := make(map[string]model.Availability, len(rows))
	for _, row := range rows {
		stored[row.RoomTypeID+dto.Key(row.TimeSlotID, day)] = row
	}

	rules, err := s.pricing.Rules(ctx, hotelID)
	if err != nil {
		return res, err
	}

	for _, roomType := range roomTypes {
		for _, slot := range slots {
			rooms := roomType.TotalRooms
			var override *int64

			if row, ok := stored[roomType.ID+dto.Key(slot.ID, day)]; ok {
				rooms = row.AvailableRooms
				override = row.PriceOverride

				if row.IsClosed {
					rooms = 0
				}
			}

			quote := pricing.Calculate(pricing.Input{
				BasePrice:     roomType.BasePrice,
				PriceOverride: override,
				RoomTypeID:    roomType.ID,
				TimeSlotID:    slot.ID,
				Date:          day,
			}, rules)

			res.Items = append(res.Items, dto.CheckItem{
				RoomTypeID:     roomType.ID,
				RoomTypeName:   roomType.Name,
				Capacity:       roomType.Capacity,
				TimeSlotID:     slot.ID,
				TimeSlotName:   slot.Name,
				StartTime:      slot.StartTime,
				EndTime:        slot.EndTime,
				AvailableRooms: rooms,
				UnitPrice:      quote.UnitPrice,
				AppliedRules:   quote.AppliedRules,
			})
		}
	}

	return res, nil
}

func (s *serviceImpl) parseRange(startValue, endValue string) (start, end time.Time, err error) {
	start, err = timezone.ParseDay(startValue)
	if err != nil {
		return start, end, failure.BadRequestFromString("invalid start date")
	}

	end, err = timezone.ParseDay(endValue)
	if err != nil {
		return start, end, failure.BadRequestFromString("invalid end date")
	}

	if end.Before(start) {
		return start, end, failure.BadRequestFromString("end date must not be before start date")
	}

	if dto.Days(start, end) > s.cfg.Booking.MaxBulkDays {
		return start, end, failure.BadRequestFromString(fmt.Sprintf("date range cannot exceed %d days", s.cfg.Booking.MaxBulkDays))
	}

	return start, end, nil
}

func (s *serviceImpl) authorizeRoomType(ctx context.Context, roomTypeID string) (roomTypeModel.RoomType, error) {
	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(roomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return roomType, failure.NotFound("room type not found")
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, roomType.HotelID); err != nil {
		return roomType, err
	}

	return roomType, nil
}
