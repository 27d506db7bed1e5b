package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"daybooker/config"
	"daybooker/infras/metrics"
	"daybooker/infras/otel"
	activityDto "daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"
	availabilityModel "daybooker/internal/domains/availability/model"
	availabilityRepo "daybooker/internal/domains/availability/repository"
	"daybooker/internal/domains/booking/model"
	"daybooker/internal/domains/booking/model/dto"
	"daybooker/internal/domains/booking/repository"
	hotelModel "daybooker/internal/domains/hotel/model"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	partnerModel "daybooker/internal/domains/partner/model"
	partnerRepo "daybooker/internal/domains/partner/repository"
	pricingService "daybooker/internal/domains/pricing/service"
	promotionRepo "daybooker/internal/domains/promotion/repository"
	promotionService "daybooker/internal/domains/promotion/service"
	roomTypeModel "daybooker/internal/domains/roomtype/model"
	roomTypeRepo "daybooker/internal/domains/roomtype/repository"
	timeSlotModel "daybooker/internal/domains/timeslot/model"
	timeSlotRepo "daybooker/internal/domains/timeslot/repository"
	"daybooker/internal/pricing"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const partnerHotelsQuery = "bookings.hotel_id IN (SELECT hotels.id FROM hotels WHERE hotels.partner_id = :booking_partner_id)"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ListMine(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	ListForPartner(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	ListAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	// ExpirePending cancels pending bookings older than the configured expiry.
	ExpirePending(ctx context.Context) (int64, error)
	// CompletePast completes confirmed bookings whose slot has ended.
	CompletePast(ctx context.Context) (int64, error)
}

type Dependencies struct {
	Repo             repository.Booking
	HotelRepo        hotelRepo.Hotel
	RoomTypeRepo     roomTypeRepo.RoomType
	TimeSlotRepo     timeSlotRepo.TimeSlot
	AvailabilityRepo availabilityRepo.Availability
	PartnerRepo      partnerRepo.Partner
	PromotionRepo    promotionRepo.Promotion
	Promotion        promotionService.Promotion
	Pricing          pricingService.Pricing
	Activity         activityService.ActivityLog
	Transactor       gRepo.Transactor
	Metrics          metrics.Metrics
	Config           *config.Config
	Otel             otel.Otel
}

type serviceImpl struct {
	Dependencies
}

func New(deps Dependencies) Booking {
	return &serviceImpl{Dependencies: deps}
}

// terms are the partner conditions a booking is made under.
type terms struct {
	commissionRate    float64
	autoConfirm       bool
	cancellationHours int
}

func (s *serviceImpl) partnerTerms(ctx context.Context, partnerID string) (terms, error) {
	res := terms{
		commissionRate:    s.Config.Booking.DefaultCommissionRate,
		cancellationHours: s.Config.Booking.DefaultCancellationHours,
	}

	settings, err := s.PartnerRepo.Get(ctx, shared.FilterByID(partnerID, partnerModel.FieldPartnerID, partnerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get partner settings")

		return res, fmt.Errorf("failed to get partner settings: %w", err)
	}

	if settings.ID == constant.Empty {
		return res, nil
	}

	res.commissionRate = settings.CommissionRate
	res.autoConfirm = settings.AutoConfirm
	res.cancellationHours = settings.FreeCancellationHours

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := timezone.ParseDay(req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date")
	}

	hotel, err := s.HotelRepo.Get(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || hotel.Status != hotelModel.StatusApproved {
		return res, failure.NotFound("hotel not found")
	}

	roomType, err := s.RoomTypeRepo.Get(ctx, shared.FilterByFields(roomTypeModel.TableName, map[string]any{
		roomTypeModel.FieldID:      req.RoomTypeID,
		roomTypeModel.FieldHotelID: hotel.ID,
		roomTypeModel.FieldActive:  true,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.BadRequestFromString("room type is not available at this hotel")
	}

	slot, err := s.TimeSlotRepo.Get(ctx, shared.FilterByFields(timeSlotModel.TableName, map[string]any{
		timeSlotModel.FieldID:      req.TimeSlotID,
		timeSlotModel.FieldHotelID: hotel.ID,
		timeSlotModel.FieldActive:  true,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.BadRequestFromString("time slot is not available at this hotel")
	}

	start, err := model.SlotTime(date, slot.StartTime)
	if err != nil {
		log.Error().Err(err).Str("time_slot_id", slot.ID).Msg("failed to read slot start")

		return res, fmt.Errorf("failed to read slot start: %w", err)
	}

	if !start.After(timezone.Now()) {
		return res, failure.BadRequestFromString("time slot has already started")
	}

	if req.Guests > roomType.Capacity*req.Rooms {
		return res, failure.BadRequestFromString(fmt.Sprintf("at most %d guests fit in %d room(s)", roomType.Capacity*req.Rooms, req.Rooms))
	}

	partnerTerms, err := s.partnerTerms(ctx, hotel.PartnerID)
	if err != nil {
		return res, err
	}

	rules, err := s.Pricing.Rules(ctx, hotel.ID)
	if err != nil {
		return res, err
	}

	userID, _ := shared.UserFromContext(ctx)

	booking := req.ToModel(userID, date)
	if partnerTerms.autoConfirm {
		booking.Status = model.StatusConfirmed
	}

	err = s.Transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		reserved, err := s.AvailabilityRepo.ReserveTx(ctx, tx, availabilityModel.Slot{
			RoomTypeID: roomType.ID,
			TimeSlotID: slot.ID,
			Date:       date,
		}, req.Rooms, roomType.TotalRooms, userID)
		if errors.Is(err, availabilityRepo.ErrNoAvailability) {
			return failure.NoAvailability
		}

		if err != nil {
			return err //nolint:wrapcheck
		}

		quote := pricing.Calculate(pricing.Input{
			BasePrice:     roomType.BasePrice,
			PriceOverride: reserved.PriceOverride,
			RoomTypeID:    roomType.ID,
			TimeSlotID:    slot.ID,
			Date:          date,
		}, rules)

		booking.UnitPrice = quote.UnitPrice
		booking.Subtotal = quote.UnitPrice * int64(req.Rooms)

		if req.PromoCode != constant.Empty {
			promotion, discount, err := s.Promotion.Evaluate(ctx, req.PromoCode, hotel.ID, booking.Subtotal)
			if err != nil {
				return err //nolint:wrapcheck
			}

			err = s.PromotionRepo.IncrementUsageTx(ctx, tx, promotion.ID)
			if errors.Is(err, promotionRepo.ErrPromotionExhausted) {
				return failure.BadRequestFromString("promotion usage limit reached")
			}

			if err != nil {
				return err //nolint:wrapcheck
			}

			booking.PromotionID = &promotion.ID
			booking.Discount = discount
		}

		booking.TotalPrice = booking.Subtotal - booking.Discount
		booking.CommissionRate = partnerTerms.commissionRate
		booking.CommissionAmount, booking.PartnerPayout = pricing.Commission(booking.TotalPrice, partnerTerms.commissionRate)

		return s.Repo.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if err != nil {
		if failure.GetCode(err) != http.StatusInternalServerError {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("reference", booking.Reference).Str("hotel_id", hotel.ID).Int64("total", booking.TotalPrice).Msg("booking created")

	s.Metrics.BookingCreated(hotel.ID, booking.Status, booking.TotalPrice)
	s.Activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionBookingCreated,
		Entity:   model.EntityName,
		EntityID: booking.ID,
		Details: map[string]any{
			"reference": booking.Reference,
			"hotel_id":  hotel.ID,
			"total":     booking.TotalPrice,
			"status":    booking.Status,
		},
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, role := shared.UserFromContext(ctx)

	booking, hotel, err := s.authorizeBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == model.StatusCancelled {
		return failure.BadRequestFromString("booking already cancelled")
	}

	if !booking.IsCancellable() {
		return failure.BadRequestFromString(fmt.Sprintf("a %s booking cannot be cancelled", booking.Status))
	}

	if role == constant.RoleClient {
		if err = s.checkCancellationWindow(ctx, booking, hotel); err != nil {
			return err
		}
	}

	reason := req.Reason
	if reason == constant.Empty {
		reason = "cancelled by " + role
	}

	if _, err = s.changeStatus(ctx, id, constant.Empty, model.StatusCancelled, reason, userID); err != nil {
		return err
	}

	s.Activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionBookingCancelled,
		Entity:   model.EntityName,
		EntityID: id,
		Details:  map[string]any{"reason": reason},
	})

	return nil
}

// checkCancellationWindow rejects client cancellations inside the partner's
// free cancellation period before the slot starts.
func (s *serviceImpl) checkCancellationWindow(ctx context.Context, booking model.Booking, hotel hotelModel.Hotel) error {
	slot, err := s.TimeSlotRepo.Get(ctx, shared.FilterByID(booking.TimeSlotID, timeSlotModel.FieldID, timeSlotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return fmt.Errorf("failed to get time slot: %w", err)
	}

	partnerTerms, err := s.partnerTerms(ctx, hotel.PartnerID)
	if err != nil {
		return err
	}

	start, err := model.SlotTime(booking.Date, slot.StartTime)
	if err != nil {
		return fmt.Errorf("failed to read slot start: %w", err)
	}

	deadline := start.Add(-time.Duration(partnerTerms.cancellationHours) * time.Hour)
	if timezone.Now().After(deadline) {
		return failure.BadRequestFromString(fmt.Sprintf("bookings can only be cancelled up to %d hours before the slot starts", partnerTerms.cancellationHours))
	}

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.HotelRepo, booking.HotelID); err != nil {
		return err
	}

	updated, err := s.changeStatus(ctx, id, constant.Empty, req.Status, req.Reason, userID)
	if err != nil {
		return err
	}

	s.Activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionBookingStatus,
		Entity:   model.EntityName,
		EntityID: id,
		Details:  map[string]any{"from": booking.Status, "to": updated.Status},
	})

	return nil
}

// changeStatus moves the locked booking to status. A non-empty from requires the
// booking to still be in that status. Cancelling returns its rooms to inventory.
func (s *serviceImpl) changeStatus(ctx context.Context, id, from, status, reason, user string) (booking model.Booking, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.Transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.Repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if locked.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		if from != constant.Empty && locked.Status != from {
			return failure.BadRequestFromString("booking is no longer " + from)
		}

		if locked.Status == model.StatusCancelled && status == model.StatusCancelled {
			return failure.BadRequestFromString("booking already cancelled")
		}

		if !model.CanTransition(locked.Status, status) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot change booking from %s to %s", locked.Status, status))
		}

		now := timezone.Now()
		fields := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if status == model.StatusCancelled {
			fields[model.FieldCancelReason] = reason
			fields[model.FieldCancelledAt] = now

			if locked.HoldsInventory() {
				slot := availabilityModel.Slot{RoomTypeID: locked.RoomTypeID, TimeSlotID: locked.TimeSlotID, Date: locked.Date}

				if err := s.AvailabilityRepo.ReleaseTx(ctx, tx, slot, locked.Rooms, user); err != nil {
					return err //nolint:wrapcheck
				}
			}

			if locked.PromotionID != nil && *locked.PromotionID != constant.Empty {
				if err := s.PromotionRepo.ReleaseUsageTx(ctx, tx, *locked.PromotionID); err != nil {
					return err //nolint:wrapcheck
				}
			}

			locked.CancelReason = reason
			locked.CancelledAt = &now
		}

		if err := s.Repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err //nolint:wrapcheck
		}

		locked.Status = status
		booking = locked

		return nil
	})
	if err != nil {
		if failure.GetCode(err) != http.StatusInternalServerError {
			return booking, err
		}

		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.Metrics.BookingStatusChanged(status)

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, _, err := s.authorizeBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)

	group := filter.ToFilter()
	group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	return s.list(ctx, req, group)
}

func (s *serviceImpl) ListForPartner(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForPartner")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, role := shared.UserFromContext(ctx)
	group := filter.ToFilter()

	switch {
	case filter.HotelID != constant.Empty:
		if _, err = hotelService.AuthorizeHotel(ctx, s.HotelRepo, filter.HotelID); err != nil {
			return res, err
		}
	case role != constant.RoleAdmin:
		group.Filters = append(group.Filters, gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value:    partnerHotelsQuery,
			Args:     map[string]any{"booking_partner_id": userID},
		})
	}

	return s.list(ctx, req, group)
}

func (s *serviceImpl) ListAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, req, filter.ToFilter())
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldCreatedAt
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.Repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) ExpirePending(ctx context.Context) (expired int64, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpirePending")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := timezone.Now().Add(-time.Duration(s.Config.Booking.PendingExpiryMinutes) * time.Minute)

	stale, err := s.Repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCreatedAt, Value: cutoff, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	}, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending bookings")

		return 0, fmt.Errorf("failed to get pending bookings: %w", err)
	}

	for _, booking := range stale {
		if _, err = s.changeStatus(ctx, booking.ID, model.StatusPending, model.StatusCancelled, model.CancelReasonExpired, constant.SystemUser); err != nil {
			// Confirmed or cancelled since the lookup.
			if failure.GetCode(err) == http.StatusBadRequest {
				continue
			}

			return expired, err
		}

		expired++
	}

	return expired, nil
}

func (s *serviceImpl) CompletePast(ctx context.Context) (completed int64, err error) {
	ctx, scope := s.Otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompletePast")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	completed, err = s.Repo.CompletePast(ctx, now.Format(constant.DayFormat), now.Format(constant.ClockFormat))
	if err != nil {
		log.Error().Err(err).Msg("failed to complete past bookings")

		return 0, fmt.Errorf("failed to complete past bookings: %w", err)
	}

	for range completed {
		s.Metrics.BookingStatusChanged(model.StatusCompleted)
	}

	return completed, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.Repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

// authorizeBooking loads a booking visible to its guest, the hotel's partner or an admin.
func (s *serviceImpl) authorizeBooking(ctx context.Context, id string) (model.Booking, hotelModel.Hotel, error) {
	var hotel hotelModel.Hotel

	booking, err := s.get(ctx, id)
	if err != nil {
		return booking, hotel, err
	}

	userID, role := shared.UserFromContext(ctx)
	if role == constant.RoleClient {
		if booking.UserID != userID {
			return booking, hotel, failure.NotBookingOwner
		}
	}

	hotel, err = s.HotelRepo.Get(ctx, shared.FilterByID(booking.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return booking, hotel, fmt.Errorf("failed to get hotel: %w", err)
	}

	if role != constant.RoleClient && !hotelService.CanManage(ctx, hotel) {
		return booking, hotel, failure.NotHotelManager
	}

	return booking, hotel, nil
}
