package service

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	activityDto "daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"
	bookingModel "daybooker/internal/domains/booking/model"
	bookingRepo "daybooker/internal/domains/booking/repository"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	"daybooker/internal/domains/review/model"
	"daybooker/internal/domains/review/model/dto"
	"daybooker/internal/domains/review/repository"
	"daybooker/shared"
	"daybooker/shared/cache"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	ListByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetReviewsResponse, error)
	Reply(ctx context.Context, id string, req dto.ReplyRequest) error
	SetVisibility(ctx context.Context, id string, req dto.SetVisibilityRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepo.Booking
	hotelRepo   hotelRepo.Hotel
	activity    activityService.ActivityLog
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Review, bookingRepo bookingRepo.Booking, hotelRepo hotelRepo.Hotel, activity activityService.ActivityLog, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		hotelRepo:   hotelRepo,
		activity:    activity,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	if booking.UserID != userID {
		return res, failure.NotBookingOwner
	}

	if booking.Status != bookingModel.StatusCompleted {
		return res, failure.BadRequestFromString("only completed bookings can be reviewed")
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check review")

		return res, fmt.Errorf("failed to check review: %w", err)
	}

	if exist {
		return res, failure.AlreadyReviewed
	}

	review := req.ToModel(userID, booking.HotelID)

	if err = s.repo.Insert(ctx, review); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.AlreadyReviewed
		}

		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	s.refresh(ctx, booking.HotelID)

	s.activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionReviewCreated,
		Entity:   model.EntityName,
		EntityID: review.ID,
		Details:  map[string]any{"hotel_id": booking.HotelID, "rating": review.Rating},
	})

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) ListByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldHotelID: hotelID,
		model.FieldVisible: true,
	})

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	req.SortBy, req.SortDir = constant.FieldCreatedAt, gDto.SortDirDesc

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Reply(ctx context.Context, id string, req dto.ReplyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reply")
	defer scope.End()
	defer scope.TraceIfError(err)

	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, review.HotelID); err != nil {
		return err
	}

	userID, _ := shared.UserFromContext(ctx)
	now := timezone.Now()

	err = s.repo.Update(ctx, map[string]any{
		model.FieldPartnerReply:  req.Reply,
		model.FieldRepliedAt:     now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: userID,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to reply to review")

		return fmt.Errorf("failed to reply to review: %w", err)
	}

	return nil
}

func (s *serviceImpl) SetVisibility(ctx context.Context, id string, req dto.SetVisibilityRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetVisibility")
	defer scope.End()
	defer scope.TraceIfError(err)

	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	userID, _ := shared.UserFromContext(ctx)

	if err = s.repo.Update(ctx, shared.TransformFields(req, userID), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update review visibility")

		return fmt.Errorf("failed to update review visibility: %w", err)
	}

	s.refresh(ctx, review.HotelID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.refresh(ctx, review.HotelID)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found")
	}

	return review, nil
}

// refresh recomputes the hotel's rating aggregate. Failures are logged only;
// the aggregate is rebuilt on the next review change.
func (s *serviceImpl) refresh(ctx context.Context, hotelID string) {
	if err := s.hotelRepo.RefreshRating(ctx, hotelID); err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to refresh hotel rating")
	}

	go hotelService.InvalidateHotel(context.WithoutCancel(ctx), s.cache, hotelID)
}
