package review

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/review/model"
	"daybooker/internal/domains/review/model/dto"
	"daybooker/internal/domains/review/service"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Post("/{id}/reply", handler.ReplyReview)
		routerGroup.Patch("/{id}/visibility", handler.SetVisibility)
		routerGroup.Delete("/{id}", handler.DeleteReview)
	})
}

// HotelRouter registers the routes under /hotels/{hotelID}.
func (handler *Handler) HotelRouter(router chi.Router) {
	router.Get("/reviews", handler.GetHotelReviews)
}

// CreateReview reviews a completed booking.
// @Summary Review a booking
// @Description One review per completed booking of the caller.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Data[dto.ReviewResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	review, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review created successfully")

	response.WithJSON(w, http.StatusCreated, review)
}

// GetHotelReviews lists the visible reviews of a hotel.
// @Summary List hotel reviews
// @Tags Review
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReviewsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/reviews [get]
func (handler *Handler) GetHotelReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelReviews")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldRating, constant.FieldCreatedAt)

	reviews, err := handler.service.ListByHotel(ctx, queryParams, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reviews)
}

// ReplyReview stores the partner's answer to a review.
// @Summary Reply to a review
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body dto.ReplyRequest true "Reply Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id}/reply [post]
// @Security BearerAuth
func (handler *Handler) ReplyReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReplyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reply(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply to review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review replied successfully")

	response.WithMessage(w, http.StatusOK, "Review replied successfully")
}

// SetVisibility hides or shows a review.
// @Summary Moderate a review
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body dto.SetVisibilityRequest true "Set Visibility Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id}/visibility [patch]
// @Security BearerAuth
func (handler *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetVisibility")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetVisibilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetVisibility(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set review visibility")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review visibility updated successfully")

	response.WithMessage(w, http.StatusOK, "Review visibility updated successfully")
}

// DeleteReview removes a review.
// @Summary Delete a review
// @Tags Admin
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review deleted successfully")

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}
