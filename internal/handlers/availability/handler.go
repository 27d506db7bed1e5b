package availability

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/availability/model/dto"
	"daybooker/internal/domains/availability/service"
	"daybooker/shared/constant"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Put("/", handler.BulkUpdate)
		routerGroup.Get("/calendar", handler.Calendar)
	})
}

// HotelRouter registers the routes under /hotels/{hotelID}.
func (handler *Handler) HotelRouter(router chi.Router) {
	router.Get("/availability", handler.Check)
}

// BulkUpdate sets inventory, closures or price overrides over a date range.
// @Summary Bulk update availability
// @Description Applies the given values to every date of the range, optionally limited to weekdays (0 = Sunday) and slots.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.BulkUpdateRequest true "Bulk Update Request"
// @Success 200 {object} response.Data[dto.BulkUpdateResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [put]
// @Security BearerAuth
func (handler *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkUpdate")
	defer scope.End()

	req := dto.BulkUpdateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.BulkUpdate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bulk update availability")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("availability.affected", res.Affected)

	response.WithJSON(w, http.StatusOK, res)
}

// Calendar returns the availability of a room type over a date range.
// @Summary Availability calendar
// @Tags Availability
// @Produce json
// @Param room_type_id query string true "Room type ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/calendar [get]
// @Security BearerAuth
func (handler *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Calendar")
	defer scope.End()

	query := r.URL.Query()
	req := dto.CalendarRequest{
		RoomTypeID: query.Get("room_type_id"),
		From:       query.Get("from"),
		To:         query.Get("to"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate calendar query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Calendar(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Check returns the remaining rooms and price of every room type and slot on a date.
// @Summary Check availability
// @Tags Availability
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.CheckResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/availability [get]
func (handler *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Check")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)
	date := r.URL.Query().Get("date")

	if err := validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate date")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Check(ctx, hotelID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
