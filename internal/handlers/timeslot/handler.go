package timeslot

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/timeslot/model/dto"
	"daybooker/internal/domains/timeslot/service"
	"daybooker/shared/constant"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TimeSlot
	otel    otel.Otel
}

func New(service service.TimeSlot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/time-slots", func(routerGroup chi.Router) {
		routerGroup.Patch("/{id}", handler.UpdateTimeSlot)
		routerGroup.Delete("/{id}", handler.DeleteTimeSlot)
	})
}

// HotelRouter registers the routes under /hotels/{hotelID}.
func (handler *Handler) HotelRouter(router chi.Router) {
	router.Post("/time-slots", handler.CreateTimeSlot)
	router.Get("/time-slots", handler.GetTimeSlots)
}

// CreateTimeSlot adds a bookable window to a hotel.
// @Summary Create a time slot
// @Description Slots are HH:MM windows within a single day.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param request body dto.CreateTimeSlotRequest true "Create Time Slot Request"
// @Success 201 {object} response.Data[dto.TimeSlotResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/time-slots [post]
// @Security BearerAuth
func (handler *Handler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTimeSlot")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	req := dto.CreateTimeSlotRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	slot, err := handler.service.Create(ctx, req, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot created successfully")

	response.WithJSON(w, http.StatusCreated, slot)
}

// GetTimeSlots lists the time slots of a hotel ordered by start time.
// @Summary List time slots
// @Tags TimeSlot
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Success 200 {object} response.Data[[]dto.TimeSlotResponse]
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/time-slots [get]
func (handler *Handler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	slots, err := handler.service.GetAllByHotel(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// UpdateTimeSlot handles partial updates of a time slot.
// @Summary Update a time slot
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path string true "Time slot ID"
// @Param request body dto.UpdateTimeSlotRequest true "Update Time Slot Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/time-slots/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTimeSlotRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot updated successfully")

	response.WithMessage(w, http.StatusOK, "Time slot updated successfully")
}

// DeleteTimeSlot removes a time slot without bookings.
// @Summary Delete a time slot
// @Tags TimeSlot
// @Produce json
// @Param id path string true "Time slot ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/time-slots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot deleted successfully")

	response.WithMessage(w, http.StatusOK, "Time slot deleted successfully")
}
