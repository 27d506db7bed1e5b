package dashboard

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/dashboard/model/dto"
	"daybooker/internal/domains/dashboard/service"
	"daybooker/shared/constant"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/partner/dashboard", handler.GetPartnerDashboard)
	router.Get("/admin/dashboard", handler.GetAdminDashboard)
}

func statsRequest(r *http.Request) (dto.StatsRequest, error) {
	req := dto.StatsRequest{
		HotelID:  r.URL.Query().Get("hotel_id"),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return req, err
	}

	return req, nil
}

// GetPartnerDashboard returns booking and revenue figures for the caller's hotels.
// @Summary Partner dashboard
// @Tags Partner
// @Produce json
// @Param hotel_id query string false "Restrict to a hotel"
// @Param date_from query string false "First booking date (YYYY-MM-DD)"
// @Param date_to query string false "Last booking date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.PartnerStatsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partner/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetPartnerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartnerDashboard")
	defer scope.End()

	req, err := statsRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	stats, err := handler.service.Partner(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partner dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetAdminDashboard returns platform wide figures.
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Param date_from query string false "First booking date (YYYY-MM-DD)"
// @Param date_to query string false "Last booking date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AdminStatsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdminDashboard")
	defer scope.End()

	req, err := statsRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	stats, err := handler.service.Admin(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}
