package partner

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/partner/model/dto"
	"daybooker/internal/domains/partner/service"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Partner
	otel    otel.Otel
}

func New(service service.Partner, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/partner/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Patch("/", handler.UpdateSettings)
	})

	router.Route("/admin/partners", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPartners)
		routerGroup.Get("/{partnerID}", handler.GetPartner)
		routerGroup.Put("/{partnerID}/commission", handler.SetCommissionRate)
	})
}

// GetSettings returns the settings of the calling partner.
// @Summary Get partner settings
// @Tags Partner
// @Produce json
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partner/settings [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetSettings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partner settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// UpdateSettings updates the partner editable settings.
// @Summary Update partner settings
// @Description The commission rate is managed by admins and cannot be changed here.
// @Tags Partner
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Update Settings Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/partner/settings [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	req := dto.UpdateSettingsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateSettings(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update partner settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Partner settings updated successfully")

	response.WithMessage(w, http.StatusOK, "Partner settings updated successfully")
}

// GetPartners lists partner accounts with their settings.
// @Summary List partners
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetPartnersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/partners [get]
// @Security BearerAuth
func (handler *Handler) GetPartners(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartners")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort("users", "email", "full_name", constant.FieldCreatedAt)

	filter := dto.PartnerFilter{
		Email:  r.URL.Query().Get("email"),
		Active: shared.ConvertStringToBool(r.URL.Query().Get("active")),
	}

	partners, err := handler.service.ListPartners(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partners")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, partners)
}

// GetPartner returns the settings of a partner.
// @Summary Get partner settings
// @Tags Admin
// @Produce json
// @Param partnerID path string true "Partner user ID"
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/partners/{partnerID} [get]
// @Security BearerAuth
func (handler *Handler) GetPartner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartner")
	defer scope.End()

	partnerID := chi.URLParam(r, constant.RequestParamPartnerID)

	settings, err := handler.service.Get(ctx, partnerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partner")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// SetCommissionRate sets the commission applied to new bookings of a partner.
// @Summary Set partner commission
// @Description The rate is a percentage between 0 and 100. Existing bookings keep the rate they were created with.
// @Tags Admin
// @Accept json
// @Produce json
// @Param partnerID path string true "Partner user ID"
// @Param request body dto.SetCommissionRequest true "Set Commission Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/partners/{partnerID}/commission [put]
// @Security BearerAuth
func (handler *Handler) SetCommissionRate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCommissionRate")
	defer scope.End()

	partnerID := chi.URLParam(r, constant.RequestParamPartnerID)

	req := dto.SetCommissionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetCommissionRate(ctx, partnerID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set commission rate")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Commission rate updated successfully")

	response.WithMessage(w, http.StatusOK, "Commission rate updated successfully")
}
