package pricing

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/pricing/model/dto"
	"daybooker/internal/domains/pricing/service"
	"daybooker/shared/constant"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing-rules", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetPricingRuleByID)
		routerGroup.Patch("/{id}", handler.UpdatePricingRule)
		routerGroup.Delete("/{id}", handler.DeletePricingRule)
	})

	router.Post("/quotes", handler.Quote)
}

// HotelRouter registers the routes under /hotels/{hotelID}.
func (handler *Handler) HotelRouter(router chi.Router) {
	router.Post("/pricing-rules", handler.CreatePricingRule)
	router.Get("/pricing-rules", handler.GetPricingRules)
}

// CreatePricingRule adds a dynamic pricing rule to a hotel.
// @Summary Create a pricing rule
// @Description Rules apply in priority order on top of the base price or the date override.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param request body dto.CreatePricingRuleRequest true "Create Pricing Rule Request"
// @Success 201 {object} response.Data[dto.PricingRuleResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/pricing-rules [post]
// @Security BearerAuth
func (handler *Handler) CreatePricingRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePricingRule")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	req := dto.CreatePricingRuleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	rule, err := handler.service.Create(ctx, req, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pricing rule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pricing rule created successfully")

	response.WithJSON(w, http.StatusCreated, rule)
}

// GetPricingRules lists every pricing rule of a hotel.
// @Summary List pricing rules
// @Tags Pricing
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Success 200 {object} response.Data[[]dto.PricingRuleResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/pricing-rules [get]
// @Security BearerAuth
func (handler *Handler) GetPricingRules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricingRules")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	rules, err := handler.service.GetAllByHotel(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing rules")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rules)
}

// GetPricingRuleByID returns a single pricing rule.
// @Summary Get a pricing rule
// @Tags Pricing
// @Produce json
// @Param id path string true "Pricing rule ID"
// @Success 200 {object} response.Data[dto.PricingRuleResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-rules/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPricingRuleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricingRuleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rule, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing rule by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rule)
}

// UpdatePricingRule handles partial updates of a pricing rule.
// @Summary Update a pricing rule
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Pricing rule ID"
// @Param request body dto.UpdatePricingRuleRequest true "Update Pricing Rule Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-rules/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePricingRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePricingRule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePricingRuleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pricing rule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pricing rule updated successfully")

	response.WithMessage(w, http.StatusOK, "Pricing rule updated successfully")
}

// DeletePricingRule removes a pricing rule.
// @Summary Delete a pricing rule
// @Tags Pricing
// @Produce json
// @Param id path string true "Pricing rule ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-rules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePricingRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePricingRule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pricing rule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pricing rule deleted successfully")

	response.WithMessage(w, http.StatusOK, "Pricing rule deleted successfully")
}

// Quote prices a prospective booking without reserving anything.
// @Summary Quote a booking
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes [post]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}
