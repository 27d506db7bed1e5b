package promotion

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/promotion/model"
	"daybooker/internal/domains/promotion/model/dto"
	"daybooker/internal/domains/promotion/service"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Promotion
	otel    otel.Otel
}

func New(service service.Promotion, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/promotions", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPromotions)
		routerGroup.Post("/", handler.CreatePromotion)
		routerGroup.Post("/validate", handler.ValidatePromotion)
		routerGroup.Get("/{id}", handler.GetPromotion)
		routerGroup.Patch("/{id}", handler.UpdatePromotion)
		routerGroup.Delete("/{id}", handler.DeletePromotion)
	})
}

// CreatePromotion creates a promo code.
// @Summary Create promotion
// @Description Codes are stored upper case and must be unique.
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body dto.CreatePromotionRequest true "Create Promotion Request"
// @Success 201 {object} response.Data[dto.PromotionResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions [post]
// @Security BearerAuth
func (handler *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromotion")
	defer scope.End()

	req := dto.CreatePromotionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	promotion, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promotion")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promotion created successfully")

	response.WithJSON(w, http.StatusCreated, promotion)
}

// GetPromotions lists promotions.
// @Summary List promotions
// @Tags Promotion
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by code"
// @Param hotel_id query string false "Filter by hotel"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetPromotionsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/promotions [get]
// @Security BearerAuth
func (handler *Handler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldCode, model.FieldStartsAt, model.FieldEndsAt, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.Add(gDto.Filter{Field: model.FieldCode, Operator: gDto.FilterOperatorLike, Value: dto.NormaliseCode(r.URL.Query().Get(model.FieldCode)), Table: model.TableName})
	filterGroup.Add(gDto.Filter{Field: model.FieldHotelID, Operator: gDto.FilterOperatorEq, Value: r.URL.Query().Get(model.FieldHotelID), Table: model.TableName})

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Add(gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: model.TableName})
	}

	promotions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotions)
}

// GetPromotion returns a promotion by id.
// @Summary Get promotion
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Data[dto.PromotionResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	promotion, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotion)
}

// UpdatePromotion updates a promotion.
// @Summary Update promotion
// @Tags Promotion
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Param request body dto.UpdatePromotionRequest true "Update Promotion Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePromotionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update promotion")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promotion updated successfully")

	response.WithMessage(w, http.StatusOK, "Promotion updated successfully")
}

// DeletePromotion deletes a promotion.
// @Summary Delete promotion
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete promotion")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promotion deleted successfully")

	response.WithMessage(w, http.StatusOK, "Promotion deleted successfully")
}

// ValidatePromotion previews the discount a code grants for an order.
// @Summary Validate promo code
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body dto.ValidatePromotionRequest true "Validate Promotion Request"
// @Success 200 {object} response.Data[dto.ValidatePromotionResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promotions/validate [post]
func (handler *Handler) ValidatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidatePromotion")
	defer scope.End()

	req := dto.ValidatePromotionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Validate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
