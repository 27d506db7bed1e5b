package favorite

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/favorite/model"
	"daybooker/internal/domains/favorite/service"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Favorite
	otel    otel.Otel
}

func New(service service.Favorite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/favorites", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFavorites)
		routerGroup.Post("/{hotelID}", handler.ToggleFavorite)
	})
}

// ToggleFavorite adds the hotel to the caller's favorites or removes it.
// @Summary Toggle favorite hotel
// @Tags Favorite
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.ToggleResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favorites/{hotelID} [post]
// @Security BearerAuth
func (handler *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFavorite")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	res, err := handler.service.Toggle(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle favorite")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetFavorites lists the caller's favorite hotels.
// @Summary List favorite hotels
// @Tags Favorite
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFavoritesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, constant.FieldCreatedAt)

	favorites, err := handler.service.List(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, favorites)
}
