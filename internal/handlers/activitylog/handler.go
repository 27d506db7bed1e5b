package activitylog

import (
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/activitylog/model"
	"daybooker/internal/domains/activitylog/service"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ActivityLog
	otel    otel.Otel
}

func New(service service.ActivityLog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/admin/activity-logs", handler.GetActivityLogs)
}

// GetActivityLogs lists recorded activity, newest first by default.
// @Summary List activity logs
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_id query string false "Filter by actor"
// @Param entity query string false "Filter by entity"
// @Param action query string false "Filter by action"
// @Success 200 {object} response.Data[dto.GetActivityLogsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/activity-logs [get]
// @Security BearerAuth
func (handler *Handler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivityLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldAction, model.FieldEntity, constant.FieldCreatedAt)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = model.TableName + "." + constant.FieldCreatedAt
		queryParams.SortDir = gDto.SortDirDesc
	}

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	for _, field := range []string{model.FieldUserID, model.FieldEntity, model.FieldAction} {
		filterGroup.Add(gDto.Filter{Field: field, Operator: gDto.FilterOperatorEq, Value: r.URL.Query().Get(field), Table: model.TableName})
	}

	logs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, logs)
}
