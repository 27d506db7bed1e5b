package roomtype

import (
	"mime/multipart"
	"net/http"

	"daybooker/infras/otel"
	"daybooker/internal/domains/roomtype/model"
	"daybooker/internal/domains/roomtype/model/dto"
	"daybooker/internal/domains/roomtype/service"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomType
	otel    otel.Otel
}

func New(service service.RoomType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetRoomTypeByID)
		routerGroup.Patch("/{id}", handler.UpdateRoomType)
		routerGroup.Delete("/{id}", handler.DeleteRoomType)
	})
}

// HotelRouter registers the routes under /hotels/{hotelID}.
func (handler *Handler) HotelRouter(router chi.Router) {
	router.Post("/room-types", handler.CreateRoomType)
	router.Get("/room-types", handler.GetRoomTypes)
}

// CreateRoomType handles the creation of a new room type.
// @Summary Create a room type
// @Description Create a room type of a hotel. Inventory starts at total_rooms for every slot.
// @Tags RoomType
// @Accept multipart/form-data
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param name formData string true "Room type name"
// @Param description formData string false "Description"
// @Param capacity formData integer true "Guests per room"
// @Param total_rooms formData integer false "Number of rooms"
// @Param base_price formData integer false "Base price per slot in cents"
// @Param active formData boolean false "Active status"
// @Param image formData file false "Room type image"
// @Success 201 {object} response.Data[dto.RoomTypeResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/room-types [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomType")
	defer scope.End()

	hotelID := chi.URLParam(request, constant.RequestParamHotelID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateRoomTypeRequest{
		Name:        request.FormValue("name"),
		Description: request.FormValue("description"),
		Active:      shared.ConvertStringToBool(request.FormValue("active")),
	}

	if c, err := shared.ConvertStringToInt(request.FormValue("capacity")); err == nil {
		req.Capacity = c
	}

	if t, err := shared.ConvertStringToInt(request.FormValue("total_rooms")); err == nil {
		req.TotalRooms = t
	}

	if p, err := shared.ConvertStringToInt64(request.FormValue("base_price")); err == nil {
		req.BasePrice = p
	}

	if file, fileHeader := formImage(request); file != nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	roomType, err := handler.service.Create(ctx, req, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type created successfully")

	response.WithJSON(writer, http.StatusCreated, roomType)
}

// GetRoomTypes lists the room types of a hotel.
// @Summary List room types
// @Tags RoomType
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRoomTypesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/room-types [get]
func (handler *Handler) GetRoomTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	hotelID := chi.URLParam(r, constant.RequestParamHotelID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldName, model.FieldBasePrice, model.FieldCapacity)

	roomTypes, err := handler.service.GetAllByHotel(ctx, queryParams, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, roomTypes)
}

// GetRoomTypeByID returns a single room type.
// @Summary Get a room type
// @Tags RoomType
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} response.Data[dto.RoomTypeResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types/{id} [get]
func (handler *Handler) GetRoomTypeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypeByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	roomType, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room type by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, roomType)
}

// UpdateRoomType handles partial updates of a room type.
// @Summary Update a room type
// @Tags RoomType
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room type ID"
// @Param name formData string false "Room type name"
// @Param description formData string false "Description"
// @Param capacity formData integer false "Guests per room"
// @Param total_rooms formData integer false "Number of rooms"
// @Param base_price formData integer false "Base price per slot in cents"
// @Param active formData boolean false "Active status"
// @Param image formData file false "Room type image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomType")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomTypeRequest{
		Name:        request.FormValue("name"),
		Description: request.FormValue("description"),
		Active:      shared.ConvertStringToBool(request.FormValue("active")),
	}

	if c, err := shared.ConvertStringToInt(request.FormValue("capacity")); err == nil {
		req.Capacity = &c
	}

	if t, err := shared.ConvertStringToInt(request.FormValue("total_rooms")); err == nil {
		req.TotalRooms = &t
	}

	if p, err := shared.ConvertStringToInt64(request.FormValue("base_price")); err == nil {
		req.BasePrice = &p
	}

	if file, fileHeader := formImage(request); file != nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type updated successfully")

	response.WithMessage(writer, http.StatusOK, "Room type updated successfully")
}

// DeleteRoomType removes a room type without bookings.
// @Summary Delete a room type
// @Tags RoomType
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room type deleted successfully")

	response.WithMessage(w, http.StatusOK, "Room type deleted successfully")
}

func formImage(request *http.Request) (multipart.File, *multipart.FileHeader) {
	file, fileHeader, err := request.FormFile("image")
	if err != nil {
		return nil, nil
	}

	return file, fileHeader
}
