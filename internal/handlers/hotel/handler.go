package hotel

import (
	"net/http"
	"strconv"

	"daybooker/infras/otel"
	"daybooker/internal/domains/hotel/model"
	"daybooker/internal/domains/hotel/model/dto"
	"daybooker/internal/domains/hotel/service"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	"daybooker/shared/validator"
	"daybooker/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldName, model.FieldCity, model.FieldStars, model.FieldRating, constant.FieldCreatedAt}

type Handler struct {
	service service.Hotel
	otel    otel.Otel
}

func New(service service.Hotel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the collection routes under /hotels.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.SearchHotels)
	router.Post("/", handler.CreateHotel)
	router.Get("/mine", handler.GetMyHotels)
}

// HotelRouter registers the routes under /hotels/{hotelID}.
func (handler *Handler) HotelRouter(router chi.Router) {
	router.Get("/", handler.GetHotelByID)
	router.Patch("/", handler.UpdateHotel)
	router.Delete("/", handler.DeleteHotel)
	router.Post("/photos", handler.UploadPhoto)
	router.Delete("/photos", handler.DeletePhoto)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/admin/hotels", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAllHotels)
		routerGroup.Patch("/{id}/status", handler.SetStatus)
	})
}

// SearchHotels lists approved hotels.
// @Summary Search hotels
// @Description Search approved hotels. With a date, only hotels with at least one open slot that fits the guests are returned.
// @Tags Hotel
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param city query string false "City"
// @Param name query string false "Hotel name"
// @Param min_stars query int false "Minimum stars"
// @Param amenity query string false "Amenity"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param guests query int false "Guests"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, sortableFields...)

	query := r.URL.Query()
	search := dto.SearchHotelRequest{
		City:    query.Get("city"),
		Name:    query.Get("name"),
		Amenity: query.Get("amenity"),
		Date:    query.Get("date"),
	}
	search.MinStars, _ = strconv.Atoi(query.Get("min_stars"))
	search.Guests, _ = strconv.Atoi(query.Get("guests"))

	if err := validator.ValidateStruct(&search); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate search query")

		response.WithError(w, err)

		return
	}

	hotels, err := handler.service.Search(ctx, queryParams, search)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search hotels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotels)
}

// CreateHotel registers a hotel for the calling partner.
// @Summary Create a hotel
// @Description New hotels start pending until an admin approves them.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param request body dto.CreateHotelRequest true "Create Hotel Request"
// @Success 201 {object} response.Data[dto.HotelResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	req := dto.CreateHotelRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hotel, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel created successfully")

	response.WithJSON(w, http.StatusCreated, hotel)
}

// GetMyHotels lists the hotels of the calling partner.
// @Summary List my hotels
// @Tags Hotel
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/hotels/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, sortableFields...)

	hotels, err := handler.service.ListMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get partner hotels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetHotelByID returns a hotel with its room types and time slots.
// @Summary Get a hotel
// @Description Hotels that are not approved are visible to their partner and admins only.
// @Tags Hotel
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelDetailResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID} [get]
func (handler *Handler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamHotelID)

	hotel, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotel)
}

// UpdateHotel updates the hotel details.
// @Summary Update a hotel
// @Tags Hotel
// @Accept json
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param request body dto.UpdateHotelRequest true "Update Hotel Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamHotelID)

	req := dto.UpdateHotelRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel updated successfully")

	response.WithMessage(w, http.StatusOK, "Hotel updated successfully")
}

// DeleteHotel removes a hotel and its photos.
// @Summary Delete a hotel
// @Tags Hotel
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamHotelID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel deleted successfully")

	response.WithMessage(w, http.StatusOK, "Hotel deleted successfully")
}

// UploadPhoto stores a hotel photo in object storage.
// @Summary Upload a hotel photo
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param file formData file true "Image file to upload"
// @Success 201 {object} response.Data[string] "Photo URL"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/photos [post]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamHotelID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadPhotoRequest{Image: fileHeader, ImageFile: file}
	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate photo")

		response.WithError(w, err)

		return
	}

	url, err := handler.service.UploadPhoto(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload hotel photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel photo uploaded successfully")

	response.WithJSON(w, http.StatusCreated, url)
}

// DeletePhoto removes a photo from a hotel.
// @Summary Delete a hotel photo
// @Tags Hotel
// @Accept json
// @Produce json
// @Param hotelID path string true "Hotel ID"
// @Param request body dto.DeletePhotoRequest true "Delete Photo Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{hotelID}/photos [delete]
// @Security BearerAuth
func (handler *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamHotelID)

	req := dto.DeletePhotoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.DeletePhoto(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hotel photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel photo deleted successfully")

	response.WithMessage(w, http.StatusOK, "Hotel photo deleted successfully")
}

// GetAllHotels lists hotels in every status.
// @Summary List all hotels
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected, suspended)"
// @Param partner_id query string false "Filter by partner"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/hotels [get]
// @Security BearerAuth
func (handler *Handler) GetAllHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, sortableFields...)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.Add(gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: r.URL.Query().Get(model.FieldStatus), Table: model.TableName})
	filterGroup.Add(gDto.Filter{Field: model.FieldPartnerID, Operator: gDto.FilterOperatorEq, Value: r.URL.Query().Get(model.FieldPartnerID), Table: model.TableName})

	hotels, err := handler.service.ListAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotels)
}

// SetStatus approves, rejects or suspends a hotel.
// @Summary Set hotel status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/hotels/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set hotel status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel status updated to " + req.Status)

	response.WithMessage(w, http.StatusOK, "Hotel status updated successfully")
}
