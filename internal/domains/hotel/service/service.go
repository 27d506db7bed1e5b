package service

import (
	"context"
	"fmt"
	"path"

	"daybooker/config"
	"daybooker/infras/otel"
	"daybooker/infras/s3"
	activityDto "daybooker/internal/domains/activitylog/model/dto"
	activityService "daybooker/internal/domains/activitylog/service"
	"daybooker/internal/domains/hotel/model"
	"daybooker/internal/domains/hotel/model/dto"
	"daybooker/internal/domains/hotel/repository"
	roomTypeDto "daybooker/internal/domains/roomtype/model/dto"
	roomTypeModel "daybooker/internal/domains/roomtype/model"
	roomTypeRepo "daybooker/internal/domains/roomtype/repository"
	timeSlotDto "daybooker/internal/domains/timeslot/model/dto"
	timeSlotModel "daybooker/internal/domains/timeslot/model"
	timeSlotRepo "daybooker/internal/domains/timeslot/repository"
	"daybooker/shared"
	"daybooker/shared/cache"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheSearchHotel = "hotel:search"
	cacheCountHotel  = "hotel:count"
)

type Hotel interface {
	Search(ctx context.Context, req gDto.QueryParams, search dto.SearchHotelRequest) (dto.GetHotelsResponse, error)
	Get(ctx context.Context, id string) (dto.HotelDetailResponse, error)
	Create(ctx context.Context, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	Update(ctx context.Context, req dto.UpdateHotelRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (string, error)
	DeletePhoto(ctx context.Context, req dto.DeletePhotoRequest, id string) error
	ListMine(ctx context.Context, req gDto.QueryParams) (dto.GetHotelsResponse, error)
	ListAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error)
	SetStatus(ctx context.Context, req dto.SetStatusRequest, id string) error
	RefreshRating(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Hotel
	roomTypeRepo roomTypeRepo.RoomType
	timeSlotRepo timeSlotRepo.TimeSlot
	activity     activityService.ActivityLog
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	s3           s3.S3
}

func New(
	repo repository.Hotel,
	roomTypeRepo roomTypeRepo.RoomType,
	timeSlotRepo timeSlotRepo.TimeSlot,
	activity activityService.ActivityLog,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Hotel {
	return &serviceImpl{
		repo:         repo,
		roomTypeRepo: roomTypeRepo,
		timeSlotRepo: timeSlotRepo,
		activity:     activity,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		s3:           s3,
	}
}

func (s *serviceImpl) Search(ctx context.Context, req gDto.QueryParams, search dto.SearchHotelRequest) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := search.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchHotel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel search")

		return res, nil
	}

	res, err = s.list(ctx, req, filter)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel search to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams) (dto.GetHotelsResponse, error) {
	userID, _ := shared.UserFromContext(ctx)

	return s.list(ctx, req, shared.FilterByID(userID, model.FieldPartnerID, model.TableName))
}

func (s *serviceImpl) ListAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error) {
	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".list")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// Get returns the hotel with its room types and time slots. Hotels that are not
// approved, and inactive children, are only visible to the hotel's managers.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil && !s.managesCached(ctx, res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return res, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	manager := hotel.ID != constant.Empty && CanManage(ctx, hotel)

	if hotel.ID == constant.Empty || (hotel.Status != model.StatusApproved && !manager) {
		return res, failure.NotFound("hotel not found")
	}

	roomTypeFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: roomTypeModel.FieldHotelID, Value: id, Operator: gDto.FilterOperatorEq, Table: roomTypeModel.TableName},
		},
	}

	timeSlotFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: timeSlotModel.FieldHotelID, Value: id, Operator: gDto.FilterOperatorEq, Table: timeSlotModel.TableName},
		},
	}

	if !manager {
		roomTypeFilter.Filters = append(roomTypeFilter.Filters, gDto.Filter{Field: roomTypeModel.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: roomTypeModel.TableName})
		timeSlotFilter.Filters = append(timeSlotFilter.Filters, gDto.Filter{Field: timeSlotModel.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: timeSlotModel.TableName})
	}

	roomTypes, err := s.roomTypeRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomTypeModel.FieldBasePrice, SortDir: gDto.SortDirAsc}, roomTypeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	timeSlots, err := s.timeSlotRepo.GetAll(ctx, gDto.QueryParams{SortBy: timeSlotModel.FieldStartTime, SortDir: gDto.SortDirAsc}, timeSlotFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res.FromModel(hotel)

	res.RoomTypes = make([]roomTypeDto.RoomTypeResponse, len(roomTypes))
	for i, roomType := range roomTypes {
		res.RoomTypes[i].FromModel(roomType)
	}

	res.TimeSlots = timeSlotDto.FromModels(timeSlots)

	if !manager {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save hotel to cache")
			}
		}()
	}

	return res, nil
}

// managesCached reports whether the caller needs the uncached manager view.
func (s *serviceImpl) managesCached(ctx context.Context, res dto.HotelDetailResponse) bool {
	return CanManage(ctx, model.Hotel{PartnerID: res.PartnerID})
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)
	hotel := req.ToModel(userID, userID)

	if err = s.repo.Insert(ctx, hotel); err != nil {
		log.Error().Err(err).Msg("failed to create hotel")

		return res, fmt.Errorf("failed to create hotel: %w", err)
	}

	s.activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionHotelCreated,
		Entity:   model.EntityName,
		EntityID: hotel.ID,
		Details:  map[string]any{"name": hotel.Name},
	})

	res.FromModel(hotel)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = AuthorizeHotel(ctx, s.repo, id); err != nil {
		return err
	}

	if req.Amenities != nil {
		req.Amenities = dto.NormaliseAmenities(req.Amenities)
	}

	userID, _ := shared.UserFromContext(ctx)
	updatedFields := shared.TransformFields(req, userID)

	if len(updatedFields) <= 2 {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update hotel")

		return fmt.Errorf("failed to update hotel: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := AuthorizeHotel(ctx, s.repo, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString("hotel has bookings and cannot be deleted")
		}

		log.Error().Err(err).Msg("failed to delete hotel")

		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	bucketName := s.cfg.External.S3.BucketName

	for _, image := range hotel.Images {
		if objectName := s.s3.GetObjectNameFromURL(bucketName, image); objectName != constant.Empty {
			if err := s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
				log.Warn().Err(err).Str("object", objectName).Msg("failed to delete hotel photo")
			}
		}
	}

	s.activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionHotelDeleted,
		Entity:   model.EntityName,
		EntityID: id,
	})

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = AuthorizeHotel(ctx, s.repo, id); err != nil {
		return constant.Empty, err
	}

	userID, _ := shared.UserFromContext(ctx)
	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(model.EntityName, id)
	filename := shared.BuildFileName(req.Image.Filename)

	url, err = s.s3.UploadFile(ctx, bucketName, directory, req.ImageFile, req.Image, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	if err = s.repo.AppendImage(ctx, id, url, userID); err != nil {
		log.Error().Err(err).Msg("failed to append hotel image")

		_ = s.s3.DeleteFile(ctx, bucketName, directory, filename)

		return constant.Empty, fmt.Errorf("failed to append hotel image: %w", err)
	}

	s.invalidate(ctx, id)

	return url, nil
}

func (s *serviceImpl) DeletePhoto(ctx context.Context, req dto.DeletePhotoRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := AuthorizeHotel(ctx, s.repo, id)
	if err != nil {
		return err
	}

	found := false

	for _, image := range hotel.Images {
		if image == req.URL {
			found = true

			break
		}
	}

	if !found {
		return failure.NotFound("photo not found")
	}

	userID, _ := shared.UserFromContext(ctx)

	if err = s.repo.RemoveImage(ctx, id, req.URL, userID); err != nil {
		log.Error().Err(err).Msg("failed to remove hotel image")

		return fmt.Errorf("failed to remove hotel image: %w", err)
	}

	bucketName := s.cfg.External.S3.BucketName
	if objectName := s.s3.GetObjectNameFromURL(bucketName, req.URL); objectName != constant.Empty {
		if err := s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
			log.Warn().Err(err).Str("object", objectName).Msg("failed to delete hotel photo")
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, req dto.SetStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if !exist {
		return failure.NotFound("hotel not found")
	}

	userID, _ := shared.UserFromContext(ctx)
	updatedFields := shared.TransformFields(req, userID)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update hotel status")

		return fmt.Errorf("failed to update hotel status: %w", err)
	}

	s.activity.Record(ctx, activityDto.Event{
		Action:   activityDto.ActionHotelStatus,
		Entity:   model.EntityName,
		EntityID: id,
		Details:  map[string]any{"status": req.Status},
	})

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) RefreshRating(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshRating")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.RefreshRating(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to refresh hotel rating")

		return fmt.Errorf("failed to refresh hotel rating: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		InvalidateHotel(context.WithoutCancel(ctx), s.cache, id)
	}()
}
