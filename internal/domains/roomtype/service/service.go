package service

import (
	"context"
	"fmt"
	"path"

	"daybooker/config"
	"daybooker/infras/otel"
	"daybooker/infras/s3"
	hotelModel "daybooker/internal/domains/hotel/model"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	"daybooker/internal/domains/roomtype/model"
	"daybooker/internal/domains/roomtype/model/dto"
	"daybooker/internal/domains/roomtype/repository"
	"daybooker/shared"
	"daybooker/shared/cache"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllRoomType = "room_type:gets"
)

type RoomType interface {
	Create(ctx context.Context, req dto.CreateRoomTypeRequest, hotelID string) (dto.RoomTypeResponse, error)
	GetAllByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetRoomTypesResponse, error)
	Get(ctx context.Context, id string) (dto.RoomTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.RoomType
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.RoomType, hotelRepo hotelRepo.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) RoomType {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest, hotelID string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, hotelID); err != nil {
		return res, err
	}

	user, _ := shared.UserFromContext(ctx)
	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(model.EntityName, hotelID)

	imageURL := constant.Empty
	var uploadedObjectName string

	if req.Image != nil {
		filename := shared.BuildFileName(req.Image.Filename)

		url, err := s.s3.UploadFile(ctx, bucketName, directory, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image to S3")

			return res, fmt.Errorf("failed to upload image: %w", err)
		}

		imageURL = url
		uploadedObjectName = filename
	}

	roomType := req.ToModel(hotelID, user, imageURL)

	if err = s.repo.Insert(ctx, roomType); err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, directory, uploadedObjectName)
		}

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	s.invalidate(ctx, hotelID)

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) GetAllByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllByHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	manager := hotelService.CanManage(ctx, hotel)
	if !manager {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoomType, req, filter)

	if !manager {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room types")

			return res, nil
		}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if !manager {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save room types to cache")
			}
		}()
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, current.HotelID); err != nil {
		return err
	}

	user, _ := shared.UserFromContext(ctx)
	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(model.EntityName, current.HotelID)

	imageURL := constant.Empty
	var uploadedObjectName string

	if req.Image != nil {
		filename := shared.BuildFileName(req.Image.Filename)

		url, err := s.s3.UploadFile(ctx, bucketName, directory, req.ImageFile, req.Image, filename)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}

		imageURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, directory, uploadedObjectName)
		}

		return fmt.Errorf("failed to update room type: %w", err)
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		if oldObjectName := s.s3.GetObjectNameFromURL(bucketName, current.Image); oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, constant.Empty, oldObjectName)
		}
	}

	s.invalidate(ctx, current.HotelID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, current.HotelID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString("room type has bookings; deactivate it instead")
		}

		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	if current.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName
		if objectName := s.s3.GetObjectNameFromURL(bucketName, current.Image); objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName)
		}
	}

	s.invalidate(ctx, current.HotelID)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.RoomType, error) {
	roomType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return roomType, failure.NotFound("room type not found")
	}

	return roomType, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, hotelID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType)
		hotelService.InvalidateHotel(c, s.cache, hotelID)
	}()
}
