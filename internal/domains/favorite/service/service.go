package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	"daybooker/internal/domains/favorite/model"
	"daybooker/internal/domains/favorite/model/dto"
	"daybooker/internal/domains/favorite/repository"
	hotelModel "daybooker/internal/domains/hotel/model"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gRepo "daybooker/shared/repository"

	"github.com/rs/zerolog/log"
)

type Favorite interface {
	Toggle(ctx context.Context, hotelID string) (dto.ToggleResponse, error)
	List(ctx context.Context, req gDto.QueryParams) (dto.GetFavoritesResponse, error)
}

type serviceImpl struct {
	repo      repository.Favorite
	hotelRepo hotelRepo.Hotel
	otel      otel.Otel
}

func New(repo repository.Favorite, hotelRepo hotelRepo.Hotel, otel otel.Otel) Favorite {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		otel:      otel,
	}
}

func (s *serviceImpl) Toggle(ctx context.Context, hotelID string) (res dto.ToggleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Toggle")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)
	res.HotelID = hotelID

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldUserID:  userID,
		model.FieldHotelID: hotelID,
	})

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check favorite")

		return res, fmt.Errorf("failed to check favorite: %w", err)
	}

	if exist {
		if err = s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to remove favorite")

			return res, fmt.Errorf("failed to remove favorite: %w", err)
		}

		return res, nil
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByFields(hotelModel.TableName, map[string]any{
		hotelModel.FieldID:     hotelID,
		hotelModel.FieldStatus: hotelModel.StatusApproved,
	}), hotelModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found")
	}

	if err = s.repo.Insert(ctx, dto.NewFavorite(userID, hotelID)); err != nil {
		// a concurrent toggle already added it
		if gRepo.IsUniqueViolation(err) {
			res.Added = true

			return res, nil
		}

		log.Error().Err(err).Msg("failed to add favorite")

		return res, fmt.Errorf("failed to add favorite: %w", err)
	}

	res.Added = true

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, req gDto.QueryParams) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.UserFromContext(ctx)
	filter := shared.FilterByID(userID, model.FieldUserID, model.TableName)

	total, err := s.repo.CountHotels(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count favorites")

		return res, fmt.Errorf("failed to count favorites: %w", err)
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + constant.FieldCreatedAt
		req.SortDir = "DESC"
	}

	favorites, err := s.repo.GetAllHotels(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	res.FromModels(favorites, total, req.Limit)

	return res, nil
}
