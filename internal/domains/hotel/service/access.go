package service

import (
	"context"
	"fmt"

	"daybooker/internal/domains/hotel/model"
	"daybooker/internal/domains/hotel/repository"
	"daybooker/shared"
	"daybooker/shared/cache"
	"daybooker/shared/constant"
	"daybooker/shared/failure"

	"github.com/rs/zerolog/log"
)

// AuthorizeHotel loads the hotel and requires the caller to be its partner or an admin.
func AuthorizeHotel(ctx context.Context, repo repository.Hotel, hotelID string) (model.Hotel, error) {
	hotel, err := repo.Get(ctx, shared.FilterByID(hotelID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return hotel, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return hotel, failure.NotFound("hotel not found")
	}

	if !CanManage(ctx, hotel) {
		return hotel, failure.NotHotelManager
	}

	return hotel, nil
}

func CanManage(ctx context.Context, hotel model.Hotel) bool {
	userID, role := shared.UserFromContext(ctx)

	return role == constant.RoleAdmin || (role == constant.RolePartner && hotel.PartnerID == userID)
}

// InvalidateHotel drops the cached public views of a hotel. Errors are logged only.
func InvalidateHotel(ctx context.Context, redisCache cache.RedisCache, hotelID string) {
	if err := redisCache.Delete(ctx, shared.BuildCacheKey(cacheGetHotel, hotelID)); err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to delete hotel cache")
	}

	shared.InvalidateCaches(ctx, redisCache, cacheSearchHotel)
	shared.InvalidateCaches(ctx, redisCache, cacheCountHotel)
}
