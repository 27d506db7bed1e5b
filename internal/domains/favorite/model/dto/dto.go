package dto

import (
	"daybooker/internal/domains/favorite/model"
	"daybooker/shared"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

func NewFavorite(userID, hotelID string) model.Favorite {
	return model.Favorite{
		ID:       uuid.NewString(),
		UserID:   userID,
		HotelID:  hotelID,
		Metadata: gModel.NewMetadata(userID, timezone.Now()),
	}
}

type ToggleResponse struct {
	HotelID string `json:"hotel_id"`
	Added   bool   `json:"added"`
}

type FavoriteResponse struct {
	HotelID     string  `json:"hotel_id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Stars       int     `json:"stars"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Cover       string  `json:"cover,omitempty"`
}

type GetFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFavoritesResponse) FromModels(models []model.FavoriteHotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Favorites = make([]FavoriteResponse, len(models))
	for i, mod := range models {
		r.Favorites[i] = FavoriteResponse{
			HotelID:     mod.HotelID,
			Name:        mod.Name,
			City:        mod.City,
			Country:     mod.Country,
			Stars:       mod.Stars,
			Rating:      mod.Rating,
			ReviewCount: mod.ReviewCount,
		}

		if mod.Cover != nil {
			r.Favorites[i].Cover = *mod.Cover
		}
	}
}
