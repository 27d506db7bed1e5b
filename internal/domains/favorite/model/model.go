package model

import "daybooker/shared/model"

const (
	TableName  = "favorites"
	EntityName = "favorite"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldHotelID = "hotel_id"
)

type Favorite struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	HotelID string `db:"hotel_id"`
	model.Metadata
}

// FavoriteHotel is a favorite joined with the hotel summary.
type FavoriteHotel struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	HotelID     string  `db:"hotel_id"`
	Name        string  `db:"name"         table:"hotels"`
	City        string  `db:"city"         table:"hotels"`
	Country     string  `db:"country"      table:"hotels"`
	Stars       int     `db:"stars"        table:"hotels"`
	Rating      float64 `db:"rating"       table:"hotels"`
	ReviewCount int     `db:"review_count" table:"hotels"`
	Cover       *string `db:"cover"        table:"hotels"  column:"images[1]"`
}

func (FavoriteHotel) GetJoinQuery() string {
	return "JOIN hotels ON hotels.id = favorites.hotel_id"
}
