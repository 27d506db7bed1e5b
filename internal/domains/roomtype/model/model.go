package model

import "daybooker/shared/model"

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCapacity    = "capacity"
	FieldTotalRooms  = "total_rooms"
	FieldBasePrice   = "base_price"
	FieldImage       = "image"
	FieldActive      = "active"
)

type RoomType struct {
	ID          string `db:"id"`
	HotelID     string `db:"hotel_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Capacity    int    `db:"capacity"`
	TotalRooms  int    `db:"total_rooms"`
	BasePrice   int64  `db:"base_price"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	model.Metadata
}
