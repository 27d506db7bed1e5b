package model

import (
	"time"

	"daybooker/shared/model"
)

const (
	TableName  = "availabilities"
	EntityName = "availability"

	FieldID             = "id"
	FieldRoomTypeID     = "room_type_id"
	FieldTimeSlotID     = "time_slot_id"
	FieldDate           = "date"
	FieldAvailableRooms = "available_rooms"
	FieldPriceOverride  = "price_override"
	FieldIsClosed       = "is_closed"
)

type Availability struct {
	ID             string    `db:"id"`
	RoomTypeID     string    `db:"room_type_id"`
	TimeSlotID     string    `db:"time_slot_id"`
	Date           time.Time `db:"date"`
	AvailableRooms int       `db:"available_rooms"`
	PriceOverride  *int64    `db:"price_override"`
	IsClosed       bool      `db:"is_closed"`
	model.Metadata
}

// Slot identifies one sellable unit of inventory.
type Slot struct {
	RoomTypeID string
	TimeSlotID string
	Date       time.Time
}
