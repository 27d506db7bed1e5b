package model

import "daybooker/shared/model"

const (
	TableName  = "time_slots"
	EntityName = "time_slot"

	FieldID        = "id"
	FieldHotelID   = "hotel_id"
	FieldName      = "name"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldActive    = "active"
)

// TimeSlot times are HH:MM wall clock values in the application timezone.
type TimeSlot struct {
	ID        string `db:"id"`
	HotelID   string `db:"hotel_id"`
	Name      string `db:"name"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Active    bool   `db:"active"`
	model.Metadata
}
