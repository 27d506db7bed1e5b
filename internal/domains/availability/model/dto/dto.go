package dto

import (
	"slices"
	"time"

	"daybooker/internal/domains/availability/model"
	"daybooker/shared/constant"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

// Days returns the number of calendar days in [start, end].
func Days(start, end time.Time) int {
	return timezone.DaysBetween(start, end) + 1
}

type BulkUpdateRequest struct {
	RoomTypeID     string   `json:"room_type_id"    validate:"required,uuid"`
	StartDate      string   `json:"start_date"      validate:"required,datetime=2006-01-02"`
	EndDate        string   `json:"end_date"        validate:"required,datetime=2006-01-02"`
	TimeSlotIDs    []string `json:"time_slot_ids"   validate:"required,min=1,dive,uuid"`
	DaysOfWeek     []int    `json:"days_of_week"    validate:"omitempty,max=7,dive,min=0,max=6"`
	AvailableRooms *int     `json:"available_rooms" validate:"omitempty,min=0"`
	PriceOverride  *int64   `json:"price_override"  validate:"omitempty,min=0"`
	IsClosed       *bool    `json:"is_closed"       validate:"omitempty"`
}

func (b *BulkUpdateRequest) IsEmpty() bool {
	return b.AvailableRooms == nil && b.PriceOverride == nil && b.IsClosed == nil
}

// ToModels expands the request into one row per matching date and slot.
// Rows that do not exist yet start with defaultRooms unless rooms are given.
func (b *BulkUpdateRequest) ToModels(start, end time.Time, defaultRooms int, user string) []model.Availability {
	rooms := defaultRooms
	if b.AvailableRooms != nil {
		rooms = *b.AvailableRooms
	}

	closed := b.IsClosed != nil && *b.IsClosed
	now := timezone.Now()

	var models []model.Availability

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if len(b.DaysOfWeek) > 0 && !slices.Contains(b.DaysOfWeek, int(day.Weekday())) {
			continue
		}

		for _, slotID := range b.TimeSlotIDs {
			models = append(models, model.Availability{
				ID:             uuid.NewString(),
				RoomTypeID:     b.RoomTypeID,
				TimeSlotID:     slotID,
				Date:           day,
				AvailableRooms: rooms,
				PriceOverride:  b.PriceOverride,
				IsClosed:       closed,
				Metadata:       gModel.NewMetadata(user, now),
			})
		}
	}

	return models
}

type BulkUpdateResponse struct {
	Affected int64 `json:"affected"`
}

type CalendarRequest struct {
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	From       string `json:"from"         validate:"required,datetime=2006-01-02"`
	To         string `json:"to"           validate:"required,datetime=2006-01-02"`
}

type AvailabilityResponse struct {
	ID             string `json:"id,omitempty"`
	RoomTypeID     string `json:"room_type_id"`
	TimeSlotID     string `json:"time_slot_id"`
	Date           string `json:"date"`
	AvailableRooms int    `json:"available_rooms"`
	PriceOverride  *int64 `json:"price_override"`
	IsClosed       bool   `json:"is_closed"`
}

func (r *AvailabilityResponse) FromModel(model model.Availability) {
	r.ID = model.ID
	r.RoomTypeID = model.RoomTypeID
	r.TimeSlotID = model.TimeSlotID
	r.Date = model.Date.Format(constant.DayFormat)
	r.AvailableRooms = model.AvailableRooms
	r.PriceOverride = model.PriceOverride
	r.IsClosed = model.IsClosed
}

// Key identifies a row by slot and day.
func Key(timeSlotID string, date time.Time) string {
	return timeSlotID + "|" + date.Format(constant.DayFormat)
}

type CheckItem struct {
	RoomTypeID     string   `json:"room_type_id"`
	RoomTypeName   string   `json:"room_type_name"`
	Capacity       int      `json:"capacity"`
	TimeSlotID     string   `json:"time_slot_id"`
	TimeSlotName   string   `json:"time_slot_name"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	AvailableRooms int      `json:"available_rooms"`
	UnitPrice      int64    `json:"unit_price"`
	AppliedRules   []string `json:"applied_rules"`
}

type CheckResponse struct {
	HotelID string      `json:"hotel_id"`
	Date    string      `json:"date"`
	Items   []CheckItem `json:"items"`
}
