package dto

import (
	"daybooker/internal/domains/timeslot/model"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

type CreateTimeSlotRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
	Active    *bool  `json:"active"     validate:"omitempty"`
}

// ValidateWindow requires the slot to start before it ends. HH:MM values order lexically.
func ValidateWindow(start, end string) error {
	if start >= end {
		return failure.BadRequestFromString("start_time must be before end_time")
	}

	return nil
}

func (c *CreateTimeSlotRequest) ToModel(hotelID, user string) model.TimeSlot {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.TimeSlot{
		ID:        uuid.NewString(),
		HotelID:   hotelID,
		Name:      c.Name,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Active:    active,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateTimeSlotRequest struct {
	Name      string `db:"name"       json:"name"       validate:"omitempty,max=100"`
	StartTime string `db:"start_time" json:"start_time" validate:"omitempty,clock"`
	EndTime   string `db:"end_time"   json:"end_time"   validate:"omitempty,clock"`
	Active    *bool  `db:"active"     json:"active"     validate:"omitempty"`
}

type TimeSlotResponse struct {
	ID        string `json:"id"`
	HotelID   string `json:"hotel_id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *TimeSlotResponse) FromModel(model model.TimeSlot) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.TimeSlot) []TimeSlotResponse {
	res := make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
