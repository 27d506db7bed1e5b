package dto

import (
	"mime/multipart"

	"daybooker/internal/domains/roomtype/model"
	"daybooker/shared"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomTypeRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Description string                `json:"description" validate:"omitempty,max=2000"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	TotalRooms  int                   `json:"total_rooms" validate:"min=0"`
	BasePrice   int64                 `json:"base_price"  validate:"min=0"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomTypeRequest) ToModel(hotelID, user, imageURL string) model.RoomType {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.RoomType{
		ID:          uuid.NewString(),
		HotelID:     hotelID,
		Name:        c.Name,
		Description: c.Description,
		Capacity:    c.Capacity,
		TotalRooms:  c.TotalRooms,
		BasePrice:   c.BasePrice,
		Image:       imageURL,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomTypeRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=2000"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	TotalRooms  *int                  `db:"total_rooms" json:"total_rooms" validate:"omitempty,min=0"`
	BasePrice   *int64                `db:"base_price"  json:"base_price"  validate:"omitempty,min=0"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

func (u *UpdateRoomTypeRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.Capacity == nil && u.TotalRooms == nil &&
		u.BasePrice == nil && u.Image == nil && u.Active == nil
}

type RoomTypeResponse struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotel_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	TotalRooms  int    `json:"total_rooms"`
	BasePrice   int64  `json:"base_price"`
	Image       string `json:"image"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Description = model.Description
	r.Capacity = model.Capacity
	r.TotalRooms = model.TotalRooms
	r.BasePrice = model.BasePrice
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
