package dto

import (
	"strings"

	"daybooker/internal/domains/review/model"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	Comment   string `json:"comment"    validate:"omitempty,max=2000"`
}

func (c *CreateReviewRequest) ToModel(userID, hotelID string) model.Review {
	return model.Review{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		UserID:    userID,
		HotelID:   hotelID,
		Rating:    c.Rating,
		Comment:   strings.TrimSpace(c.Comment),
		Visible:   true,
		Metadata:  gModel.NewMetadata(userID, timezone.Now()),
	}
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=2000"`
}

type SetVisibilityRequest struct {
	Visible *bool `db:"visible" json:"visible" validate:"required"`
}

type ReviewResponse struct {
	ID           string  `json:"id"`
	BookingID    string  `json:"booking_id"`
	UserID       string  `json:"user_id"`
	HotelID      string  `json:"hotel_id"`
	Rating       int     `json:"rating"`
	Comment      string  `json:"comment"`
	PartnerReply string  `json:"partner_reply,omitempty"`
	RepliedAt    *string `json:"replied_at,omitempty"`
	Visible      bool    `json:"visible"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.UserID = model.UserID
	r.HotelID = model.HotelID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.PartnerReply = model.PartnerReply
	r.Visible = model.Visible
	r.Metadata.FromModel(model.Metadata)

	if model.RepliedAt != nil {
		repliedAt := timezone.Format(*model.RepliedAt, constant.DateFormat)
		r.RepliedAt = &repliedAt
	}
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
