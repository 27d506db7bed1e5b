package model

import (
	"time"

	"daybooker/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID           = "id"
	FieldBookingID    = "booking_id"
	FieldUserID       = "user_id"
	FieldHotelID      = "hotel_id"
	FieldRating       = "rating"
	FieldComment      = "comment"
	FieldPartnerReply = "partner_reply"
	FieldRepliedAt    = "replied_at"
	FieldVisible      = "visible"
)

type Review struct {
	ID           string     `db:"id"`
	BookingID    string     `db:"booking_id"`
	UserID       string     `db:"user_id"`
	HotelID      string     `db:"hotel_id"`
	Rating       int        `db:"rating"`
	Comment      string     `db:"comment"`
	PartnerReply string     `db:"partner_reply"`
	RepliedAt    *time.Time `db:"replied_at"`
	Visible      bool       `db:"visible"`
	model.Metadata
}
