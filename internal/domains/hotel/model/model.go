package model

import (
	"daybooker/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldPartnerID   = "partner_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldCountry     = "country"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldStars       = "stars"
	FieldAmenities   = "amenities"
	FieldImages      = "images"
	FieldStatus      = "status"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

type Hotel struct {
	ID          string         `db:"id"`
	PartnerID   string         `db:"partner_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Address     string         `db:"address"`
	City        string         `db:"city"`
	Country     string         `db:"country"`
	Latitude    *float64       `db:"latitude"`
	Longitude   *float64       `db:"longitude"`
	Stars       int            `db:"stars"`
	Amenities   pq.StringArray `db:"amenities"`
	Images      pq.StringArray `db:"images"`
	Status      string         `db:"status"`
	Rating      float64        `db:"rating"`
	ReviewCount int            `db:"review_count"`
	model.Metadata
}
