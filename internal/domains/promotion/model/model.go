package model

import (
	"time"

	"daybooker/shared/model"
)

const (
	TableName  = "promotions"
	EntityName = "promotion"

	FieldID            = "id"
	FieldCode          = "code"
	FieldDescription   = "description"
	FieldDiscountType  = "discount_type"
	FieldDiscountValue = "discount_value"
	FieldMinAmount     = "min_amount"
	FieldMaxUses       = "max_uses"
	FieldUsedCount     = "used_count"
	FieldStartsAt      = "starts_at"
	FieldEndsAt        = "ends_at"
	FieldHotelID       = "hotel_id"
	FieldActive        = "active"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Promotion values are in minor units except percentage discounts.
// MaxUses of 0 means unlimited.
type Promotion struct {
	ID            string    `db:"id"`
	Code          string    `db:"code"`
	Description   string    `db:"description"`
	DiscountType  string    `db:"discount_type"`
	DiscountValue float64   `db:"discount_value"`
	MinAmount     int64     `db:"min_amount"`
	MaxUses       int       `db:"max_uses"`
	UsedCount     int       `db:"used_count"`
	StartsAt      time.Time `db:"starts_at"`
	EndsAt        time.Time `db:"ends_at"`
	HotelID       *string   `db:"hotel_id"`
	Active        bool      `db:"active"`
	model.Metadata
}
