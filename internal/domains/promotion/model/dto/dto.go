package dto

import (
	"strings"
	"time"

	"daybooker/internal/domains/promotion/model"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

func NormaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreatePromotionRequest struct {
	Code          string  `json:"code"           validate:"required,min=3,max=32,alphanum"`
	Description   string  `json:"description"    validate:"omitempty,max=500"`
	DiscountType  string  `json:"discount_type"  validate:"required,oneof=percentage fixed"`
	DiscountValue float64 `json:"discount_value" validate:"required,gt=0"`
	MinAmount     int64   `json:"min_amount"     validate:"min=0"`
	MaxUses       int     `json:"max_uses"       validate:"min=0"`
	StartsAt      string  `json:"starts_at"      validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndsAt        string  `json:"ends_at"        validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	HotelID       *string `json:"hotel_id"       validate:"omitempty,uuid"`
	Active        *bool   `json:"active"         validate:"omitempty"`
}

func (c *CreatePromotionRequest) ToModel(user string, startsAt, endsAt time.Time) model.Promotion {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Promotion{
		ID:            uuid.NewString(),
		Code:          NormaliseCode(c.Code),
		Description:   c.Description,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		MinAmount:     c.MinAmount,
		MaxUses:       c.MaxUses,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		HotelID:       c.HotelID,
		Active:        active,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdatePromotionRequest fields without a db tag are parsed and set by the service.
type UpdatePromotionRequest struct {
	Description   string   `db:"description"    json:"description"    validate:"omitempty,max=500"`
	DiscountValue *float64 `db:"discount_value" json:"discount_value" validate:"omitempty,gt=0"`
	MinAmount     *int64   `db:"min_amount"     json:"min_amount"     validate:"omitempty,min=0"`
	MaxUses       *int     `db:"max_uses"       json:"max_uses"       validate:"omitempty,min=0"`
	StartsAt      string   `json:"starts_at"      validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndsAt        string   `json:"ends_at"        validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Active        *bool    `db:"active"         json:"active"         validate:"omitempty"`
}

type ValidatePromotionRequest struct {
	Code    string `json:"code"     validate:"required,max=32"`
	HotelID string `json:"hotel_id" validate:"omitempty,uuid"`
	Amount  int64  `json:"amount"   validate:"min=0"`
}

type ValidatePromotionResponse struct {
	PromotionID string `json:"promotion_id"`
	Code        string `json:"code"`
	Discount    int64  `json:"discount"`
	Total       int64  `json:"total"`
}

type PromotionResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	MinAmount     int64   `json:"min_amount"`
	MaxUses       int     `json:"max_uses"`
	UsedCount     int     `json:"used_count"`
	StartsAt      string  `json:"starts_at"`
	EndsAt        string  `json:"ends_at"`
	HotelID       *string `json:"hotel_id"`
	Active        bool    `json:"active"`
	gDto.Metadata
}

func (r *PromotionResponse) FromModel(model model.Promotion) {
	r.ID = model.ID
	r.Code = model.Code
	r.Description = model.Description
	r.DiscountType = model.DiscountType
	r.DiscountValue = model.DiscountValue
	r.MinAmount = model.MinAmount
	r.MaxUses = model.MaxUses
	r.UsedCount = model.UsedCount
	r.StartsAt = timezone.Format(model.StartsAt, constant.DateFormat)
	r.EndsAt = timezone.Format(model.EndsAt, constant.DateFormat)
	r.HotelID = model.HotelID
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, mod := range models {
		r.Promotions[i].FromModel(mod)
	}
}
