package dto

import (
	"time"

	"daybooker/internal/domains/pricing/model"
	"daybooker/internal/pricing"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const minPercentage = -100

// ValidateValue enforces the per type bounds of a rule value.
func ValidateValue(ruleType string, value float64) error {
	switch ruleType {
	case model.RuleTypeMultiplier:
		if value <= 0 {
			return failure.BadRequestFromString("multiplier must be greater than 0")
		}
	case model.RuleTypePercentage:
		if value < minPercentage {
			return failure.BadRequestFromString("percentage cannot be lower than -100")
		}
	}

	return nil
}

// ParseDay parses an optional YYYY-MM-DD value.
func ParseDay(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil
	}

	day, err := timezone.ParseDay(value)
	if err != nil {
		return nil, failure.BadRequestFromString("invalid date " + value)
	}

	return &day, nil
}

// ValidateRange requires start to be on or before end when both are set.
func ValidateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return failure.BadRequestFromString("start_date must not be after end_date")
	}

	return nil
}

func optional(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

type CreatePricingRuleRequest struct {
	Name       string  `json:"name"         validate:"required,max=100"`
	RoomTypeID string  `json:"room_type_id" validate:"omitempty,uuid"`
	TimeSlotID string  `json:"time_slot_id" validate:"omitempty,uuid"`
	RuleType   string  `json:"rule_type"    validate:"required,oneof=multiplier fixed percentage"`
	Value      float64 `json:"value"`
	DaysOfWeek []int64 `json:"days_of_week" validate:"omitempty,max=7,dive,min=0,max=6"`
	StartDate  string  `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	EndDate    string  `json:"end_date"     validate:"omitempty,datetime=2006-01-02"`
	Priority   int     `json:"priority"`
	Active     *bool   `json:"active"       validate:"omitempty"`
}

func (c *CreatePricingRuleRequest) ToModel(hotelID, user string, startDate, endDate *time.Time) model.PricingRule {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.PricingRule{
		ID:         uuid.NewString(),
		HotelID:    hotelID,
		RoomTypeID: optional(c.RoomTypeID),
		TimeSlotID: optional(c.TimeSlotID),
		Name:       c.Name,
		RuleType:   c.RuleType,
		Value:      c.Value,
		DaysOfWeek: pq.Int64Array(c.DaysOfWeek),
		StartDate:  startDate,
		EndDate:    endDate,
		Priority:   c.Priority,
		Active:     active,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdatePricingRuleRequest scope and type are fixed at creation. Dates and
// weekdays are parsed by the service.
type UpdatePricingRuleRequest struct {
	Name       string   `db:"name"     json:"name"         validate:"omitempty,max=100"`
	Value      *float64 `db:"value"    json:"value"        validate:"omitempty"`
	DaysOfWeek []int64  `json:"days_of_week" validate:"omitempty,max=7,dive,min=0,max=6"`
	StartDate  string   `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	EndDate    string   `json:"end_date"     validate:"omitempty,datetime=2006-01-02"`
	Priority   *int     `db:"priority" json:"priority"     validate:"omitempty"`
	Active     *bool    `db:"active"   json:"active"       validate:"omitempty"`
}

func (u *UpdatePricingRuleRequest) IsEmpty() bool {
	return u.Name == constant.Empty && u.Value == nil && u.DaysOfWeek == nil && u.StartDate == constant.Empty &&
		u.EndDate == constant.Empty && u.Priority == nil && u.Active == nil
}

type PricingRuleResponse struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotel_id"`
	RoomTypeID *string `json:"room_type_id"`
	TimeSlotID *string `json:"time_slot_id"`
	Name       string  `json:"name"`
	RuleType   string  `json:"rule_type"`
	Value      float64 `json:"value"`
	DaysOfWeek []int64 `json:"days_of_week"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Priority   int     `json:"priority"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func formatDay(day *time.Time) *string {
	if day == nil {
		return nil
	}

	formatted := day.Format(constant.DayFormat)

	return &formatted
}

func (r *PricingRuleResponse) FromModel(model model.PricingRule) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomTypeID = model.RoomTypeID
	r.TimeSlotID = model.TimeSlotID
	r.Name = model.Name
	r.RuleType = model.RuleType
	r.Value = model.Value
	r.DaysOfWeek = []int64(model.DaysOfWeek)
	r.StartDate = formatDay(model.StartDate)
	r.EndDate = formatDay(model.EndDate)
	r.Priority = model.Priority
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.PricingRule) []PricingRuleResponse {
	res := make([]PricingRuleResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ToRule converts a stored rule into its engine form.
func ToRule(rule model.PricingRule) pricing.Rule {
	days := make([]int, len(rule.DaysOfWeek))
	for i, day := range rule.DaysOfWeek {
		days[i] = int(day)
	}

	res := pricing.Rule{
		Name:       rule.Name,
		Type:       rule.RuleType,
		Value:      rule.Value,
		DaysOfWeek: days,
		StartDate:  rule.StartDate,
		EndDate:    rule.EndDate,
		Priority:   rule.Priority,
		Active:     rule.Active,
		CreatedAt:  rule.CreatedAt,
	}

	if rule.RoomTypeID != nil {
		res.RoomTypeID = *rule.RoomTypeID
	}

	if rule.TimeSlotID != nil {
		res.TimeSlotID = *rule.TimeSlotID
	}

	return res
}

func ToRules(rules []model.PricingRule) []pricing.Rule {
	res := make([]pricing.Rule, len(rules))
	for i, rule := range rules {
		res[i] = ToRule(rule)
	}

	return res
}

type QuoteRequest struct {
	HotelID    string `json:"hotel_id"     validate:"required,uuid"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	TimeSlotID string `json:"time_slot_id" validate:"required,uuid"`
	Date       string `json:"date"         validate:"required,datetime=2006-01-02"`
	Rooms      int    `json:"rooms"        validate:"required,min=1,max=50"`
	PromoCode  string `json:"promo_code"   validate:"omitempty,max=32"`
}

type QuoteResponse struct {
	BasePrice    int64    `json:"base_price"`
	UnitPrice    int64    `json:"unit_price"`
	Rooms        int      `json:"rooms"`
	Subtotal     int64    `json:"subtotal"`
	Discount     int64    `json:"discount"`
	Total        int64    `json:"total"`
	PromotionID  string   `json:"promotion_id,omitempty"`
	AppliedRules []string `json:"applied_rules"`
}
