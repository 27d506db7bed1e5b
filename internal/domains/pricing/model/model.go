package model

import (
	"time"

	"daybooker/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "pricing_rules"
	EntityName = "pricing_rule"

	FieldID         = "id"
	FieldHotelID    = "hotel_id"
	FieldRoomTypeID = "room_type_id"
	FieldTimeSlotID = "time_slot_id"
	FieldName       = "name"
	FieldRuleType   = "rule_type"
	FieldValue      = "value"
	FieldDaysOfWeek = "days_of_week"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldPriority   = "priority"
	FieldActive     = "active"
)

const (
	RuleTypeMultiplier = "multiplier"
	RuleTypeFixed      = "fixed"
	RuleTypePercentage = "percentage"
)

type PricingRule struct {
	ID         string        `db:"id"`
	HotelID    string        `db:"hotel_id"`
	RoomTypeID *string       `db:"room_type_id"`
	TimeSlotID *string       `db:"time_slot_id"`
	Name       string        `db:"name"`
	RuleType   string        `db:"rule_type"`
	Value      float64       `db:"value"`
	DaysOfWeek pq.Int64Array `db:"days_of_week"`
	StartDate  *time.Time    `db:"start_date"`
	EndDate    *time.Time    `db:"end_date"`
	Priority   int           `db:"priority"`
	Active     bool          `db:"active"`
	model.Metadata
}
