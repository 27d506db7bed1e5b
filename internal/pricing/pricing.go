// Package pricing computes day-use prices from a base price and a hotel's rules.
// All amounts are in minor currency units.
package pricing

import (
	"math"
	"slices"
	"time"

	"daybooker/shared/constant"
)

const (
	RuleTypeMultiplier = "multiplier"
	RuleTypeFixed      = "fixed"
	RuleTypePercentage = "percentage"

	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Rule struct {
	Name string
	Type string
	// Value is a factor for multipliers, a percent for percentages and cents for fixed rules.
	Value      float64
	RoomTypeID string
	TimeSlotID string
	DaysOfWeek []int
	StartDate  *time.Time
	EndDate    *time.Time
	Priority   int
	Active     bool
	CreatedAt  time.Time
}

type Input struct {
	BasePrice     int64
	PriceOverride *int64
	RoomTypeID    string
	TimeSlotID    string
	Date          time.Time
}

type Quote struct {
	BasePrice    int64
	UnitPrice    int64
	AppliedRules []string
}

// Applies reports whether rule is in effect for the slot described by in.
// Empty room type, time slot or weekday restrictions match everything.
func Applies(rule Rule, in Input) bool {
	if !rule.Active {
		return false
	}

	if rule.RoomTypeID != constant.Empty && rule.RoomTypeID != in.RoomTypeID {
		return false
	}

	if rule.TimeSlotID != constant.Empty && rule.TimeSlotID != in.TimeSlotID {
		return false
	}

	day := in.Date.Format(constant.DayFormat)

	if rule.StartDate != nil && day < rule.StartDate.Format(constant.DayFormat) {
		return false
	}

	if rule.EndDate != nil && day > rule.EndDate.Format(constant.DayFormat) {
		return false
	}

	if len(rule.DaysOfWeek) > 0 && !slices.Contains(rule.DaysOfWeek, int(in.Date.Weekday())) {
		return false
	}

	return true
}

// Calculate applies the matching rules in ascending priority, ties broken by
// creation time. The result is rounded to the nearest cent and never negative.
func Calculate(in Input, rules []Rule) Quote {
	base := in.BasePrice
	if in.PriceOverride != nil {
		base = *in.PriceOverride
	}

	applicable := make([]Rule, 0, len(rules))

	for _, rule := range rules {
		if Applies(rule, in) {
			applicable = append(applicable, rule)
		}
	}

	slices.SortStableFunc(applicable, func(a, b Rule) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})

	price := float64(base)
	applied := make([]string, 0, len(applicable))

	for _, rule := range applicable {
		switch rule.Type {
		case RuleTypeMultiplier:
			price *= rule.Value
		case RuleTypePercentage:
			price *= 1 + rule.Value/constant.PercentFactor
		case RuleTypeFixed:
			price += rule.Value
		default:
			continue
		}

		applied = append(applied, rule.Name)
	}

	return Quote{
		BasePrice:    base,
		UnitPrice:    roundCents(price),
		AppliedRules: applied,
	}
}

// Discount returns the promotion discount on subtotal, capped at subtotal.
func Discount(discountType string, value float64, subtotal int64) int64 {
	var discount int64

	switch discountType {
	case DiscountTypePercentage:
		discount = roundCents(float64(subtotal) * value / constant.PercentFactor)
	case DiscountTypeFixed:
		discount = roundCents(value)
	}

	return min(discount, subtotal)
}

// Commission splits total into the platform commission and the partner payout.
func Commission(total int64, rate float64) (commission, payout int64) {
	commission = min(roundCents(float64(total)*rate/constant.PercentFactor), total)

	return commission, total - commission
}

func roundCents(value float64) int64 {
	return max(int64(math.Round(value)), 0)
}
