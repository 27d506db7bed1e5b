package pricing_test

import (
	"testing"
	"time"

	"daybooker/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)

	return t
}

func ptr[T any](v T) *T {
	return &v
}

func TestCalculate(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	saturday := date("2026-10-17")

	input := pricing.Input{
		BasePrice:  10000,
		RoomTypeID: "rt-1",
		TimeSlotID: "ts-1",
		Date:       saturday,
	}

	tests := []struct {
		name        string
		input       pricing.Input
		rules       []pricing.Rule
		wantPrice   int64
		wantApplied []string
	}{
		{
			name:        "no rules keeps base price",
			input:       input,
			wantPrice:   10000,
			wantApplied: []string{},
		},
		{
			name: "price override replaces base price",
			input: pricing.Input{
				BasePrice:     10000,
				PriceOverride: ptr(int64(8000)),
				RoomTypeID:    "rt-1",
				TimeSlotID:    "ts-1",
				Date:          saturday,
			},
			rules:       []pricing.Rule{{Name: "double", Type: pricing.RuleTypeMultiplier, Value: 2, Active: true}},
			wantPrice:   16000,
			wantApplied: []string{"double"},
		},
		{
			name:  "rules apply in ascending priority",
			input: input,
			rules: []pricing.Rule{
				{Name: "double", Type: pricing.RuleTypeMultiplier, Value: 2, Priority: 2, Active: true, CreatedAt: created},
				{Name: "plus ten", Type: pricing.RuleTypeFixed, Value: 1000, Priority: 1, Active: true, CreatedAt: created},
			},
			wantPrice:   22000,
			wantApplied: []string{"plus ten", "double"},
		},
		{
			name:  "ties are broken by creation time",
			input: input,
			rules: []pricing.Rule{
				{Name: "later", Type: pricing.RuleTypeFixed, Value: 1000, Active: true, CreatedAt: created.Add(time.Hour)},
				{Name: "earlier", Type: pricing.RuleTypeMultiplier, Value: 2, Active: true, CreatedAt: created},
			},
			wantPrice:   21000,
			wantApplied: []string{"earlier", "later"},
		},
		{
			name:        "percentage rounds to nearest cent",
			input:       pricing.Input{BasePrice: 999, Date: saturday},
			rules:       []pricing.Rule{{Name: "weekend", Type: pricing.RuleTypePercentage, Value: 15, Active: true}},
			wantPrice:   1149,
			wantApplied: []string{"weekend"},
		},
		{
			name:        "negative result is floored at zero",
			input:       input,
			rules:       []pricing.Rule{{Name: "giveaway", Type: pricing.RuleTypeFixed, Value: -20000, Active: true}},
			wantPrice:   0,
			wantApplied: []string{"giveaway"},
		},
		{
			name:  "non matching rules are skipped",
			input: input,
			rules: []pricing.Rule{
				{Name: "inactive", Type: pricing.RuleTypeMultiplier, Value: 3, Active: false},
				{Name: "other room", Type: pricing.RuleTypeMultiplier, Value: 3, RoomTypeID: "rt-2", Active: true},
				{Name: "other slot", Type: pricing.RuleTypeMultiplier, Value: 3, TimeSlotID: "ts-2", Active: true},
				{Name: "weekdays", Type: pricing.RuleTypeMultiplier, Value: 3, DaysOfWeek: []int{1, 2, 3, 4, 5}, Active: true},
				{Name: "expired", Type: pricing.RuleTypeMultiplier, Value: 3, EndDate: ptr(date("2026-10-16")), Active: true},
				{Name: "future", Type: pricing.RuleTypeMultiplier, Value: 3, StartDate: ptr(date("2026-10-18")), Active: true},
				{Name: "weekend", Type: pricing.RuleTypePercentage, Value: 10, DaysOfWeek: []int{0, 6}, Active: true},
			},
			wantPrice:   11000,
			wantApplied: []string{"weekend"},
		},
		{
			name:  "date range bounds are inclusive",
			input: input,
			rules: []pricing.Rule{
				{Name: "festival", Type: pricing.RuleTypeFixed, Value: 500, StartDate: ptr(saturday), EndDate: ptr(saturday), Active: true},
			},
			wantPrice:   10500,
			wantApplied: []string{"festival"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := pricing.Calculate(tt.input, tt.rules)

			assert.Equal(t, tt.wantPrice, quote.UnitPrice)
			assert.Equal(t, tt.wantApplied, quote.AppliedRules)
		})
	}
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name         string
		discountType string
		value        float64
		subtotal     int64
		want         int64
	}{
		{name: "percentage", discountType: pricing.DiscountTypePercentage, value: 10, subtotal: 12345, want: 1235},
		{name: "fixed", discountType: pricing.DiscountTypeFixed, value: 500, subtotal: 12345, want: 500},
		{name: "fixed capped at subtotal", discountType: pricing.DiscountTypeFixed, value: 50000, subtotal: 12345, want: 12345},
		{name: "unknown type", discountType: "bogus", value: 10, subtotal: 12345, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.Discount(tt.discountType, tt.value, tt.subtotal))
		})
	}
}

func TestCommission(t *testing.T) {
	commission, payout := pricing.Commission(10001, 15)

	assert.Equal(t, int64(1500), commission)
	assert.Equal(t, int64(8501), payout)

	commission, payout = pricing.Commission(5000, 0)

	assert.Zero(t, commission)
	assert.Equal(t, int64(5000), payout)
}
