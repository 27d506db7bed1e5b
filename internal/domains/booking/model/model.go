package model

import (
	"slices"
	"time"

	"daybooker/shared/model"
	"daybooker/shared/timezone"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldReference        = "reference"
	FieldUserID           = "user_id"
	FieldHotelID          = "hotel_id"
	FieldRoomTypeID       = "room_type_id"
	FieldTimeSlotID       = "time_slot_id"
	FieldDate             = "date"
	FieldRooms            = "rooms"
	FieldGuests           = "guests"
	FieldUnitPrice        = "unit_price"
	FieldSubtotal         = "subtotal"
	FieldDiscount         = "discount"
	FieldTotalPrice       = "total_price"
	FieldCommissionRate   = "commission_rate"
	FieldCommissionAmount = "commission_amount"
	FieldPartnerPayout    = "partner_payout"
	FieldPromotionID      = "promotion_id"
	FieldStatus           = "status"
	FieldCancelReason     = "cancel_reason"
	FieldCancelledAt      = "cancelled_at"
	FieldGuestName        = "guest_name"
	FieldGuestEmail       = "guest_email"
	FieldGuestPhone       = "guest_phone"
	FieldSpecialRequests  = "special_requests"
	FieldCreatedAt        = "created_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

const (
	CancelReasonExpired = "expired"
)

type Booking struct {
	ID               string     `db:"id"`
	Reference        string     `db:"reference"`
	UserID           string     `db:"user_id"`
	HotelID          string     `db:"hotel_id"`
	RoomTypeID       string     `db:"room_type_id"`
	TimeSlotID       string     `db:"time_slot_id"`
	Date             time.Time  `db:"date"`
	Rooms            int        `db:"rooms"`
	Guests           int        `db:"guests"`
	UnitPrice        int64      `db:"unit_price"`
	Subtotal         int64      `db:"subtotal"`
	Discount         int64      `db:"discount"`
	TotalPrice       int64      `db:"total_price"`
	CommissionRate   float64    `db:"commission_rate"`
	CommissionAmount int64      `db:"commission_amount"`
	PartnerPayout    int64      `db:"partner_payout"`
	PromotionID      *string    `db:"promotion_id"`
	Status           string     `db:"status"`
	CancelReason     string     `db:"cancel_reason"`
	CancelledAt      *time.Time `db:"cancelled_at"`
	GuestName        string     `db:"guest_name"`
	GuestEmail       string     `db:"guest_email"`
	GuestPhone       string     `db:"guest_phone"`
	SpecialRequests  string     `db:"special_requests"`
	model.Metadata
}

// transitions lists the statuses a booking may move to from its current status.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// SlotTime combines a booking day with an HH:MM clock in the application timezone.
func SlotTime(date time.Time, clock string) (time.Time, error) {
	return timezone.AtClock(date, clock)
}

func (b Booking) IsCancellable() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// HoldsInventory reports whether the booking still occupies its rooms.
func (b Booking) HoldsInventory() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
