package dto

import (
	"strings"
	"time"

	"daybooker/internal/domains/booking/model"
	"daybooker/shared"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	gModel "daybooker/shared/model"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
)

const (
	referencePrefix = "DB"
	referenceLength = 8
)

// NewReference returns a short upper-case booking code such as DB7F3A91C2.
func NewReference() string {
	return referencePrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:referenceLength])
}

type CreateBookingRequest struct {
	HotelID         string `json:"hotel_id"         validate:"required,uuid"`
	RoomTypeID      string `json:"room_type_id"     validate:"required,uuid"`
	TimeSlotID      string `json:"time_slot_id"     validate:"required,uuid"`
	Date            string `json:"date"             validate:"required,datetime=2006-01-02"`
	Rooms           int    `json:"rooms"            validate:"required,min=1,max=20"`
	Guests          int    `json:"guests"           validate:"required,min=1"`
	GuestName       string `json:"guest_name"       validate:"required,max=100"`
	GuestEmail      string `json:"guest_email"      validate:"omitempty,email,max=100"`
	GuestPhone      string `json:"guest_phone"      validate:"omitempty,max=20"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	PromoCode       string `json:"promo_code"       validate:"omitempty,max=32"`
}

// ToModel builds a pending booking without prices.
func (c *CreateBookingRequest) ToModel(userID string, date time.Time) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		Reference:       NewReference(),
		UserID:          userID,
		HotelID:         c.HotelID,
		RoomTypeID:      c.RoomTypeID,
		TimeSlotID:      c.TimeSlotID,
		Date:            date,
		Rooms:           c.Rooms,
		Guests:          c.Guests,
		Status:          model.StatusPending,
		GuestName:       c.GuestName,
		GuestEmail:      strings.ToLower(strings.TrimSpace(c.GuestEmail)),
		GuestPhone:      c.GuestPhone,
		SpecialRequests: c.SpecialRequests,
		Metadata:        gModel.NewMetadata(userID, timezone.Now()),
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed no_show cancelled"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// BookingFilter narrows booking lists. Dates are inclusive YYYY-MM-DD bounds.
type BookingFilter struct {
	HotelID  string `json:"hotel_id"  validate:"omitempty,uuid"`
	Status   string `json:"status"    validate:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to"   validate:"omitempty,datetime=2006-01-02"`
}

func (b *BookingFilter) ToFilter() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if b.HotelID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldHotelID, Value: b.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if b.Status != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldStatus, Value: b.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if b.DateFrom != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldDate, ArgName: "date_from", Value: b.DateFrom, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if b.DateTo != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldDate, ArgName: "date_to", Value: b.DateTo, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	return group
}

type BookingResponse struct {
	ID               string  `json:"id"`
	Reference        string  `json:"reference"`
	UserID           string  `json:"user_id"`
	HotelID          string  `json:"hotel_id"`
	RoomTypeID       string  `json:"room_type_id"`
	TimeSlotID       string  `json:"time_slot_id"`
	Date             string  `json:"date"`
	Rooms            int     `json:"rooms"`
	Guests           int     `json:"guests"`
	UnitPrice        int64   `json:"unit_price"`
	Subtotal         int64   `json:"subtotal"`
	Discount         int64   `json:"discount"`
	TotalPrice       int64   `json:"total_price"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount int64   `json:"commission_amount"`
	PartnerPayout    int64   `json:"partner_payout"`
	PromotionID      *string `json:"promotion_id"`
	Status           string  `json:"status"`
	CancelReason     string  `json:"cancel_reason,omitempty"`
	CancelledAt      *string `json:"cancelled_at,omitempty"`
	GuestName        string  `json:"guest_name"`
	GuestEmail       string  `json:"guest_email"`
	GuestPhone       string  `json:"guest_phone"`
	SpecialRequests  string  `json:"special_requests"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Reference = model.Reference
	r.UserID = model.UserID
	r.HotelID = model.HotelID
	r.RoomTypeID = model.RoomTypeID
	r.TimeSlotID = model.TimeSlotID
	r.Date = model.Date.Format(constant.DayFormat)
	r.Rooms = model.Rooms
	r.Guests = model.Guests
	r.UnitPrice = model.UnitPrice
	r.Subtotal = model.Subtotal
	r.Discount = model.Discount
	r.TotalPrice = model.TotalPrice
	r.CommissionRate = model.CommissionRate
	r.CommissionAmount = model.CommissionAmount
	r.PartnerPayout = model.PartnerPayout
	r.PromotionID = model.PromotionID
	r.Status = model.Status
	r.CancelReason = model.CancelReason
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)

	if model.CancelledAt != nil {
		cancelledAt := timezone.Format(*model.CancelledAt, constant.DateFormat)
		r.CancelledAt = &cancelledAt
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
