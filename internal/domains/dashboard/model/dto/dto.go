package dto

import (
	"daybooker/internal/domains/dashboard/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	"daybooker/shared/timezone"
)

// StatsRequest narrows the dashboard figures. Dates are inclusive booking
// dates in YYYY-MM-DD.
type StatsRequest struct {
	HotelID  string `json:"hotel_id"  validate:"omitempty,uuid"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to"   validate:"omitempty,datetime=2006-01-02"`
}

func (s *StatsRequest) Validate() error {
	if s.DateFrom == constant.Empty || s.DateTo == constant.Empty {
		return nil
	}

	from, err := timezone.ParseDay(s.DateFrom)
	if err != nil {
		return failure.BadRequestFromString("invalid date_from")
	}

	to, err := timezone.ParseDay(s.DateTo)
	if err != nil {
		return failure.BadRequestFromString("invalid date_to")
	}

	if to.Before(from) {
		return failure.BadRequestFromString("date_to must not be before date_from")
	}

	return nil
}

// BookingFilter returns the filter over bookings joined with hotels.
func (s *StatsRequest) BookingFilter(partnerID string) gDto.FilterGroup {
	group := s.hotelFilter(partnerID, "bookings")

	if s.DateFrom != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: "date", ArgName: "date_from", Value: s.DateFrom, Operator: gDto.FilterOperatorGreaterEq, Table: "bookings"})
	}

	if s.DateTo != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: "date", ArgName: "date_to", Value: s.DateTo, Operator: gDto.FilterOperatorLessEq, Table: "bookings"})
	}

	return group
}

// UpcomingFilter counts confirmed bookings from today on, ignoring the date range.
func (s *StatsRequest) UpcomingFilter(partnerID, today string) gDto.FilterGroup {
	group := s.hotelFilter(partnerID, "bookings")
	group.Filters = append(group.Filters,
		gDto.Filter{Field: "status", Value: "confirmed", Operator: gDto.FilterOperatorEq, Table: "bookings"},
		gDto.Filter{Field: "date", ArgName: "upcoming_from", Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: "bookings"},
	)

	return group
}

// ReviewFilter returns the filter over reviews joined with hotels.
func (s *StatsRequest) ReviewFilter(partnerID string) gDto.FilterGroup {
	return s.hotelFilter(partnerID, "reviews")
}

func (s *StatsRequest) hotelFilter(partnerID, table string) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if partnerID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: "partner_id", Value: partnerID, Operator: gDto.FilterOperatorEq, Table: "hotels"})
	}

	if s.HotelID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: "hotel_id", Value: s.HotelID, Operator: gDto.FilterOperatorEq, Table: table})
	}

	return group
}

type PartnerStatsResponse struct {
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	TotalBookings    int            `json:"total_bookings"`
	GrossRevenue     int64          `json:"gross_revenue"`
	Commission       int64          `json:"commission"`
	Payout           int64          `json:"payout"`
	AverageRating    float64        `json:"average_rating"`
	UpcomingBookings int            `json:"upcoming_bookings"`
}

type AdminStatsResponse struct {
	UsersByRole       map[string]int `json:"users_by_role"`
	HotelsByStatus    map[string]int `json:"hotels_by_status"`
	BookingsByStatus  map[string]int `json:"bookings_by_status"`
	TotalBookings     int            `json:"total_bookings"`
	GrossRevenue      int64          `json:"gross_revenue"`
	CommissionRevenue int64          `json:"commission_revenue"`
}

// ToMap folds grouped counts and returns their sum.
func ToMap(rows []model.GroupCount) (map[string]int, int) {
	res := make(map[string]int, len(rows))
	total := 0

	for _, row := range rows {
		res[row.Key] = row.Count
		total += row.Count
	}

	return res, total
}
