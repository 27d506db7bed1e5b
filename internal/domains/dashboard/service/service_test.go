package service_test

import (
	"context"
	"errors"
	"testing"

	"daybooker/infras/otel/mocks"
	dashboardMocks "daybooker/internal/domains/dashboard/mocks"
	"daybooker/internal/domains/dashboard/model"
	"daybooker/internal/domains/dashboard/model/dto"
	"daybooker/internal/domains/dashboard/service"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo   *dashboardMocks.MockDashboard
	hotels *hotelMocks.MockHotel
	svc    service.Dashboard
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:   dashboardMocks.NewMockDashboard(ctrl),
		hotels: hotelMocks.NewMockHotel(ctrl),
	}

	f.svc = service.New(f.repo, f.hotels, mocks.NewOtel())

	return f
}

func withUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func hasFilter(group gDto.FilterGroup, table, field string, value any) bool {
	for _, item := range group.Filters {
		filter, ok := item.(gDto.Filter)
		if !ok {
			continue
		}

		if filter.Table == table && filter.Field == field && filter.Value == value {
			return true
		}
	}

	return false
}

func TestStatsRequest_Validate(t *testing.T) {
	cases := []struct {
		name string
		req  dto.StatsRequest
		code int
	}{
		{"no range", dto.StatsRequest{}, 0},
		{"open range", dto.StatsRequest{DateFrom: "2026-01-01"}, 0},
		{"valid range", dto.StatsRequest{DateFrom: "2026-01-01", DateTo: "2026-01-31"}, 0},
		{"reversed range", dto.StatsRequest{DateFrom: "2026-02-01", DateTo: "2026-01-31"}, 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.code == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tc.code, failure.GetCode(err))
		})
	}
}

func TestDashboardService_Partner(t *testing.T) {
	t.Run("aggregates own hotels", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().BookingsByStatus(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) ([]model.GroupCount, error) {
			assert.True(t, hasFilter(filter, "hotels", "partner_id", "p1"))
			assert.True(t, hasFilter(filter, "bookings", "date", "2026-01-01"))

			return []model.GroupCount{{Key: "confirmed", Count: 3}, {Key: "cancelled", Count: 1}}, nil
		})
		f.repo.EXPECT().Revenue(gomock.Any(), gomock.Any()).Return(model.Revenue{Bookings: 3, Gross: 30000, Commission: 4500, Payout: 25500}, nil)
		f.repo.EXPECT().AverageRating(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (float64, error) {
			assert.Len(t, filter.Filters, 1)

			return 4.5, nil
		})
		f.repo.EXPECT().CountBookings(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.True(t, hasFilter(filter, "bookings", "status", "confirmed"))

			return 2, nil
		})

		res, err := f.svc.Partner(withUser("p1", constant.RolePartner), dto.StatsRequest{DateFrom: "2026-01-01"})

		assert.NoError(t, err)
		assert.Equal(t, 4, res.TotalBookings)
		assert.Equal(t, 3, res.BookingsByStatus["confirmed"])
		assert.Equal(t, int64(30000), res.GrossRevenue)
		assert.Equal(t, int64(4500), res.Commission)
		assert.Equal(t, int64(25500), res.Payout)
		assert.Equal(t, 4.5, res.AverageRating)
		assert.Equal(t, 2, res.UpcomingBookings)
	})

	t.Run("foreign hotel", func(t *testing.T) {
		f := newFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1", PartnerID: "p2"}, nil)

		_, err := f.svc.Partner(withUser("p1", constant.RolePartner), dto.StatsRequest{HotelID: "h1"})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().BookingsByStatus(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		_, err := f.svc.Partner(withUser("p1", constant.RolePartner), dto.StatsRequest{})

		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestDashboardService_Admin(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().UsersByRole(gomock.Any()).Return([]model.GroupCount{{Key: "client", Count: 10}, {Key: "partner", Count: 2}}, nil)
	f.repo.EXPECT().HotelsByStatus(gomock.Any()).Return([]model.GroupCount{{Key: "approved", Count: 3}}, nil)
	f.repo.EXPECT().BookingsByStatus(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) ([]model.GroupCount, error) {
		assert.Empty(t, filter.Filters)

		return []model.GroupCount{{Key: "completed", Count: 5}}, nil
	})
	f.repo.EXPECT().Revenue(gomock.Any(), gomock.Any()).Return(model.Revenue{Gross: 50000, Commission: 7500}, nil)

	res, err := f.svc.Admin(withUser("a1", constant.RoleAdmin), dto.StatsRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 10, res.UsersByRole["client"])
	assert.Equal(t, 3, res.HotelsByStatus["approved"])
	assert.Equal(t, 5, res.TotalBookings)
	assert.Equal(t, int64(7500), res.CommissionRevenue)
}
