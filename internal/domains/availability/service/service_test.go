package service_test

import (
	"context"
	"testing"
	"time"

	"daybooker/config"
	"daybooker/infras/otel/mocks"
	availabilityMocks "daybooker/internal/domains/availability/mocks"
	"daybooker/internal/domains/availability/model"
	"daybooker/internal/domains/availability/model/dto"
	"daybooker/internal/domains/availability/repository"
	"daybooker/internal/domains/availability/service"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	pricingMocks "daybooker/internal/domains/pricing/service/mocks"
	roomTypeMocks "daybooker/internal/domains/roomtype/mocks"
	roomTypeModel "daybooker/internal/domains/roomtype/model"
	timeSlotMocks "daybooker/internal/domains/timeslot/mocks"
	timeSlotModel "daybooker/internal/domains/timeslot/model"
	"daybooker/internal/pricing"
	cacheMocks "daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	"daybooker/shared/failure"
	repoMocks "daybooker/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *availabilityMocks.MockAvailability
	hotels     *hotelMocks.MockHotel
	roomTypes  *roomTypeMocks.MockRoomType
	timeSlots  *timeSlotMocks.MockTimeSlot
	pricing    *pricingMocks.MockPricing
	transactor *repoMocks.MockTransactor
	svc        service.Availability
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.MaxBulkDays = 366

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := &fixture{
		repo:       availabilityMocks.NewMockAvailability(ctrl),
		hotels:     hotelMocks.NewMockHotel(ctrl),
		roomTypes:  roomTypeMocks.NewMockRoomType(ctrl),
		timeSlots:  timeSlotMocks.NewMockTimeSlot(ctrl),
		pricing:    pricingMocks.NewMockPricing(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
	}

	f.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
		return fn(nil)
	}).AnyTimes()

	f.svc = service.New(f.repo, f.hotels, f.roomTypes, f.timeSlots, f.pricing, f.transactor, cfg, cache, mocks.NewOtel())

	return f
}

func partnerContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RolePartner)
}

var (
	ownedHotel = hotelModel.Hotel{ID: "h1", PartnerID: "p1", Status: hotelModel.StatusApproved}
	standard   = roomTypeModel.RoomType{ID: "rt1", HotelID: "h1", Name: "Standard", Capacity: 2, TotalRooms: 5, BasePrice: 8000, Active: true}
)

func TestAvailabilityService_BulkUpdate(t *testing.T) {
	rooms := 3
	tooMany := 6
	closed := true

	tests := []struct {
		name      string
		req       dto.BulkUpdateRequest
		setupMock func(f *fixture)
		wantCode  int
		wantRows  int64
	}{
		{
			name: "dates times slots",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-01", EndDate: "2026-08-07",
				TimeSlotIDs: []string{"ts1", "ts2", "ts1"}, AvailableRooms: &rooms,
			},
			setupMock: func(f *fixture) {
				f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(standard, nil)
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
				f.timeSlots.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.repo.EXPECT().UpsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.UpsertFields{AvailableRooms: true}).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, models []model.Availability, _ repository.UpsertFields) (int64, error) {
						assert.Len(t, models, 14)
						assert.Equal(t, 3, models[0].AvailableRooms)

						return int64(len(models)), nil
					})
			},
			wantRows: 14,
		},
		{
			name: "weekends only",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-01", EndDate: "2026-08-31",
				TimeSlotIDs: []string{"ts1"}, DaysOfWeek: []int{0, 6}, IsClosed: &closed,
			},
			setupMock: func(f *fixture) {
				f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(standard, nil)
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
				f.timeSlots.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().UpsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.UpsertFields{IsClosed: true}).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, models []model.Availability, _ repository.UpsertFields) (int64, error) {
						for _, row := range models {
							weekday := row.Date.Weekday()
							assert.True(t, weekday == time.Saturday || weekday == time.Sunday)
							assert.Equal(t, standard.TotalRooms, row.AvailableRooms)
						}

						return int64(len(models)), nil
					})
			},
			wantRows: 10,
		},
		{
			name: "range over a year",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-01-01", EndDate: "2027-01-02",
				TimeSlotIDs: []string{"ts1"}, AvailableRooms: &rooms,
			},
			setupMock: func(_ *fixture) {},
			wantCode:  400,
		},
		{
			name: "reversed range",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-07", EndDate: "2026-08-01",
				TimeSlotIDs: []string{"ts1"}, AvailableRooms: &rooms,
			},
			setupMock: func(_ *fixture) {},
			wantCode:  400,
		},
		{
			name: "nothing to update",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-01", EndDate: "2026-08-07", TimeSlotIDs: []string{"ts1"},
			},
			setupMock: func(_ *fixture) {},
			wantCode:  400,
		},
		{
			name: "more rooms than the room type has",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-01", EndDate: "2026-08-07",
				TimeSlotIDs: []string{"ts1"}, AvailableRooms: &tooMany,
			},
			setupMock: func(f *fixture) {
				f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(standard, nil)
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
			},
			wantCode: 400,
		},
		{
			name: "slot of another hotel",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-01", EndDate: "2026-08-07",
				TimeSlotIDs: []string{"ts1", "ts9"}, AvailableRooms: &rooms,
			},
			setupMock: func(f *fixture) {
				f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(standard, nil)
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
				f.timeSlots.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: 400,
		},
		{
			name: "hotel of another partner",
			req: dto.BulkUpdateRequest{
				RoomTypeID: "rt1", StartDate: "2026-08-01", EndDate: "2026-08-07",
				TimeSlotIDs: []string{"ts1"}, AvailableRooms: &rooms,
			},
			setupMock: func(f *fixture) {
				f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(standard, nil)
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1", PartnerID: "p2"}, nil)
			},
			wantCode: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.BulkUpdate(partnerContext("p1"), tt.req)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRows, res.Affected)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestAvailabilityService_Calendar(t *testing.T) {
	f := newFixture(t)
	override := int64(9900)
	day := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(standard, nil)
	f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
	f.timeSlots.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]timeSlotModel.TimeSlot{{ID: "ts1"}, {ID: "ts2"}}, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Availability{
		{ID: "a1", RoomTypeID: "rt1", TimeSlotID: "ts2", Date: day, AvailableRooms: 1, PriceOverride: &override},
	}, nil)

	res, err := f.svc.Calendar(partnerContext("p1"), dto.CalendarRequest{RoomTypeID: "rt1", From: "2026-08-01", To: "2026-08-03"})

	assert.NoError(t, err)
	assert.Len(t, res, 6)

	for _, row := range res {
		if row.Date == "2026-08-02" && row.TimeSlotID == "ts2" {
			assert.Equal(t, 1, row.AvailableRooms)
			assert.Equal(t, &override, row.PriceOverride)

			continue
		}

		assert.Equal(t, standard.TotalRooms, row.AvailableRooms)
		assert.False(t, row.IsClosed)
	}
}

func TestAvailabilityService_Check(t *testing.T) {
	t.Run("quotes every room type and slot", func(t *testing.T) {
		f := newFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
		f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomTypeModel.RoomType{standard}, nil)
		f.timeSlots.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]timeSlotModel.TimeSlot{{ID: "ts1", Name: "Morning"}, {ID: "ts2", Name: "Evening"}}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Availability{
			{RoomTypeID: "rt1", TimeSlotID: "ts2", AvailableRooms: 4, IsClosed: true},
		}, nil)
		f.pricing.EXPECT().Rules(gomock.Any(), "h1").Return([]pricing.Rule{
			{Name: "Evening", Type: pricing.RuleTypeFixed, Value: 1000, TimeSlotID: "ts2", Active: true},
		}, nil)

		res, err := f.svc.Check(context.Background(), "h1", "2026-08-01")

		assert.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, 5, res.Items[0].AvailableRooms)
		assert.Equal(t, int64(8000), res.Items[0].UnitPrice)
		assert.Equal(t, int64(9000), res.Items[1].UnitPrice)
	})

	t.Run("pending hotel is hidden", func(t *testing.T) {
		f := newFixture(t)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1", PartnerID: "p1", Status: hotelModel.StatusPending}, nil)

		_, err := f.svc.Check(context.Background(), "h1", "2026-08-01")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
