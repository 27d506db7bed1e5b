package service_test

import (
	"context"
	"testing"
	"time"

	"daybooker/config"
	metricsMocks "daybooker/infras/metrics/mocks"
	"daybooker/infras/otel/mocks"
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	availabilityMocks "daybooker/internal/domains/availability/mocks"
	availabilityModel "daybooker/internal/domains/availability/model"
	availabilityRepo "daybooker/internal/domains/availability/repository"
	bookingMocks "daybooker/internal/domains/booking/mocks"
	"daybooker/internal/domains/booking/model"
	"daybooker/internal/domains/booking/model/dto"
	"daybooker/internal/domains/booking/service"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	partnerMocks "daybooker/internal/domains/partner/mocks"
	partnerModel "daybooker/internal/domains/partner/model"
	pricingMocks "daybooker/internal/domains/pricing/service/mocks"
	promotionRepoMocks "daybooker/internal/domains/promotion/mocks"
	promotionModel "daybooker/internal/domains/promotion/model"
	promotionRepo "daybooker/internal/domains/promotion/repository"
	promotionMocks "daybooker/internal/domains/promotion/service/mocks"
	roomTypeMocks "daybooker/internal/domains/roomtype/mocks"
	roomTypeModel "daybooker/internal/domains/roomtype/model"
	timeSlotMocks "daybooker/internal/domains/timeslot/mocks"
	timeSlotModel "daybooker/internal/domains/timeslot/model"
	"daybooker/internal/pricing"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"
	repoMocks "daybooker/shared/repository/mocks"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo          *bookingMocks.MockBooking
	hotels        *hotelMocks.MockHotel
	roomTypes     *roomTypeMocks.MockRoomType
	timeSlots     *timeSlotMocks.MockTimeSlot
	availability  *availabilityMocks.MockAvailability
	partners      *partnerMocks.MockPartner
	promotionRepo *promotionRepoMocks.MockPromotion
	promotion     *promotionMocks.MockPromotion
	pricing       *pricingMocks.MockPricing
	svc           service.Booking
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.DefaultCommissionRate = 15
	cfg.Booking.DefaultCancellationHours = 24
	cfg.Booking.PendingExpiryMinutes = 30

	f := &fixture{
		repo:          bookingMocks.NewMockBooking(ctrl),
		hotels:        hotelMocks.NewMockHotel(ctrl),
		roomTypes:     roomTypeMocks.NewMockRoomType(ctrl),
		timeSlots:     timeSlotMocks.NewMockTimeSlot(ctrl),
		availability:  availabilityMocks.NewMockAvailability(ctrl),
		partners:      partnerMocks.NewMockPartner(ctrl),
		promotionRepo: promotionRepoMocks.NewMockPromotion(ctrl),
		promotion:     promotionMocks.NewMockPromotion(ctrl),
		pricing:       pricingMocks.NewMockPricing(ctrl),
	}

	activity := activityMocks.NewMockActivityLog(ctrl)
	activity.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	transactor := repoMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
		return fn(nil)
	}).AnyTimes()

	f.svc = service.New(service.Dependencies{
		Repo:             f.repo,
		HotelRepo:        f.hotels,
		RoomTypeRepo:     f.roomTypes,
		TimeSlotRepo:     f.timeSlots,
		AvailabilityRepo: f.availability,
		PartnerRepo:      f.partners,
		PromotionRepo:    f.promotionRepo,
		Promotion:        f.promotion,
		Pricing:          f.pricing,
		Activity:         activity,
		Transactor:       transactor,
		Metrics:          metricsMocks.NewMetrics(),
		Config:           cfg,
		Otel:             mocks.NewOtel(),
	})

	return f
}

func withUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

var (
	approvedHotel = hotelModel.Hotel{ID: "h1", PartnerID: "p1", Status: hotelModel.StatusApproved}
	suite         = roomTypeModel.RoomType{ID: "rt1", HotelID: "h1", Capacity: 2, TotalRooms: 5, BasePrice: 10000, Active: true}
	morning       = timeSlotModel.TimeSlot{ID: "ts1", HotelID: "h1", StartTime: "09:00", EndTime: "13:00", Active: true}
)

func daysFromNow(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DayFormat)
}

func TestBookingService_Create(t *testing.T) {
	base := dto.CreateBookingRequest{
		HotelID: "h1", RoomTypeID: "rt1", TimeSlotID: "ts1", Date: daysFromNow(3),
		Rooms: 2, Guests: 3, GuestName: "Ana",
	}

	expectCatalog := func(f *fixture) {
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
		f.timeSlots.EXPECT().Get(gomock.Any(), gomock.Any()).Return(morning, nil)
	}

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(t *testing.T, f *fixture)
		wantCode  int
		want      func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "promotion and partner commission",
			req: func() dto.CreateBookingRequest {
				req := base
				req.PromoCode = "save10"

				return req
			},
			setupMock: func(t *testing.T, f *fixture) {
				expectCatalog(f)
				f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{ID: "s1", PartnerID: "p1", CommissionRate: 20, AutoConfirm: true}, nil)
				f.pricing.EXPECT().Rules(gomock.Any(), "h1").Return([]pricing.Rule{}, nil)
				f.availability.EXPECT().ReserveTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, 5, "c1").Return(availabilityModel.Availability{AvailableRooms: 3}, nil)
				f.promotion.EXPECT().Evaluate(gomock.Any(), "save10", "h1", int64(20000)).Return(promotionModel.Promotion{ID: "promo-1"}, int64(2000), nil)
				f.promotionRepo.EXPECT().IncrementUsageTx(gomock.Any(), gomock.Any(), "promo-1").Return(nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
					assert.Equal(t, int64(18000), booking.TotalPrice)
					assert.Equal(t, 20.0, booking.CommissionRate)
					assert.Equal(t, int64(3600), booking.CommissionAmount)
					assert.Equal(t, int64(14400), booking.PartnerPayout)

					return nil
				})
			},
			want: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, model.StatusConfirmed, res.Status)
				assert.Equal(t, int64(10000), res.UnitPrice)
				assert.Equal(t, int64(2000), res.Discount)
				assert.Len(t, res.Reference, 10)
			},
		},
		{
			name: "default commission without settings",
			req:  func() dto.CreateBookingRequest { return base },
			setupMock: func(t *testing.T, f *fixture) {
				override := int64(8000)

				expectCatalog(f)
				f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{}, nil)
				f.pricing.EXPECT().Rules(gomock.Any(), "h1").Return(nil, nil)
				f.availability.EXPECT().ReserveTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, 5, "c1").Return(availabilityModel.Availability{PriceOverride: &override}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
					assert.Equal(t, int64(16000), booking.TotalPrice)
					assert.Equal(t, 15.0, booking.CommissionRate)
					assert.Equal(t, int64(2400), booking.CommissionAmount)
					assert.Nil(t, booking.PromotionID)

					return nil
				})
			},
			want: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, model.StatusPending, res.Status)
			},
		},
		{
			name: "no availability",
			req:  func() dto.CreateBookingRequest { return base },
			setupMock: func(_ *testing.T, f *fixture) {
				expectCatalog(f)
				f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{}, nil)
				f.pricing.EXPECT().Rules(gomock.Any(), "h1").Return(nil, nil)
				f.availability.EXPECT().ReserveTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, 5, "c1").Return(availabilityModel.Availability{}, availabilityRepo.ErrNoAvailability)
			},
			wantCode: 409,
		},
		{
			name: "promotion exhausted concurrently",
			req: func() dto.CreateBookingRequest {
				req := base
				req.PromoCode = "LAST"

				return req
			},
			setupMock: func(_ *testing.T, f *fixture) {
				expectCatalog(f)
				f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{}, nil)
				f.pricing.EXPECT().Rules(gomock.Any(), "h1").Return(nil, nil)
				f.availability.EXPECT().ReserveTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, 5, "c1").Return(availabilityModel.Availability{}, nil)
				f.promotion.EXPECT().Evaluate(gomock.Any(), "LAST", "h1", int64(20000)).Return(promotionModel.Promotion{ID: "promo-2"}, int64(500), nil)
				f.promotionRepo.EXPECT().IncrementUsageTx(gomock.Any(), gomock.Any(), "promo-2").Return(promotionRepo.ErrPromotionExhausted)
			},
			wantCode: 400,
		},
		{
			name: "too many guests",
			req: func() dto.CreateBookingRequest {
				req := base
				req.Guests = 5

				return req
			},
			setupMock: func(_ *testing.T, f *fixture) { expectCatalog(f) },
			wantCode:  400,
		},
		{
			name: "slot already started",
			req: func() dto.CreateBookingRequest {
				req := base
				req.Date = daysFromNow(-1)

				return req
			},
			setupMock: func(_ *testing.T, f *fixture) { expectCatalog(f) },
			wantCode:  400,
		},
		{
			name: "hotel not approved",
			req:  func() dto.CreateBookingRequest { return base },
			setupMock: func(_ *testing.T, f *fixture) {
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1", Status: hotelModel.StatusPending}, nil)
			},
			wantCode: 404,
		},
		{
			name: "inactive room type",
			req:  func() dto.CreateBookingRequest { return base },
			setupMock: func(_ *testing.T, f *fixture) {
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
				f.roomTypes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil)
			},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(t, f)

			res, err := f.svc.Create(withUser("c1", constant.RoleClient), tt.req())
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			tt.want(t, res)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	future := timezone.Now().AddDate(0, 0, 5)
	confirmed := model.Booking{ID: "b1", UserID: "c1", HotelID: "h1", RoomTypeID: "rt1", TimeSlotID: "ts1", Date: future, Rooms: 2, Status: model.StatusConfirmed}

	t.Run("client inside free cancellation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.timeSlots.EXPECT().Get(gomock.Any(), gomock.Any()).Return(morning, nil)
		f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{}, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.availability.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, "c1").Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
			assert.Equal(t, "change of plans", fields[model.FieldCancelReason])
			assert.NotNil(t, fields[model.FieldCancelledAt])

			return nil
		})

		err := f.svc.Cancel(withUser("c1", constant.RoleClient), "b1", dto.CancelBookingRequest{Reason: "change of plans"})

		assert.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(t)
		cancelled := confirmed
		cancelled.Status = model.StatusCancelled
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)

		err := f.svc.Cancel(withUser("c1", constant.RoleClient), "b1", dto.CancelBookingRequest{})

		assert.EqualError(t, err, "booking already cancelled")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("cancelled concurrently", func(t *testing.T) {
		f := newFixture(t)
		cancelled := confirmed
		cancelled.Status = model.StatusCancelled
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := f.svc.Cancel(withUser("admin-1", constant.RoleAdmin), "b1", dto.CancelBookingRequest{})

		assert.EqualError(t, err, "booking already cancelled")
	})

	t.Run("client past the deadline", func(t *testing.T) {
		f := newFixture(t)
		soon := timezone.Now().Add(2 * time.Hour)
		late := confirmed
		late.Date = soon
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(late, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.timeSlots.EXPECT().Get(gomock.Any(), gomock.Any()).Return(timeSlotModel.TimeSlot{ID: "ts1", StartTime: soon.Format(constant.ClockFormat)}, nil)
		f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{ID: "s1", FreeCancellationHours: 24}, nil)

		err := f.svc.Cancel(withUser("c1", constant.RoleClient), "b1", dto.CancelBookingRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("stored day in a zone behind UTC", func(t *testing.T) {
		newYork, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata unavailable")
		}

		previous := timezone.GetLocation()
		timezone.SetLocation(newYork)
		t.Cleanup(func() { timezone.SetLocation(previous) })

		// Slot starts 26h from now; the deadline 24h before it has not passed.
		start := timezone.Now().Add(26 * time.Hour)
		year, month, day := start.Date()
		stored := confirmed
		stored.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.timeSlots.EXPECT().Get(gomock.Any(), gomock.Any()).Return(timeSlotModel.TimeSlot{ID: "ts1", StartTime: start.Format(constant.ClockFormat)}, nil)
		f.partners.EXPECT().Get(gomock.Any(), gomock.Any()).Return(partnerModel.PartnerSettings{ID: "s1", FreeCancellationHours: 24}, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(stored, nil)
		f.availability.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, "c1").Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err = f.svc.Cancel(withUser("c1", constant.RoleClient), "b1", dto.CancelBookingRequest{})

		assert.NoError(t, err)
	})

	t.Run("promotion use is given back", func(t *testing.T) {
		promotionID := "promo-1"
		promoted := confirmed
		promoted.PromotionID = &promotionID

		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promoted, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(promoted, nil)
		f.availability.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, "admin-1").Return(nil)
		f.promotionRepo.EXPECT().ReleaseUsageTx(gomock.Any(), gomock.Any(), promotionID).Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Cancel(withUser("admin-1", constant.RoleAdmin), "b1", dto.CancelBookingRequest{})

		assert.NoError(t, err)
	})

	t.Run("another client", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)

		err := f.svc.Cancel(withUser("c2", constant.RoleClient), "b1", dto.CancelBookingRequest{})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("partner of the hotel skips the window", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.availability.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), gomock.Any(), 2, "p1").Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Cancel(withUser("p1", constant.RolePartner), "b1", dto.CancelBookingRequest{})

		assert.NoError(t, err)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		release  bool
		wantCode int
	}{
		{name: "confirm pending", current: model.StatusPending, next: model.StatusConfirmed},
		{name: "no show", current: model.StatusConfirmed, next: model.StatusNoShow},
		{name: "cancel confirmed", current: model.StatusConfirmed, next: model.StatusCancelled, release: true},
		{name: "complete pending", current: model.StatusPending, next: model.StatusCompleted, wantCode: 400},
		{name: "reopen completed", current: model.StatusCompleted, next: model.StatusConfirmed, wantCode: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := model.Booking{ID: "b1", HotelID: "h1", Rooms: 1, Status: tt.current}

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.release {
				f.availability.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), gomock.Any(), 1, "p1").Return(nil)
			}

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.UpdateStatus(withUser("p1", constant.RolePartner), "b1", dto.UpdateStatusRequest{Status: tt.next})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_ExpirePending(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return([]model.Booking{{ID: "b1"}, {ID: "b2"}}, nil)
	gomock.InOrder(
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b1", Rooms: 1, Status: model.StatusPending}, nil),
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b2", Rooms: 1, Status: model.StatusConfirmed}, nil),
	)
	f.availability.EXPECT().ReleaseTx(gomock.Any(), gomock.Any(), gomock.Any(), 1, constant.SystemUser).Return(nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, model.CancelReasonExpired, fields[model.FieldCancelReason])

		return nil
	})

	expired, err := f.svc.ExpirePending(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(1), expired)
}

func TestBookingService_CompletePast(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().CompletePast(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, today, clock string) (int64, error) {
		assert.Equal(t, timezone.Now().Format(constant.DayFormat), today)
		assert.Len(t, clock, len(constant.ClockFormat))

		return 3, nil
	})

	completed, err := f.svc.CompletePast(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), completed)
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{ID: "b1", UserID: "c1", HotelID: "h1", Status: model.StatusPending}

	t.Run("other partner", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)

		_, err := f.svc.Get(withUser("p2", constant.RolePartner), "b1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedHotel, nil)

		res, err := f.svc.Get(withUser("c1", constant.RoleClient), "b1")

		assert.NoError(t, err)
		assert.Equal(t, "b1", res.ID)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(withUser("c1", constant.RoleClient), "b1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
