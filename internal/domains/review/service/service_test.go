package service_test

import (
	"context"
	"testing"
	"time"

	"daybooker/infras/otel/mocks"
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	bookingMocks "daybooker/internal/domains/booking/mocks"
	bookingModel "daybooker/internal/domains/booking/model"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	reviewMocks "daybooker/internal/domains/review/mocks"
	"daybooker/internal/domains/review/model"
	"daybooker/internal/domains/review/model/dto"
	"daybooker/internal/domains/review/service"
	cacheMocks "daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *reviewMocks.MockReview
	bookings *bookingMocks.MockBooking
	hotels   *hotelMocks.MockHotel
	svc      service.Review
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	activity := activityMocks.NewMockActivityLog(ctrl)
	activity.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	f := &fixture{
		repo:     reviewMocks.NewMockReview(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		hotels:   hotelMocks.NewMockHotel(ctrl),
	}

	f.svc = service.New(f.repo, f.bookings, f.hotels, activity, cache, mocks.NewOtel())

	return f
}

func withUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestReviewService_Create(t *testing.T) {
	completed := bookingModel.Booking{ID: "b1", UserID: "c1", HotelID: "h1", Status: bookingModel.StatusCompleted}
	req := dto.CreateReviewRequest{BookingID: "b1", Rating: 4, Comment: " lovely pool "}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "completed booking",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, review model.Review) error {
					assert.Equal(t, "h1", review.HotelID)
					assert.Equal(t, "lovely pool", review.Comment)
					assert.True(t, review.Visible)

					return nil
				})
				f.hotels.EXPECT().RefreshRating(gomock.Any(), "h1").Return(nil)
			},
		},
		{
			name: "booking not completed",
			setupMock: func(f *fixture) {
				confirmed := completed
				confirmed.Status = bookingModel.StatusConfirmed
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
			},
			wantCode: 400,
		},
		{
			name: "second review",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
		{
			name: "concurrent duplicate",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: 409,
		},
		{
			name: "booking of someone else",
			setupMock: func(f *fixture) {
				other := completed
				other.UserID = "c2"
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(other, nil)
			},
			wantCode: 403,
		},
		{
			name: "unknown booking",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(withUser("c1", constant.RoleClient), req)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 4, res.Rating)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestReviewService_ListByHotel(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Review, error) {
		assert.Equal(t, gDto.SortDirDesc, params.SortDir)

		return []model.Review{{ID: "r1", Rating: 5, Visible: true}, {ID: "r2", Rating: 3, Visible: true}}, nil
	})

	res, err := f.svc.ListByHotel(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, "h1")

	assert.NoError(t, err)
	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 2, res.TotalPage)
}

func TestReviewService_Reply(t *testing.T) {
	review := model.Review{ID: "r1", HotelID: "h1"}

	t.Run("hotel partner", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(review, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1", PartnerID: "p1"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Thank you!", fields[model.FieldPartnerReply])

			return nil
		})

		err := f.svc.Reply(withUser("p1", constant.RolePartner), "r1", dto.ReplyRequest{Reply: "Thank you!"})

		assert.NoError(t, err)
	})

	t.Run("other partner", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(review, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1", PartnerID: "p2"}, nil)

		err := f.svc.Reply(withUser("p1", constant.RolePartner), "r1", dto.ReplyRequest{Reply: "Thanks"})

		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestReviewService_SetVisibility(t *testing.T) {
	f := newFixture(t)
	hidden := false

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r1", HotelID: "h1"}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.hotels.EXPECT().RefreshRating(gomock.Any(), "h1").Return(nil)

	err := f.svc.SetVisibility(withUser("admin-1", constant.RoleAdmin), "r1", dto.SetVisibilityRequest{Visible: &hidden})

	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
}

func TestReviewService_Delete(t *testing.T) {
	t.Run("recomputes rating", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r1", HotelID: "h1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.hotels.EXPECT().RefreshRating(gomock.Any(), "h1").Return(nil)

		assert.NoError(t, f.svc.Delete(withUser("admin-1", constant.RoleAdmin), "r1"))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{}, nil)

		assert.Equal(t, 404, failure.GetCode(f.svc.Delete(withUser("admin-1", constant.RoleAdmin), "r1")))
	})
}
