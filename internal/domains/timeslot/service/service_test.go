package service_test

import (
	"context"
	"testing"
	"time"

	"daybooker/infras/otel/mocks"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	timeSlotMocks "daybooker/internal/domains/timeslot/mocks"
	"daybooker/internal/domains/timeslot/model"
	"daybooker/internal/domains/timeslot/model/dto"
	"daybooker/internal/domains/timeslot/service"
	cacheMocks "daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*timeSlotMocks.MockTimeSlot, *hotelMocks.MockHotel, service.TimeSlot) {
	ctrl := gomock.NewController(t)

	repo := timeSlotMocks.NewMockTimeSlot(ctrl)
	hotels := hotelMocks.NewMockHotel(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, hotels, service.New(repo, hotels, cache, mocks.NewOtel())
}

func partnerContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RolePartner)
}

var ownedHotel = hotelModel.Hotel{ID: "h1", PartnerID: "p1", Status: hotelModel.StatusApproved}

func TestTimeSlotService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTimeSlotRequest
		setupMock func(repo *timeSlotMocks.MockTimeSlot, hotels *hotelMocks.MockHotel)
		wantCode  int
	}{
		{
			name: "valid slot",
			req:  dto.CreateTimeSlotRequest{Name: "Morning", StartTime: "09:00", EndTime: "13:00"},
			setupMock: func(repo *timeSlotMocks.MockTimeSlot, hotels *hotelMocks.MockHotel) {
				hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "start after end",
			req:       dto.CreateTimeSlotRequest{Name: "Broken", StartTime: "18:00", EndTime: "09:00"},
			setupMock: func(_ *timeSlotMocks.MockTimeSlot, _ *hotelMocks.MockHotel) {},
			wantCode:  400,
		},
		{
			name:      "start equals end",
			req:       dto.CreateTimeSlotRequest{Name: "Empty", StartTime: "09:00", EndTime: "09:00"},
			setupMock: func(_ *timeSlotMocks.MockTimeSlot, _ *hotelMocks.MockHotel) {},
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, hotels, svc := newService(t)
			tt.setupMock(repo, hotels)

			res, err := svc.Create(partnerContext("p1"), tt.req, "h1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "09:00", res.StartTime)
		})
	}
}

func TestTimeSlotService_GetAllByHotel(t *testing.T) {
	repo, hotels, svc := newService(t)

	hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.TimeSlot, error) {
			assert.Equal(t, model.FieldStartTime, params.SortBy)
			assert.Len(t, filter.Filters, 2)

			return []model.TimeSlot{{ID: "ts1", StartTime: "09:00", EndTime: "13:00"}}, nil
		})

	res, err := svc.GetAllByHotel(context.Background(), "h1")

	assert.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestTimeSlotService_Update(t *testing.T) {
	current := model.TimeSlot{ID: "ts1", HotelID: "h1", StartTime: "09:00", EndTime: "13:00"}

	t.Run("new start must stay before existing end", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := svc.Update(partnerContext("p1"), dto.UpdateTimeSlotRequest{StartTime: "14:00"}, "ts1")

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("rename", func(t *testing.T) {
		repo, hotels, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(partnerContext("p1"), dto.UpdateTimeSlotRequest{Name: "Late morning"}, "ts1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("other partner", func(t *testing.T) {
		repo, hotels, svc := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)

		err := svc.Update(partnerContext("p2"), dto.UpdateTimeSlotRequest{Name: "Hijack"}, "ts1")

		assert.Equal(t, 403, failure.GetCode(err))
	})
}
