package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"daybooker/config"
	"daybooker/infras/otel/mocks"
	s3Mocks "daybooker/infras/s3/mocks"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	roomTypeMocks "daybooker/internal/domains/roomtype/mocks"
	"daybooker/internal/domains/roomtype/model"
	"daybooker/internal/domains/roomtype/model/dto"
	"daybooker/internal/domains/roomtype/service"
	cacheMocks "daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo   *roomTypeMocks.MockRoomType
	hotels *hotelMocks.MockHotel
	cache  *cacheMocks.MockRedisCache
	s3     *s3Mocks.MockS3
	svc    service.RoomType
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "daybooker"

	f := &fixture{
		repo:   roomTypeMocks.NewMockRoomType(ctrl),
		hotels: hotelMocks.NewMockHotel(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		s3:     s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.hotels, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func partnerContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RolePartner)
}

var ownedHotel = hotelModel.Hotel{ID: "h1", PartnerID: "p1", Status: hotelModel.StatusApproved, Images: pq.StringArray{}}

func TestRoomTypeService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateRoomTypeRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "without image",
			ctx:  partnerContext("p1"),
			req:  dto.CreateRoomTypeRequest{Name: "Deluxe", Capacity: 2, TotalRooms: 5, BasePrice: 8000},
			setupMock: func(f *fixture) {
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, roomType model.RoomType) error {
						assert.Equal(t, "h1", roomType.HotelID)
						assert.True(t, roomType.Active)
						assert.Equal(t, int64(8000), roomType.BasePrice)

						return nil
					})
			},
		},
		{
			name: "image removed when insert fails",
			ctx:  partnerContext("p1"),
			req:  dto.CreateRoomTypeRequest{Name: "Deluxe", Capacity: 2, Image: &multipart.FileHeader{Filename: "room.png"}},
			setupMock: func(f *fixture) {
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
				f.s3.EXPECT().UploadFile(gomock.Any(), "daybooker", "room_type/h1", gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/room_type/h1/a.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "daybooker", "room_type/h1", gomock.Any()).Return(nil)
			},
			wantCode: 500,
		},
		{
			name: "not the hotel partner",
			ctx:  partnerContext("p2"),
			req:  dto.CreateRoomTypeRequest{Name: "Deluxe", Capacity: 2},
			setupMock: func(f *fixture) {
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
			},
			wantCode: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, tt.req, "h1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Deluxe", res.Name)
		})
	}
}

func TestRoomTypeService_GetAllByHotel(t *testing.T) {
	t.Run("public callers only see active room types", func(t *testing.T) {
		f := newFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 2)

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.RoomType{{ID: "rt1"}}, nil)

		res, err := f.svc.GetAllByHotel(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "h1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.RoomTypes, 1)
	})

	t.Run("missing hotel", func(t *testing.T) {
		f := newFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, nil)

		_, err := f.svc.GetAllByHotel(context.Background(), gDto.QueryParams{}, "h1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomTypeService_Update(t *testing.T) {
	rooms := 3

	t.Run("replaces image and removes the old one", func(t *testing.T) {
		f := newFixture(t)
		header := &multipart.FileHeader{Filename: "new.jpg"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.RoomType{ID: "rt1", HotelID: "h1", Image: "https://cdn.example.com/room_type/h1/old.jpg"}, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedHotel, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), header, gomock.Any()).
			Return("https://cdn.example.com/room_type/h1/new.jpg", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.example.com/room_type/h1/new.jpg", fields[model.FieldImage])
				assert.Equal(t, &rooms, fields[model.FieldTotalRooms])

				return nil
			})
		f.s3.EXPECT().GetObjectNameFromURL("daybooker", "https://cdn.example.com/room_type/h1/old.jpg").Return("room_type/h1/old.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "daybooker", "", "room_type/h1/old.jpg").Return(nil)

		err := f.svc.Update(partnerContext("p1"), dto.UpdateRoomTypeRequest{TotalRooms: &rooms, Image: header}, "rt1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(partnerContext("p1"), dto.UpdateRoomTypeRequest{}, "rt1")

		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestRoomTypeService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RoomType{}, nil)

	err := f.svc.Delete(partnerContext("p1"), "missing")

	assert.Equal(t, 404, failure.GetCode(err))
}
