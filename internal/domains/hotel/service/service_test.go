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
	activityMocks "daybooker/internal/domains/activitylog/service/mocks"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	"daybooker/internal/domains/hotel/model"
	"daybooker/internal/domains/hotel/model/dto"
	"daybooker/internal/domains/hotel/service"
	roomTypeMocks "daybooker/internal/domains/roomtype/mocks"
	roomTypeModel "daybooker/internal/domains/roomtype/model"
	timeSlotMocks "daybooker/internal/domains/timeslot/mocks"
	timeSlotModel "daybooker/internal/domains/timeslot/model"
	cacheMocks "daybooker/shared/cache/mocks"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo      *hotelMocks.MockHotel
	roomTypes *roomTypeMocks.MockRoomType
	timeSlots *timeSlotMocks.MockTimeSlot
	cache     *cacheMocks.MockRedisCache
	s3        *s3Mocks.MockS3
	svc       service.Hotel
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "daybooker"

	f := &fixture{
		repo:      hotelMocks.NewMockHotel(ctrl),
		roomTypes: roomTypeMocks.NewMockRoomType(ctrl),
		timeSlots: timeSlotMocks.NewMockTimeSlot(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
	}

	activity := activityMocks.NewMockActivityLog(ctrl)
	activity.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.roomTypes, f.timeSlots, activity, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func callerContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestSearchHotelRequest_ToFilter(t *testing.T) {
	req := dto.SearchHotelRequest{City: "Paris", MinStars: 4, Amenity: "Pool", Date: "2026-10-20", Guests: 2}

	filter := req.ToFilter()
	where, args := filter.GetWhereClause()

	assert.Len(t, filter.Filters, 5)
	assert.Contains(t, where, "hotels.status = :status")
	assert.Contains(t, where, ":search_amenity = ANY(hotels.amenities)")
	assert.Contains(t, where, "COALESCE(a.available_rooms, rt.total_rooms) > 0")
	assert.Equal(t, model.StatusApproved, args["status"])
	assert.Equal(t, "pool", args["search_amenity"])
	assert.Equal(t, "2026-10-20", args["search_date"])
	assert.Equal(t, 2, args["search_guests"])
}

func TestHotelService_Search(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Hotel{{ID: "h1", Name: "Seaside", Status: model.StatusApproved}}, nil)

	res, err := f.svc.Search(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.SearchHotelRequest{City: "Nice"})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "h1", res.Hotels[0].ID)
}

func TestHotelService_Get(t *testing.T) {
	pending := model.Hotel{ID: "h1", PartnerID: "p1", Status: model.StatusPending}
	approved := model.Hotel{ID: "h1", PartnerID: "p1", Status: model.StatusApproved}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "approved hotel is public",
			ctx:  context.Background(),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]roomTypeModel.RoomType{{ID: "rt1", HotelID: "h1"}}, nil)
				f.timeSlots.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]timeSlotModel.TimeSlot{{ID: "ts1", HotelID: "h1", StartTime: "09:00", EndTime: "17:00"}}, nil)
			},
		},
		{
			name: "pending hotel hidden from clients",
			ctx:  callerContext("c1", constant.RoleClient),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantCode: 404,
		},
		{
			name: "pending hotel visible to its partner",
			ctx:  callerContext("p1", constant.RolePartner),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.timeSlots.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "missing hotel",
			ctx:  context.Background(),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tt.ctx, "h1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "h1", res.ID)
		})
	}
}

func TestHotelService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := callerContext("p1", constant.RolePartner)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hotel model.Hotel) error {
			assert.Equal(t, "p1", hotel.PartnerID)
			assert.Equal(t, model.StatusPending, hotel.Status)
			assert.Equal(t, pq.StringArray{"wifi", "pool"}, hotel.Amenities)

			return nil
		})

	res, err := f.svc.Create(ctx, dto.CreateHotelRequest{
		Name:      "Seaside",
		Address:   "1 Beach Rd",
		City:      "Nice",
		Country:   "FR",
		Amenities: []string{"WiFi", " pool ", "wifi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestHotelService_Update(t *testing.T) {
	stars := 4

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateHotelRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "owner updates",
			ctx:  callerContext("p1", constant.RolePartner),
			req:  dto.UpdateHotelRequest{Stars: &stars},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h1", PartnerID: "p1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "admin updates any hotel",
			ctx:  callerContext("a1", constant.RoleAdmin),
			req:  dto.UpdateHotelRequest{Name: "Renamed"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h1", PartnerID: "p1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "other partner is forbidden",
			ctx:  callerContext("p2", constant.RolePartner),
			req:  dto.UpdateHotelRequest{Name: "Mine now"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h1", PartnerID: "p1"}, nil)
			},
			wantCode: 403,
		},
		{
			name: "empty update",
			ctx:  callerContext("p1", constant.RolePartner),
			req:  dto.UpdateHotelRequest{},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h1", PartnerID: "p1"}, nil)
			},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(tt.ctx, tt.req, "h1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHotelService_UploadPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := callerContext("p1", constant.RolePartner)

	header := &multipart.FileHeader{Filename: "lobby.JPG"}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h1", PartnerID: "p1"}, nil)
	f.s3.EXPECT().UploadFile(gomock.Any(), "daybooker", "hotel/h1", gomock.Any(), header, gomock.Any()).
		Return("https://cdn.example.com/hotel/h1/x.jpg", nil)
	f.repo.EXPECT().AppendImage(gomock.Any(), "h1", "https://cdn.example.com/hotel/h1/x.jpg", "p1").Return(nil)

	url, err := f.svc.UploadPhoto(ctx, dto.UploadPhotoRequest{Image: header}, "h1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/hotel/h1/x.jpg", url)
}

func TestHotelService_DeletePhoto(t *testing.T) {
	ctx := callerContext("p1", constant.RolePartner)
	hotel := model.Hotel{ID: "h1", PartnerID: "p1", Images: pq.StringArray{"https://cdn.example.com/hotel/h1/x.jpg"}}

	t.Run("removes known photo", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)
		f.repo.EXPECT().RemoveImage(gomock.Any(), "h1", hotel.Images[0], "p1").Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("daybooker", hotel.Images[0]).Return("hotel/h1/x.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "daybooker", "", "hotel/h1/x.jpg").Return(nil)

		err := f.svc.DeletePhoto(ctx, dto.DeletePhotoRequest{URL: hotel.Images[0]}, "h1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("unknown photo", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)

		err := f.svc.DeletePhoto(ctx, dto.DeletePhotoRequest{URL: "https://cdn.example.com/other.jpg"}, "h1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestHotelService_SetStatus(t *testing.T) {
	ctx := callerContext("a1", constant.RoleAdmin)

	t.Run("approves hotel", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])

				return nil
			})

		err := f.svc.SetStatus(ctx, dto.SetStatusRequest{Status: model.StatusApproved}, "h1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("missing hotel", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.SetStatus(ctx, dto.SetStatusRequest{Status: model.StatusApproved}, "h1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
