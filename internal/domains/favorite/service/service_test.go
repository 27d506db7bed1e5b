package service_test

import (
	"context"
	"errors"
	"testing"

	"daybooker/infras/otel/mocks"
	favoriteMocks "daybooker/internal/domains/favorite/mocks"
	"daybooker/internal/domains/favorite/model"
	"daybooker/internal/domains/favorite/service"
	hotelMocks "daybooker/internal/domains/hotel/mocks"
	hotelModel "daybooker/internal/domains/hotel/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo   *favoriteMocks.MockFavorite
	hotels *hotelMocks.MockHotel
	svc    service.Favorite
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:   favoriteMocks.NewMockFavorite(ctrl),
		hotels: hotelMocks.NewMockHotel(ctrl),
	}

	f.svc = service.New(f.repo, f.hotels, mocks.NewOtel())

	return f
}

func clientContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleClient)
}

func TestFavoriteService_Toggle(t *testing.T) {
	t.Run("adds", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1"}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, favorite model.Favorite) error {
			assert.Equal(t, "u1", favorite.UserID)
			assert.Equal(t, "h1", favorite.HotelID)

			return nil
		})

		res, err := f.svc.Toggle(clientContext("u1"), "h1")

		assert.NoError(t, err)
		assert.True(t, res.Added)
	})

	t.Run("removes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Toggle(clientContext("u1"), "h1")

		assert.NoError(t, err)
		assert.False(t, res.Added)
	})

	t.Run("hotel not listed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, nil)

		_, err := f.svc.Toggle(clientContext("u1"), "h1")

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("concurrent add", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "h1"}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		res, err := f.svc.Toggle(clientContext("u1"), "h1")

		assert.NoError(t, err)
		assert.True(t, res.Added)
	})

	t.Run("db error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("boom"))

		_, err := f.svc.Toggle(clientContext("u1"), "h1")

		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestFavoriteService_List(t *testing.T) {
	f := newFixture(t)
	cover := "https://cdn.example.com/h1.jpg"

	f.repo.EXPECT().CountHotels(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAllHotels(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.FavoriteHotel, error) {
		assert.Equal(t, "favorites.created_at", params.SortBy)

		return []model.FavoriteHotel{{HotelID: "h1", Name: "Sea View", Cover: &cover}, {HotelID: "h2", Name: "Old Town"}}, nil
	})

	res, err := f.svc.List(clientContext("u1"), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Favorites, 2)
	assert.Equal(t, cover, res.Favorites[0].Cover)
	assert.Empty(t, res.Favorites[1].Cover)
	assert.Equal(t, 1, res.TotalPage)
}
