package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/favorite/model"
	gDto "daybooker/shared/dto"
	gRepo "daybooker/shared/repository"
)

type Favorite interface {
	Insert(ctx context.Context, model model.Favorite) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetAllHotels(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.FavoriteHotel, error)
	CountHotels(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Favorite]
	hotels gRepo.Repository[model.FavoriteHotel]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Favorite {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Favorite](model.EntityName, model.TableName, model.FieldID, db, otel),
		hotels:     gRepo.NewRepository[model.FavoriteHotel]("favorite_hotel", model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetAllHotels(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.FavoriteHotel, error) {
	return r.hotels.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountHotels(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.hotels.Count(ctx, filter) //nolint:wrapcheck
}
