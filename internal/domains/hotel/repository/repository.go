package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/hotel/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/logger"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	AppendImage(ctx context.Context, id, url, user string) error
	RemoveImage(ctx context.Context, id, url, user string) error
	RefreshRating(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) AppendImage(ctx context.Context, id, url, user string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.AppendImage")
	defer scope.End()

	query := `UPDATE hotels SET images = array_append(images, :url), modified_at = :now, modified_by = :user WHERE id = :id`

	return r.exec(ctx, query, map[string]any{"id": id, "url": url, "user": user, "now": timezone.Now()})
}

func (r *repositoryImpl) RemoveImage(ctx context.Context, id, url, user string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.RemoveImage")
	defer scope.End()

	query := `UPDATE hotels SET images = array_remove(images, :url), modified_at = :now, modified_by = :user WHERE id = :id`

	return r.exec(ctx, query, map[string]any{"id": id, "url": url, "user": user, "now": timezone.Now()})
}

// RefreshRating recomputes the rating aggregate from visible reviews.
func (r *repositoryImpl) RefreshRating(ctx context.Context, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.RefreshRating")
	defer scope.End()

	query := `
		UPDATE hotels SET
			rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE hotel_id = :id AND visible), 0),
			review_count = (SELECT COUNT(1) FROM reviews WHERE hotel_id = :id AND visible)
		WHERE id = :id`

	return r.exec(ctx, query, map[string]any{"id": id})
}

func (r *repositoryImpl) exec(ctx context.Context, query string, args map[string]any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.exec")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}
