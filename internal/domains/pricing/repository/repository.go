package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/pricing/model"
	gDto "daybooker/shared/dto"
	gRepo "daybooker/shared/repository"
)

type PricingRule interface {
	Insert(ctx context.Context, model model.PricingRule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PricingRule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PricingRule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PricingRule]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PricingRule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PricingRule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
