package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/partner/model"
	gDto "daybooker/shared/dto"
	gRepo "daybooker/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Partner interface {
	Insert(ctx context.Context, model model.PartnerSettings) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.PartnerSettings) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PartnerSettings, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetAllPartners(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Partner, error)
	CountPartners(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.PartnerSettings]
	partners gRepo.Repository[model.Partner]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Partner {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PartnerSettings](model.EntityName, model.TableName, model.FieldID, db, otel),
		partners:   gRepo.NewRepository[model.Partner]("partner", model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetAllPartners(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Partner, error) {
	return r.partners.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountPartners(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.partners.Count(ctx, filter) //nolint:wrapcheck
}
