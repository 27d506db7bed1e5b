package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/promotion/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/logger"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
)

var ErrPromotionExhausted = errors.New("promotion usage limit reached")

type Promotion interface {
	Insert(ctx context.Context, model model.Promotion) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promotion, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promotion, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IncrementUsageTx(ctx context.Context, sqltx *sqlx.Tx, id string) error
	ReleaseUsageTx(ctx context.Context, sqltx *sqlx.Tx, id string) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Promotion]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Promotion {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Promotion](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IncrementUsageTx consumes one use of the promotion or returns ErrPromotionExhausted.
func (r *repositoryImpl) IncrementUsageTx(ctx context.Context, sqltx *sqlx.Tx, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promotion.IncrementUsageTx")
	defer scope.End()

	query := `
		UPDATE promotions SET used_count = used_count + 1, modified_at = :now
		WHERE id = :id AND active AND (max_uses = 0 OR used_count < max_uses)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sqltx.NamedExecContext(ctx, query, map[string]any{"id": id, "now": timezone.Now()})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to consume promotion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrPromotionExhausted
	}

	return nil
}

// ReleaseUsageTx gives back one use of the promotion when its booking is cancelled.
func (r *repositoryImpl) ReleaseUsageTx(ctx context.Context, sqltx *sqlx.Tx, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promotion.ReleaseUsageTx")
	defer scope.End()

	query := `UPDATE promotions SET used_count = GREATEST(used_count - 1, 0), modified_at = :now WHERE id = :id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.NamedExecContext(ctx, query, map[string]any{"id": id, "now": timezone.Now()}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release promotion: %w", err)
	}

	return nil
}

func (r *repositoryImpl) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promotion.DeactivateExpired")
	defer scope.End()

	query := `UPDATE promotions SET active = false, modified_at = :now, modified_by = :user WHERE active AND ends_at < :now`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, map[string]any{"now": now, "user": constant.SystemUser})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to deactivate promotions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
