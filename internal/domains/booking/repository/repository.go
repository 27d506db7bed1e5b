package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/booking/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/logger"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	CompletePast(ctx context.Context, today, clock string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CompletePast marks confirmed bookings whose slot has ended as completed.
// today is a calendar day so the DATE comparison never depends on the session zone.
func (r *repositoryImpl) CompletePast(ctx context.Context, today, clock string) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CompletePast")
	defer scope.End()

	query := `
		UPDATE bookings SET status = :completed, modified_at = :now, modified_by = :user
		FROM time_slots
		WHERE time_slots.id = bookings.time_slot_id
			AND bookings.status = :confirmed
			AND (bookings.date < :today OR (bookings.date = :today AND time_slots.end_time <= :clock))`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, map[string]any{
		"completed": model.StatusCompleted,
		"confirmed": model.StatusConfirmed,
		"today":     today,
		"clock":     clock,
		"now":       timezone.Now(),
		"user":      constant.SystemUser,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to complete past bookings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
