package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/availability/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/logger"
	gRepo "daybooker/shared/repository"
	"daybooker/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	upsertChunkSize = 500
)

var ErrNoAvailability = errors.New("no availability")

// UpsertFields selects which columns an upsert overwrites on existing rows.
type UpsertFields struct {
	AvailableRooms bool
	PriceOverride  bool
	IsClosed       bool
}

func (f UpsertFields) assignments() []string {
	assignments := []string{"modified_at = EXCLUDED.modified_at", "modified_by = EXCLUDED.modified_by"}

	if f.AvailableRooms {
		assignments = append(assignments, "available_rooms = EXCLUDED.available_rooms")
	}

	if f.PriceOverride {
		assignments = append(assignments, "price_override = EXCLUDED.price_override")
	}

	if f.IsClosed {
		assignments = append(assignments, "is_closed = EXCLUDED.is_closed")
	}

	return assignments
}

type Availability interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Availability, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Availability, error)
	UpsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Availability, fields UpsertFields) (int64, error)
	ReserveTx(ctx context.Context, sqltx *sqlx.Tx, slot model.Slot, quantity, defaultRooms int, user string) (model.Availability, error)
	ReleaseTx(ctx context.Context, sqltx *sqlx.Tx, slot model.Slot, quantity int, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Availability]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Availability](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) UpsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Availability, fields UpsertFields) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.UpsertBulkTx")
	defer scope.End()

	if len(models) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (room_type_id, time_slot_id, date) DO UPDATE SET %s",
		model.TableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(fields.assignments(), ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var affected int64

	for start := 0; start < len(models); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(models))

		result, err := sqltx.NamedExecContext(ctx, query, models[start:end])
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return affected, fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return affected, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
		}

		affected += rows
	}

	return affected, nil
}

// ReserveTx takes quantity rooms from the slot. A missing row is created with
// defaultRooms first. It returns ErrNoAvailability when the slot is closed or short.
func (r *repositoryImpl) ReserveTx(ctx context.Context, sqltx *sqlx.Tx, slot model.Slot, quantity, defaultRooms int, user string) (res model.Availability, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ReserveTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	args := map[string]any{
		"id":              uuid.NewString(),
		"room_type_id":    slot.RoomTypeID,
		"time_slot_id":    slot.TimeSlotID,
		"date":            slot.Date,
		"available_rooms": defaultRooms,
		"quantity":        quantity,
		"now":             now,
		"user":            user,
	}

	insertQuery := `
		INSERT INTO availabilities (id, room_type_id, time_slot_id, date, available_rooms, is_closed, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :room_type_id, :time_slot_id, :date, :available_rooms, false, :now, :now, :user, :user)
		ON CONFLICT (room_type_id, time_slot_id, date) DO NOTHING`

	if _, err = sqltx.NamedExecContext(ctx, insertQuery, args); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to seed inventory (%s): %w", model.EntityName, err)
	}

	reserveQuery := `
		UPDATE availabilities SET available_rooms = available_rooms - :quantity, modified_at = :now, modified_by = :user
		WHERE room_type_id = :room_type_id AND time_slot_id = :time_slot_id AND date = :date
			AND is_closed = false AND available_rooms >= :quantity
		RETURNING id, room_type_id, time_slot_id, date, available_rooms, price_override, is_closed, created_at, modified_at, created_by, modified_by`
	scope.SetAttribute(constant.OtelQueryAttributeKey, reserveQuery)

	prepare, err := sqltx.PrepareNamedContext(ctx, reserveQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &res, args)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ErrNoAvailability
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to reserve inventory (%s): %w", model.EntityName, err)
	}

	return res, nil
}

// ReleaseTx gives quantity rooms back, never above the room type's total.
func (r *repositoryImpl) ReleaseTx(ctx context.Context, sqltx *sqlx.Tx, slot model.Slot, quantity int, user string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ReleaseTx")
	defer scope.End()

	query := `
		UPDATE availabilities SET
			available_rooms = LEAST(available_rooms + :quantity, (SELECT total_rooms FROM room_types WHERE room_types.id = availabilities.room_type_id)),
			modified_at = :now, modified_by = :user
		WHERE room_type_id = :room_type_id AND time_slot_id = :time_slot_id AND date = :date`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"room_type_id": slot.RoomTypeID,
		"time_slot_id": slot.TimeSlotID,
		"date":         slot.Date,
		"quantity":     quantity,
		"now":          timezone.Now(),
		"user":         user,
	}

	if _, err := sqltx.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release inventory (%s): %w", model.EntityName, err)
	}

	return nil
}
