package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/internal/domains/dashboard/model"
	"daybooker/shared/constant"
	gDto "daybooker/shared/dto"
	"daybooker/shared/logger"
)

// revenueStatuses are the booking statuses that count toward revenue.
const revenueStatuses = "'confirmed', 'completed', 'no_show'"

type Dashboard interface {
	BookingsByStatus(ctx context.Context, filter gDto.FilterGroup) ([]model.GroupCount, error)
	Revenue(ctx context.Context, filter gDto.FilterGroup) (model.Revenue, error)
	AverageRating(ctx context.Context, filter gDto.FilterGroup) (float64, error)
	CountBookings(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UsersByRole(ctx context.Context) ([]model.GroupCount, error)
	HotelsByStatus(ctx context.Context) ([]model.GroupCount, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Dashboard {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) BookingsByStatus(ctx context.Context, filter gDto.FilterGroup) ([]model.GroupCount, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT bookings.status AS key, COUNT(1) AS count FROM bookings JOIN hotels ON hotels.id = bookings.hotel_id %s GROUP BY bookings.status`, where)

	var res []model.GroupCount

	err := r.selectRows(ctx, "BookingsByStatus", query, args, &res)

	return res, err
}

func (r *repositoryImpl) Revenue(ctx context.Context, filter gDto.FilterGroup) (model.Revenue, error) {
	where, args := buildWhere(filter)
	if where == "" {
		where = "WHERE"
	} else {
		where += " AND"
	}

	query := fmt.Sprintf(`
		SELECT COUNT(1) AS bookings,
			COALESCE(SUM(bookings.total_price), 0) AS gross,
			COALESCE(SUM(bookings.commission_amount), 0) AS commission,
			COALESCE(SUM(bookings.partner_payout), 0) AS payout
		FROM bookings JOIN hotels ON hotels.id = bookings.hotel_id
		%s bookings.status IN (%s)`, where, revenueStatuses)

	var res model.Revenue

	err := r.getRow(ctx, "Revenue", query, args, &res)

	return res, err
}

func (r *repositoryImpl) AverageRating(ctx context.Context, filter gDto.FilterGroup) (float64, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COALESCE(ROUND(AVG(reviews.rating)::numeric, 2), 0) FROM reviews JOIN hotels ON hotels.id = reviews.hotel_id %s`, where)

	var res float64

	err := r.getRow(ctx, "AverageRating", query, args, &res)

	return res, err
}

func (r *repositoryImpl) CountBookings(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(1) FROM bookings JOIN hotels ON hotels.id = bookings.hotel_id %s`, where)

	var res int

	err := r.getRow(ctx, "CountBookings", query, args, &res)

	return res, err
}

func (r *repositoryImpl) UsersByRole(ctx context.Context) ([]model.GroupCount, error) {
	var res []model.GroupCount

	err := r.selectRows(ctx, "UsersByRole", `SELECT role AS key, COUNT(1) AS count FROM users GROUP BY role`, map[string]any{}, &res)

	return res, err
}

func (r *repositoryImpl) HotelsByStatus(ctx context.Context) ([]model.GroupCount, error) {
	var res []model.GroupCount

	err := r.selectRows(ctx, "HotelsByStatus", `SELECT status AS key, COUNT(1) AS count FROM hotels GROUP BY status`, map[string]any{}, &res)

	return res, err
}

func (r *repositoryImpl) selectRows(ctx context.Context, name, query string, args map[string]any, dest any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dashboard."+name)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (dashboard.%s): %w", name, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query (dashboard.%s): %w", name, err)
	}

	return nil
}

func (r *repositoryImpl) getRow(ctx context.Context, name, query string, args map[string]any, dest any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dashboard."+name)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (dashboard.%s): %w", name, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query (dashboard.%s): %w", name, err)
	}

	return nil
}

func buildWhere(filter gDto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", args
	}

	return "WHERE " + where, args
}
