package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"daybooker/infras/otel"
	"daybooker/internal/domains/dashboard/model/dto"
	"daybooker/internal/domains/dashboard/repository"
	hotelRepo "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	"daybooker/shared"
	"daybooker/shared/constant"
	"daybooker/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Partner(ctx context.Context, req dto.StatsRequest) (dto.PartnerStatsResponse, error)
	Admin(ctx context.Context, req dto.StatsRequest) (dto.AdminStatsResponse, error)
}

type serviceImpl struct {
	repo      repository.Dashboard
	hotelRepo hotelRepo.Hotel
	otel      otel.Otel
}

func New(repo repository.Dashboard, hotelRepo hotelRepo.Hotel, otel otel.Otel) Dashboard {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		otel:      otel,
	}
}

func (s *serviceImpl) Partner(ctx context.Context, req dto.StatsRequest) (res dto.PartnerStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Partner")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.Validate(); err != nil {
		return res, err
	}

	if req.HotelID != constant.Empty {
		if _, err = hotelService.AuthorizeHotel(ctx, s.hotelRepo, req.HotelID); err != nil {
			return res, err
		}
	}

	partnerID, role := shared.UserFromContext(ctx)
	if role == constant.RoleAdmin {
		partnerID = constant.Empty
	}

	byStatus, err := s.repo.BookingsByStatus(ctx, req.BookingFilter(partnerID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by status")

		return res, fmt.Errorf("failed to get bookings by status: %w", err)
	}

	res.BookingsByStatus, res.TotalBookings = dto.ToMap(byStatus)

	revenue, err := s.repo.Revenue(ctx, req.BookingFilter(partnerID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue")

		return res, fmt.Errorf("failed to get revenue: %w", err)
	}

	res.GrossRevenue = revenue.Gross
	res.Commission = revenue.Commission
	res.Payout = revenue.Payout

	res.AverageRating, err = s.repo.AverageRating(ctx, req.ReviewFilter(partnerID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get average rating")

		return res, fmt.Errorf("failed to get average rating: %w", err)
	}

	today := timezone.Format(timezone.Now(), constant.DayFormat)

	res.UpcomingBookings, err = s.repo.CountBookings(ctx, req.UpcomingFilter(partnerID, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count upcoming bookings")

		return res, fmt.Errorf("failed to count upcoming bookings: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Admin(ctx context.Context, req dto.StatsRequest) (res dto.AdminStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admin")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.Validate(); err != nil {
		return res, err
	}

	users, err := s.repo.UsersByRole(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users by role")

		return res, fmt.Errorf("failed to get users by role: %w", err)
	}

	res.UsersByRole, _ = dto.ToMap(users)

	hotels, err := s.repo.HotelsByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels by status")

		return res, fmt.Errorf("failed to get hotels by status: %w", err)
	}

	res.HotelsByStatus, _ = dto.ToMap(hotels)

	byStatus, err := s.repo.BookingsByStatus(ctx, req.BookingFilter(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by status")

		return res, fmt.Errorf("failed to get bookings by status: %w", err)
	}

	res.BookingsByStatus, res.TotalBookings = dto.ToMap(byStatus)

	revenue, err := s.repo.Revenue(ctx, req.BookingFilter(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue")

		return res, fmt.Errorf("failed to get revenue: %w", err)
	}

	res.GrossRevenue = revenue.Gross
	res.CommissionRevenue = revenue.Commission

	return res, nil
}
