//go:build wireinject
// +build wireinject

package di

import (
	"daybooker/config"
	"daybooker/infras/jwt"
	"daybooker/infras/kafka"
	"daybooker/infras/metrics"
	"daybooker/infras/otel"
	"daybooker/infras/postgres"
	"daybooker/infras/redis"
	"daybooker/infras/s3"
	"daybooker/infras/scheduler"
	"daybooker/internal/events"
	"daybooker/internal/jobs"
	"daybooker/permissions"
	"daybooker/shared/cache"
	gRepo "daybooker/shared/repository"
	"daybooker/transport/http"
	"daybooker/transport/http/middleware"
	"daybooker/transport/http/router"

	activityLogRepository "daybooker/internal/domains/activitylog/repository"
	activityLogService "daybooker/internal/domains/activitylog/service"
	authService "daybooker/internal/domains/auth/service"
	availabilityRepository "daybooker/internal/domains/availability/repository"
	availabilityService "daybooker/internal/domains/availability/service"
	bookingRepository "daybooker/internal/domains/booking/repository"
	bookingService "daybooker/internal/domains/booking/service"
	dashboardRepository "daybooker/internal/domains/dashboard/repository"
	dashboardService "daybooker/internal/domains/dashboard/service"
	favoriteRepository "daybooker/internal/domains/favorite/repository"
	favoriteService "daybooker/internal/domains/favorite/service"
	hotelRepository "daybooker/internal/domains/hotel/repository"
	hotelService "daybooker/internal/domains/hotel/service"
	partnerRepository "daybooker/internal/domains/partner/repository"
	partnerService "daybooker/internal/domains/partner/service"
	pricingRepository "daybooker/internal/domains/pricing/repository"
	pricingService "daybooker/internal/domains/pricing/service"
	promotionRepository "daybooker/internal/domains/promotion/repository"
	promotionService "daybooker/internal/domains/promotion/service"
	reviewRepository "daybooker/internal/domains/review/repository"
	reviewService "daybooker/internal/domains/review/service"
	roomTypeRepository "daybooker/internal/domains/roomtype/repository"
	roomTypeService "daybooker/internal/domains/roomtype/service"
	timeSlotRepository "daybooker/internal/domains/timeslot/repository"
	timeSlotService "daybooker/internal/domains/timeslot/service"
	userRepository "daybooker/internal/domains/user/repository"
	userService "daybooker/internal/domains/user/service"

	activityLogHandler "daybooker/internal/handlers/activitylog"
	authHandler "daybooker/internal/handlers/auth"
	availabilityHandler "daybooker/internal/handlers/availability"
	bookingHandler "daybooker/internal/handlers/booking"
	dashboardHandler "daybooker/internal/handlers/dashboard"
	favoriteHandler "daybooker/internal/handlers/favorite"
	hotelHandler "daybooker/internal/handlers/hotel"
	partnerHandler "daybooker/internal/handlers/partner"
	pricingHandler "daybooker/internal/handlers/pricing"
	promotionHandler "daybooker/internal/handlers/promotion"
	reviewHandler "daybooker/internal/handlers/review"
	roomTypeHandler "daybooker/internal/handlers/roomtype"
	timeSlotHandler "daybooker/internal/handlers/timeslot"
	userHandler "daybooker/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var repositories = wire.NewSet(
	userRepository.New,
	partnerRepository.New,
	hotelRepository.New,
	roomTypeRepository.New,
	timeSlotRepository.New,
	availabilityRepository.New,
	pricingRepository.New,
	bookingRepository.New,
	reviewRepository.New,
	favoriteRepository.New,
	promotionRepository.New,
	activityLogRepository.New,
	dashboardRepository.New,
)

var services = wire.NewSet(
	activityLogService.New,
	authService.New,
	userService.New,
	partnerService.New,
	hotelService.New,
	roomTypeService.New,
	timeSlotService.New,
	promotionService.New,
	pricingService.New,
	availabilityService.New,
	wire.Struct(new(bookingService.Dependencies), "*"),
	bookingService.New,
	reviewService.New,
	favoriteService.New,
	dashboardService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	roomTypeHandler.New,
	timeSlotHandler.New,
	availabilityHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	partnerHandler.New,
	favoriteHandler.New,
	promotionHandler.New,
	activityLogHandler.New,
	dashboardHandler.New,
	router.New,
)

var background = wire.NewSet(
	scheduler.New,
	jobs.New,
	events.NewActivityConsumer,
	wire.Struct(new(Worker), "*"),
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		services,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		metrics.New,
		sharedHelpers,
		hotelRepository.New,
		partnerRepository.New,
		roomTypeRepository.New,
		timeSlotRepository.New,
		availabilityRepository.New,
		pricingRepository.New,
		bookingRepository.New,
		promotionRepository.New,
		activityLogRepository.New,
		activityLogService.New,
		promotionService.New,
		pricingService.New,
		wire.Struct(new(bookingService.Dependencies), "*"),
		bookingService.New,
		background,
	)

	return &Worker{}
}
