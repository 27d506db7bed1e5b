package router

import (
	"daybooker/internal/handlers/activitylog"
	"daybooker/internal/handlers/auth"
	"daybooker/internal/handlers/availability"
	"daybooker/internal/handlers/booking"
	"daybooker/internal/handlers/dashboard"
	"daybooker/internal/handlers/favorite"
	"daybooker/internal/handlers/hotel"
	"daybooker/internal/handlers/partner"
	"daybooker/internal/handlers/pricing"
	"daybooker/internal/handlers/promotion"
	"daybooker/internal/handlers/review"
	"daybooker/internal/handlers/roomtype"
	"daybooker/internal/handlers/timeslot"
	"daybooker/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Hotel        hotel.Handler
	RoomType     roomtype.Handler
	TimeSlot     timeslot.Handler
	Availability availability.Handler
	Pricing      pricing.Handler
	Booking      booking.Handler
	Review       review.Handler
	Partner      partner.Handler
	Favorite     favorite.Handler
	Promotion    promotion.Handler
	ActivityLog  activitylog.Handler
	Dashboard    dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Route("/hotels", func(hotelGroup chi.Router) {
			r.DomainHandlers.Hotel.Router(hotelGroup)

			hotelGroup.Route("/{hotelID}", func(hotelRouter chi.Router) {
				r.DomainHandlers.Hotel.HotelRouter(hotelRouter)
				r.DomainHandlers.RoomType.HotelRouter(hotelRouter)
				r.DomainHandlers.TimeSlot.HotelRouter(hotelRouter)
				r.DomainHandlers.Availability.HotelRouter(hotelRouter)
				r.DomainHandlers.Pricing.HotelRouter(hotelRouter)
				r.DomainHandlers.Review.HotelRouter(hotelRouter)
			})
		})

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Hotel.AdminRouter(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.TimeSlot.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Partner.Router(routerGroup)
		r.DomainHandlers.Favorite.Router(routerGroup)
		r.DomainHandlers.Promotion.Router(routerGroup)
		r.DomainHandlers.ActivityLog.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
