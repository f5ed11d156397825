package routes

import (
	"orrery/auth"
	"orrery/bookings"
	"orrery/hosting"
	"orrery/middleware"
	"orrery/ratelim"
	"orrery/settings"
	"orrery/users"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl, reg *ratelim.RateLimiter) {
	router.POST("/api/auth/register", reg.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(middleware.OptionalAuth(bookings.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(bookings.ListBookings))
	router.GET("/api/bookings/:id", middleware.Authenticate(bookings.GetBooking))
	router.PATCH("/api/bookings/:id/confirm", middleware.Authenticate(bookings.ConfirmBooking))
	router.PATCH("/api/bookings/:id/status", middleware.Authenticate(bookings.UpdateBookingStatus))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(bookings.DeleteBooking))
}

func AddAvailabilityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// eligible dates live here, not under /api/bookings, so the booking :id
	// wildcard stays unambiguous
	router.GET("/api/availability/dates", rl.Limit(bookings.GetAvailableDates))
	router.GET("/api/availability/open-nights", settings.GetOpenNights)
	router.PUT("/api/availability/open-nights", middleware.Authenticate(settings.ReplaceOpenNights))
	router.GET("/api/availability/settings", settings.GetBookingSettings)
	router.PUT("/api/availability/settings", middleware.Authenticate(settings.ReplaceBookingSettings))
}

func AddHostingRoutes(router *httprouter.Router) {
	router.GET("/api/hosting", middleware.Authenticate(hosting.GetAvailability))
	router.PUT("/api/hosting", middleware.Authenticate(hosting.PutAvailability))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users", middleware.Authenticate(users.ListUsers))
	router.GET("/api/users/:id", middleware.Authenticate(users.GetUser))
	router.PUT("/api/users/:id", middleware.Authenticate(users.UpdateUser))
	router.PUT("/api/users/:id/status", middleware.Authenticate(users.UpdateUserStatus))
	router.DELETE("/api/users/:id", middleware.Authenticate(users.DeleteUser))
}
