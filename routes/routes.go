package routes

import (
	"github.com/gin-gonic/gin"

	"wanderstay/handlers"
	"wanderstay/middleware"
)

// RegisterRoutes registers all endpoints of the booking engine.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, paymentHandler *handlers.PaymentHandler) {
	r.GET("/api/health", handlers.Health)

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.List)
		bookings.GET("/:ref", bookingHandler.Get)
		bookings.PUT("/:ref/cancel", bookingHandler.Cancel)

		admin := bookings.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PATCH("/:ref", bookingHandler.Update)
			admin.POST("/:ref/complete", bookingHandler.Complete)
			admin.POST("/:ref/no-show", bookingHandler.NoShow)
		}
	}

	hotels := r.Group("/api/hotels")
	hotels.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		hotels.GET("/:id/bookings", bookingHandler.ListByHotel)
	}

	payments := r.Group("/api/payments")
	{
		// The gateway callback carries its own HMAC proof.
		payments.POST("/verify", paymentHandler.Verify)

		authed := payments.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/order", paymentHandler.CreateOrder)

			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/:id/refund", paymentHandler.Refund)
			}
		}
	}
}
