// internal/app/router.go
package app

import (
	"rentorio-service/internal/domain/user"
	authHandler "rentorio-service/internal/handlers/auth"
	bookingHandler "rentorio-service/internal/handlers/booking"
	userHandler "rentorio-service/internal/handlers/user"
	vehicleHandler "rentorio-service/internal/handlers/vehicle"
	"rentorio-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	UserHandler    *userHandler.UserHandler
	VehicleHandler *vehicleHandler.VehicleHandler
	BookingHandler *bookingHandler.BookingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Users (admin only) ====================
	users := api.Group("/users")
	users.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole(user.RoleAdmin))
	{
		users.GET("", h.UserHandler.ListUsers)
		users.GET("/:id", h.UserHandler.GetUser)
		users.PUT("/:id", h.UserHandler.UpdateUser)
		users.DELETE("/:id", h.UserHandler.DeleteUser)
	}

	// ==================== Vehicles ====================
	vehicles := api.Group("/vehicles")
	vehicles.Use(h.AuthMiddleware.Auth())
	{
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)

		admin := vehicles.Group("")
		admin.Use(h.AuthMiddleware.RequireRole(user.RoleAdmin))
		{
			admin.POST("", h.VehicleHandler.CreateVehicle)
			admin.PUT("/:id", h.VehicleHandler.UpdateVehicle)
			admin.DELETE("/:id", h.VehicleHandler.DeleteVehicle)
		}
	}

	// ==================== Bookings ====================
	bookings := api.Group("/bookings")
	bookings.Use(h.AuthMiddleware.Auth())
	{
		bookings.POST("", h.BookingHandler.CreateBooking)
		bookings.GET("", h.BookingHandler.ListBookings)
		bookings.PUT("/:id", h.BookingHandler.UpdateBooking)
	}
}
