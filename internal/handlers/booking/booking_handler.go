// internal/handlers/booking/booking_handler.go
package booking

import (
	"net/http"
	"strconv"
	"time"

	"rentorio-service/internal/domain/booking"
	"rentorio-service/internal/domain/user"
	"rentorio-service/internal/middleware"
	"rentorio-service/internal/pkg/response"
	service "rentorio-service/internal/service/booking"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	bookingService *service.Service
}

func NewBookingHandler(bookingService *service.Service) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking reserves a vehicle. Customers may only book for their own
// account; admins may book on behalf of any customer.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	callerID := middleware.MustGetUserID(c)

	customerID := req.CustomerID
	if customerID == 0 {
		customerID = callerID
	}
	if !middleware.IsAdmin(c) && customerID != callerID {
		response.Error(c, http.StatusForbidden, "you can only create bookings for your own account", nil)
		return
	}

	start, err := time.Parse(dateLayout, req.RentStartDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "rent_start_date must be a valid date (YYYY-MM-DD)", err)
		return
	}
	end, err := time.Parse(dateLayout, req.RentEndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "rent_end_date must be a valid date (YYYY-MM-DD)", err)
		return
	}

	result, err := h.bookingService.Create(c.Request.Context(), customerID, req.VehicleID, start, end)
	if err != nil {
		response.FromError(c, err, "failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, "booking created successfully", result)
}

// ListBookings returns all bookings for admins and the caller's own
// bookings for customers.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if middleware.IsAdmin(c) {
		rows, err := h.bookingService.ListForAdmin(c.Request.Context())
		if err != nil {
			response.FromError(c, err, "failed to list bookings")
			return
		}
		response.Success(c, http.StatusOK, "bookings retrieved successfully", rows)
		return
	}

	rows, err := h.bookingService.ListForCustomer(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, "your bookings retrieved successfully", rows)
}

// UpdateBooking drives a status transition: customers cancel their own
// bookings, admins record returns.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	var req booking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	role, _ := middleware.GetRole(c)

	switch {
	case role == user.RoleCustomer && req.Status == booking.StatusCancelled:
		result, err := h.bookingService.Cancel(c.Request.Context(), bookingID, middleware.MustGetUserID(c))
		if err != nil {
			response.FromError(c, err, "failed to cancel booking")
			return
		}
		response.Success(c, http.StatusOK, "booking cancelled successfully", result)

	case role == user.RoleAdmin && req.Status == booking.StatusReturned:
		result, err := h.bookingService.MarkReturned(c.Request.Context(), bookingID)
		if err != nil {
			response.FromError(c, err, "failed to mark booking as returned")
			return
		}
		response.Success(c, http.StatusOK, "booking marked as returned, vehicle is now available", result)

	case role == user.RoleCustomer:
		response.Error(c, http.StatusForbidden, "customers can only cancel their bookings", nil)

	default:
		response.Error(c, http.StatusForbidden, "admins can only mark bookings as returned", nil)
	}
}
