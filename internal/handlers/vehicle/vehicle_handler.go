// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"net/http"
	"strconv"

	"rentorio-service/internal/domain/vehicle"
	"rentorio-service/internal/pkg/response"
	service "rentorio-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// CreateVehicle registers a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, err := h.vehicleService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create vehicle")
		return
	}

	response.Success(c, http.StatusCreated, "vehicle created successfully", v)
}

// ListVehicles returns all vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to list vehicles")
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved successfully", vehicles)
}

// GetVehicle returns a single vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	v, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "vehicle not found")
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved successfully", v)
}

// UpdateVehicle applies a partial update
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update vehicle")
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated successfully", v)
}

// DeleteVehicle removes a vehicle unless it has an active booking
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete vehicle")
		return
	}

	response.Success(c, http.StatusOK, "vehicle deleted successfully", nil)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
