// internal/handlers/user/user_handler.go
package user

import (
	"net/http"
	"strconv"

	"rentorio-service/internal/domain/user"
	"rentorio-service/internal/pkg/response"
	service "rentorio-service/internal/service/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to list users")
		return
	}

	response.Success(c, http.StatusOK, "users retrieved successfully", users)
}

// GetUser returns a single user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	u, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "user not found")
		return
	}

	response.Success(c, http.StatusOK, "user retrieved successfully", u)
}

// UpdateUser applies a partial update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	u, err := h.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update user")
		return
	}

	response.Success(c, http.StatusOK, "user updated successfully", u)
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete user")
		return
	}

	response.Success(c, http.StatusOK, "user deleted successfully", nil)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
