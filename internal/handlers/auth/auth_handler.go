// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"rentorio-service/internal/domain/user"
	"rentorio-service/internal/pkg/response"
	service "rentorio-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	u, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, "user registered successfully", u)
}

// Login authenticates an account and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), c.ClientIP(), &req)
	if err != nil {
		response.FromError(c, err, "login failed")
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}
