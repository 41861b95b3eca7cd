package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pasalhq/pasal-api/internal/application/service"
	"github.com/pasalhq/pasal-api/internal/presentation/http/dto/request"
	"github.com/pasalhq/pasal-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}

// Me returns the profile of the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.authService.Profile(GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}
