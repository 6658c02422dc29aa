package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paneerflow/internal/domain/auth"
	"paneerflow/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /api/login
//
// Rejected logins answer with a fixed 401 body rather than the shared error
// shape; clients branch on the success flag.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, dto.LoginFailureResponse{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	result, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.LoginFailureResponse{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	c.JSON(http.StatusOK, dto.FromLoginResult(result))
}
