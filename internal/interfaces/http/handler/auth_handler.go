package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/housebill/backend/internal/application/identity"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// AuthHandler serves login, token refresh and the current-user profile
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *appidentity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/me", h.Me)
	}
}

// Login authenticates by email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.LoginResponse{
		User:   dto.NewUserResponse(result.User),
		Tokens: dto.NewTokenResponse(result.Tokens),
	})
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.LoginResponse{
		User:   dto.NewUserResponse(result.User),
		Tokens: dto.NewTokenResponse(result.Tokens),
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	actor := currentUser(c)
	if actor == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.Me(c.Request.Context(), actor.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewUserResponse(user))
}
