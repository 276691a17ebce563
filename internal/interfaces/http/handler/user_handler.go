package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/housebill/backend/internal/application/identity"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// UserHandler serves household member management and the caller's
// Telegram chat link
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(userService *appidentity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/residents", h.Residents)
		users.GET("/my-chat-id", h.MyChatID)
		users.PUT("/my-chat-id", h.LinkChatID)
		users.DELETE("/my-chat-id", h.UnlinkChatID)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// List returns household members, admin only
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	filter := identity.UserFilter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
		Sort:     req.Sort(),
	}
	if req.Role != "" {
		role := identity.Role(req.Role)
		filter.Role = &role
	}

	users, total, err := h.userService.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewUserResponseList(users), total, req.Page, req.PageSize)
}

// Residents returns every resident, for share assignment forms
func (h *UserHandler) Residents(c *gin.Context) {
	residents, err := h.userService.Residents(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewUserResponseList(residents))
}

// Create adds a household member, super admin only
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), currentUser(c), appidentity.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewUserResponse(user))
}

// Get returns one member; non-admins only see themselves
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewUserResponse(user))
}

// Update patches a member, super admin only
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := appidentity.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.Update(c.Request.Context(), currentUser(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewUserResponse(user))
}

// Delete removes a member, super admin only
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MyChatID returns the caller's Telegram link state
func (h *UserHandler) MyChatID(c *gin.Context) {
	actor := currentUser(c)
	if actor == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	h.Success(c, dto.TelegramChatResponse{
		ChatID:      actor.TelegramChatID,
		HasTelegram: actor.TelegramChatID != "",
	})
}

// LinkChatID links a Telegram chat to the caller's account
func (h *UserHandler) LinkChatID(c *gin.Context) {
	var req dto.TelegramChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.LinkTelegramChat(c.Request.Context(), currentUser(c), req.ChatID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.TelegramChatResponse{
		ChatID:      user.TelegramChatID,
		HasTelegram: user.TelegramChatID != "",
	})
}

// UnlinkChatID removes the caller's Telegram chat link
func (h *UserHandler) UnlinkChatID(c *gin.Context) {
	user, err := h.userService.UnlinkTelegramChat(c.Request.Context(), currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.TelegramChatResponse{
		ChatID:      user.TelegramChatID,
		HasTelegram: user.TelegramChatID != "",
	})
}
