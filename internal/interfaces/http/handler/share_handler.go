package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ShareHandler serves the bill share endpoints
type ShareHandler struct {
	BaseHandler
	shareService *appbilling.ShareService
}

// NewShareHandler creates a share handler
func NewShareHandler(shareService *appbilling.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		BaseHandler:  NewBaseHandler(logger),
		shareService: shareService,
	}
}

// RegisterRoutes registers share routes
func (h *ShareHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shares := rg.Group("/bill-shares")
	{
		shares.GET("", h.List)
		shares.POST("", h.Create)
		shares.GET("/:id", h.Get)
		shares.PUT("/:id", h.Update)
		shares.DELETE("/:id", h.Delete)
	}
}

// List returns shares scoped to the caller: admins see everything,
// residents only their own
func (h *ShareHandler) List(c *gin.Context) {
	var req dto.ListSharesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	filter := billing.ShareFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.BillID != "" {
		billID, err := uuid.Parse(req.BillID)
		if err != nil {
			h.Error(c, dto.ErrCodeInvalidInput, "Invalid bill ID format")
			return
		}
		filter.BillID = &billID
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			h.Error(c, dto.ErrCodeInvalidInput, "Invalid user ID format")
			return
		}
		filter.UserID = &userID
	}

	shares, total, err := h.shareService.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewShareResponseList(shares), total, req.Page, req.PageSize)
}

// Create upserts a share keyed on (bill, user), admin only
func (h *ShareHandler) Create(c *gin.Context) {
	var req dto.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	share, err := h.shareService.Create(c.Request.Context(), currentUser(c), appbilling.CreateShareInput{
		BillID:     req.BillID,
		UserID:     req.UserID,
		AmountDue:  req.AmountDue,
		AmountPaid: req.AmountPaid,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewShareResponse(share))
}

// Get returns one share; residents only reach their own
func (h *ShareHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	share, err := h.shareService.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShareResponse(share))
}

// Update patches a share and reconciles its bill, admin only
func (h *ShareHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	share, err := h.shareService.Update(c.Request.Context(), currentUser(c), id, appbilling.UpdateShareInput{
		AmountDue:  req.AmountDue,
		AmountPaid: req.AmountPaid,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShareResponse(share))
}

// Delete removes a share and reconciles its bill, admin only
func (h *ShareHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.shareService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
