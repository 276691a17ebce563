package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"github.com/housebill/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// SettingHandler serves the default charge template endpoints
type SettingHandler struct {
	BaseHandler
	settingService *appbilling.SettingService
}

// NewSettingHandler creates a setting handler
func NewSettingHandler(settingService *appbilling.SettingService, logger *zap.Logger) *SettingHandler {
	return &SettingHandler{
		BaseHandler:    NewBaseHandler(logger),
		settingService: settingService,
	}
}

// RegisterRoutes registers setting routes
func (h *SettingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/billing-settings")
	{
		settings.GET("", h.List)
		settings.PUT("", middleware.RequireRole(identity.RoleSuperAdmin), h.BulkUpsert)
	}
}

// List returns every setting; any authenticated user may read them
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewSettingResponseList(settings))
}

// BulkUpsert applies the full settings payload atomically, super admin only
func (h *SettingHandler) BulkUpsert(c *gin.Context) {
	var req dto.BulkUpsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	inputs := make([]appbilling.SettingInput, 0, len(req.Settings))
	for _, payload := range req.Settings {
		inputs = append(inputs, appbilling.SettingInput{
			Key:      payload.Key,
			Amount:   payload.Amount,
			Metadata: billing.SettingMetadata(payload.Metadata),
		})
	}

	settings, err := h.settingService.BulkUpsert(c.Request.Context(), currentUser(c), inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewSettingResponseList(settings))
}
