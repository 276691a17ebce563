package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/infrastructure/config"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// DashboardHandler serves the aggregated landing-page payload
type DashboardHandler struct {
	BaseHandler
	dashboardService *appbilling.DashboardService
	currency         dto.CurrencyResponse
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(dashboardService *appbilling.DashboardService, currency config.CurrencyConfig, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		currency:         dto.CurrencyResponse{Code: currency.Code, Symbol: currency.Symbol},
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Load)
}

// Load builds the dashboard for the caller: household-wide numbers for
// admins, own-share numbers for residents
func (h *DashboardHandler) Load(c *gin.Context) {
	dashboard, err := h.dashboardService.Load(c.Request.Context(), currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewDashboardResponse(dashboard, h.currency))
}
