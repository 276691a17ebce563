package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BillHandler serves the bill lifecycle endpoints
type BillHandler struct {
	BaseHandler
	billService *appbilling.BillService
}

// NewBillHandler creates a bill handler
func NewBillHandler(billService *appbilling.BillService, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		BaseHandler: NewBaseHandler(logger),
		billService: billService,
	}
}

// RegisterRoutes registers bill routes
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.GET("", h.List)
		bills.POST("", h.Create)
		bills.GET("/month-year-options", h.MonthYearOptions)
		bills.GET("/:id", h.Get)
		bills.PUT("/:id", h.Update)
		bills.DELETE("/:id", h.Delete)
	}
}

// List returns bills scoped to the caller: admins see everything,
// residents only the bills they hold a share in
func (h *BillHandler) List(c *gin.Context) {
	var req dto.ListBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	query := appbilling.ListBillsQuery{
		ForMonth: req.ForMonth,
		Page:     req.Page,
		PageSize: req.PageSize,
		Sort:     req.Sort(),
	}
	if req.Status != "" {
		status := billing.BillStatus(req.Status)
		if !status.IsValid() {
			h.Error(c, dto.ErrCodeInvalidInput, "Unknown bill status")
			return
		}
		query.Status = &status
	}

	bills, total, err := h.billService.List(c.Request.Context(), currentUser(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewBillResponseList(bills), total, req.Page, req.PageSize)
}

// Create creates a bill with derived charges and resolved shares
func (h *BillHandler) Create(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), currentUser(c), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewBillResponse(bill))
}

// Get returns one bill; residents only reach bills they share in
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewBillResponse(bill))
}

// Update patches a bill; only the supplied fields change
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), currentUser(c), id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewBillResponse(bill))
}

// Delete removes a bill with its shares and payments
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.billService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MonthYearOptions returns the selectable months and years for bill forms
func (h *BillHandler) MonthYearOptions(c *gin.Context) {
	options, err := h.billService.MonthYearOptions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MonthYearOptionsResponse{
		Months: options.Months,
		Years:  options.Years,
	})
}
