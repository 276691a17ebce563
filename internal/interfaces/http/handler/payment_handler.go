package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment ledger endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *appbilling.PaymentService
}

// NewPaymentHandler creates a payment handler
func NewPaymentHandler(paymentService *appbilling.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(logger),
		paymentService: paymentService,
	}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("", h.List)
		payments.POST("", h.Record)
		payments.DELETE("/:id", h.Delete)
	}
}

// List returns payments scoped to the caller: admins see everything,
// residents only payments against their own shares
func (h *PaymentHandler) List(c *gin.Context) {
	var req dto.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	filter := billing.PaymentFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.BillShareID != "" {
		shareID, err := uuid.Parse(req.BillShareID)
		if err != nil {
			h.Error(c, dto.ErrCodeInvalidInput, "Invalid share ID format")
			return
		}
		filter.BillShareID = &shareID
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			h.Error(c, dto.ErrCodeInvalidInput, "Invalid user ID format")
			return
		}
		filter.UserID = &userID
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewPaymentResponseList(payments), total, req.Page, req.PageSize)
}

// Record creates a payment against a share. Admins may pay any share,
// residents only their own. The paid-on date defaults to now.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	paidOn := time.Now()
	if req.PaidOn != nil {
		paidOn = *req.PaidOn
	}

	payment, err := h.paymentService.Record(c.Request.Context(), currentUser(c), appbilling.RecordPaymentInput{
		BillShareID: req.BillShareID,
		Amount:      req.Amount,
		PaidOn:      paidOn,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewPaymentResponse(payment))
}

// Delete reverses a payment out of the ledger, admin only
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
