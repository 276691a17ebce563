package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest carries a payment recording payload
type RecordPaymentRequest struct {
	BillShareID uuid.UUID       `json:"bill_share_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaidOn      *time.Time      `json:"paid_on"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
}

// ListPaymentsRequest filters the payment listing
type ListPaymentsRequest struct {
	ListRequest
	BillShareID string `form:"bill_share_id" binding:"omitempty,uuid"`
	UserID      string `form:"user_id" binding:"omitempty,uuid"`
}

// PaymentResponse is one ledger entry against a share
type PaymentResponse struct {
	ID          string          `json:"id"`
	BillShareID string          `json:"bill_share_id"`
	RecordedBy  *string         `json:"recorded_by,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaidOn      time.Time       `json:"paid_on"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewPaymentResponse converts a payment to its response form
func NewPaymentResponse(payment *billing.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:          payment.ID.String(),
		BillShareID: payment.BillShareID.String(),
		Amount:      payment.Amount,
		PaidOn:      payment.PaidOn,
		Method:      payment.Method,
		Reference:   payment.Reference,
		Notes:       payment.Notes,
		CreatedAt:   payment.CreatedAt,
	}
	if payment.RecordedBy != nil {
		id := payment.RecordedBy.String()
		resp.RecordedBy = &id
	}
	return resp
}

// NewPaymentResponseList converts a slice of payments
func NewPaymentResponseList(payments []*billing.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}
