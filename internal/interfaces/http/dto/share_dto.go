package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateShareRequest carries a share upsert payload
type CreateShareRequest struct {
	BillID     uuid.UUID       `json:"bill_id" binding:"required"`
	UserID     uuid.UUID       `json:"user_id" binding:"required"`
	AmountDue  decimal.Decimal `json:"amount_due"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Notes      string          `json:"notes"`
}

// UpdateShareRequest carries a share patch; absent fields are left alone
type UpdateShareRequest struct {
	AmountDue  *decimal.Decimal `json:"amount_due"`
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	Notes      *string          `json:"notes"`
}

// ListSharesRequest filters the share listing
type ListSharesRequest struct {
	ListRequest
	BillID string `form:"bill_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// ShareResponse is one resident's slice of a bill
type ShareResponse struct {
	ID          string            `json:"id"`
	BillID      string            `json:"bill_id"`
	UserID      string            `json:"user_id"`
	User        *UserResponse     `json:"user,omitempty"`
	Status      string            `json:"status"`
	AmountDue   decimal.Decimal   `json:"amount_due"`
	AmountPaid  decimal.Decimal   `json:"amount_paid"`
	Outstanding decimal.Decimal   `json:"outstanding"`
	LastPaidAt  *time.Time        `json:"last_paid_at,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Payments    []PaymentResponse `json:"payments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewShareResponse converts a share to its response form
func NewShareResponse(share *billing.BillShare) ShareResponse {
	resp := ShareResponse{
		ID:          share.ID.String(),
		BillID:      share.BillID.String(),
		UserID:      share.UserID.String(),
		Status:      share.Status.String(),
		AmountDue:   share.AmountDue,
		AmountPaid:  share.AmountPaid,
		Outstanding: share.Outstanding(),
		LastPaidAt:  share.LastPaidAt,
		Notes:       share.Notes,
		CreatedAt:   share.CreatedAt,
		UpdatedAt:   share.UpdatedAt,
	}
	if share.User != nil {
		user := NewUserResponse(share.User)
		resp.User = &user
	}
	for _, payment := range share.Payments {
		resp.Payments = append(resp.Payments, NewPaymentResponse(payment))
	}
	return resp
}

// NewShareResponseList converts a slice of shares
func NewShareResponseList(shares []*billing.BillShare) []ShareResponse {
	out := make([]ShareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, NewShareResponse(s))
	}
	return out
}
