package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is used when the caller does not specify one
const DefaultPaymentMethod = "cash"

// Payment is an immutable ledger entry against one bill share.
// Corrections are made by deleting and re-recording, never by editing.
type Payment struct {
	shared.BaseEntity
	BillShareID uuid.UUID
	RecordedBy  *uuid.UUID
	Amount      decimal.Decimal
	PaidOn      time.Time
	Method      string
	Reference   string
	Notes       string
}

// NewPayment creates a payment ledger entry
func NewPayment(billShareID uuid.UUID, recordedBy *uuid.UUID, amount decimal.Decimal, paidOn time.Time) (*Payment, error) {
	if billShareID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHARE_ID", "Bill share ID cannot be empty")
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be greater than zero")
	}
	if paidOn.IsZero() {
		return nil, shared.NewDomainError("INVALID_PAID_ON", "Payment date is required")
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		BillShareID: billShareID,
		RecordedBy:  recordedBy,
		Amount:      amount,
		PaidOn:      paidOn,
		Method:      DefaultPaymentMethod,
	}, nil
}

// SetMethod sets the payment method, defaulting empty input to cash
func (p *Payment) SetMethod(method string) {
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultPaymentMethod
	}
	p.Method = method
}

// SetReference sets an external reference such as a transaction ID
func (p *Payment) SetReference(reference string) error {
	if len(reference) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot exceed 100 characters")
	}
	p.Reference = strings.TrimSpace(reference)
	return nil
}

// SetNotes sets free-form notes
func (p *Payment) SetNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	p.Notes = notes
	return nil
}
