package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillShare is one resident's allocation within a bill
type BillShare struct {
	shared.BaseAggregateRoot
	BillID     uuid.UUID
	UserID     uuid.UUID
	Status     ShareStatus
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
	LastPaidAt *time.Time
	Notes      string

	// User and Payments are loaded by the repository
	User     *identity.User
	Payments []*Payment
}

// NewBillShare creates a share for a resident against a bill
func NewBillShare(billID, userID uuid.UUID, amountDue decimal.Decimal) (*BillShare, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL_ID", "Bill ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if amountDue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Share amount due cannot be negative")
	}

	return &BillShare{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillID:            billID,
		UserID:            userID,
		Status:            ShareStatusPending,
		AmountDue:         amountDue.Round(2),
		AmountPaid:        decimal.Zero,
	}, nil
}

// ValidateShareholder rejects share assignment to non-resident users
func ValidateShareholder(user *identity.User) error {
	if user == nil {
		return shared.ErrNotFound
	}
	if !user.IsResident() {
		return shared.NewDomainError("INVALID_SHAREHOLDER",
			"Bill shares can only be assigned to residents. Admin and super_admin users cannot be assigned to bills.")
	}
	return nil
}

// Outstanding is the remaining balance, floored at zero. Derived, never stored.
func (s *BillShare) Outstanding() decimal.Decimal {
	outstanding := s.AmountDue.Sub(s.AmountPaid)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// SetAmounts overwrites the due and paid amounts
func (s *BillShare) SetAmounts(amountDue, amountPaid decimal.Decimal) error {
	if amountDue.IsNegative() || amountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Share amounts cannot be negative")
	}
	s.AmountDue = amountDue.Round(2)
	s.AmountPaid = amountPaid.Round(2)
	s.touch()
	return nil
}

// SetNotes sets free-form notes
func (s *BillShare) SetNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	s.Notes = notes
	s.touch()
	return nil
}

// ApplyPayment adds a payment amount and records its date
func (s *BillShare) ApplyPayment(amount decimal.Decimal, paidOn time.Time) {
	s.AmountPaid = s.AmountPaid.Add(amount).Round(2)
	s.LastPaidAt = &paidOn
	s.touch()
}

// ReversePayment subtracts a deleted payment's amount, floored at zero,
// and resets last_paid_at to the most recent remaining payment's date
func (s *BillShare) ReversePayment(amount decimal.Decimal, lastRemaining *time.Time) {
	paid := s.AmountPaid.Sub(amount)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	s.AmountPaid = paid.Round(2)
	s.LastPaidAt = lastRemaining
	s.touch()
}

// RefreshStatus re-derives the status from the current amounts
func (s *BillShare) RefreshStatus() {
	s.Status = DeriveShareStatus(s.AmountDue, s.AmountPaid)
}

func (s *BillShare) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
