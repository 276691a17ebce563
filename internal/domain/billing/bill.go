package billing

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	billReferencePrefix = "BILL-"
	billReferenceLength = 8
	maxForMonthLength   = 100
	maxNotesLength      = 500
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Bill is the aggregate billing-period record for the household.
// It owns the resident shares allocated against its final total.
type Bill struct {
	shared.BaseAggregateRoot
	Reference            string
	ForMonth             string
	DueDate              *time.Time
	PeriodStart          *time.Time
	PeriodEnd            *time.Time
	Status               BillStatus
	ElectricityUnits     decimal.Decimal
	ElectricityStartUnit *decimal.Decimal
	ElectricityEndUnit   *decimal.Decimal
	ElectricityRate      decimal.Decimal
	ElectricityBill      decimal.Decimal
	LineItems            LineItems
	TotalDue             decimal.Decimal
	ReturnedAmount       decimal.Decimal
	FinalTotal           decimal.Decimal
	Notes                string
	CreatedBy            *uuid.UUID
	UpdatedBy            *uuid.UUID

	// Shares are loaded by the repository
	Shares []*BillShare
}

// NewBillReference generates a bill reference of the form BILL-XXXXXXXX
func NewBillReference() string {
	buf := make([]byte, billReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back
		// to the uuid source rather than returning an error here
		return billReferencePrefix + strings.ToUpper(uuid.NewString()[:billReferenceLength])
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return billReferencePrefix + string(buf)
}

// NewBill creates a bill for the given month with a generated reference.
// The reference is assigned here, deterministically before persistence,
// rather than by a storage hook.
func NewBill(forMonth string, createdBy *uuid.UUID) (*Bill, error) {
	forMonth = strings.TrimSpace(forMonth)
	if forMonth == "" {
		return nil, shared.NewDomainError("INVALID_FOR_MONTH", "Bill month cannot be empty")
	}
	if len(forMonth) > maxForMonthLength {
		return nil, shared.NewDomainError("INVALID_FOR_MONTH", "Bill month cannot exceed 100 characters")
	}

	return &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         NewBillReference(),
		ForMonth:          forMonth,
		Status:            BillStatusIssued,
		LineItems:         LineItems{},
		Shares:            make([]*BillShare, 0),
	}, nil
}

// SetForMonth updates the month label
func (b *Bill) SetForMonth(forMonth string) error {
	forMonth = strings.TrimSpace(forMonth)
	if forMonth == "" {
		return shared.NewDomainError("INVALID_FOR_MONTH", "Bill month cannot be empty")
	}
	if len(forMonth) > maxForMonthLength {
		return shared.NewDomainError("INVALID_FOR_MONTH", "Bill month cannot exceed 100 characters")
	}
	b.ForMonth = forMonth
	b.touch()
	return nil
}

// SetPeriod sets the billing period; end must not precede start
func (b *Bill) SetPeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_PERIOD", "Period end must be on or after period start")
	}
	b.PeriodStart = start
	b.PeriodEnd = end
	b.touch()
	return nil
}

// SetDueDate sets the payment due date
func (b *Bill) SetDueDate(dueDate *time.Time) {
	b.DueDate = dueDate
	b.touch()
}

// SetStatus sets an explicit status. Draft and overdue can only enter a
// bill through here; reconciliation never derives them.
func (b *Bill) SetStatus(status BillStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Bill status must be one of draft, issued, partial, paid, overdue")
	}
	b.Status = status
	b.touch()
	return nil
}

// SetNotes sets free-form notes
func (b *Bill) SetNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	b.Notes = notes
	b.touch()
	return nil
}

// SetElectricityReadings stores the meter readings; end must not be below start
func (b *Bill) SetElectricityReadings(start, end *decimal.Decimal) error {
	if start != nil && start.IsNegative() {
		return shared.NewDomainError("INVALID_ELECTRICITY_UNIT", "Start unit cannot be negative")
	}
	if end != nil && end.IsNegative() {
		return shared.NewDomainError("INVALID_ELECTRICITY_UNIT", "End unit cannot be negative")
	}
	if start != nil && end != nil && end.LessThan(*start) {
		return shared.NewDomainError("INVALID_ELECTRICITY_UNIT", "End unit must be greater than or equal to start unit")
	}
	b.ElectricityStartUnit = start
	b.ElectricityEndUnit = end
	b.touch()
	return nil
}

// SetElectricityRate sets the fallback per-unit rate
func (b *Bill) SetElectricityRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_ELECTRICITY_RATE", "Electricity rate cannot be negative")
	}
	b.ElectricityRate = rate
	b.touch()
	return nil
}

// ApplyElectricityCharge stores a derived consumption and amount
func (b *Bill) ApplyElectricityCharge(charge ElectricityCharge) {
	b.ElectricityUnits = charge.Units
	b.ElectricityBill = charge.Amount
	b.touch()
}

// ReplaceLineItems replaces the line items wholesale after normalization
func (b *Bill) ReplaceLineItems(items []LineItem) {
	b.LineItems = NormalizeLineItems(items)
	b.touch()
}

// SetTotals sets the money totals; negative values are rejected
func (b *Bill) SetTotals(totalDue, returnedAmount, finalTotal decimal.Decimal) error {
	if totalDue.IsNegative() || returnedAmount.IsNegative() || finalTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Bill totals cannot be negative")
	}
	b.TotalDue = totalDue.Round(2)
	b.ReturnedAmount = returnedAmount.Round(2)
	b.FinalTotal = finalTotal.Round(2)
	b.touch()
	return nil
}

// TotalPaid returns the sum of amount_paid across loaded shares
func (b *Bill) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, share := range b.Shares {
		total = total.Add(share.AmountPaid)
	}
	return total
}

// TotalShareDue returns the sum of amount_due across loaded shares
func (b *Bill) TotalShareDue() decimal.Decimal {
	total := decimal.Zero
	for _, share := range b.Shares {
		total = total.Add(share.AmountDue)
	}
	return total
}

// ShareForUser returns the loaded share belonging to the given user, if any
func (b *Bill) ShareForUser(userID uuid.UUID) *BillShare {
	for _, share := range b.Shares {
		if share.UserID == userID {
			return share
		}
	}
	return nil
}

func (b *Bill) touch() {
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
