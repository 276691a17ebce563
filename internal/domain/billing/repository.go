package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillFilter contains filter options for querying bills
type BillFilter struct {
	// Restrict to bills containing a share for this user
	UserID *uuid.UUID

	// Filter by status
	Status *BillStatus

	// Filter by month label
	ForMonth string

	// Pagination
	Page     int
	PageSize int

	// Ordering
	Sort shared.Sort
}

// BillRepository defines the interface for bill persistence.
// Bills are soft-deleted; finders exclude tombstoned rows.
type BillRepository interface {
	// Create persists a new bill
	Create(ctx context.Context, bill *Bill) error

	// Update persists changes to an existing bill
	Update(ctx context.Context, bill *Bill) error

	// Delete soft-deletes a bill and cascades to its shares
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID loads a bill with its shares, share users and payments
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// FindAll returns bills matching the filter, newest first
	FindAll(ctx context.Context, filter BillFilter) ([]*Bill, int64, error)

	// FindLatest returns the most recently created bills
	FindLatest(ctx context.Context, limit int) ([]*Bill, error)

	// DistinctYears returns the calendar years bills were created in
	DistinctYears(ctx context.Context) ([]int, error)
}

// ShareFilter contains filter options for querying shares
type ShareFilter struct {
	BillID *uuid.UUID
	UserID *uuid.UUID

	// Pagination; zero PageSize returns everything
	Page     int
	PageSize int
}

// BillShareRepository defines the interface for bill share persistence
type BillShareRepository interface {
	// Create persists a new share
	Create(ctx context.Context, share *BillShare) error

	// Update persists changes to an existing share
	Update(ctx context.Context, share *BillShare) error

	// Delete removes a share
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBillID removes all shares of a bill
	DeleteByBillID(ctx context.Context, billID uuid.UUID) error

	// FindByID loads a share with its user and payments
	FindByID(ctx context.Context, id uuid.UUID) (*BillShare, error)

	// FindAll returns shares matching the filter, newest first
	FindAll(ctx context.Context, filter ShareFilter) ([]*BillShare, int64, error)

	// FindByBillID loads all shares of a bill with their users
	FindByBillID(ctx context.Context, billID uuid.UUID) ([]*BillShare, error)

	// FindByBillAndUser loads the share a user holds in a bill, if any
	FindByBillAndUser(ctx context.Context, billID, userID uuid.UUID) (*BillShare, error)

	// FindByUserID loads all shares held by a user
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BillShare, error)

	// FindOutstandingByUser loads a user's shares that still owe money
	FindOutstandingByUser(ctx context.Context, userID uuid.UUID) ([]*BillShare, error)

	// Totals sums amount_due and amount_paid, optionally scoped to one user
	Totals(ctx context.Context, userID *uuid.UUID) (due, paid decimal.Decimal, err error)
}

// PaymentFilter contains filter options for querying payments
type PaymentFilter struct {
	// Restrict to payments against this share
	BillShareID *uuid.UUID

	// Restrict to payments against shares held by this user
	UserID *uuid.UUID

	// Pagination
	Page     int
	PageSize int
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Create persists a new payment
	Create(ctx context.Context, payment *Payment) error

	// Delete removes a payment
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID loads a payment
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll returns payments matching the filter, newest paid_on first
	FindAll(ctx context.Context, filter PaymentFilter) ([]*Payment, int64, error)

	// FindByShareID returns a share's payments, newest paid_on first
	FindByShareID(ctx context.Context, shareID uuid.UUID) ([]*Payment, error)

	// LatestPaidOn returns the most recent paid_on date among a share's
	// remaining payments, or nil when none remain
	LatestPaidOn(ctx context.Context, shareID uuid.UUID) (*time.Time, error)
}

// BillingSettingRepository defines the interface for billing setting persistence
type BillingSettingRepository interface {
	// Save upserts a setting by key
	Save(ctx context.Context, setting *BillingSetting) error

	// FindByKey loads a setting by its unique key
	FindByKey(ctx context.Context, key string) (*BillingSetting, error)

	// FindAll returns all settings ordered by key
	FindAll(ctx context.Context) ([]*BillingSetting, error)
}

// ElectricityReadingRepository defines the interface for meter reading persistence
type ElectricityReadingRepository interface {
	// Create persists a new reading
	Create(ctx context.Context, reading *ElectricityReading) error

	// Update persists changes to an existing reading
	Update(ctx context.Context, reading *ElectricityReading) error

	// Delete removes a reading
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID loads a reading
	FindByID(ctx context.Context, id uuid.UUID) (*ElectricityReading, error)

	// FindAll returns all readings, newest year/month first
	FindAll(ctx context.Context) ([]*ElectricityReading, error)

	// FindByMonthYear loads the reading for a month/year, if recorded
	FindByMonthYear(ctx context.Context, month string, year int) (*ElectricityReading, error)
}

// Repositories bundles every repository a billing workflow can touch.
// A UnitOfWork hands out a transaction-scoped bundle so multi-aggregate
// writes and the reconciliation cascade commit or roll back together.
type Repositories struct {
	Bills    BillRepository
	Shares   BillShareRepository
	Payments PaymentRepository
	Settings BillingSettingRepository
	Readings ElectricityReadingRepository
	Users    identity.UserRepository
}

// UnitOfWork executes a function within one atomic transaction
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
