package persistence

import (
	"context"

	"github.com/housebill/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// NewRepositories builds a repository bundle bound to the given connection.
// Pass a transaction handle to get transaction-scoped repositories.
func NewRepositories(db *gorm.DB) billing.Repositories {
	return billing.Repositories{
		Bills:    NewGormBillRepository(db),
		Shares:   NewGormBillShareRepository(db),
		Payments: NewGormPaymentRepository(db),
		Settings: NewGormBillingSettingRepository(db),
		Readings: NewGormElectricityReadingRepository(db),
		Users:    NewGormUserRepository(db),
	}
}

// GormUnitOfWork implements billing.UnitOfWork on a GORM connection.
// Every repository handed to the callback shares one transaction, so the
// reconciliation cascade commits or rolls back as a whole.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn within one database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos billing.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ billing.UnitOfWork = (*GormUnitOfWork)(nil)
