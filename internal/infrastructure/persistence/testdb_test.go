package persistence

import (
	"testing"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BillModel{},
		&models.BillShareModel{},
		&models.PaymentModel{},
		&models.BillingSettingModel{},
		&models.ElectricityReadingModel{},
	))

	return db
}

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestUser(t *testing.T, name, email string, role identity.Role) *identity.User {
	t.Helper()

	user, err := identity.NewUser(name, email, "password123", role)
	require.NoError(t, err)
	return user
}

func newTestBill(t *testing.T, forMonth string) *billing.Bill {
	t.Helper()

	bill, err := billing.NewBill(forMonth, nil)
	require.NoError(t, err)
	return bill
}

func newTestShare(t *testing.T, bill *billing.Bill, user *identity.User, amountDue string) *billing.BillShare {
	t.Helper()

	share, err := billing.NewBillShare(bill.ID, user.ID, dec(amountDue))
	require.NoError(t, err)
	return share
}
