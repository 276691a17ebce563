package billing

import (
	"context"
	"sync"
	"testing"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/infrastructure/persistence"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// captureNotifier records every notification for assertions
type captureNotifier struct {
	mu        sync.Mutex
	issued    []*billing.Bill
	payments  []*billing.Payment
	reminders map[string][]PendingShare
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{reminders: make(map[string][]PendingShare)}
}

func (n *captureNotifier) BillIssued(_ context.Context, bill *billing.Bill) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.issued = append(n.issued, bill)
}

func (n *captureNotifier) PaymentRecorded(_ context.Context, _ *billing.Bill, _ *billing.BillShare, payment *billing.Payment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payments = append(n.payments, payment)
}

func (n *captureNotifier) DueReminder(_ context.Context, user *identity.User, pending []PendingShare) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders[user.Email] = pending
}

var _ Notifier = (*captureNotifier)(nil)

type fixture struct {
	repos    billing.Repositories
	uow      billing.UnitOfWork
	notifier *captureNotifier

	bills    *BillService
	shares   *ShareService
	payments *PaymentService
	settings *SettingService
	readings *ReadingService
}

func newFixture(t *testing.T) *fixture {
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

	repos := persistence.NewRepositories(db)
	uow := persistence.NewGormUnitOfWork(db)
	notifier := newCaptureNotifier()
	logger := zap.NewNop()

	return &fixture{
		repos:    repos,
		uow:      uow,
		notifier: notifier,
		bills:    NewBillService(uow, repos, notifier, logger),
		shares:   NewShareService(uow, repos, logger),
		payments: NewPaymentService(uow, repos, notifier, logger),
		settings: NewSettingService(uow, repos, logger),
		readings: NewReadingService(repos, logger),
	}
}

func (f *fixture) seedUser(t *testing.T, name, email string, role identity.Role) *identity.User {
	t.Helper()

	user, err := identity.NewUser(name, email, "password123", role)
	require.NoError(t, err)
	require.NoError(t, f.repos.Users.Create(context.Background(), user))
	return user
}

func (f *fixture) seedResident(t *testing.T, name, email string) *identity.User {
	return f.seedUser(t, name, email, identity.RoleResident)
}

func (f *fixture) seedAdmin(t *testing.T) *identity.User {
	return f.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
}

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

// assertDecimal compares decimals by value instead of representation
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()

	if !actual.Equal(dec(expected)) {
		t.Errorf("expected %s, got %s", expected, actual.String())
	}
}
