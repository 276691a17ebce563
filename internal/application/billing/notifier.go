package billing

import (
	"context"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
)

// PendingShare pairs an unpaid share with the bill it belongs to,
// for reminder messages that list several bills at once.
type PendingShare struct {
	Bill  *billing.Bill
	Share *billing.BillShare
}

// Notifier delivers billing events to residents over an external channel.
// Delivery is best-effort: implementations log failures instead of
// returning them, so a broken channel never fails a billing operation.
type Notifier interface {
	// BillIssued announces a freshly created bill to every shareholder
	// with a linked chat.
	BillIssued(ctx context.Context, bill *billing.Bill)

	// PaymentRecorded confirms a recorded payment to the paying resident.
	PaymentRecorded(ctx context.Context, bill *billing.Bill, share *billing.BillShare, payment *billing.Payment)

	// DueReminder sends a resident the list of shares they still owe on.
	DueReminder(ctx context.Context, user *identity.User, pending []PendingShare)
}

// NopNotifier discards every notification. Used when the Telegram
// channel is disabled and in tests.
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

func (NopNotifier) BillIssued(context.Context, *billing.Bill) {}

func (NopNotifier) PaymentRecorded(context.Context, *billing.Bill, *billing.BillShare, *billing.Payment) {
}

func (NopNotifier) DueReminder(context.Context, *identity.User, []PendingShare) {}
