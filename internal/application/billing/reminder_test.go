package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReminderServiceSendsToLinkedResidents(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	alice := f.seedResident(t, "Alice", "alice@example.com")
	require.NoError(t, alice.LinkTelegramChat("chat-alice"))
	require.NoError(t, f.repos.Users.Update(context.Background(), alice))

	// Bob owes money too but never linked a chat
	bob := f.seedResident(t, "Bob", "bob@example.com")

	assigned := []ShareInput{
		{UserID: alice.ID, AmountDue: dec("400")},
		{UserID: bob.ID, AmountDue: dec("400")},
	}
	_, err := f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "January 2026",
		LineItems: []LineItemInput{{Key: "water", Label: "Water", Amount: dec("800")}},
		Shares:    &assigned,
	})
	require.NoError(t, err)

	service := NewReminderService(f.repos, f.notifier, zap.NewNop())
	summary, err := service.SendDueReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Residents)
	assert.Equal(t, 1, summary.Shares)

	pending, ok := f.notifier.reminders["alice@example.com"]
	require.True(t, ok)
	require.Len(t, pending, 1)
	assertDecimal(t, "400", pending[0].Share.AmountDue)
	assert.Equal(t, "January 2026", pending[0].Bill.ForMonth)

	_, ok = f.notifier.reminders["bob@example.com"]
	assert.False(t, ok)
}

func TestReminderServiceSkipsSettledShares(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	alice := f.seedResident(t, "Alice", "alice@example.com")
	require.NoError(t, alice.LinkTelegramChat("chat-alice"))
	require.NoError(t, f.repos.Users.Update(context.Background(), alice))

	share := seedBillWithShare(t, f, admin, alice, "400")
	_, err := f.payments.Record(context.Background(), alice, RecordPaymentInput{
		BillShareID: share.ID, Amount: dec("400"), PaidOn: time.Now(),
	})
	require.NoError(t, err)

	service := NewReminderService(f.repos, f.notifier, zap.NewNop())
	summary, err := service.SendDueReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Residents)
	assert.Empty(t, f.notifier.reminders)
}

func TestReminderServiceNoResidents(t *testing.T) {
	f := newFixture(t)

	service := NewReminderService(f.repos, f.notifier, zap.NewNop())
	summary, err := service.SendDueReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReminderSummary{}, summary)
}
