package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAdminSeesHouseholdTotals(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	bob := f.seedResident(t, "Bob", "bob@example.com")

	assigned := []ShareInput{
		{UserID: alice.ID, AmountDue: dec("400")},
		{UserID: bob.ID, AmountDue: dec("600")},
	}
	bill, err := f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "January 2026",
		LineItems: []LineItemInput{{Key: "water", Label: "Water", Amount: dec("1000")}},
		Shares:    &assigned,
	})
	require.NoError(t, err)

	_, err = f.payments.Record(context.Background(), alice, RecordPaymentInput{
		BillShareID: bill.ShareForUser(alice.ID).ID,
		Amount:      dec("250"),
		PaidOn:      time.Now(),
	})
	require.NoError(t, err)

	service := NewDashboardService(f.repos)
	dashboard, err := service.Load(context.Background(), admin)
	require.NoError(t, err)

	assertDecimal(t, "1000", dashboard.Totals.TotalDue)
	assertDecimal(t, "250", dashboard.Totals.TotalPaid)
	assertDecimal(t, "750", dashboard.Totals.TotalOutstanding)
	require.Len(t, dashboard.LatestBills, 1)
	assert.Equal(t, bill.ID, dashboard.LatestBills[0].ID)
}

func TestDashboardResidentSeesOwnTotalsOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	bob := f.seedResident(t, "Bob", "bob@example.com")

	assigned := []ShareInput{
		{UserID: alice.ID, AmountDue: dec("400")},
		{UserID: bob.ID, AmountDue: dec("600")},
	}
	_, err := f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "January 2026",
		LineItems: []LineItemInput{{Key: "water", Label: "Water", Amount: dec("1000")}},
		Shares:    &assigned,
	})
	require.NoError(t, err)

	bobOnly := []ShareInput{{UserID: bob.ID, AmountDue: dec("300")}}
	_, err = f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "February 2026",
		LineItems: []LineItemInput{{Key: "gas", Label: "Gas", Amount: dec("300")}},
		Shares:    &bobOnly,
	})
	require.NoError(t, err)

	service := NewDashboardService(f.repos)
	dashboard, err := service.Load(context.Background(), alice)
	require.NoError(t, err)

	assertDecimal(t, "400", dashboard.Totals.TotalDue)
	assertDecimal(t, "400", dashboard.Totals.TotalOutstanding)

	// only bills the resident holds a share in
	require.Len(t, dashboard.LatestBills, 1)
	assert.Equal(t, "January 2026", dashboard.LatestBills[0].ForMonth)
}

func TestDashboardOutstandingFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	share := seedBillWithShare(t, f, admin, alice, "400")

	// overpayment keeps outstanding at zero
	_, err := f.shares.Update(context.Background(), admin, share.ID, UpdateShareInput{
		AmountPaid: decPtr("500"),
	})
	require.NoError(t, err)

	service := NewDashboardService(f.repos)
	dashboard, err := service.Load(context.Background(), admin)
	require.NoError(t, err)

	assertDecimal(t, "0", dashboard.Totals.TotalOutstanding)
}
