package billing

import (
	"context"
	"testing"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareServiceCreateUpsertsOnBillAndUser(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")

	empty := []ShareInput{}
	bill, err := f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "January 2026",
		LineItems: []LineItemInput{{Key: "water", Label: "Water", Amount: dec("500")}},
		Shares:    &empty,
	})
	require.NoError(t, err)

	first, err := f.shares.Create(context.Background(), admin, CreateShareInput{
		BillID:    bill.ID,
		UserID:    alice.ID,
		AmountDue: dec("300"),
	})
	require.NoError(t, err)

	// a second create for the same resident overwrites, never duplicates
	second, err := f.shares.Create(context.Background(), admin, CreateShareInput{
		BillID:     bill.ID,
		UserID:     alice.ID,
		AmountDue:  dec("500"),
		AmountPaid: dec("200"),
		Notes:      "adjusted",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assertDecimal(t, "500", second.AmountDue)
	assertDecimal(t, "200", second.AmountPaid)
	assert.Equal(t, billing.ShareStatusPartial, second.Status)

	all, err := f.repos.Shares.FindByBillID(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShareServiceCreateRejectsNonResident(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)

	empty := []ShareInput{}
	bill, err := f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "January 2026",
		LineItems: []LineItemInput{{Key: "water", Label: "Water", Amount: dec("500")}},
		Shares:    &empty,
	})
	require.NoError(t, err)

	_, err = f.shares.Create(context.Background(), admin, CreateShareInput{
		BillID:    bill.ID,
		UserID:    admin.ID,
		AmountDue: dec("300"),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SHAREHOLDER", domainErr.Code)
}

func TestShareServiceCreateRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	share := seedBillWithShare(t, f, admin, alice, "400")

	_, err := f.shares.Create(context.Background(), alice, CreateShareInput{
		BillID:    share.BillID,
		UserID:    alice.ID,
		AmountDue: dec("1"),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestShareServiceUpdateReconcilesBill(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	share := seedBillWithShare(t, f, admin, alice, "400")

	updated, err := f.shares.Update(context.Background(), admin, share.ID, UpdateShareInput{
		AmountPaid: decPtr("400"),
	})
	require.NoError(t, err)
	assert.Equal(t, billing.ShareStatusPaid, updated.Status)

	bill, err := f.repos.Bills.FindByID(context.Background(), share.BillID)
	require.NoError(t, err)
	assert.Equal(t, billing.BillStatusPaid, bill.Status)
}

func TestShareServiceDeleteReconcilesBill(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	bob := f.seedResident(t, "Bob", "bob@example.com")

	assigned := []ShareInput{
		{UserID: alice.ID, AmountDue: dec("400")},
		{UserID: bob.ID, AmountDue: dec("400")},
	}
	bill, err := f.bills.Create(context.Background(), admin, CreateBillInput{
		ForMonth:  "January 2026",
		LineItems: []LineItemInput{{Key: "water", Label: "Water", Amount: dec("800")}},
		Shares:    &assigned,
	})
	require.NoError(t, err)

	require.NoError(t, f.shares.Delete(context.Background(), admin, bill.Shares[0].ID))

	reloaded, err := f.repos.Bills.FindByID(context.Background(), bill.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Shares, 1)
	assertDecimal(t, "400", reloaded.TotalDue)
}

func TestShareServiceListResidentScoping(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
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

	all, total, err := f.shares.List(context.Background(), admin, billing.ShareFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	mine, total, err := f.shares.List(context.Background(), alice, billing.ShareFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)
}

func TestShareServiceGetScoping(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t)
	alice := f.seedResident(t, "Alice", "alice@example.com")
	bob := f.seedResident(t, "Bob", "bob@example.com")
	share := seedBillWithShare(t, f, admin, alice, "400")

	got, err := f.shares.Get(context.Background(), alice, share.ID)
	require.NoError(t, err)
	assert.Equal(t, share.ID, got.ID)

	_, err = f.shares.Get(context.Background(), bob, share.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
