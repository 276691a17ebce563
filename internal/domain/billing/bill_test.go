package billing

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBill(t *testing.T) {
	creator := uuid.New()

	t.Run("creates issued bill with generated reference", func(t *testing.T) {
		bill, err := NewBill("December 2025", &creator)
		require.NoError(t, err)
		assert.Equal(t, "December 2025", bill.ForMonth)
		assert.Equal(t, BillStatusIssued, bill.Status)
		assert.Regexp(t, regexp.MustCompile(`^BILL-[A-Z0-9]{8}$`), bill.Reference)
		assert.Empty(t, bill.LineItems)
	})

	t.Run("rejects empty month", func(t *testing.T) {
		_, err := NewBill("  ", &creator)
		assert.Error(t, err)
	})

	t.Run("rejects overlong month", func(t *testing.T) {
		_, err := NewBill(strings.Repeat("x", 101), &creator)
		assert.Error(t, err)
	})
}

func TestNewBillReferenceUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		ref := NewBillReference()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestBillSetPeriod(t *testing.T) {
	bill, err := NewBill("January 2026", nil)
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	require.NoError(t, bill.SetPeriod(&start, &end))
	assert.Equal(t, &start, bill.PeriodStart)

	err = bill.SetPeriod(&end, &start)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on or after")

	require.NoError(t, bill.SetPeriod(&start, nil))
	assert.Nil(t, bill.PeriodEnd)
}

func TestBillSetStatus(t *testing.T) {
	bill, err := NewBill("January 2026", nil)
	require.NoError(t, err)

	require.NoError(t, bill.SetStatus(BillStatusDraft))
	assert.Equal(t, BillStatusDraft, bill.Status)

	assert.Error(t, bill.SetStatus(BillStatus("archived")))
	assert.Equal(t, BillStatusDraft, bill.Status)
}

func TestBillSetElectricityReadings(t *testing.T) {
	bill, err := NewBill("January 2026", nil)
	require.NoError(t, err)

	require.NoError(t, bill.SetElectricityReadings(dp("100"), dp("150")))

	err = bill.SetElectricityReadings(dp("150"), dp("100"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than or equal to start unit")

	assert.Error(t, bill.SetElectricityReadings(dp("-1"), nil))
}

func TestBillSetTotals(t *testing.T) {
	bill, err := NewBill("January 2026", nil)
	require.NoError(t, err)

	require.NoError(t, bill.SetTotals(d("150.456"), d("0"), d("150.46")))
	assert.Equal(t, "150.46", bill.TotalDue.StringFixed(2))

	assert.Error(t, bill.SetTotals(d("-1"), d("0"), d("0")))
}

func TestBillShareAggregates(t *testing.T) {
	bill, err := NewBill("January 2026", nil)
	require.NoError(t, err)

	userA := uuid.New()
	userB := uuid.New()

	shareA, err := NewBillShare(bill.ID, userA, d("75"))
	require.NoError(t, err)
	shareA.AmountPaid = d("75")

	shareB, err := NewBillShare(bill.ID, userB, d("75"))
	require.NoError(t, err)
	shareB.AmountPaid = d("25")

	bill.Shares = []*BillShare{shareA, shareB}

	assert.Equal(t, "150.00", bill.TotalShareDue().StringFixed(2))
	assert.Equal(t, "100.00", bill.TotalPaid().StringFixed(2))
	assert.Same(t, shareA, bill.ShareForUser(userA))
	assert.Nil(t, bill.ShareForUser(uuid.New()))
}

func TestBillStatusEnum(t *testing.T) {
	assert.True(t, BillStatusPaid.IsClosed())
	assert.False(t, BillStatusPartial.IsClosed())
	assert.True(t, BillStatusOverdue.IsValid())
	assert.False(t, BillStatus("archived").IsValid())
	assert.Equal(t, "Partially Paid", BillStatusPartial.Label())
}
