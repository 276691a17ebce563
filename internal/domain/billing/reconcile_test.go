package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestDeriveShareStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountDue  string
		amountPaid string
		want       ShareStatus
	}{
		{"nothing paid", "100", "0", ShareStatusPending},
		{"partially paid", "100", "40", ShareStatusPartial},
		{"exactly paid", "100", "100", ShareStatusPaid},
		{"overpaid", "100", "120", ShareStatusPaid},
		{"zero due zero paid", "0", "0", ShareStatusPending},
		{"zero due with payment", "0", "10", ShareStatusPartial},
		{"fractional boundary below", "75.00", "74.99", ShareStatusPartial},
		{"fractional boundary at", "75.00", "75.00", ShareStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveShareStatus(d(tt.amountDue), d(tt.amountPaid))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveBillStatus(t *testing.T) {
	tests := []struct {
		name       string
		finalTotal string
		totalPaid  string
		prior      BillStatus
		want       BillStatus
	}{
		{"fully paid", "150", "150", BillStatusIssued, BillStatusPaid},
		{"overpaid", "150", "200", BillStatusIssued, BillStatusPaid},
		{"partially paid", "150", "75", BillStatusIssued, BillStatusPartial},
		{"unpaid keeps prior", "150", "0", BillStatusIssued, BillStatusIssued},
		{"unpaid keeps draft", "150", "0", BillStatusDraft, BillStatusDraft},
		{"unpaid keeps overdue", "150", "0", BillStatusOverdue, BillStatusOverdue},
		{"no prior defaults to issued", "150", "0", BillStatus(""), BillStatusIssued},
		{"zero final total never paid", "0", "50", BillStatusIssued, BillStatusPartial},
		{"zero final total no payments", "0", "0", BillStatusIssued, BillStatusIssued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveBillStatus(d(tt.finalTotal), d(tt.totalPaid), tt.prior)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFinalTotal(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		totalDue string
		returned string
		want     string
	}{
		{"derives when unset", "0", "150", "0", "150"},
		{"subtracts returned amount", "0", "150", "20", "130"},
		{"floors at zero", "0", "50", "80", "0"},
		{"sticky once set", "200", "150", "0", "200"},
		{"sticky even when shares shrink", "200", "10", "0", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFinalTotal(d(tt.current), d(tt.totalDue), d(tt.returned))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
