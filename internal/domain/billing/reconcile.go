package billing

import (
	"github.com/shopspring/decimal"
)

// DeriveShareStatus computes a share's status from its amounts:
// paid when due is positive and fully covered, partial when anything
// has been paid, pending otherwise.
func DeriveShareStatus(amountDue, amountPaid decimal.Decimal) ShareStatus {
	switch {
	case amountDue.IsPositive() && amountPaid.GreaterThanOrEqual(amountDue):
		return ShareStatusPaid
	case amountPaid.IsPositive():
		return ShareStatusPartial
	default:
		return ShareStatusPending
	}
}

// DeriveBillStatus computes a bill's status from the final total and the
// sum of payments across its shares. Draft and overdue are never derived;
// they survive as the prior status until payments move the bill to
// partial or paid. A bill with no prior status defaults to issued.
func DeriveBillStatus(finalTotal, totalPaid decimal.Decimal, prior BillStatus) BillStatus {
	switch {
	case finalTotal.IsPositive() && totalPaid.GreaterThanOrEqual(finalTotal):
		return BillStatusPaid
	case totalPaid.IsPositive():
		return BillStatusPartial
	case prior.IsValid():
		return prior
	default:
		return BillStatusIssued
	}
}

// ResolveFinalTotal keeps an already-set final total untouched and only
// derives max(totalDue - returned, 0) while the final total is still zero.
// Once set, share or line-item changes never re-derive it; only an explicit
// caller value or a returned-amount recompute replaces it.
func ResolveFinalTotal(current, totalDue, returned decimal.Decimal) decimal.Decimal {
	if !current.IsZero() {
		return current
	}
	final := totalDue.Sub(returned)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
