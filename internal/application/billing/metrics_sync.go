package billing

import (
	"context"
	"fmt"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// SyncBill reconciles a bill's stored totals and status with the
// current state of its shares, then re-derives every share's status.
// The function is idempotent: running it twice leaves the same state.
//
// Rules, in order:
//   - total_due is overwritten by the sum of share dues, but only when
//     that sum is positive; zero-share bills keep their stored total.
//   - final_total is sticky: once non-zero it never changes here, and
//     while zero it becomes max(total_due - returned_amount, 0).
//   - status is paid when final_total > 0 and payments cover it,
//     partial when anything was paid, otherwise the prior status.
//
// Callers run this inside the same transaction as whatever write made
// the bill stale, via the UnitOfWork repositories.
func SyncBill(ctx context.Context, repos billing.Repositories, bill *billing.Bill) error {
	shares, err := repos.Shares.FindByBillID(ctx, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to load shares for bill %s: %w", bill.ID, err)
	}

	totalDue := decimal.Zero
	totalPaid := decimal.Zero
	for _, share := range shares {
		totalDue = totalDue.Add(share.AmountDue)
		totalPaid = totalPaid.Add(share.AmountPaid)
	}

	if totalDue.IsPositive() {
		bill.TotalDue = totalDue.Round(2)
	}
	bill.FinalTotal = billing.ResolveFinalTotal(bill.FinalTotal, bill.TotalDue, bill.ReturnedAmount)
	bill.Status = billing.DeriveBillStatus(bill.FinalTotal, totalPaid, bill.Status)

	if err := repos.Bills.Update(ctx, bill); err != nil {
		return fmt.Errorf("failed to save bill %s: %w", bill.ID, err)
	}

	for _, share := range shares {
		share.RefreshStatus()
		if err := repos.Shares.Update(ctx, share); err != nil {
			return fmt.Errorf("failed to save share %s: %w", share.ID, err)
		}
	}

	// Keep the in-memory aggregate consistent with what was written
	bill.Shares = shares

	return nil
}

// SyncShare re-derives one share's status and cascades into a full
// bill reconciliation, since the share's amounts feed the bill totals.
func SyncShare(ctx context.Context, repos billing.Repositories, share *billing.BillShare) error {
	share.RefreshStatus()
	if err := repos.Shares.Update(ctx, share); err != nil {
		return fmt.Errorf("failed to save share %s: %w", share.ID, err)
	}

	bill, err := repos.Bills.FindByID(ctx, share.BillID)
	if err != nil {
		return fmt.Errorf("failed to load bill %s: %w", share.BillID, err)
	}

	return SyncBill(ctx, repos, bill)
}
