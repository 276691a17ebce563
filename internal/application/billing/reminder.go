package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReminderSummary reports what one reminder run delivered
type ReminderSummary struct {
	Residents int // residents who received a reminder
	Shares    int // pending shares included across all reminders
}

// ReminderService sends residents a periodic digest of the bill shares
// they still owe on.
type ReminderService struct {
	repos    billing.Repositories
	notifier Notifier
	logger   *zap.Logger
}

// NewReminderService creates a reminder service
func NewReminderService(repos billing.Repositories, notifier Notifier, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		repos:    repos,
		notifier: notifier,
		logger:   logger,
	}
}

// SendDueReminders notifies every resident who has outstanding shares
// on open bills. Residents without a linked chat are skipped, as are
// shares whose bill is already settled.
func (s *ReminderService) SendDueReminders(ctx context.Context) (ReminderSummary, error) {
	var summary ReminderSummary

	residents, err := s.repos.Users.FindResidents(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load residents: %w", err)
	}

	bills := make(map[uuid.UUID]*billing.Bill)

	for _, resident := range residents {
		if !resident.HasTelegramChat() {
			continue
		}

		shares, err := s.repos.Shares.FindOutstandingByUser(ctx, resident.ID)
		if err != nil {
			return summary, fmt.Errorf("failed to load outstanding shares for user %s: %w", resident.ID, err)
		}

		pending := make([]PendingShare, 0, len(shares))
		for _, share := range shares {
			bill, ok := bills[share.BillID]
			if !ok {
				bill, err = s.repos.Bills.FindByID(ctx, share.BillID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						continue
					}
					return summary, fmt.Errorf("failed to load bill %s: %w", share.BillID, err)
				}
				bills[share.BillID] = bill
			}
			if bill.Status == billing.BillStatusPaid {
				continue
			}
			pending = append(pending, PendingShare{Bill: bill, Share: share})
		}

		if len(pending) == 0 {
			continue
		}

		s.notifier.DueReminder(ctx, resident, pending)
		summary.Residents++
		summary.Shares += len(pending)
	}

	s.logger.Info("Due reminders sent",
		zap.Int("residents", summary.Residents),
		zap.Int("shares", summary.Shares))

	return summary, nil
}
