package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records and removes payments against bill shares.
// Payments are a ledger: corrections happen by delete and re-record.
type PaymentService struct {
	uow      billing.UnitOfWork
	repos    billing.Repositories
	notifier Notifier
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(uow billing.UnitOfWork, repos billing.Repositories, notifier Notifier, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		uow:      uow,
		repos:    repos,
		notifier: notifier,
		logger:   logger,
	}
}

// RecordPaymentInput carries a payment recording payload
type RecordPaymentInput struct {
	BillShareID uuid.UUID
	Amount      decimal.Decimal
	PaidOn      time.Time
	Method      string
	Reference   string
	Notes       string
}

// Record creates a payment against a share, rolls the amount into the
// share's running total and reconciles share and bill, all in one
// transaction. Admins may pay any share, residents only their own. The
// resident is notified after commit; notification failures are logged
// and swallowed.
func (s *PaymentService) Record(ctx context.Context, actor *identity.User, input RecordPaymentInput) (*billing.Payment, error) {
	target, err := s.repos.Shares.FindByID(ctx, input.BillShareID)
	if err != nil {
		return nil, err
	}
	if d := identity.Decide(actor, identity.ActionRecordPayment, target.UserID); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot add payments for this share.")
	}

	var payment *billing.Payment
	err = s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		share, err := repos.Shares.FindByID(ctx, input.BillShareID)
		if err != nil {
			return err
		}

		payment, err = billing.NewPayment(share.ID, &actor.ID, input.Amount, input.PaidOn)
		if err != nil {
			return err
		}
		payment.SetMethod(input.Method)
		if err := payment.SetReference(input.Reference); err != nil {
			return err
		}
		if err := payment.SetNotes(input.Notes); err != nil {
			return err
		}

		if err := repos.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		share.ApplyPayment(payment.Amount, payment.PaidOn)
		return SyncShare(ctx, repos, share)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("share_id", input.BillShareID.String()),
		zap.String("amount", payment.Amount.String()))

	s.notifyPaymentRecorded(ctx, payment)

	return payment, nil
}

// notifyPaymentRecorded loads the reconciled share and bill and fires
// the confirmation; best-effort only
func (s *PaymentService) notifyPaymentRecorded(ctx context.Context, payment *billing.Payment) {
	share, err := s.repos.Shares.FindByID(ctx, payment.BillShareID)
	if err != nil {
		s.logger.Warn("Failed to load share for payment notification",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		return
	}
	bill, err := s.repos.Bills.FindByID(ctx, share.BillID)
	if err != nil {
		s.logger.Warn("Failed to load bill for payment notification",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		return
	}
	s.notifier.PaymentRecorded(ctx, bill, share, payment)
}

// Delete removes a payment, winds its amount back out of the share
// (floored at zero) and resets last_paid_at to the newest remaining
// payment, then reconciles. Admin only.
func (s *PaymentService) Delete(ctx context.Context, actor *identity.User, paymentID uuid.UUID) error {
	if d := identity.Decide(actor, identity.ActionDeletePayment, uuid.Nil); !d.Allowed {
		return shared.NewDomainError("FORBIDDEN", "You do not have permission to delete payments. Contact an administrator.")
	}

	return s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		payment, err := repos.Payments.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		share, err := repos.Shares.FindByID(ctx, payment.BillShareID)
		if err != nil {
			return err
		}

		if err := repos.Payments.Delete(ctx, paymentID); err != nil {
			return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
		}

		lastRemaining, err := repos.Payments.LatestPaidOn(ctx, share.ID)
		if err != nil {
			return fmt.Errorf("failed to find remaining payments for share %s: %w", share.ID, err)
		}

		share.ReversePayment(payment.Amount, lastRemaining)

		s.logger.Info("Payment deleted",
			zap.String("payment_id", paymentID.String()),
			zap.String("share_id", share.ID.String()),
			zap.String("amount", payment.Amount.String()))

		return SyncShare(ctx, repos, share)
	})
}

// List returns payments visible to the actor, newest paid_on first;
// residents only see payments against their own shares
func (s *PaymentService) List(ctx context.Context, actor *identity.User, filter billing.PaymentFilter) ([]*billing.Payment, int64, error) {
	if actor == nil {
		return nil, 0, shared.NewDomainError("FORBIDDEN", "authentication required")
	}

	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}

	return s.repos.Payments.FindAll(ctx, filter)
}
