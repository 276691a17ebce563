package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShareService manages individual bill shares outside the bill payload
type ShareService struct {
	uow    billing.UnitOfWork
	repos  billing.Repositories
	logger *zap.Logger
}

// NewShareService creates a new ShareService
func NewShareService(uow billing.UnitOfWork, repos billing.Repositories, logger *zap.Logger) *ShareService {
	return &ShareService{
		uow:    uow,
		repos:  repos,
		logger: logger,
	}
}

// CreateShareInput carries a share upsert payload
type CreateShareInput struct {
	BillID     uuid.UUID
	UserID     uuid.UUID
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
	Notes      string
}

// UpdateShareInput carries a share patch; nil fields are left alone
type UpdateShareInput struct {
	AmountDue  *decimal.Decimal
	AmountPaid *decimal.Decimal
	Notes      *string
}

// Create upserts a share keyed on (bill, user): an existing share for
// the same resident is overwritten rather than duplicated. Ends with a
// bill reconciliation.
func (s *ShareService) Create(ctx context.Context, actor *identity.User, input CreateShareInput) (*billing.BillShare, error) {
	if d := identity.Decide(actor, identity.ActionManageShare, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	var shareID uuid.UUID
	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		bill, err := repos.Bills.FindByID(ctx, input.BillID)
		if err != nil {
			return err
		}

		user, err := repos.Users.FindByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if err := billing.ValidateShareholder(user); err != nil {
			return err
		}

		share, err := repos.Shares.FindByBillAndUser(ctx, bill.ID, user.ID)
		switch {
		case err == nil:
			if err := share.SetAmounts(input.AmountDue, input.AmountPaid); err != nil {
				return err
			}
			if err := share.SetNotes(input.Notes); err != nil {
				return err
			}
			if err := repos.Shares.Update(ctx, share); err != nil {
				return fmt.Errorf("failed to update share %s: %w", share.ID, err)
			}

		case errors.Is(err, shared.ErrNotFound):
			share, err = billing.NewBillShare(bill.ID, user.ID, input.AmountDue)
			if err != nil {
				return err
			}
			if input.AmountPaid.IsPositive() {
				if err := share.SetAmounts(share.AmountDue, input.AmountPaid); err != nil {
					return err
				}
			}
			if err := share.SetNotes(input.Notes); err != nil {
				return err
			}
			if err := repos.Shares.Create(ctx, share); err != nil {
				return fmt.Errorf("failed to create share: %w", err)
			}

		default:
			return err
		}

		shareID = share.ID
		return SyncBill(ctx, repos, bill)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.Shares.FindByID(ctx, shareID)
}

// Update patches a share's amounts or notes and re-reconciles its bill
func (s *ShareService) Update(ctx context.Context, actor *identity.User, shareID uuid.UUID, input UpdateShareInput) (*billing.BillShare, error) {
	if d := identity.Decide(actor, identity.ActionManageShare, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		share, err := repos.Shares.FindByID(ctx, shareID)
		if err != nil {
			return err
		}

		if input.AmountDue != nil || input.AmountPaid != nil {
			due, paid := share.AmountDue, share.AmountPaid
			if input.AmountDue != nil {
				due = *input.AmountDue
			}
			if input.AmountPaid != nil {
				paid = *input.AmountPaid
			}
			if err := share.SetAmounts(due, paid); err != nil {
				return err
			}
		}
		if input.Notes != nil {
			if err := share.SetNotes(*input.Notes); err != nil {
				return err
			}
		}

		if err := repos.Shares.Update(ctx, share); err != nil {
			return fmt.Errorf("failed to update share %s: %w", share.ID, err)
		}

		return SyncShare(ctx, repos, share)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.Shares.FindByID(ctx, shareID)
}

// Delete removes a share (and its payments) and re-reconciles the bill
func (s *ShareService) Delete(ctx context.Context, actor *identity.User, shareID uuid.UUID) error {
	if d := identity.Decide(actor, identity.ActionManageShare, uuid.Nil); !d.Allowed {
		return shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	return s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		share, err := repos.Shares.FindByID(ctx, shareID)
		if err != nil {
			return err
		}

		bill, err := repos.Bills.FindByID(ctx, share.BillID)
		if err != nil {
			return err
		}

		if err := repos.Shares.Delete(ctx, shareID); err != nil {
			return fmt.Errorf("failed to delete share %s: %w", shareID, err)
		}

		s.logger.Info("Share deleted",
			zap.String("share_id", shareID.String()),
			zap.String("bill_id", bill.ID.String()))

		return SyncBill(ctx, repos, bill)
	})
}

// List returns shares visible to the actor; residents only see their own
func (s *ShareService) List(ctx context.Context, actor *identity.User, filter billing.ShareFilter) ([]*billing.BillShare, int64, error) {
	if d := identity.Decide(actor, identity.ActionViewShare, actor.ID); !d.Allowed {
		return nil, 0, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}

	return s.repos.Shares.FindAll(ctx, filter)
}

// Get loads one share; residents may only load their own
func (s *ShareService) Get(ctx context.Context, actor *identity.User, shareID uuid.UUID) (*billing.BillShare, error) {
	share, err := s.repos.Shares.FindByID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	if d := identity.Decide(actor, identity.ActionViewShare, share.UserID); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", "You are not allowed to view this share.")
	}

	return share, nil
}
