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

// SettingService manages the default charge amounts per utility
type SettingService struct {
	uow    billing.UnitOfWork
	repos  billing.Repositories
	logger *zap.Logger
}

// NewSettingService creates a new SettingService
func NewSettingService(uow billing.UnitOfWork, repos billing.Repositories, logger *zap.Logger) *SettingService {
	return &SettingService{
		uow:    uow,
		repos:  repos,
		logger: logger,
	}
}

// SettingInput is one setting in a bulk upsert payload
type SettingInput struct {
	Key      string
	Amount   decimal.Decimal
	Metadata billing.SettingMetadata
}

// List returns every setting ordered by key; any authenticated user
// may read them (bills display them)
func (s *SettingService) List(ctx context.Context) ([]*billing.BillingSetting, error) {
	return s.repos.Settings.FindAll(ctx)
}

// BulkUpsert applies the full settings payload atomically, keyed on
// the setting key. Super admin only.
func (s *SettingService) BulkUpsert(ctx context.Context, actor *identity.User, inputs []SettingInput) ([]*billing.BillingSetting, error) {
	if d := identity.Decide(actor, identity.ActionManageSettings, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		for _, in := range inputs {
			existing, err := repos.Settings.FindByKey(ctx, in.Key)
			switch {
			case err == nil:
				if err := existing.Update(in.Amount, in.Metadata); err != nil {
					return err
				}
				if err := repos.Settings.Save(ctx, existing); err != nil {
					return fmt.Errorf("failed to save setting %q: %w", in.Key, err)
				}

			case errors.Is(err, shared.ErrNotFound):
				setting, err := billing.NewBillingSetting(in.Key, in.Amount, in.Metadata)
				if err != nil {
					return err
				}
				if err := repos.Settings.Save(ctx, setting); err != nil {
					return fmt.Errorf("failed to save setting %q: %w", in.Key, err)
				}

			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Billing settings updated", zap.Int("count", len(inputs)))

	return s.repos.Settings.FindAll(ctx)
}
