package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillService handles the bill lifecycle: creation with share fan-out,
// patch-style updates, deletion and policy-scoped reads.
type BillService struct {
	uow      billing.UnitOfWork
	repos    billing.Repositories
	notifier Notifier
	logger   *zap.Logger
}

// NewBillService creates a new BillService
func NewBillService(uow billing.UnitOfWork, repos billing.Repositories, notifier Notifier, logger *zap.Logger) *BillService {
	return &BillService{
		uow:      uow,
		repos:    repos,
		notifier: notifier,
		logger:   logger,
	}
}

// LineItemInput is one charge component in a bill payload
type LineItemInput struct {
	Key    string
	Label  string
	Amount decimal.Decimal
}

// ShareInput is one explicit share assignment in a bill payload
type ShareInput struct {
	UserID     uuid.UUID
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
}

// CreateBillInput carries the bill creation payload.
// Shares semantics: nil fans out equally to every resident, an empty
// slice creates no shares, a non-empty slice assigns exactly those.
type CreateBillInput struct {
	ForMonth             string
	DueDate              *time.Time
	PeriodStart          *time.Time
	PeriodEnd            *time.Time
	Status               *billing.BillStatus
	ElectricityUnits     decimal.Decimal
	ElectricityStartUnit *decimal.Decimal
	ElectricityEndUnit   *decimal.Decimal
	ElectricityRate      decimal.Decimal
	ElectricityBill      decimal.Decimal
	LineItems            []LineItemInput
	TotalDue             *decimal.Decimal
	ReturnedAmount       decimal.Decimal
	FinalTotal           *decimal.Decimal
	Notes                string
	Shares               *[]ShareInput
}

// UpdateBillInput carries a patch payload; nil fields are left alone.
// A present Shares key replaces all shares, where an empty slice fans
// out to residents again (unlike creation).
type UpdateBillInput struct {
	ForMonth             *string
	DueDate              *time.Time
	PeriodStart          *time.Time
	PeriodEnd            *time.Time
	Status               *billing.BillStatus
	ElectricityUnits     *decimal.Decimal
	ElectricityStartUnit *decimal.Decimal
	ElectricityEndUnit   *decimal.Decimal
	ElectricityRate      *decimal.Decimal
	ElectricityBill      *decimal.Decimal
	LineItems            *[]LineItemInput
	TotalDue             *decimal.Decimal
	ReturnedAmount       *decimal.Decimal
	FinalTotal           *decimal.Decimal
	Notes                *string
	Shares               *[]ShareInput
}

// ListBillsQuery filters the bill listing
type ListBillsQuery struct {
	Status   *billing.BillStatus
	ForMonth string
	Page     int
	PageSize int
	Sort     shared.Sort
}

// MonthYearOptions lists the selectable months and years for bill forms
type MonthYearOptions struct {
	Months []string
	Years  []int
}

func toDomainLineItems(inputs []LineItemInput) []billing.LineItem {
	items := make([]billing.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, billing.LineItem{Key: in.Key, Label: in.Label, Amount: in.Amount})
	}
	return items
}

// Create creates a bill with derived electricity charge, line items
// defaulted from settings, resolved shares and reconciled totals, all
// in one transaction. Shareholders with a linked Telegram chat are
// notified after the transaction commits.
func (s *BillService) Create(ctx context.Context, actor *identity.User, input CreateBillInput) (*billing.Bill, error) {
	if d := identity.Decide(actor, identity.ActionManageBill, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	var billID uuid.UUID
	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		items := billing.NormalizeLineItems(toDomainLineItems(input.LineItems))
		if len(items) == 0 {
			var err error
			items, err = lineItemsFromSettings(ctx, repos)
			if err != nil {
				return err
			}
		}

		charge := billing.ComputeElectricityCharge(billing.ElectricityParams{
			StartUnit: input.ElectricityStartUnit,
			EndUnit:   input.ElectricityEndUnit,
			Units:     input.ElectricityUnits,
			Rate:      input.ElectricityRate,
			Amount:    input.ElectricityBill,
		})
		items = billing.AppendElectricityLineItem(items, charge.Amount)

		bill, err := billing.NewBill(input.ForMonth, &actor.ID)
		if err != nil {
			return err
		}
		bill.SetDueDate(input.DueDate)
		if err := bill.SetPeriod(input.PeriodStart, input.PeriodEnd); err != nil {
			return err
		}
		if input.Status != nil {
			if err := bill.SetStatus(*input.Status); err != nil {
				return err
			}
		}
		if err := bill.SetNotes(input.Notes); err != nil {
			return err
		}
		if err := bill.SetElectricityReadings(input.ElectricityStartUnit, input.ElectricityEndUnit); err != nil {
			return err
		}
		if err := bill.SetElectricityRate(input.ElectricityRate); err != nil {
			return err
		}
		bill.ApplyElectricityCharge(charge)
		bill.ReplaceLineItems(items)

		totalDue := bill.LineItems.Total()
		if input.TotalDue != nil {
			totalDue = *input.TotalDue
		}
		returned := input.ReturnedAmount
		finalTotal := totalDue.Sub(returned)
		if finalTotal.IsNegative() {
			finalTotal = decimal.Zero
		}
		if input.FinalTotal != nil {
			finalTotal = *input.FinalTotal
		}
		if err := bill.SetTotals(totalDue, returned, finalTotal); err != nil {
			return err
		}
		bill.UpdatedBy = &actor.ID

		if err := repos.Bills.Create(ctx, bill); err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}

		// Shares omitted entirely: split among residents.
		// Shares explicitly empty: a bill without shares.
		if input.Shares == nil {
			if err := fanOutShares(ctx, repos, bill); err != nil {
				return err
			}
		} else if len(*input.Shares) > 0 {
			if err := createAssignedShares(ctx, repos, bill, *input.Shares); err != nil {
				return err
			}
		}

		billID = bill.ID
		return SyncBill(ctx, repos, bill)
	})
	if err != nil {
		return nil, err
	}

	bill, err := s.repos.Bills.FindByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload bill %s: %w", billID, err)
	}

	// Best-effort: notification problems never fail bill creation
	s.notifier.BillIssued(ctx, bill)

	s.logger.Info("Bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("reference", bill.Reference),
		zap.String("for_month", bill.ForMonth),
		zap.Int("shares", len(bill.Shares)))

	return bill, nil
}

// Update applies a patch to a bill inside one transaction, re-deriving
// the electricity charge and totals the same way creation does, and
// ends with a full reconciliation pass.
func (s *BillService) Update(ctx context.Context, actor *identity.User, billID uuid.UUID, input UpdateBillInput) (*billing.Bill, error) {
	if d := identity.Decide(actor, identity.ActionManageBill, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.Repositories) error {
		bill, err := repos.Bills.FindByID(ctx, billID)
		if err != nil {
			return err
		}

		if input.ForMonth != nil {
			if err := bill.SetForMonth(*input.ForMonth); err != nil {
				return err
			}
		}
		if input.DueDate != nil {
			bill.SetDueDate(input.DueDate)
		}
		if input.PeriodStart != nil || input.PeriodEnd != nil {
			start, end := bill.PeriodStart, bill.PeriodEnd
			if input.PeriodStart != nil {
				start = input.PeriodStart
			}
			if input.PeriodEnd != nil {
				end = input.PeriodEnd
			}
			if err := bill.SetPeriod(start, end); err != nil {
				return err
			}
		}
		if input.Status != nil {
			if err := bill.SetStatus(*input.Status); err != nil {
				return err
			}
		}
		if input.Notes != nil {
			if err := bill.SetNotes(*input.Notes); err != nil {
				return err
			}
		}

		if err := applyElectricityPatch(bill, input); err != nil {
			return err
		}

		itemsReplaced := false
		if input.LineItems != nil {
			bill.ReplaceLineItems(toDomainLineItems(*input.LineItems))
			itemsReplaced = true
		}

		totalDue := bill.TotalDue
		totalsTouched := false
		if input.TotalDue != nil {
			totalDue = *input.TotalDue
			totalsTouched = true
		} else if itemsReplaced {
			totalDue = bill.LineItems.Total()
			totalsTouched = true
		}
		returned := bill.ReturnedAmount
		if input.ReturnedAmount != nil {
			returned = *input.ReturnedAmount
			totalsTouched = true
		}
		finalTotal := bill.FinalTotal
		if input.FinalTotal != nil {
			finalTotal = *input.FinalTotal
		} else if totalsTouched {
			finalTotal = totalDue.Sub(returned)
			if finalTotal.IsNegative() {
				finalTotal = decimal.Zero
			}
		}
		if err := bill.SetTotals(totalDue, returned, finalTotal); err != nil {
			return err
		}
		bill.UpdatedBy = &actor.ID

		if err := repos.Bills.Update(ctx, bill); err != nil {
			return fmt.Errorf("failed to update bill %s: %w", bill.ID, err)
		}

		// A present shares key replaces the allocation wholesale; an
		// empty list falls back to the resident fan-out.
		if input.Shares != nil {
			if err := repos.Shares.DeleteByBillID(ctx, bill.ID); err != nil {
				return fmt.Errorf("failed to clear shares for bill %s: %w", bill.ID, err)
			}
			if len(*input.Shares) == 0 {
				if err := fanOutShares(ctx, repos, bill); err != nil {
					return err
				}
			} else {
				if err := createAssignedShares(ctx, repos, bill, *input.Shares); err != nil {
					return err
				}
			}
		}

		return SyncBill(ctx, repos, bill)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.Bills.FindByID(ctx, billID)
}

// applyElectricityPatch mirrors the creation-time derivation for patch
// payloads: both meter readings present re-derives with the metered
// formula, otherwise a touched units or rate re-derives units * rate
// using stored values for whichever side is missing.
func applyElectricityPatch(bill *billing.Bill, input UpdateBillInput) error {
	if input.ElectricityStartUnit != nil || input.ElectricityEndUnit != nil {
		start, end := bill.ElectricityStartUnit, bill.ElectricityEndUnit
		if input.ElectricityStartUnit != nil {
			start = input.ElectricityStartUnit
		}
		if input.ElectricityEndUnit != nil {
			end = input.ElectricityEndUnit
		}
		if err := bill.SetElectricityReadings(start, end); err != nil {
			return err
		}
	}

	if input.ElectricityRate != nil {
		if err := bill.SetElectricityRate(*input.ElectricityRate); err != nil {
			return err
		}
	}

	switch {
	case input.ElectricityStartUnit != nil && input.ElectricityEndUnit != nil:
		charge := billing.ComputeElectricityCharge(billing.ElectricityParams{
			StartUnit: bill.ElectricityStartUnit,
			EndUnit:   bill.ElectricityEndUnit,
		})
		bill.ApplyElectricityCharge(charge)

	case input.ElectricityUnits != nil || input.ElectricityRate != nil:
		units := bill.ElectricityUnits
		if input.ElectricityUnits != nil {
			units = *input.ElectricityUnits
		}
		if units.IsNegative() {
			return shared.NewDomainError("INVALID_ELECTRICITY_UNIT", "Electricity units cannot be negative")
		}
		bill.ApplyElectricityCharge(billing.ElectricityCharge{
			Units:  units,
			Amount: units.Mul(bill.ElectricityRate).Round(2),
		})

	case input.ElectricityBill != nil:
		if input.ElectricityBill.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Electricity bill cannot be negative")
		}
		bill.ApplyElectricityCharge(billing.ElectricityCharge{
			Units:  bill.ElectricityUnits,
			Amount: input.ElectricityBill.Round(2),
		})
	}

	return nil
}

// Delete soft-deletes a bill; its shares and their payments go with it
func (s *BillService) Delete(ctx context.Context, actor *identity.User, billID uuid.UUID) error {
	if d := identity.Decide(actor, identity.ActionManageBill, uuid.Nil); !d.Allowed {
		return shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	if err := s.repos.Bills.Delete(ctx, billID); err != nil {
		return err
	}

	s.logger.Info("Bill deleted", zap.String("bill_id", billID.String()))
	return nil
}

// List returns bills visible to the actor. Admins see everything with
// optional filters; residents only see bills they hold a share in.
func (s *BillService) List(ctx context.Context, actor *identity.User, query ListBillsQuery) ([]*billing.Bill, int64, error) {
	if d := identity.Decide(actor, identity.ActionViewBill, actor.ID); !d.Allowed {
		return nil, 0, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	filter := billing.BillFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Sort:     query.Sort,
	}
	if actor.IsAdmin() {
		filter.Status = query.Status
		filter.ForMonth = query.ForMonth
	} else {
		filter.UserID = &actor.ID
	}

	return s.repos.Bills.FindAll(ctx, filter)
}

// Get loads one bill. Residents must hold a share in it and only get
// their own share back.
func (s *BillService) Get(ctx context.Context, actor *identity.User, billID uuid.UUID) (*billing.Bill, error) {
	bill, err := s.repos.Bills.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if actor != nil && actor.IsAdmin() {
		return bill, nil
	}

	var owner uuid.UUID
	var own *billing.BillShare
	if actor != nil {
		if own = bill.ShareForUser(actor.ID); own != nil {
			owner = actor.ID
		}
	}
	if d := identity.Decide(actor, identity.ActionViewBill, owner); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", "You do not have access to this bill.")
	}

	bill.Shares = []*billing.BillShare{own}
	return bill, nil
}

// MonthYearOptions returns the selectable months plus the union of
// years bills exist in and the current year plus/minus two, descending.
func (s *BillService) MonthYearOptions(ctx context.Context) (MonthYearOptions, error) {
	years, err := s.repos.Bills.DistinctYears(ctx)
	if err != nil {
		return MonthYearOptions{}, fmt.Errorf("failed to load bill years: %w", err)
	}

	current := time.Now().Year()
	seen := make(map[int]bool)
	for _, y := range years {
		seen[y] = true
	}
	for y := current - 2; y <= current+2; y++ {
		seen[y] = true
	}

	merged := make([]int, 0, len(seen))
	for y := range seen {
		merged = append(merged, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(merged)))

	return MonthYearOptions{
		Months: append([]string(nil), billing.MonthNames...),
		Years:  merged,
	}, nil
}

// lineItemsFromSettings builds default line items from every billing
// setting carrying a positive amount
func lineItemsFromSettings(ctx context.Context, repos billing.Repositories) (billing.LineItems, error) {
	settings, err := repos.Settings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing settings: %w", err)
	}

	items := billing.LineItems{}
	for _, setting := range settings {
		if !setting.Amount.IsPositive() {
			continue
		}
		items = append(items, billing.LineItem{
			Key:    setting.Key,
			Label:  setting.Label,
			Amount: setting.Amount,
		})
	}
	return items, nil
}

// fanOutShares splits the bill's final total equally across every
// resident, rounded to two places; zero when there is nothing to split
func fanOutShares(ctx context.Context, repos billing.Repositories, bill *billing.Bill) error {
	residents, err := repos.Users.FindResidents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load residents: %w", err)
	}

	perPerson := decimal.Zero
	if bill.FinalTotal.IsPositive() && len(residents) > 0 {
		perPerson = bill.FinalTotal.Div(decimal.NewFromInt(int64(len(residents)))).Round(2)
	}

	for _, resident := range residents {
		share, err := billing.NewBillShare(bill.ID, resident.ID, perPerson)
		if err != nil {
			return err
		}
		if err := repos.Shares.Create(ctx, share); err != nil {
			return fmt.Errorf("failed to create share for user %s: %w", resident.ID, err)
		}
	}
	return nil
}

// createAssignedShares creates the explicitly requested shares after
// verifying every target user is a resident
func createAssignedShares(ctx context.Context, repos billing.Repositories, bill *billing.Bill, inputs []ShareInput) error {
	for _, in := range inputs {
		user, err := repos.Users.FindByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if err := billing.ValidateShareholder(user); err != nil {
			return err
		}

		share, err := billing.NewBillShare(bill.ID, in.UserID, in.AmountDue)
		if err != nil {
			return err
		}
		if in.AmountPaid.IsPositive() {
			if err := share.SetAmounts(share.AmountDue, in.AmountPaid); err != nil {
				return err
			}
		}
		if err := repos.Shares.Create(ctx, share); err != nil {
			return fmt.Errorf("failed to create share for user %s: %w", in.UserID, err)
		}
	}
	return nil
}
