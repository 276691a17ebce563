package billing

import (
	"context"
	"fmt"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// DashboardTotals are the money headlines of the dashboard
type DashboardTotals struct {
	TotalDue         decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalOutstanding decimal.Decimal
}

// Dashboard is the aggregated landing-page payload
type Dashboard struct {
	Totals      DashboardTotals
	LatestBills []*billing.Bill
	Settings    []*billing.BillingSetting
}

// DashboardService aggregates the landing-page numbers. Admins see
// household-wide totals; residents only their own shares and bills.
type DashboardService struct {
	repos billing.Repositories
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repos billing.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

const latestBillCount = 5

// Load builds the dashboard for the actor
func (s *DashboardService) Load(ctx context.Context, actor *identity.User) (*Dashboard, error) {
	var scope *identity.User
	if actor != nil && !actor.IsAdmin() {
		scope = actor
	}

	var due, paid decimal.Decimal
	var err error
	if scope != nil {
		due, paid, err = s.repos.Shares.Totals(ctx, &scope.ID)
	} else {
		due, paid, err = s.repos.Shares.Totals(ctx, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sum share totals: %w", err)
	}

	outstanding := due.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	var latest []*billing.Bill
	if scope != nil {
		latest, _, err = s.repos.Bills.FindAll(ctx, billing.BillFilter{
			UserID:   &scope.ID,
			Page:     1,
			PageSize: latestBillCount,
		})
	} else {
		latest, err = s.repos.Bills.FindLatest(ctx, latestBillCount)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest bills: %w", err)
	}

	settings, err := s.repos.Settings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &Dashboard{
		Totals: DashboardTotals{
			TotalDue:         due.Round(2),
			TotalPaid:        paid.Round(2),
			TotalOutstanding: outstanding.Round(2),
		},
		LatestBills: latest,
		Settings:    settings,
	}, nil
}
