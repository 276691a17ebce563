package dto

import (
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/shopspring/decimal"
)

// DashboardTotalsResponse are the money headlines of the dashboard
type DashboardTotalsResponse struct {
	TotalDue         decimal.Decimal `json:"total_due"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// CurrencyResponse tells clients how to render amounts
type CurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// DashboardResponse is the aggregated landing-page payload
type DashboardResponse struct {
	Totals      DashboardTotalsResponse `json:"totals"`
	LatestBills []BillResponse          `json:"latest_bills"`
	Settings    []SettingResponse       `json:"settings"`
	Currency    CurrencyResponse        `json:"currency"`
}

// NewDashboardResponse converts the dashboard aggregate to its response form
func NewDashboardResponse(dashboard *appbilling.Dashboard, currency CurrencyResponse) DashboardResponse {
	return DashboardResponse{
		Totals: DashboardTotalsResponse{
			TotalDue:         dashboard.Totals.TotalDue,
			TotalPaid:        dashboard.Totals.TotalPaid,
			TotalOutstanding: dashboard.Totals.TotalOutstanding,
		},
		LatestBills: NewBillResponseList(dashboard.LatestBills),
		Settings:    NewSettingResponseList(dashboard.Settings),
		Currency:    currency,
	}
}
