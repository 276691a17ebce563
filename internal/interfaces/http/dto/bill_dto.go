package dto

import (
	"time"

	"github.com/google/uuid"
	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// LineItemPayload is one charge component in a bill payload
type LineItemPayload struct {
	Key    string          `json:"key" binding:"required"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SharePayload is one explicit share assignment in a bill payload
type SharePayload struct {
	UserID     uuid.UUID       `json:"user_id" binding:"required"`
	AmountDue  decimal.Decimal `json:"amount_due"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// CreateBillRequest carries the bill creation payload. An absent
// shares key splits the bill equally across residents; an empty array
// creates no shares; a non-empty array assigns exactly those shares.
type CreateBillRequest struct {
	ForMonth             string            `json:"for_month" binding:"required"`
	DueDate              *time.Time        `json:"due_date"`
	PeriodStart          *time.Time        `json:"period_start"`
	PeriodEnd            *time.Time        `json:"period_end"`
	Status               *string           `json:"status"`
	ElectricityUnits     decimal.Decimal   `json:"electricity_units"`
	ElectricityStartUnit *decimal.Decimal  `json:"electricity_start_unit"`
	ElectricityEndUnit   *decimal.Decimal  `json:"electricity_end_unit"`
	ElectricityRate      decimal.Decimal   `json:"electricity_rate"`
	ElectricityBill      decimal.Decimal   `json:"electricity_bill"`
	LineItems            []LineItemPayload `json:"line_items"`
	TotalDue             *decimal.Decimal  `json:"total_due"`
	ReturnedAmount       decimal.Decimal   `json:"returned_amount"`
	FinalTotal           *decimal.Decimal  `json:"final_total"`
	Notes                string            `json:"notes"`
	Shares               *[]SharePayload   `json:"shares"`
}

// UpdateBillRequest carries a bill patch; absent fields are left
// alone. A present shares key replaces all shares, where an empty
// array splits the bill across residents again.
type UpdateBillRequest struct {
	ForMonth             *string            `json:"for_month"`
	DueDate              *time.Time         `json:"due_date"`
	PeriodStart          *time.Time         `json:"period_start"`
	PeriodEnd            *time.Time         `json:"period_end"`
	Status               *string            `json:"status"`
	ElectricityUnits     *decimal.Decimal   `json:"electricity_units"`
	ElectricityStartUnit *decimal.Decimal   `json:"electricity_start_unit"`
	ElectricityEndUnit   *decimal.Decimal   `json:"electricity_end_unit"`
	ElectricityRate      *decimal.Decimal   `json:"electricity_rate"`
	ElectricityBill      *decimal.Decimal   `json:"electricity_bill"`
	LineItems            *[]LineItemPayload `json:"line_items"`
	TotalDue             *decimal.Decimal   `json:"total_due"`
	ReturnedAmount       *decimal.Decimal   `json:"returned_amount"`
	FinalTotal           *decimal.Decimal   `json:"final_total"`
	Notes                *string            `json:"notes"`
	Shares               *[]SharePayload    `json:"shares"`
}

// ListBillsRequest filters the bill listing
type ListBillsRequest struct {
	ListRequest
	Status   string `form:"status"`
	ForMonth string `form:"for_month"`
}

func toLineItemInputs(payloads []LineItemPayload) []appbilling.LineItemInput {
	items := make([]appbilling.LineItemInput, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, appbilling.LineItemInput{Key: p.Key, Label: p.Label, Amount: p.Amount})
	}
	return items
}

func toShareInputs(payloads *[]SharePayload) *[]appbilling.ShareInput {
	if payloads == nil {
		return nil
	}
	shares := make([]appbilling.ShareInput, 0, len(*payloads))
	for _, p := range *payloads {
		shares = append(shares, appbilling.ShareInput{
			UserID:     p.UserID,
			AmountDue:  p.AmountDue,
			AmountPaid: p.AmountPaid,
		})
	}
	return &shares
}

func toBillStatus(status *string) *billing.BillStatus {
	if status == nil {
		return nil
	}
	s := billing.BillStatus(*status)
	return &s
}

// ToInput converts the request to the application payload
func (r CreateBillRequest) ToInput() appbilling.CreateBillInput {
	return appbilling.CreateBillInput{
		ForMonth:             r.ForMonth,
		DueDate:              r.DueDate,
		PeriodStart:          r.PeriodStart,
		PeriodEnd:            r.PeriodEnd,
		Status:               toBillStatus(r.Status),
		ElectricityUnits:     r.ElectricityUnits,
		ElectricityStartUnit: r.ElectricityStartUnit,
		ElectricityEndUnit:   r.ElectricityEndUnit,
		ElectricityRate:      r.ElectricityRate,
		ElectricityBill:      r.ElectricityBill,
		LineItems:            toLineItemInputs(r.LineItems),
		TotalDue:             r.TotalDue,
		ReturnedAmount:       r.ReturnedAmount,
		FinalTotal:           r.FinalTotal,
		Notes:                r.Notes,
		Shares:               toShareInputs(r.Shares),
	}
}

// ToInput converts the request to the application payload
func (r UpdateBillRequest) ToInput() appbilling.UpdateBillInput {
	input := appbilling.UpdateBillInput{
		ForMonth:             r.ForMonth,
		DueDate:              r.DueDate,
		PeriodStart:          r.PeriodStart,
		PeriodEnd:            r.PeriodEnd,
		Status:               toBillStatus(r.Status),
		ElectricityUnits:     r.ElectricityUnits,
		ElectricityStartUnit: r.ElectricityStartUnit,
		ElectricityEndUnit:   r.ElectricityEndUnit,
		ElectricityRate:      r.ElectricityRate,
		ElectricityBill:      r.ElectricityBill,
		TotalDue:             r.TotalDue,
		ReturnedAmount:       r.ReturnedAmount,
		FinalTotal:           r.FinalTotal,
		Notes:                r.Notes,
		Shares:               toShareInputs(r.Shares),
	}
	if r.LineItems != nil {
		items := toLineItemInputs(*r.LineItems)
		input.LineItems = &items
	}
	return input
}

// LineItemResponse is one charge component of a bill
type LineItemResponse struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BillResponse is the full bill view including its shares
type BillResponse struct {
	ID                   string             `json:"id"`
	Reference            string             `json:"reference"`
	ForMonth             string             `json:"for_month"`
	DueDate              *time.Time         `json:"due_date,omitempty"`
	PeriodStart          *time.Time         `json:"period_start,omitempty"`
	PeriodEnd            *time.Time         `json:"period_end,omitempty"`
	Status               string             `json:"status"`
	StatusLabel          string             `json:"status_label"`
	ElectricityUnits     decimal.Decimal    `json:"electricity_units"`
	ElectricityStartUnit *decimal.Decimal   `json:"electricity_start_unit,omitempty"`
	ElectricityEndUnit   *decimal.Decimal   `json:"electricity_end_unit,omitempty"`
	ElectricityRate      decimal.Decimal    `json:"electricity_rate"`
	ElectricityBill      decimal.Decimal    `json:"electricity_bill"`
	LineItems            []LineItemResponse `json:"line_items"`
	TotalDue             decimal.Decimal    `json:"total_due"`
	ReturnedAmount       decimal.Decimal    `json:"returned_amount"`
	FinalTotal           decimal.Decimal    `json:"final_total"`
	Notes                string             `json:"notes,omitempty"`
	Shares               []ShareResponse    `json:"shares"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// NewBillResponse converts a bill to its response form
func NewBillResponse(bill *billing.Bill) BillResponse {
	items := make([]LineItemResponse, 0, len(bill.LineItems))
	for _, item := range bill.LineItems {
		items = append(items, LineItemResponse{Key: item.Key, Label: item.Label, Amount: item.Amount})
	}
	shares := make([]ShareResponse, 0, len(bill.Shares))
	for _, share := range bill.Shares {
		shares = append(shares, NewShareResponse(share))
	}
	return BillResponse{
		ID:                   bill.ID.String(),
		Reference:            bill.Reference,
		ForMonth:             bill.ForMonth,
		DueDate:              bill.DueDate,
		PeriodStart:          bill.PeriodStart,
		PeriodEnd:            bill.PeriodEnd,
		Status:               bill.Status.String(),
		StatusLabel:          bill.Status.Label(),
		ElectricityUnits:     bill.ElectricityUnits,
		ElectricityStartUnit: bill.ElectricityStartUnit,
		ElectricityEndUnit:   bill.ElectricityEndUnit,
		ElectricityRate:      bill.ElectricityRate,
		ElectricityBill:      bill.ElectricityBill,
		LineItems:            items,
		TotalDue:             bill.TotalDue,
		ReturnedAmount:       bill.ReturnedAmount,
		FinalTotal:           bill.FinalTotal,
		Notes:                bill.Notes,
		Shares:               shares,
		CreatedAt:            bill.CreatedAt,
		UpdatedAt:            bill.UpdatedAt,
	}
}

// NewBillResponseList converts a slice of bills
func NewBillResponseList(bills []*billing.Bill) []BillResponse {
	out := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, NewBillResponse(b))
	}
	return out
}

// MonthYearOptionsResponse lists the selectable months and years for
// bill and reading forms
type MonthYearOptionsResponse struct {
	Months []string `json:"months"`
	Years  []int    `json:"years"`
}
