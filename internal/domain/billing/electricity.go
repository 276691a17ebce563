package billing

import (
	"github.com/shopspring/decimal"
)

// ElectricityKey is the line item key reserved for the electricity charge
const ElectricityKey = "electricity"

// meterChargeNumerator and meterChargeDenominator encode the metered
// formula amount = units * 10 / 2, i.e. 5 currency units per consumed unit.
// The formula always wins over the configurable rate when both meter
// readings are supplied; the rate is a fallback only.
var (
	meterChargeNumerator   = decimal.NewFromInt(10)
	meterChargeDenominator = decimal.NewFromInt(2)
)

// ElectricityParams carries the electricity fields of a bill payload
type ElectricityParams struct {
	StartUnit *decimal.Decimal
	EndUnit   *decimal.Decimal
	Units     decimal.Decimal
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}

// ElectricityCharge is the derived consumption and billable amount
type ElectricityCharge struct {
	Units  decimal.Decimal
	Amount decimal.Decimal
}

// ComputeElectricityCharge converts meter readings into a billable amount.
// With both readings present: units = max(0, end - start) and the metered
// formula applies regardless of rate. Without readings, units * rate is
// used only when no explicit amount was supplied and both are positive.
// Otherwise the supplied values pass through unchanged.
func ComputeElectricityCharge(p ElectricityParams) ElectricityCharge {
	if p.StartUnit != nil && p.EndUnit != nil {
		units := p.EndUnit.Sub(*p.StartUnit)
		if units.IsNegative() {
			units = decimal.Zero
		}
		amount := units.Mul(meterChargeNumerator).Div(meterChargeDenominator).Round(2)
		return ElectricityCharge{Units: units, Amount: amount}
	}

	if p.Amount.IsZero() && p.Units.IsPositive() && p.Rate.IsPositive() {
		return ElectricityCharge{
			Units:  p.Units,
			Amount: p.Units.Mul(p.Rate).Round(2),
		}
	}

	return ElectricityCharge{Units: p.Units, Amount: p.Amount}
}

// AppendElectricityLineItem appends a synthetic electricity line item when
// the charge is positive and the caller did not already include one, so the
// charge is never double counted.
func AppendElectricityLineItem(items LineItems, amount decimal.Decimal) LineItems {
	if !amount.IsPositive() || items.HasKey(ElectricityKey) {
		return items
	}
	return append(items, LineItem{
		Key:    ElectricityKey,
		Label:  "Electricity",
		Amount: amount.Round(2),
	})
}
