package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dp(value string) *decimal.Decimal {
	v := decimal.RequireFromString(value)
	return &v
}

func TestComputeElectricityCharge(t *testing.T) {
	tests := []struct {
		name       string
		params     ElectricityParams
		wantUnits  string
		wantAmount string
	}{
		{
			name:       "metered formula from readings",
			params:     ElectricityParams{StartUnit: dp("100"), EndUnit: dp("150")},
			wantUnits:  "50",
			wantAmount: "250.00",
		},
		{
			name:       "meter rollback clamps to zero",
			params:     ElectricityParams{StartUnit: dp("150"), EndUnit: dp("100")},
			wantUnits:  "0",
			wantAmount: "0",
		},
		{
			name: "metered formula wins over rate",
			params: ElectricityParams{
				StartUnit: dp("0"), EndUnit: dp("10"),
				Rate: d("99"),
			},
			wantUnits:  "10",
			wantAmount: "50.00",
		},
		{
			name:       "fallback units times rate",
			params:     ElectricityParams{Units: d("30"), Rate: d("7.5")},
			wantUnits:  "30",
			wantAmount: "225.00",
		},
		{
			name:       "explicit amount suppresses fallback",
			params:     ElectricityParams{Units: d("30"), Rate: d("7.5"), Amount: d("100")},
			wantUnits:  "30",
			wantAmount: "100",
		},
		{
			name:       "no data yields zero charge",
			params:     ElectricityParams{},
			wantUnits:  "0",
			wantAmount: "0",
		},
		{
			name:       "units without rate pass through",
			params:     ElectricityParams{Units: d("30")},
			wantUnits:  "30",
			wantAmount: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeElectricityCharge(tt.params)
			assert.True(t, got.Units.Equal(d(tt.wantUnits)), "units: got %s want %s", got.Units, tt.wantUnits)
			assert.True(t, got.Amount.Equal(d(tt.wantAmount)), "amount: got %s want %s", got.Amount, tt.wantAmount)
		})
	}
}

func TestAppendElectricityLineItem(t *testing.T) {
	t.Run("appends synthetic item for positive charge", func(t *testing.T) {
		items := AppendElectricityLineItem(LineItems{{Key: "water", Label: "Water", Amount: d("100")}}, d("250"))
		assert.Len(t, items, 2)
		assert.Equal(t, ElectricityKey, items[1].Key)
		assert.Equal(t, "Electricity", items[1].Label)
		assert.True(t, items[1].Amount.Equal(d("250")))
	})

	t.Run("skips when caller already supplied electricity", func(t *testing.T) {
		existing := LineItems{{Key: ElectricityKey, Label: "Electricity", Amount: d("300")}}
		items := AppendElectricityLineItem(existing, d("250"))
		assert.Len(t, items, 1)
		assert.True(t, items[0].Amount.Equal(d("300")))
	})

	t.Run("skips zero charge", func(t *testing.T) {
		items := AppendElectricityLineItem(LineItems{}, decimal.Zero)
		assert.Empty(t, items)
	})
}
