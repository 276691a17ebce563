package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MonthNames are the accepted month values for electricity readings
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// IsValidMonth checks the month against the twelve accepted names
func IsValidMonth(month string) bool {
	for _, m := range MonthNames {
		if m == month {
			return true
		}
	}
	return false
}

// minReadingYear is the earliest year a reading can be recorded for
const minReadingYear = 2000

// ElectricityReading is the meter log for one month, unique per (month, year)
type ElectricityReading struct {
	shared.BaseEntity
	Month      string
	Year       int
	StartUnit  int64
	EndUnit    *int64
	RecordedBy *uuid.UUID
}

// NewElectricityReading creates a meter reading entry
func NewElectricityReading(month string, year int, startUnit int64, endUnit *int64, recordedBy *uuid.UUID) (*ElectricityReading, error) {
	month = strings.TrimSpace(month)
	if !IsValidMonth(month) {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be a full English month name")
	}
	if year < minReadingYear {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year must be 2000 or later")
	}
	if startUnit < 0 {
		return nil, shared.NewDomainError("INVALID_START_UNIT", "Start unit cannot be negative")
	}
	if endUnit != nil && *endUnit < startUnit {
		return nil, shared.NewDomainError("INVALID_END_UNIT", "End unit must be greater than or equal to start unit.")
	}

	return &ElectricityReading{
		BaseEntity: shared.NewBaseEntity(),
		Month:      month,
		Year:       year,
		StartUnit:  startUnit,
		EndUnit:    endUnit,
		RecordedBy: recordedBy,
	}, nil
}

// SetMonthYear moves the reading to a different month slot
func (r *ElectricityReading) SetMonthYear(month string, year int) error {
	month = strings.TrimSpace(month)
	if !IsValidMonth(month) {
		return shared.NewDomainError("INVALID_MONTH", "Month must be a full English month name")
	}
	if year < minReadingYear {
		return shared.NewDomainError("INVALID_YEAR", "Year must be 2000 or later")
	}
	r.Month = month
	r.Year = year
	r.UpdatedAt = time.Now()
	return nil
}

// SetUnits updates the meter readings
func (r *ElectricityReading) SetUnits(startUnit int64, endUnit *int64) error {
	if startUnit < 0 {
		return shared.NewDomainError("INVALID_START_UNIT", "Start unit cannot be negative")
	}
	if endUnit != nil && *endUnit < startUnit {
		return shared.NewDomainError("INVALID_END_UNIT", "End unit must be greater than or equal to start unit.")
	}
	r.StartUnit = startUnit
	r.EndUnit = endUnit
	r.UpdatedAt = time.Now()
	return nil
}

// Units returns the consumed units, zero while the end reading is missing
func (r *ElectricityReading) Units() int64 {
	if r.EndUnit == nil {
		return 0
	}
	units := *r.EndUnit - r.StartUnit
	if units < 0 {
		return 0
	}
	return units
}

// StartUnitDecimal returns the start reading as a decimal for bill prefill
func (r *ElectricityReading) StartUnitDecimal() decimal.Decimal {
	return decimal.NewFromInt(r.StartUnit)
}

// EndUnitDecimal returns the end reading as a decimal, or nil when missing
func (r *ElectricityReading) EndUnitDecimal() *decimal.Decimal {
	if r.EndUnit == nil {
		return nil
	}
	d := decimal.NewFromInt(*r.EndUnit)
	return &d
}
