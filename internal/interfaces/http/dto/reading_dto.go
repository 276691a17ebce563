package dto

import (
	"time"

	"github.com/housebill/backend/internal/domain/billing"
)

// CreateReadingRequest carries a meter reading creation payload
type CreateReadingRequest struct {
	Month     string `json:"month" binding:"required"`
	Year      int    `json:"year" binding:"required"`
	StartUnit int64  `json:"start_unit"`
	EndUnit   *int64 `json:"end_unit"`
}

// UpdateReadingRequest carries a reading patch; absent fields are left alone
type UpdateReadingRequest struct {
	Month     *string `json:"month"`
	Year      *int    `json:"year"`
	StartUnit *int64  `json:"start_unit"`
	EndUnit   *int64  `json:"end_unit"`
}

// ByMonthYearRequest selects a reading slot
type ByMonthYearRequest struct {
	Month string `form:"month" binding:"required"`
	Year  int    `form:"year" binding:"required"`
}

// ReadingResponse is one monthly meter reading
type ReadingResponse struct {
	ID         string    `json:"id"`
	Month      string    `json:"month"`
	Year       int       `json:"year"`
	StartUnit  int64     `json:"start_unit"`
	EndUnit    *int64    `json:"end_unit,omitempty"`
	Units      int64     `json:"units"`
	RecordedBy *string   `json:"recorded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewReadingResponse converts a reading to its response form
func NewReadingResponse(reading *billing.ElectricityReading) ReadingResponse {
	resp := ReadingResponse{
		ID:        reading.ID.String(),
		Month:     reading.Month,
		Year:      reading.Year,
		StartUnit: reading.StartUnit,
		EndUnit:   reading.EndUnit,
		Units:     reading.Units(),
		CreatedAt: reading.CreatedAt,
		UpdatedAt: reading.UpdatedAt,
	}
	if reading.RecordedBy != nil {
		id := reading.RecordedBy.String()
		resp.RecordedBy = &id
	}
	return resp
}

// NewReadingResponseList converts a slice of readings
func NewReadingResponseList(readings []*billing.ElectricityReading) []ReadingResponse {
	out := make([]ReadingResponse, 0, len(readings))
	for _, r := range readings {
		out = append(out, NewReadingResponse(r))
	}
	return out
}
