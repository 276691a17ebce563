package dto

import (
	"time"

	"github.com/housebill/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// SettingPayload is one setting in a bulk upsert payload
type SettingPayload struct {
	Key      string                 `json:"key" binding:"required"`
	Amount   decimal.Decimal        `json:"amount"`
	Metadata map[string]interface{} `json:"metadata"`
}

// BulkUpsertSettingsRequest replaces settings by key, atomically
type BulkUpsertSettingsRequest struct {
	Settings []SettingPayload `json:"settings" binding:"required,dive"`
}

// SettingResponse is one default charge template
type SettingResponse struct {
	ID        string                 `json:"id"`
	Key       string                 `json:"key"`
	Label     string                 `json:"label"`
	Amount    decimal.Decimal        `json:"amount"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// NewSettingResponse converts a setting to its response form
func NewSettingResponse(setting *billing.BillingSetting) SettingResponse {
	return SettingResponse{
		ID:        setting.ID.String(),
		Key:       setting.Key,
		Label:     setting.Label,
		Amount:    setting.Amount,
		Metadata:  setting.Metadata,
		UpdatedAt: setting.UpdatedAt,
	}
}

// NewSettingResponseList converts a slice of settings
func NewSettingResponseList(settings []*billing.BillingSetting) []SettingResponse {
	out := make([]SettingResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, NewSettingResponse(s))
	}
	return out
}
