package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/housebill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SettingMetadata is a free-form JSONB map attached to a billing setting
type SettingMetadata map[string]interface{}

// Value implements driver.Valuer for database storage
func (m SettingMetadata) Value() (driver.Value, error) {
	if m == nil {
		m = SettingMetadata{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *SettingMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = SettingMetadata{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SettingMetadata", value)
	}

	return json.Unmarshal(data, m)
}

// Label returns the label stored in metadata, if any
func (m SettingMetadata) Label() string {
	if m == nil {
		return ""
	}
	if label, ok := m["label"].(string); ok {
		return strings.TrimSpace(label)
	}
	return ""
}

// BillingSetting is a default charge amount keyed by utility name,
// used to pre-fill line items on new bills
type BillingSetting struct {
	shared.BaseEntity
	Key      string
	Label    string
	Amount   decimal.Decimal
	Metadata SettingMetadata
}

// NewBillingSetting creates a setting; the label falls back to the
// metadata label and then to a headline-cased key
func NewBillingSetting(key string, amount decimal.Decimal, metadata SettingMetadata) (*BillingSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot be empty")
	}
	if len(key) > 100 {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot exceed 100 characters")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Setting amount cannot be negative")
	}
	if metadata == nil {
		metadata = SettingMetadata{}
	}

	label := metadata.Label()
	if label == "" {
		label = Headline(key)
	}

	return &BillingSetting{
		BaseEntity: shared.NewBaseEntity(),
		Key:        key,
		Label:      label,
		Amount:     amount.Round(2),
		Metadata:   metadata,
	}, nil
}

// Update overwrites the amount and metadata, re-deriving the label
func (s *BillingSetting) Update(amount decimal.Decimal, metadata SettingMetadata) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Setting amount cannot be negative")
	}
	if metadata == nil {
		metadata = SettingMetadata{}
	}

	label := metadata.Label()
	if label == "" {
		label = Headline(s.Key)
	}

	s.Amount = amount.Round(2)
	s.Metadata = metadata
	s.Label = label
	return nil
}
