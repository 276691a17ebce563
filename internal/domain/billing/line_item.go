package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LineItem is one named charge component of a bill
type LineItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// LineItems is stored as a JSONB column on the bill
type LineItems []LineItem

// Value implements driver.Valuer for database storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database retrieval
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}

	return json.Unmarshal(data, l)
}

// Total returns the sum of all line item amounts
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Amount)
	}
	return total
}

// HasKey reports whether any item carries the given key
func (l LineItems) HasKey(key string) bool {
	for _, item := range l {
		if item.Key == key {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// Headline converts a setting key like "service_charge" into a
// display label like "Service Charge"
func Headline(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// NormalizeLineItems rounds amounts to 2 decimals, defaults missing labels
// from the key and silently drops items with an empty key or a non-positive
// amount. Dropping is not an error.
func NormalizeLineItems(items []LineItem) LineItems {
	normalized := make(LineItems, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.Key)
		if key == "" {
			continue
		}
		amount := item.Amount.Round(2)
		if !amount.IsPositive() {
			continue
		}
		label := strings.TrimSpace(item.Label)
		if label == "" {
			label = Headline(key)
		}
		normalized = append(normalized, LineItem{
			Key:    key,
			Label:  label,
			Amount: amount,
		})
	}
	return normalized
}
