package persistence

import (
	"strings"

	"github.com/housebill/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns the defaultDir if the input is empty, and "DESC" if it is invalid.
func ValidateSortOrder(orderDir, defaultDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "" {
		return strings.ToUpper(defaultDir)
	}
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds a validated ORDER BY expression from a requested sort
func orderClause(sort shared.Sort, allowedFields map[string]bool, defaultField, defaultDir string) string {
	field := ValidateSortField(sort.OrderBy, allowedFields, defaultField)
	return field + " " + ValidateSortOrder(sort.OrderDir, defaultDir)
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"role":          true,
	"last_login_at": true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"reference":   true,
	"for_month":   true,
	"due_date":    true,
	"status":      true,
	"total_due":   true,
	"final_total": true,
}
