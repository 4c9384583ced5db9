package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Anything other than desc means ASC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort column against a whitelist so
// caller-supplied ordering never reaches the SQL string. Unknown or
// empty input falls back to defaultField.
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

// ThirdPartySortFields contains allowed sort columns for third parties
var ThirdPartySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"document":   true,
	"email":      true,
	"is_active":  true,
}

// ItemSortFields contains allowed sort columns for inventory items
var ItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"unit":       true,
}

// OrderSortFields contains allowed sort columns for orders
var OrderSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"code":              true,
	"client_id":         true,
	"status":            true,
	"promised_delivery": true,
	"quote_expiry":      true,
}
