package inventory

import (
	"strings"

	"github.com/garment/backend/internal/domain/shared"
)

// Item is a stocked material or garment reference
type Item struct {
	shared.BaseEntity
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(200);not null"`
	Unit        string `gorm:"type:varchar(20);not null;default:'UND'"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates an inventory item
func NewItem(code, name, unit string) (*Item, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("Item code cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Item name cannot be empty")
	}
	unit = strings.ToUpper(strings.TrimSpace(unit))
	if unit == "" {
		unit = "UND"
	}

	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Unit:       unit,
	}, nil
}
