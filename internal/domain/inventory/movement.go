package inventory

import (
	"strings"
	"time"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is an inbound quantity event for an item. Quantity is kept as
// text: legacy rows carry free-form numeric strings, and stock math
// coerces anything unparseable to zero instead of failing.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  string    `gorm:"type:varchar(32);not null"`
	Reference string    `gorm:"type:varchar(200)"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "inventory_entries"
}

// Output is an outbound quantity event for an item
type Output struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  string    `gorm:"type:varchar(32);not null"`
	Reference string    `gorm:"type:varchar(200)"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Output) TableName() string {
	return "inventory_outputs"
}

// NewEntry creates an inbound event. The quantity must parse to a
// positive number at creation time; only historical rows may be dirty.
func NewEntry(itemID uuid.UUID, quantity, reference string) (*Entry, error) {
	q, err := validateQuantity(quantity)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:        uuid.New(),
		ItemID:    itemID,
		Quantity:  q,
		Reference: strings.TrimSpace(reference),
		CreatedAt: time.Now(),
	}, nil
}

// NewOutput creates an outbound event
func NewOutput(itemID uuid.UUID, quantity, reference string) (*Output, error) {
	q, err := validateQuantity(quantity)
	if err != nil {
		return nil, err
	}
	return &Output{
		ID:        uuid.New(),
		ItemID:    itemID,
		Quantity:  q,
		Reference: strings.TrimSpace(reference),
		CreatedAt: time.Now(),
	}, nil
}

func validateQuantity(quantity string) (string, error) {
	quantity = strings.TrimSpace(quantity)
	d, err := decimal.NewFromString(quantity)
	if err != nil {
		return "", shared.NewValidationError("Quantity must be numeric: " + quantity)
	}
	if d.Sign() <= 0 {
		return "", shared.NewValidationError("Quantity must be positive")
	}
	return quantity, nil
}

// ParseQuantity coerces a stored quantity to a decimal. Missing or
// malformed values count as zero so that stock recomputation never fails
// on dirty historical data.
func ParseQuantity(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ComputeStock derives available stock from raw entry and output
// quantities: sum(entries) - sum(outputs).
func ComputeStock(entries, outputs []string) decimal.Decimal {
	stock := decimal.Zero
	for _, q := range entries {
		stock = stock.Add(ParseQuantity(q))
	}
	for _, q := range outputs {
		stock = stock.Sub(ParseQuantity(q))
	}
	return stock
}
