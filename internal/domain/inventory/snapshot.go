package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockSnapshot is the derived per-item stock cache. It is overwritten
// on every recomputation and is never a source of truth: the entry and
// output event tables are.
type StockSnapshot struct {
	ItemID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Stock        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RecomputedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockSnapshot) TableName() string {
	return "inventory_stock_snapshots"
}
