package inventory

import (
	"context"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByCode finds an item by code
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindAll finds items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error
}

// MovementRepository persists quantity events and the derived snapshot.
// The compound save methods pair the event insert with a snapshot
// recomputation in a single transaction.
type MovementRepository interface {
	// SaveEntry inserts an entry and recomputes the item's snapshot
	// atomically; returns the recomputed stock.
	SaveEntry(ctx context.Context, entry *Entry) (decimal.Decimal, error)

	// SaveOutput inserts an output and recomputes the item's snapshot
	// atomically; returns the recomputed stock.
	SaveOutput(ctx context.Context, output *Output) (decimal.Decimal, error)

	// Recompute rebuilds the snapshot from the event tables and persists
	// it, creating the row if absent. Idempotent.
	Recompute(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error)

	// Snapshot returns the stored snapshot, or (nil, nil) when the item
	// has never been recomputed.
	Snapshot(ctx context.Context, itemID uuid.UUID) (*StockSnapshot, error)
}
