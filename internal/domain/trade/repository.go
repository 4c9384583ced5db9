package trade

import (
	"context"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, with items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByCode finds an order by code, with items preloaded
	FindByCode(ctx context.Context, code string) (*Order, error)

	// FindAll finds orders matching the filter, items preloaded
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *Order) error
}
