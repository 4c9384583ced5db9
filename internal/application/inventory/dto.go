package inventory

import (
	"time"

	"github.com/garment/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to register an inventory item
type CreateItemRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Unit        string `json:"unit" binding:"max=20"`
	Description string `json:"description" binding:"max=2000"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToItemResponse converts a domain item to a response
func ToItemResponse(item *inventory.Item) *ItemResponse {
	return &ItemResponse{
		ID:          item.ID,
		Code:        item.Code,
		Name:        item.Name,
		Unit:        item.Unit,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}
}

// RecordMovementRequest represents an entry or output to record
type RecordMovementRequest struct {
	Quantity  string `json:"quantity" binding:"required,max=32"`
	Reference string `json:"reference" binding:"max=200"`
}

// MovementResponse reports a recorded movement and the resulting stock
type MovementResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  string          `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	Stock     decimal.Decimal `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockResponse is the stock snapshot for one item
type StockResponse struct {
	ItemID       uuid.UUID       `json:"inventoryItemId"`
	Stock        decimal.Decimal `json:"stock"`
	RecomputedAt time.Time       `json:"recomputed_at"`
}
