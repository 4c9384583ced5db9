package trade

import (
	"time"

	"github.com/garment/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// CreateOrderRequest represents a request to create a production order
type CreateOrderRequest struct {
	Code     string             `json:"code" binding:"required,min=1,max=50"`
	ClientID uuid.UUID          `json:"client_id" binding:"required"`
	Notes    string             `json:"notes" binding:"max=2000"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest represents one order line
type OrderItemRequest struct {
	Reference   string `json:"reference" binding:"required,min=1,max=200"`
	Negotiation string `json:"negotiation" binding:"max=100"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Additions   int    `json:"additions" binding:"min=0"`
}

// ChangeStatusRequest represents a workflow stage change
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// OrderResponse represents an order in API responses. Schedule dates are
// rendered date-only.
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	Code             string              `json:"code"`
	ClientID         uuid.UUID           `json:"client_id"`
	Status           string              `json:"status"`
	PromisedDelivery *string             `json:"promised_delivery,omitempty"`
	QuoteExpiry      *string             `json:"quote_expiry,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderItemResponse represents one order line in responses
type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	Negotiation string    `json:"negotiation,omitempty"`
	Quantity    int       `json:"quantity"`
	Additions   int       `json:"additions"`
	LeadDays    int       `json:"lead_days"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *trade.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:        o.ID,
		Code:      o.Code,
		ClientID:  o.ClientID,
		Status:    string(o.Status),
		Notes:     o.Notes,
		Items:     make([]OrderItemResponse, len(o.Items)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.PromisedDelivery != nil {
		d := trade.FormatDate(*o.PromisedDelivery)
		resp.PromisedDelivery = &d
	}
	if o.QuoteExpiry != nil {
		e := trade.FormatDate(*o.QuoteExpiry)
		resp.QuoteExpiry = &e
	}
	for i, item := range o.Items {
		resp.Items[i] = OrderItemResponse{
			ID:          item.ID,
			Reference:   item.Reference,
			Negotiation: item.Negotiation,
			Quantity:    item.Quantity,
			Additions:   item.Additions,
			LeadDays:    trade.LeadDays(item),
		}
	}
	return resp
}

// AllowedStatusesResponse lists the workflow stages a role may set
type AllowedStatusesResponse struct {
	Role     string   `json:"role"`
	Statuses []string `json:"statuses"`
}
