package trade

import (
	"strings"
	"time"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderStatus is one stage of the garment production workflow.
// The enumeration is closed; CANCELADO and COMPLETADO are terminal.
type OrderStatus string

const (
	StatusCreado     OrderStatus = "CREADO"
	StatusCorte      OrderStatus = "CORTE"
	StatusConfeccion OrderStatus = "CONFECCION"
	StatusEmpaque    OrderStatus = "EMPAQUE"
	StatusDespacho   OrderStatus = "DESPACHO"
	StatusCompletado OrderStatus = "COMPLETADO"
	StatusCancelado  OrderStatus = "CANCELADO"
)

// AllStatuses returns the closed workflow enumeration in stage order
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusCreado, StatusCorte, StatusConfeccion, StatusEmpaque,
		StatusDespacho, StatusCompletado, StatusCancelado,
	}
}

// ParseOrderStatus validates an order-status literal
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllStatuses() {
		if st == known {
			return st, nil
		}
	}
	return "", shared.NewValidationError("Invalid order status: " + s)
}

// IsTerminal reports whether the status ends the workflow
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompletado || s == StatusCancelado
}

// Order is a production order / quotation for a client
type Order struct {
	shared.BaseEntity
	Code             string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status           OrderStatus `gorm:"type:varchar(20);not null;default:'CREADO'"`
	PromisedDelivery *time.Time  // derived from item lead times
	QuoteExpiry      *time.Time  // promised delivery + validity window
	Notes            string      `gorm:"type:text"`
	Items            []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Negotiation is the categorical tag
// driving the item's lead time; Additions counts extra customizations.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Reference   string    `gorm:"type:varchar(200);not null"`
	Negotiation string    `gorm:"type:varchar(100)"`
	Quantity    int       `gorm:"not null;default:1"`
	Additions   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates an order in CREADO with its items. Delivery and
// expiry dates are derived from the items' lead times at creation.
func NewOrder(code string, clientID uuid.UUID, items []OrderItem, notes string) (*Order, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("Order code cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Order must reference a client")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Order must have at least one item")
	}

	order := &Order{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		ClientID:   clientID,
		Status:     StatusCreado,
		Notes:      strings.TrimSpace(notes),
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
		if items[i].Quantity <= 0 {
			items[i].Quantity = 1
		}
	}
	order.Items = items
	order.Schedule(time.Now())

	return order, nil
}

// NewOrderItem creates an order line
func NewOrderItem(reference, negotiation string, quantity, additions int) (OrderItem, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return OrderItem{}, shared.NewValidationError("Item reference cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, shared.NewValidationError("Item quantity must be positive")
	}
	if additions < 0 {
		additions = 0
	}
	return OrderItem{
		ID:          uuid.New(),
		Reference:   reference,
		Negotiation: strings.TrimSpace(negotiation),
		Quantity:    quantity,
		Additions:   additions,
	}, nil
}

// Schedule derives the promised delivery and quotation expiry from the
// order's items. Orders whose items produce no lead time get no dates.
func (o *Order) Schedule(from time.Time) {
	if delivery, ok := DeliveryDate(o.Items, from); ok {
		expiry := ExpiryDate(delivery, QuoteValidityDays)
		o.PromisedDelivery = &delivery
		o.QuoteExpiry = &expiry
	} else {
		o.PromisedDelivery = nil
		o.QuoteExpiry = nil
	}
}

// ChangeStatus moves the order to a new workflow stage. Terminal orders
// cannot move again; role authorization is checked by the caller against
// the status-role policy.
func (o *Order) ChangeStatus(target OrderStatus) error {
	if _, err := ParseOrderStatus(string(target)); err != nil {
		return err
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState,
			"Order is already "+string(o.Status)+" and cannot change status")
	}
	o.Status = target
	o.Touch()
	return nil
}
