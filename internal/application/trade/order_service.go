package trade

import (
	"context"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/domain/thirdparty"
	domain "github.com/garment/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperabilityChecker answers whether a third party may transact. It is
// expected to fail closed: when the ledger cannot be read it reports
// the party as non-operable rather than erroring.
type OperabilityChecker interface {
	Operability(ctx context.Context, t thirdparty.Type, partyID uuid.UUID) thirdparty.Operability
}

// OrderService handles production orders and their workflow
type OrderService struct {
	orderRepo   domain.OrderRepository
	operability OperabilityChecker
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo domain.OrderRepository, operability OperabilityChecker, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		operability: operability,
		logger:      logger,
	}
}

// Create creates an order for a client. The client's legal status gates
// creation: non-operable clients are rejected with the ledger's reason.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	op := s.operability.Operability(ctx, thirdparty.TypeCliente, req.ClientID)
	if !op.CanOperate {
		return nil, shared.NewDomainError(shared.CodeInvalidState, op.Reason)
	}

	if existing, err := s.orderRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Order with this code already exists")
	} else if err != nil && err != shared.ErrNotFound {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := domain.NewOrderItem(it.Reference, it.Negotiation, it.Quantity, it.Additions)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order, err := domain.NewOrder(req.Code, req.ClientID, items, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("code", order.Code),
		zap.String("client_id", order.ClientID.String()),
		zap.Int("items", len(order.Items)),
	)

	return ToOrderResponse(order), nil
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// List returns orders matching the filter
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses, nil
}

// ChangeStatus moves an order into a target workflow stage. The caller's
// role must be authorized for the target stage, and terminal orders
// never move again.
func (s *OrderService) ChangeStatus(ctx context.Context, id uuid.UUID, role string, req ChangeStatusRequest) (*OrderResponse, error) {
	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(role, target) {
		return nil, shared.NewDomainError(shared.CodeForbidden,
			"Role "+role+" cannot set order status "+string(target))
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeStatus(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("code", order.Code),
		zap.String("status", string(target)),
		zap.String("role", role),
	)

	return ToOrderResponse(order), nil
}

// AllowedStatuses lists the workflow stages a role may set
func (s *OrderService) AllowedStatuses(role string) *AllowedStatusesResponse {
	allowed := domain.AllowedStatuses(role)
	statuses := make([]string, len(allowed))
	for i, st := range allowed {
		statuses[i] = string(st)
	}
	return &AllowedStatusesResponse{Role: role, Statuses: statuses}
}
