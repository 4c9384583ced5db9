package inventory

import (
	"context"

	domain "github.com/garment/backend/internal/domain/inventory"
	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockService handles inventory items, movements, and stock reads
type StockService struct {
	itemRepo     domain.ItemRepository
	movementRepo domain.MovementRepository
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(itemRepo domain.ItemRepository, movementRepo domain.MovementRepository, logger *zap.Logger) *StockService {
	return &StockService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// CreateItem registers an inventory item
func (s *StockService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if existing, err := s.itemRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Item with this code already exists")
	} else if err != nil && err != shared.ErrNotFound {
		return nil, err
	}

	item, err := domain.NewItem(req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	item.Description = req.Description

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetItem returns an inventory item by ID
func (s *StockService) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// ListItems returns items matching the filter
func (s *StockService) ListItems(ctx context.Context, filter shared.Filter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = *ToItemResponse(&items[i])
	}
	return responses, nil
}

// RecordEntry records an inbound movement and returns the new stock
func (s *StockService) RecordEntry(ctx context.Context, itemID uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	entry, err := domain.NewEntry(itemID, req.Quantity, req.Reference)
	if err != nil {
		return nil, err
	}

	stock, err := s.movementRepo.SaveEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory entry recorded",
		zap.String("item_id", itemID.String()),
		zap.String("quantity", entry.Quantity),
		zap.String("stock", stock.String()),
	)

	return &MovementResponse{
		ID:        entry.ID,
		ItemID:    entry.ItemID,
		Quantity:  entry.Quantity,
		Reference: entry.Reference,
		Stock:     stock,
		CreatedAt: entry.CreatedAt,
	}, nil
}

// RecordOutput records an outbound movement and returns the new stock
func (s *StockService) RecordOutput(ctx context.Context, itemID uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	output, err := domain.NewOutput(itemID, req.Quantity, req.Reference)
	if err != nil {
		return nil, err
	}

	stock, err := s.movementRepo.SaveOutput(ctx, output)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory output recorded",
		zap.String("item_id", itemID.String()),
		zap.String("quantity", output.Quantity),
		zap.String("stock", stock.String()),
	)

	return &MovementResponse{
		ID:        output.ID,
		ItemID:    output.ItemID,
		Quantity:  output.Quantity,
		Reference: output.Reference,
		Stock:     stock,
		CreatedAt: output.CreatedAt,
	}, nil
}

// Stock returns the stock snapshot for an item, recomputing it when the
// item has movements but no snapshot yet.
func (s *StockService) Stock(ctx context.Context, itemID uuid.UUID) (*StockResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.movementRepo.Snapshot(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		if _, err := s.movementRepo.Recompute(ctx, itemID); err != nil {
			return nil, err
		}
		snapshot, err = s.movementRepo.Snapshot(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			return nil, shared.ErrStoreUnavailable
		}
	}

	return &StockResponse{
		ItemID:       item.ID,
		Stock:        snapshot.Stock,
		RecomputedAt: snapshot.RecomputedAt,
	}, nil
}
