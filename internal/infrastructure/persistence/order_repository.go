package persistence

import (
	"context"
	"strings"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID, with items preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, classifyError(err)
	}
	return &order, nil
}

// FindByCode finds an order by code, with items preloaded
func (r *GormOrderRepository) FindByCode(ctx context.Context, code string) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&order).Error; err != nil {
		return nil, classifyError(err)
	}
	return &order, nil
}

// FindAll finds orders matching the filter, items preloaded
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := applyFilter(r.db.WithContext(ctx).Model(&trade.Order{}), filter, OrderSortFields, "code")
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, classifyError(err)
	}
	return orders, nil
}

// Save creates or updates an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		return tx.Save(order.Items).Error
	})
	return classifyError(err)
}

// Ensure GormOrderRepository implements trade.OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
