package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garment/backend/internal/domain/inventory"
	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, classifyError(err)
	}
	return &item, nil
}

// FindByCode finds an item by code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&item).Error; err != nil {
		return nil, classifyError(err)
	}
	return &item, nil
}

// FindAll finds items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter, ItemSortFields, "code", "name")
	if err := query.Find(&items).Error; err != nil {
		return nil, classifyError(err)
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return classifyError(r.db.WithContext(ctx).Save(item).Error)
}

// Ensure GormItemRepository implements inventory.ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)

// GormMovementRepository implements inventory.MovementRepository using
// GORM. The compound save methods pair the event insert with a snapshot
// recomputation in one transaction so the cache can never drift from a
// committed event.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// SaveEntry inserts an entry and recomputes the item's snapshot atomically
func (r *GormMovementRepository) SaveEntry(ctx context.Context, entry *inventory.Entry) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		var err error
		stock, err = recomputeInTx(tx, entry.ItemID)
		return err
	})
	if err != nil {
		return decimal.Zero, classifyError(err)
	}
	return stock, nil
}

// SaveOutput inserts an output and recomputes the item's snapshot atomically
func (r *GormMovementRepository) SaveOutput(ctx context.Context, output *inventory.Output) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(output).Error; err != nil {
			return err
		}
		var err error
		stock, err = recomputeInTx(tx, output.ItemID)
		return err
	})
	if err != nil {
		return decimal.Zero, classifyError(err)
	}
	return stock, nil
}

// Recompute rebuilds the snapshot from the event tables and persists it,
// creating the row if absent. Idempotent.
func (r *GormMovementRepository) Recompute(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stock, err = recomputeInTx(tx, itemID)
		return err
	})
	if err != nil {
		return decimal.Zero, classifyError(err)
	}
	return stock, nil
}

// Snapshot returns the stored snapshot, or (nil, nil) when the item has
// never been recomputed
func (r *GormMovementRepository) Snapshot(ctx context.Context, itemID uuid.UUID) (*inventory.StockSnapshot, error) {
	var snapshot inventory.StockSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "item_id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyError(err)
	}
	return &snapshot, nil
}

// recomputeInTx loads the raw quantity strings for an item, derives the
// stock in the domain, and upserts the snapshot row.
func recomputeInTx(tx *gorm.DB, itemID uuid.UUID) (decimal.Decimal, error) {
	var entries []string
	if err := tx.Model(&inventory.Entry{}).
		Where("item_id = ?", itemID).
		Pluck("quantity", &entries).Error; err != nil {
		return decimal.Zero, err
	}

	var outputs []string
	if err := tx.Model(&inventory.Output{}).
		Where("item_id = ?", itemID).
		Pluck("quantity", &outputs).Error; err != nil {
		return decimal.Zero, err
	}

	stock := inventory.ComputeStock(entries, outputs)
	snapshot := inventory.StockSnapshot{
		ItemID:       itemID,
		Stock:        stock,
		RecomputedAt: time.Now(),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "recomputed_at"}),
	}).Create(&snapshot).Error; err != nil {
		return decimal.Zero, err
	}
	return stock, nil
}

// Ensure GormMovementRepository implements inventory.MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
