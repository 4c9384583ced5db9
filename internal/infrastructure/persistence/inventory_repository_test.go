package persistence

import (
	"context"
	"testing"

	"github.com/garment/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, repo *GormItemRepository) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem("TELA-001", "Tela algodón", "MT")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestGormMovementRepository_SaveEntryAndOutput(t *testing.T) {
	t.Run("entries minus outputs", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		movements := NewGormMovementRepository(db)
		item := seedItem(t, items)

		entry, err := inventory.NewEntry(item.ID, "100", "compra 4411")
		require.NoError(t, err)
		stock, err := movements.SaveEntry(context.Background(), entry)
		require.NoError(t, err)
		assert.True(t, stock.Equal(decimal.NewFromInt(100)))

		output, err := inventory.NewOutput(item.ID, "40", "corte OP-77")
		require.NoError(t, err)
		stock, err = movements.SaveOutput(context.Background(), output)
		require.NoError(t, err)
		assert.True(t, stock.Equal(decimal.NewFromInt(60)))

		snapshot, err := movements.Snapshot(context.Background(), item.ID)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.True(t, snapshot.Stock.Equal(decimal.NewFromInt(60)))
	})

	t.Run("fractional quantities keep decimal precision", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		movements := NewGormMovementRepository(db)
		item := seedItem(t, items)

		entry, err := inventory.NewEntry(item.ID, "10.75", "")
		require.NoError(t, err)
		_, err = movements.SaveEntry(context.Background(), entry)
		require.NoError(t, err)

		output, err := inventory.NewOutput(item.ID, "0.25", "")
		require.NoError(t, err)
		stock, err := movements.SaveOutput(context.Background(), output)
		require.NoError(t, err)
		assert.True(t, stock.Equal(decimal.RequireFromString("10.5")))
	})

	t.Run("stock can go negative", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		movements := NewGormMovementRepository(db)
		item := seedItem(t, items)

		output, err := inventory.NewOutput(item.ID, "5", "")
		require.NoError(t, err)
		stock, err := movements.SaveOutput(context.Background(), output)
		require.NoError(t, err)
		assert.True(t, stock.Equal(decimal.NewFromInt(-5)))
	})
}

func TestGormMovementRepository_Recompute(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		movements := NewGormMovementRepository(db)
		item := seedItem(t, items)

		entry, err := inventory.NewEntry(item.ID, "30", "")
		require.NoError(t, err)
		_, err = movements.SaveEntry(context.Background(), entry)
		require.NoError(t, err)

		first, err := movements.Recompute(context.Background(), item.ID)
		require.NoError(t, err)
		second, err := movements.Recompute(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, first.Equal(second))
		assert.True(t, first.Equal(decimal.NewFromInt(30)))
	})

	t.Run("coerces malformed stored quantities to zero", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		movements := NewGormMovementRepository(db)
		item := seedItem(t, items)

		// Dirty legacy row written past the constructor.
		dirty := &inventory.Entry{
			ID:       uuid.New(),
			ItemID:   item.ID,
			Quantity: "n/a",
		}
		require.NoError(t, db.Create(dirty).Error)

		clean, err := inventory.NewEntry(item.ID, "12", "")
		require.NoError(t, err)
		require.NoError(t, db.Create(clean).Error)

		stock, err := movements.Recompute(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, stock.Equal(decimal.NewFromInt(12)))
	})

	t.Run("item with no events snapshots to zero", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		movements := NewGormMovementRepository(db)
		item := seedItem(t, items)

		stock, err := movements.Recompute(context.Background(), item.ID)
		require.NoError(t, err)
		assert.True(t, stock.IsZero())

		snapshot, err := movements.Snapshot(context.Background(), item.ID)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.True(t, snapshot.Stock.IsZero())
	})
}

func TestGormMovementRepository_Snapshot(t *testing.T) {
	t.Run("returns nil nil before first recompute", func(t *testing.T) {
		db := openTestDB(t)
		movements := NewGormMovementRepository(db)

		snapshot, err := movements.Snapshot(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})
}

func TestGormItemRepository(t *testing.T) {
	t.Run("FindByCode uppercases the lookup", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)
		seedItem(t, items)

		found, err := items.FindByCode(context.Background(), "tela-001")
		require.NoError(t, err)
		assert.Equal(t, "TELA-001", found.Code)
	})

	t.Run("FindByID missing item maps to not found", func(t *testing.T) {
		db := openTestDB(t)
		items := NewGormItemRepository(db)

		_, err := items.FindByID(context.Background(), uuid.New())
		assert.Error(t, err)
	})
}
