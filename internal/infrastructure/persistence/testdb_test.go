package persistence

import (
	"testing"

	"github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/domain/inventory"
	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/garment/backend/internal/domain/trade"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB opens an in-memory sqlite database with the full schema
// migrated, for repository behavior tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&thirdparty.ThirdParty{},
		&thirdparty.LegalStatusRecord{},
		&identity.Permission{},
		&identity.Role{},
		&identity.User{},
		&inventory.Item{},
		&inventory.Entry{},
		&inventory.Output{},
		&inventory.StockSnapshot{},
		&trade.Order{},
		&trade.OrderItem{},
	)
	require.NoError(t, err)

	return db
}
