package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/identity"
	"github.com/runmarket/backend/internal/domain/partner"
)

// newTestDB opens an in-memory SQLite database with the full schema. Each
// test gets its own database; a single connection keeps :memory: stable.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&partner.Vendor{},
		&catalog.Category{},
		&catalog.Brand{},
		&catalog.Product{},
		&engagement.WishlistEntry{},
		&engagement.AnalyticsEvent{},
		&engagement.Purchase{},
	))
	return db
}
