package seeders_test

import (
	"testing"

	"github.com/shashiranjanraj/merchdesk/database/seeders"
	"github.com/shashiranjanraj/merchdesk/pkg/database"
	"github.com/shashiranjanraj/merchdesk/pkg/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/merchdesk/database/migrations"
)

func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, migration.New(db).Run())
	return db
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	db := newSeededDB(t)

	require.NoError(t, seeders.SeedDemo(db))

	var users, orders int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM users`).Scan(&users).Error)
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM orders`).Scan(&orders).Error)
	assert.Equal(t, int64(4), users)
	assert.Equal(t, int64(5), orders)

	// A second run must not duplicate the dataset.
	require.NoError(t, seeders.SeedDemo(db))
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM users`).Scan(&users).Error)
	assert.Equal(t, int64(4), users)
}

func TestSeedDemoItemTotalsConsistent(t *testing.T) {
	db := newSeededDB(t)
	require.NoError(t, seeders.SeedDemo(db))

	var bad int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(*) FROM order_items WHERE ABS(item_total - quantity * item_price) > 0.001`,
	).Scan(&bad).Error)
	assert.Equal(t, int64(0), bad)
}

func TestSeedDeadInventoryNeverSold(t *testing.T) {
	db := newSeededDB(t)
	require.NoError(t, seeders.SeedDemo(db))
	require.NoError(t, seeders.SeedDeadInventory(db))

	var dead int64
	require.NoError(t, db.Raw(`
		SELECT COUNT(*) FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.product_id
		WHERE oi.order_item_id IS NULL AND p.product_id LIKE 'DEAD_%'`,
	).Scan(&dead).Error)
	assert.Equal(t, int64(6), dead)

	// Re-running leaves the rows in place.
	require.NoError(t, seeders.SeedDeadInventory(db))
}

func TestSeedDeadInventoryRefusesSoldProduct(t *testing.T) {
	db := newSeededDB(t)
	require.NoError(t, seeders.SeedDemo(db))

	// Forge a sale against one of the fixture ids before seeding.
	require.NoError(t, db.Exec(
		`INSERT INTO products (product_id, product_name, category, brand, price, rating)
		 VALUES ('DEAD_001', 'Betamax Player 3000', 'Electronics', 'RetroFail', 299.99, 2.5)`,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO order_items (order_item_id, order_id, product_id, user_id, quantity, item_price, item_total)
		 VALUES ('OI_FORGED', 'O_001', 'DEAD_001', 'U_001', 1, 299.99, 299.99)`,
	).Error)

	err := seeders.SeedDeadInventory(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEAD_001")
}

func TestSeedAdminCreatesDefaultOnce(t *testing.T) {
	db := newSeededDB(t)

	require.NoError(t, seeders.SeedAdmin(db))
	require.NoError(t, seeders.SeedAdmin(db))

	var count int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM admins`).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}
