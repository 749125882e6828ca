package services_test

import (
	"testing"

	"github.com/shashiranjanraj/merchdesk/pkg/database"
	"github.com/shashiranjanraj/merchdesk/pkg/migration"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	// Register migrations so the runner has the schema.
	_ "github.com/shashiranjanraj/merchdesk/database/migrations"
)

// newTestDB returns a fresh in-memory store with the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, migration.New(db).Run())
	return db
}

// exec runs a raw statement and fails the test on error. Fixture shorthand.
func exec(t *testing.T, db *gorm.DB, sql string, args ...any) {
	t.Helper()
	require.NoError(t, db.Exec(sql, args...).Error)
}

// seedUser inserts a minimal user row.
func seedUser(t *testing.T, db *gorm.DB, id, name, city string) {
	t.Helper()
	exec(t, db,
		`INSERT INTO users (user_id, name, email, gender, city, signup_date)
		 VALUES (?, ?, ?, 'other', ?, '2025-01-01')`,
		id, name, id+"@example.com", city)
}

// seedProduct inserts a product row.
func seedProduct(t *testing.T, db *gorm.DB, id, name, category string, price float64) {
	t.Helper()
	exec(t, db,
		`INSERT INTO products (product_id, product_name, category, brand, price, rating)
		 VALUES (?, ?, ?, 'Acme', ?, 4.0)`,
		id, name, category, price)
}

// seedOrder inserts an order row.
func seedOrder(t *testing.T, db *gorm.DB, id, userID string, total float64, date string) {
	t.Helper()
	exec(t, db,
		`INSERT INTO orders (order_id, user_id, order_date, order_status, total_amount)
		 VALUES (?, ?, ?, 'completed', ?)`,
		id, userID, date, total)
}

// seedItem inserts an order_items row with a consistent item_total.
func seedItem(t *testing.T, db *gorm.DB, id, orderID, productID, userID string, qty int, price float64) {
	t.Helper()
	exec(t, db,
		`INSERT INTO order_items (order_item_id, order_id, product_id, user_id, quantity, item_price, item_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, orderID, productID, userID, qty, price, float64(qty)*price)
}
