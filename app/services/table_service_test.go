package services_test

import (
	"fmt"
	"testing"

	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTableService(t *testing.T) (*services.TableService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return services.NewTableService(db, cache.Disabled()), db
}

func TestTablesListsAllowList(t *testing.T) {
	svc, _ := newTableService(t)

	assert.Equal(t,
		[]string{"events", "order_items", "orders", "products", "reviews", "users"},
		svc.Tables())
}

func TestTableOperationsRejectUnknownTable(t *testing.T) {
	svc, _ := newTableService(t)

	// admins and sqlite internals must be unreachable, not just absent.
	for _, table := range []string{"admins", "auth_logs", "sqlite_master", "merchdesk_migrations", "nope"} {
		_, err := svc.Schema(table)
		assert.ErrorIs(t, err, services.ErrInvalidTable, "Schema(%s)", table)

		_, _, err = svc.List(table, 1, 10)
		assert.ErrorIs(t, err, services.ErrInvalidTable, "List(%s)", table)

		_, err = svc.Get(table, "X")
		assert.ErrorIs(t, err, services.ErrInvalidTable, "Get(%s)", table)

		err = svc.Create(table, map[string]any{"a": 1})
		assert.ErrorIs(t, err, services.ErrInvalidTable, "Create(%s)", table)

		err = svc.Update(table, "X", map[string]any{"a": 1})
		assert.ErrorIs(t, err, services.ErrInvalidTable, "Update(%s)", table)

		err = svc.Delete(table, "X")
		assert.ErrorIs(t, err, services.ErrInvalidTable, "Delete(%s)", table)
	}
}

func TestSchemaMarksDeclaredPrimaryKey(t *testing.T) {
	svc, _ := newTableService(t)

	schema, err := svc.Schema("order_items")
	require.NoError(t, err)

	assert.Equal(t, "order_item_id", schema.PrimaryKey)

	names := map[string]bool{}
	for _, col := range schema.Columns {
		names[col.Name] = true
		assert.Equal(t, col.Name == "order_item_id", col.IsPrimary, "column %s", col.Name)
	}
	for _, want := range []string{"order_item_id", "order_id", "product_id", "user_id", "quantity", "item_price", "item_total"} {
		assert.True(t, names[want], "missing column %s", want)
	}
}

func TestCRUDRoundTrip(t *testing.T) {
	svc, _ := newTableService(t)

	require.NoError(t, svc.Create("products", map[string]any{
		"product_id":   "P_NEW",
		"product_name": "Espresso Grinder",
		"category":     "Kitchen",
		"brand":        "Crema",
		"price":        179.0,
		"rating":       4.8,
	}))

	row, err := svc.Get("products", "P_NEW")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Espresso Grinder", row["product_name"])

	require.NoError(t, svc.Update("products", "P_NEW", map[string]any{"price": 159.0}))
	row, err = svc.Get("products", "P_NEW")
	require.NoError(t, err)
	assert.Equal(t, 159.0, row["price"])

	require.NoError(t, svc.Delete("products", "P_NEW"))
	row, err = svc.Get("products", "P_NEW")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestCreateRejectsUnknownColumn(t *testing.T) {
	svc, _ := newTableService(t)

	err := svc.Create("products", map[string]any{
		"product_id": "P_X",
		"discount":   0.5,
	})
	assert.ErrorIs(t, err, services.ErrInvalidColumn)

	// Nothing may have been written.
	row, getErr := svc.Get("products", "P_X")
	require.NoError(t, getErr)
	assert.Nil(t, row)
}

func TestCreateEmptyRecord(t *testing.T) {
	svc, _ := newTableService(t)
	assert.ErrorIs(t, svc.Create("products", map[string]any{}), services.ErrEmptyRecord)
}

func TestUpdateMissingRowIsNoOp(t *testing.T) {
	svc, _ := newTableService(t)
	assert.NoError(t, svc.Update("products", "GHOST", map[string]any{"price": 1.0}))
}

func TestDeleteMissingRowIsNoOp(t *testing.T) {
	svc, _ := newTableService(t)
	assert.NoError(t, svc.Delete("products", "GHOST"))
}

func TestDeleteReferencedRowIsConstraint(t *testing.T) {
	svc, db := newTableService(t)

	seedUser(t, db, "U_1", "Asha", "Mumbai")
	seedOrder(t, db, "O_1", "U_1", 100, "2026-01-01")

	err := svc.Delete("users", "U_1")
	assert.ErrorIs(t, err, services.ErrConstraint)
}

func TestCreateDuplicateKeyIsConstraint(t *testing.T) {
	svc, _ := newTableService(t)

	record := map[string]any{"product_id": "P_1", "product_name": "Headphones", "category": "Electronics", "brand": "Aural", "price": 100.0, "rating": 4.5}
	require.NoError(t, svc.Create("products", record))
	assert.ErrorIs(t, svc.Create("products", record), services.ErrConstraint)
}

func TestListPagination(t *testing.T) {
	svc, db := newTableService(t)

	for i := 1; i <= 25; i++ {
		seedProduct(t, db, fmt.Sprintf("P_%03d", i), fmt.Sprintf("Gadget %d", i), "Electronics", float64(i))
	}

	rows, total, err := svc.List("products", 2, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(25), total)
	require.Len(t, rows, 10)
	assert.Equal(t, "P_011", rows[0]["product_id"])
	assert.Equal(t, "P_020", rows[9]["product_id"])

	// Past the end: empty page, same total.
	rows, total, err = svc.List("products", 4, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Empty(t, rows)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, services.DefaultPageSize, services.ClampLimit(0))
	assert.Equal(t, services.DefaultPageSize, services.ClampLimit(-5))
	assert.Equal(t, 10, services.ClampLimit(10))
	assert.Equal(t, services.MaxPageSize, services.ClampLimit(100000))
}

func TestItemTotalRecomputedOnWrite(t *testing.T) {
	svc, db := newTableService(t)

	seedUser(t, db, "U_1", "Asha", "Mumbai")
	seedProduct(t, db, "P_1", "Headphones", "Electronics", 100)
	seedOrder(t, db, "O_1", "U_1", 300, "2026-01-01")

	// A lying item_total on insert is overwritten by quantity times price.
	require.NoError(t, svc.Create("order_items", map[string]any{
		"order_item_id": "OI_1",
		"order_id":      "O_1",
		"product_id":    "P_1",
		"user_id":       "U_1",
		"quantity":      3,
		"item_price":    100.0,
		"item_total":    1.0,
	}))

	row, err := svc.Get("order_items", "OI_1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, row["item_total"])

	// Partial update: only quantity changes, price is read from the row.
	require.NoError(t, svc.Update("order_items", "OI_1", map[string]any{"quantity": 2}))
	row, err = svc.Get("order_items", "OI_1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, row["item_total"])

	// Only price changes.
	require.NoError(t, svc.Update("order_items", "OI_1", map[string]any{"item_price": 50.0}))
	row, err = svc.Get("order_items", "OI_1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, row["item_total"])
}
