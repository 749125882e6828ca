package migrations

import (
	"github.com/shashiranjanraj/merchdesk/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260201000000_create_commerce_schema", &CreateCommerceSchema{})
	migration.Register("20260201000001_create_admin_schema", &CreateAdminSchema{})
}

// -------- 0001: commerce schema --------

// CreateCommerceSchema lays down the five storefront entities plus the
// behavioral event log. Written as raw DDL (not AutoMigrate) so the layout
// — TEXT ids, REAL money, FOREIGN KEY clauses — matches the production
// ecomm.db file exactly.
type CreateCommerceSchema struct{}

var commerceDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id     TEXT PRIMARY KEY,
		name        TEXT,
		email       TEXT,
		gender      TEXT,
		city        TEXT,
		signup_date TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id   TEXT PRIMARY KEY,
		product_name TEXT,
		category     TEXT,
		brand        TEXT,
		price        REAL,
		rating       REAL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id     TEXT PRIMARY KEY,
		user_id      TEXT,
		order_date   TIMESTAMP,
		order_status TEXT,
		total_amount REAL,
		FOREIGN KEY(user_id) REFERENCES users(user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id TEXT PRIMARY KEY,
		order_id      TEXT,
		product_id    TEXT,
		user_id       TEXT,
		quantity      INTEGER,
		item_price    REAL,
		item_total    REAL,
		FOREIGN KEY(order_id) REFERENCES orders(order_id),
		FOREIGN KEY(product_id) REFERENCES products(product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		event_id        TEXT PRIMARY KEY,
		user_id         TEXT,
		product_id      TEXT,
		event_type      TEXT,
		event_timestamp TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(user_id),
		FOREIGN KEY(product_id) REFERENCES products(product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		review_id   TEXT PRIMARY KEY,
		order_id    TEXT,
		product_id  TEXT,
		user_id     TEXT,
		rating      INTEGER,
		review_text TEXT,
		review_date TIMESTAMP,
		FOREIGN KEY(order_id) REFERENCES orders(order_id),
		FOREIGN KEY(product_id) REFERENCES products(product_id),
		FOREIGN KEY(user_id) REFERENCES users(user_id)
	)`,
}

func (m *CreateCommerceSchema) Up(db *gorm.DB) error {
	for _, ddl := range commerceDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}

func (m *CreateCommerceSchema) Down(db *gorm.DB) error {
	// Children first so FK checks stay happy.
	for _, table := range []string{"reviews", "events", "order_items", "orders", "products", "users"} {
		if err := db.Migrator().DropTable(table); err != nil {
			return err
		}
	}
	return nil
}

// -------- 0002: admin schema --------

type CreateAdminSchema struct{}

var adminDDL = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		admin_id TEXT PRIMARY KEY,
		name     TEXT,
		email    TEXT UNIQUE,
		password TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS auth_logs (
		log_id       INTEGER PRIMARY KEY AUTOINCREMENT,
		admin_id     TEXT,
		ip_address   TEXT,
		signin_date  TIMESTAMP,
		signout_date TIMESTAMP,
		log_date     TIMESTAMP,
		FOREIGN KEY(admin_id) REFERENCES admins(admin_id)
	)`,
}

func (m *CreateAdminSchema) Up(db *gorm.DB) error {
	for _, ddl := range adminDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}

func (m *CreateAdminSchema) Down(db *gorm.DB) error {
	for _, table := range []string{"auth_logs", "admins"} {
		if err := db.Migrator().DropTable(table); err != nil {
			return err
		}
	}
	return nil
}
