package seeders

import (
	"fmt"

	"github.com/shashiranjanraj/merchdesk/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("dead_inventory", SeedDeadInventory)
}

// deadInventory lists products that will never be sold, used to exercise
// the dead-inventory report against real-looking data.
var deadInventory = []models.Product{
	{ProductID: "DEAD_001", ProductName: "Betamax Player 3000", Category: "Electronics", Brand: "RetroFail", Price: 299.99, Rating: 2.5},
	{ProductID: "DEAD_002", ProductName: "HD-DVD Player", Category: "Electronics", Brand: "Toshiba", Price: 150.00, Rating: 4.0},
	{ProductID: "DEAD_003", ProductName: "Zune MP3 Player (30GB)", Category: "Electronics", Brand: "Microsoft", Price: 199.99, Rating: 4.8},
	{ProductID: "DEAD_004", ProductName: "Ugly Christmas Sweater (July Edition)", Category: "Clothing", Brand: "SeasonMistake", Price: 49.99, Rating: 1.2},
	{ProductID: "DEAD_005", ProductName: "Expired 2024 Calendar", Category: "Stationery", Brand: "TimeLost", Price: 5.00, Rating: 5.0},
	{ProductID: "DEAD_006", ProductName: "Phone Case for iPhone 4", Category: "Accessories", Brand: "OldCase", Price: 2.99, Rating: 3.0},
}

// SeedDeadInventory inserts the never-sold products and verifies each one
// really has no order_items rows. Insert and verification run in a single
// transaction so a half-applied seed is impossible.
func SeedDeadInventory(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range deadInventory {
			if err := tx.Exec(
				`INSERT OR IGNORE INTO products (product_id, product_name, category, brand, price, rating)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				item.ProductID, item.ProductName, item.Category, item.Brand, item.Price, item.Rating,
			).Error; err != nil {
				return err
			}

			var sold int64
			if err := tx.Raw(
				`SELECT COUNT(*) FROM order_items WHERE product_id = ?`, item.ProductID,
			).Scan(&sold).Error; err != nil {
				return err
			}
			if sold > 0 {
				return fmt.Errorf("product %s is not dead inventory: %d order items exist", item.ProductID, sold)
			}
		}
		return nil
	})
}
