package seeders

import (
	"time"

	"github.com/shashiranjanraj/merchdesk/app/models"
	"github.com/shashiranjanraj/merchdesk/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
	Register("demo", SeedDemo)
}

// SeedAdmin creates the default dashboard operator if none exists.
// Change the password immediately on a real deployment.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}

	return db.Create(&models.Admin{
		AdminID:  "ADM_001",
		Name:     "Administrator",
		Email:    "admin@merchdesk.local",
		Password: hash,
	}).Error
}

// SeedDemo loads a small but representative dataset: enough rows to light
// up every dashboard card, chart, tier bucket and funnel stage.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // never clobber an existing dataset
	}

	day := func(offset int) time.Time {
		return time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	users := []models.User{
		{UserID: "U_001", Name: "Asha Rao", Email: "asha@example.com", Gender: "female", City: "Mumbai", SignupDate: day(-400)},
		{UserID: "U_002", Name: "Ben Ortiz", Email: "ben@example.com", Gender: "male", City: "Austin", SignupDate: day(-350)},
		{UserID: "U_003", Name: "Chen Wei", Email: "chen@example.com", Gender: "male", City: "Mumbai", SignupDate: day(-300)},
		{UserID: "U_004", Name: "Dara Kim", Email: "dara@example.com", Gender: "female", City: "Seoul", SignupDate: day(-120)},
	}

	products := []models.Product{
		{ProductID: "P_001", ProductName: "Noise-Cancelling Headphones", Category: "Electronics", Brand: "Aural", Price: 249.99, Rating: 4.6},
		{ProductID: "P_002", ProductName: "Mechanical Keyboard", Category: "Electronics", Brand: "KeyForge", Price: 119.00, Rating: 4.3},
		{ProductID: "P_003", ProductName: "Merino Hoodie", Category: "Clothing", Brand: "Loft", Price: 89.50, Rating: 4.1},
		{ProductID: "P_004", ProductName: "Espresso Grinder", Category: "Kitchen", Brand: "Crema", Price: 179.00, Rating: 4.8},
	}

	orders := []models.Order{
		{OrderID: "O_001", UserID: "U_001", OrderDate: day(-90), OrderStatus: models.OrderStatusCompleted, TotalAmount: 368.99},
		{OrderID: "O_002", UserID: "U_001", OrderDate: day(-60), OrderStatus: models.OrderStatusCompleted, TotalAmount: 952.00},
		{OrderID: "O_003", UserID: "U_002", OrderDate: day(-45), OrderStatus: models.OrderStatusProcessing, TotalAmount: 119.00},
		{OrderID: "O_004", UserID: "U_003", OrderDate: day(-30), OrderStatus: models.OrderStatusCompleted, TotalAmount: 608.49},
		{OrderID: "O_005", UserID: "U_003", OrderDate: day(-10), OrderStatus: models.OrderStatusPending, TotalAmount: 537.00},
	}

	items := []models.OrderItem{
		{OrderItemID: "OI_001", OrderID: "O_001", ProductID: "P_001", UserID: "U_001", Quantity: 1, ItemPrice: 249.99, ItemTotal: 249.99},
		{OrderItemID: "OI_002", OrderID: "O_001", ProductID: "P_002", UserID: "U_001", Quantity: 1, ItemPrice: 119.00, ItemTotal: 119.00},
		{OrderItemID: "OI_003", OrderID: "O_002", ProductID: "P_004", UserID: "U_001", Quantity: 4, ItemPrice: 179.00, ItemTotal: 716.00},
		{OrderItemID: "OI_004", OrderID: "O_002", ProductID: "P_002", UserID: "U_001", Quantity: 2, ItemPrice: 118.00, ItemTotal: 236.00},
		{OrderItemID: "OI_005", OrderID: "O_003", ProductID: "P_002", UserID: "U_002", Quantity: 1, ItemPrice: 119.00, ItemTotal: 119.00},
		{OrderItemID: "OI_006", OrderID: "O_004", ProductID: "P_001", UserID: "U_003", Quantity: 2, ItemPrice: 249.99, ItemTotal: 499.98},
		{OrderItemID: "OI_007", OrderID: "O_004", ProductID: "P_003", UserID: "U_003", Quantity: 1, ItemPrice: 108.51, ItemTotal: 108.51},
		{OrderItemID: "OI_008", OrderID: "O_005", ProductID: "P_004", UserID: "U_003", Quantity: 3, ItemPrice: 179.00, ItemTotal: 537.00},
	}

	reviews := []models.Review{
		{ReviewID: "R_001", OrderID: "O_001", ProductID: "P_001", UserID: "U_001", Rating: 5, ReviewText: "Silence at last.", ReviewDate: day(-80)},
		{ReviewID: "R_002", OrderID: "O_003", ProductID: "P_002", UserID: "U_002", Rating: 4, ReviewText: "Clacky in the best way.", ReviewDate: day(-40)},
		{ReviewID: "R_003", OrderID: "O_004", ProductID: "P_001", UserID: "U_003", Rating: 3, ReviewText: "Good, but the case is flimsy.", ReviewDate: day(-25)},
	}

	events := []models.Event{
		{EventID: "E_001", UserID: "U_001", ProductID: "P_001", EventType: models.EventView, EventTimestamp: day(-91)},
		{EventID: "E_002", UserID: "U_001", ProductID: "P_001", EventType: models.EventCart, EventTimestamp: day(-91)},
		{EventID: "E_003", UserID: "U_001", ProductID: "P_001", EventType: models.EventPurchase, EventTimestamp: day(-90)},
		{EventID: "E_004", UserID: "U_002", ProductID: "P_002", EventType: models.EventView, EventTimestamp: day(-46)},
		{EventID: "E_005", UserID: "U_002", ProductID: "P_002", EventType: models.EventCart, EventTimestamp: day(-45)},
		{EventID: "E_006", UserID: "U_003", ProductID: "P_001", EventType: models.EventView, EventTimestamp: day(-31)},
		{EventID: "E_007", UserID: "U_004", ProductID: "P_003", EventType: models.EventView, EventTimestamp: day(-5)},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		if err := tx.Create(&reviews).Error; err != nil {
			return err
		}
		return tx.Create(&events).Error
	})
}
