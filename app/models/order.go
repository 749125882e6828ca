package models

import "time"

// Order statuses seen in the data. The column is an open string; these
// constants cover the values the dashboard styles specially.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order groups one checkout by a user. Owns zero or more OrderItems.
type Order struct {
	OrderID     string    `gorm:"column:order_id;primaryKey" json:"order_id"`
	UserID      string    `gorm:"column:user_id"             json:"user_id"`
	OrderDate   time.Time `gorm:"column:order_date"          json:"order_date"`
	OrderStatus string    `gorm:"column:order_status"        json:"order_status"`
	TotalAmount float64   `gorm:"column:total_amount"        json:"total_amount"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one product line inside an order. UserID is denormalized
// from the owning order. ItemTotal must equal Quantity times ItemPrice;
// the store does not enforce this, the table editor recomputes it on write.
type OrderItem struct {
	OrderItemID string  `gorm:"column:order_item_id;primaryKey" json:"order_item_id"`
	OrderID     string  `gorm:"column:order_id"                 json:"order_id"`
	ProductID   string  `gorm:"column:product_id"               json:"product_id"`
	UserID      string  `gorm:"column:user_id"                  json:"user_id"`
	Quantity    int     `gorm:"column:quantity"                 json:"quantity"`
	ItemPrice   float64 `gorm:"column:item_price"               json:"item_price"`
	ItemTotal   float64 `gorm:"column:item_total"               json:"item_total"`
}

func (OrderItem) TableName() string { return "order_items" }
