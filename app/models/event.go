package models

import "time"

// Behavioral event types used by the funnel query.
const (
	EventView     = "view"
	EventCart     = "cart"
	EventPurchase = "purchase"
)

// Event is one row of the behavioral log. Only analytics reads it.
type Event struct {
	EventID        string    `gorm:"column:event_id;primaryKey" json:"event_id"`
	UserID         string    `gorm:"column:user_id"             json:"user_id"`
	ProductID      string    `gorm:"column:product_id"          json:"product_id"`
	EventType      string    `gorm:"column:event_type"          json:"event_type"`
	EventTimestamp time.Time `gorm:"column:event_timestamp"     json:"event_timestamp"`
}

func (Event) TableName() string { return "events" }
