package models

import "time"

// Review is a 1–5 star product review tied to the order it came from.
type Review struct {
	ReviewID   string    `gorm:"column:review_id;primaryKey" json:"review_id"`
	OrderID    string    `gorm:"column:order_id"             json:"order_id"`
	ProductID  string    `gorm:"column:product_id"           json:"product_id"`
	UserID     string    `gorm:"column:user_id"              json:"user_id"`
	Rating     int       `gorm:"column:rating"               json:"rating"`
	ReviewText string    `gorm:"column:review_text"          json:"review_text"`
	ReviewDate time.Time `gorm:"column:review_date"          json:"review_date"`
}

func (Review) TableName() string { return "reviews" }
