package models

import "time"

// User is a storefront customer. Referenced by orders, events and reviews.
type User struct {
	UserID     string    `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name       string    `gorm:"column:name"               json:"name"`
	Email      string    `gorm:"column:email"              json:"email"`
	Gender     string    `gorm:"column:gender"             json:"gender"`
	City       string    `gorm:"column:city"               json:"city"`
	SignupDate time.Time `gorm:"column:signup_date"        json:"signup_date"`
}

func (User) TableName() string { return "users" }
