package models

import "time"

// Admin is a dashboard operator. Password holds a bcrypt hash, never
// serialised.
type Admin struct {
	AdminID  string `gorm:"column:admin_id;primaryKey" json:"admin_id"`
	Name     string `gorm:"column:name"                json:"name"`
	Email    string `gorm:"column:email;uniqueIndex"   json:"email"`
	Password string `gorm:"column:password"            json:"-"`
}

func (Admin) TableName() string { return "admins" }

// AuthLog records one admin session: stamped on signin, the signout date
// is filled in when the admin signs out.
type AuthLog struct {
	LogID       uint       `gorm:"column:log_id;primaryKey;autoIncrement" json:"log_id"`
	AdminID     string     `gorm:"column:admin_id"                        json:"admin_id"`
	IPAddress   string     `gorm:"column:ip_address"                      json:"ip_address"`
	SigninDate  time.Time  `gorm:"column:signin_date"                     json:"signin_date"`
	SignoutDate *time.Time `gorm:"column:signout_date"                    json:"signout_date,omitempty"`
	LogDate     time.Time  `gorm:"column:log_date"                        json:"log_date"`
}

func (AuthLog) TableName() string { return "auth_logs" }
