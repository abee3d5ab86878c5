package models

import (
	"time"
)

type Order struct {
	OrderId         string    `gorm:"primaryKey;size:64" json:"order_id"`
	OrderTotalCents int64     `gorm:"not null;default:0" json:"order_total_cents"`
	IsTest          bool      `gorm:"not null;default:false;index" json:"is_test"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
