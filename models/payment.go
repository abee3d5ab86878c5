package models

import (
	"time"
)

// Payment is one charge attempt against an order. OrderId is nullable and is
// NOT a hard foreign key: upstream systems emit payments whose order record
// was never created or was since deleted. Those rows are the orphans the
// reconciliation engine reports on.
type Payment struct {
	PaymentId   string        `gorm:"primaryKey;size:64" json:"payment_id"`
	OrderId     *string       `gorm:"size:64;index" json:"order_id"`
	AmountCents int64         `gorm:"not null;default:0" json:"amount_cents"`
	Status      PaymentStatus `gorm:"not null;type:enum('PENDING','SUCCESS','FAILED');index" json:"status"`
	AttemptedAt time.Time     `gorm:"not null;index" json:"attempted_at"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
