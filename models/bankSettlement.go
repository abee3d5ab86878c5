package models

import (
	"time"
)

// BankSettlement is the external bank's record of settled funds: the source
// of truth for "what actually cleared". SettledAt is the bank's settlement
// timestamp and is independent of any internal transaction clock.
type BankSettlement struct {
	SettlementId       string           `gorm:"primaryKey;size:64" json:"settlement_id"`
	SettledAmountCents int64            `gorm:"not null;default:0" json:"settled_amount_cents"`
	Status             SettlementStatus `gorm:"not null;type:enum('SETTLED','PENDING','RETURNED');index" json:"status"`
	SettledAt          time.Time        `gorm:"not null;index" json:"settled_at"`
	CreatedAt          time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BankSettlement) TableName() string {
	return "bank_settlements"
}
