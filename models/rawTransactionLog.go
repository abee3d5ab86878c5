package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransactionLog is a cleaned internal record of a processed transaction,
// produced by the ingestion pipeline from the upstream JSONL event feed.
// It is the source of truth for "what we think happened".
//
// CreatedAt is the event timestamp from the feed, not the row insert time.
type RawTransactionLog struct {
	ID        int               `gorm:"primary_key" json:"id"`
	EventId   string            `gorm:"size:64;index" json:"event_id"`
	OrderId   string            `gorm:"size:64;index" json:"order_id"`
	PaymentId string            `gorm:"size:64;index" json:"payment_id"`
	AmountUsd decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"amount_usd"`
	Status    TransactionStatus `gorm:"not null;type:enum('SUCCESS','FAILED');index" json:"status"`
	CreatedAt time.Time         `gorm:"not null;index" json:"created_at"`
}

func (RawTransactionLog) TableName() string {
	return "raw_transaction_logs"
}
