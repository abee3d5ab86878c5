package models

import (
	"time"
)

// RawEventArchive keeps each accepted upstream event verbatim for long-term
// storage. The cleaned rows in raw_transaction_logs are derived data; this
// table preserves the original payload so history survives cleaning-rule
// changes. EventId is unique: replaying a feed file lands on the index and
// is counted as a duplicate, not re-archived.
type RawEventArchive struct {
	ID        int       `gorm:"primary_key" json:"id"`
	EventId   string    `gorm:"size:64;uniqueIndex" json:"event_id"`
	Payload   string    `gorm:"type:json" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RawEventArchive) TableName() string {
	return "raw_event_archive"
}
