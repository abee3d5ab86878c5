package models

import (
	"context"

	"github.com/quickcart/recon_backend/config"
)

// Snapshot is a point-in-time, in-memory copy of the four input feeds. The
// report components are pure functions over these slices and never touch the
// database themselves; one snapshot per reconciliation run keeps every report
// section consistent with the others.
type Snapshot struct {
	Orders          []Order
	Payments        []Payment
	RawLogs         []RawTransactionLog
	BankSettlements []BankSettlement
}

// LoadSnapshot materializes all four feeds. Feed consistency across the four
// reads is the storage layer's concern (run it inside a REPEATABLE READ
// transaction when exactness across feeds matters).
func LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	db := config.GetDB()
	snap := &Snapshot{}

	if err := db.WithContext(ctx).Find(&snap.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Find(&snap.Payments).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Find(&snap.RawLogs).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Find(&snap.BankSettlements).Error; err != nil {
		return nil, err
	}
	return snap, nil
}
