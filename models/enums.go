package models

// PaymentStatus is the lifecycle state of a charge attempt.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// TransactionStatus is the state recorded on a cleaned internal transaction log row.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// SettlementStatus is the state reported by the bank for a settlement row.
type SettlementStatus string

const (
	SettlementStatusSettled  SettlementStatus = "SETTLED"
	SettlementStatusPending  SettlementStatus = "PENDING"
	SettlementStatusReturned SettlementStatus = "RETURNED"
)

// DiscrepancyType classifies the sign of (internal total - bank total).
type DiscrepancyType string

const (
	DiscrepancyTypeInternalExceedsBank DiscrepancyType = "Internal > Bank"
	DiscrepancyTypeBankExceedsInternal DiscrepancyType = "Bank > Internal"
	DiscrepancyTypeBalanced            DiscrepancyType = "Balanced"
)
