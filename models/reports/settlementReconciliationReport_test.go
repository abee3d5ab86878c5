package reports_test

import (
	"testing"
	"time"

	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/models/reports"
	"github.com/shopspring/decimal"
)

func rawLog(amount string, status models.TransactionStatus, createdAt time.Time) models.RawTransactionLog {
	return models.RawTransactionLog{
		AmountUsd: decimal.RequireFromString(amount),
		Status:    status,
		CreatedAt: createdAt,
	}
}

func settlement(cents int64, status models.SettlementStatus, settledAt time.Time) models.BankSettlement {
	return models.BankSettlement{
		SettledAmountCents: cents,
		Status:             status,
		SettledAt:          settledAt,
	}
}

func TestSettlementReconciliationSign(t *testing.T) {
	at := mustTime(t, "2026-03-05T00:00:00Z")
	logs := []models.RawTransactionLog{
		rawLog("60.00", models.TransactionStatusSuccess, at),
		rawLog("40.00", models.TransactionStatusSuccess, at),
		rawLog("999.00", models.TransactionStatusFailed, at), // not counted
	}
	settlements := []models.BankSettlement{
		settlement(9000, models.SettlementStatusSettled, at),
		settlement(5000, models.SettlementStatusPending, at), // not counted
	}

	got := reports.ComputeSettlementReconciliation(logs, settlements)

	if got.InternalCount != 2 || got.BankCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", got.InternalCount, got.BankCount)
	}
	if got.InternalTotal == nil || !got.InternalTotal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("InternalTotal = %v, want 100.00", got.InternalTotal)
	}
	if got.BankTotal == nil || !got.BankTotal.Equal(decimal.RequireFromString("90.00")) {
		t.Fatalf("BankTotal = %v, want 90.00", got.BankTotal)
	}
	if !got.Discrepancy.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("Discrepancy = %s, want 10.00", got.Discrepancy)
	}
	if got.DiscrepancyType != models.DiscrepancyTypeInternalExceedsBank {
		t.Fatalf("DiscrepancyType = %q, want %q", got.DiscrepancyType, models.DiscrepancyTypeInternalExceedsBank)
	}
	if got.DiscrepancyPercent == nil || !got.DiscrepancyPercent.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("DiscrepancyPercent = %v, want 10.00", got.DiscrepancyPercent)
	}
}

func TestSettlementReconciliationZeroInternalGuard(t *testing.T) {
	at := mustTime(t, "2026-03-05T00:00:00Z")
	logs := []models.RawTransactionLog{
		rawLog("55.00", models.TransactionStatusFailed, at),
	}
	settlements := []models.BankSettlement{
		settlement(9000, models.SettlementStatusSettled, at),
	}

	got := reports.ComputeSettlementReconciliation(logs, settlements)

	if got.InternalTotal != nil {
		t.Fatalf("InternalTotal = %v, want nil (no successful internal rows)", got.InternalTotal)
	}
	if got.DiscrepancyPercent != nil {
		t.Fatalf("DiscrepancyPercent = %v, want nil, not 0", got.DiscrepancyPercent)
	}
	if !got.Discrepancy.Equal(decimal.RequireFromString("-90.00")) {
		t.Fatalf("Discrepancy = %s, want -90.00", got.Discrepancy)
	}
	if got.DiscrepancyType != models.DiscrepancyTypeBankExceedsInternal {
		t.Fatalf("DiscrepancyType = %q, want %q", got.DiscrepancyType, models.DiscrepancyTypeBankExceedsInternal)
	}
}

func TestSettlementReconciliationNoData(t *testing.T) {
	got := reports.ComputeSettlementReconciliation(nil, nil)

	if got.InternalTotal != nil || got.BankTotal != nil {
		t.Fatalf("totals = %v/%v, want nil/nil", got.InternalTotal, got.BankTotal)
	}
	if !got.Discrepancy.IsZero() {
		t.Fatalf("Discrepancy = %s, want 0", got.Discrepancy)
	}
	if got.DiscrepancyType != models.DiscrepancyTypeBalanced {
		t.Fatalf("DiscrepancyType = %q, want Balanced", got.DiscrepancyType)
	}
	if got.DiscrepancyPercent != nil {
		t.Fatalf("DiscrepancyPercent = %v, want nil", got.DiscrepancyPercent)
	}
}

func TestSettlementReconciliationRoundingBoundary(t *testing.T) {
	at := mustTime(t, "2026-03-05T00:00:00Z")
	logs := []models.RawTransactionLog{
		rawLog("33.333", models.TransactionStatusSuccess, at),
	}
	settlements := []models.BankSettlement{
		settlement(3333, models.SettlementStatusSettled, at),
	}

	got := reports.ComputeSettlementReconciliation(logs, settlements)

	// 33.333 - 33.33 = 0.003 rounds to 0.00; never more than 2 places out.
	if !got.Discrepancy.Equal(decimal.RequireFromString("0.00")) {
		t.Fatalf("Discrepancy = %s, want 0.00", got.Discrepancy)
	}
	if got.Discrepancy.Exponent() < -2 {
		t.Fatalf("Discrepancy %s carries more than 2 decimal places", got.Discrepancy)
	}
	if got.DiscrepancyType != models.DiscrepancyTypeBalanced {
		t.Fatalf("DiscrepancyType = %q, want Balanced", got.DiscrepancyType)
	}
}
