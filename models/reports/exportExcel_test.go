package reports_test

import (
	"context"
	"testing"

	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/models/reports"
)

func TestBuildReconciliationWorkbook(t *testing.T) {
	at := mustTime(t, "2026-03-10T10:00:00Z")
	snap := &models.Snapshot{
		Payments: []models.Payment{
			payment("PAY-9", nil, 1234, models.PaymentStatusFailed, at),
		},
		RawLogs: []models.RawTransactionLog{
			rawLog("50.00", models.TransactionStatusSuccess, at),
		},
	}
	report := reports.BuildReconciliationReport(context.Background(), snap)

	f, err := reports.BuildReconciliationWorkbook(report)
	if err != nil {
		t.Fatalf("BuildReconciliationWorkbook: %v", err)
	}
	defer f.Close()

	// Bank feed is empty: total renders as N/A, not 0.
	v, err := f.GetCellValue("Summary", "B9")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "N/A" {
		t.Fatalf("bank total cell = %q, want N/A", v)
	}

	v, err = f.GetCellValue("Orphan Payments", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "12.34" {
		t.Fatalf("orphan amount cell = %q, want 12.34", v)
	}

	v, err = f.GetCellValue("Daily Discrepancies", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "2026-03-10" {
		t.Fatalf("daily date cell = %q, want 2026-03-10", v)
	}
}
