package reports

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/utils"
)

// ReconciliationReport bundles the four independent report sections produced
// from one snapshot. Sections have no data dependency on each other.
type ReconciliationReport struct {
	RunId       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	SalesSummary             *SalesSummaryResponse             `json:"sales_summary"`
	OrphanPayments           []*OrphanPaymentResponse          `json:"orphan_payments"`
	SettlementReconciliation *SettlementReconciliationResponse `json:"settlement_reconciliation"`
	DailyDiscrepancies       []*DailyDiscrepancyResponse       `json:"daily_discrepancies"`
}

// BuildReconciliationReport runs all four sections against the same snapshot.
// Each section is a pure read-only function, so they run in parallel.
func BuildReconciliationReport(ctx context.Context, snap *models.Snapshot) *ReconciliationReport {
	runId, ok := utils.GetRunIdFromContext(ctx)
	if !ok || runId == "" {
		runId = uuid.NewString()
	}

	report := &ReconciliationReport{
		RunId:       runId,
		GeneratedAt: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		report.SalesSummary = ComputeSalesSummary(snap.Orders, snap.Payments)
	}()
	go func() {
		defer wg.Done()
		report.OrphanPayments = ComputeOrphanPayments(snap.Payments, snap.Orders)
	}()
	go func() {
		defer wg.Done()
		report.SettlementReconciliation = ComputeSettlementReconciliation(snap.RawLogs, snap.BankSettlements)
	}()
	go func() {
		defer wg.Done()
		report.DailyDiscrepancies = ComputeDailyDiscrepancies(snap.RawLogs, snap.BankSettlements)
	}()
	wg.Wait()

	return report
}

const reconciliationReportCacheKey = "Report:Reconciliation"

// GetReconciliationReport loads a snapshot and builds the full report,
// serving from the redis cache when enabled.
func GetReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	started := time.Now()

	if reportCacheEnabled() {
		var cached ReconciliationReport
		if hit, err := cacheGet(reconciliationReportCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	snap, err := models.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildReconciliationReport(ctx, snap)

	if reportCacheEnabled() {
		_ = cacheSet(reconciliationReportCacheKey, report, reportCacheTTL())
	}

	logSlowReport(ctx, "reconciliation", started, map[string]any{
		"orders":      len(snap.Orders),
		"payments":    len(snap.Payments),
		"raw_logs":    len(snap.RawLogs),
		"settlements": len(snap.BankSettlements),
	})
	return report, nil
}
