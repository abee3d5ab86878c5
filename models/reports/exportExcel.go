package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// BuildReconciliationWorkbook renders the full report as an xlsx workbook:
// one summary sheet plus one sheet each for orphan payments and the daily
// breakdown. Monetary cells are written as 2-decimal strings, never raw
// cents; undefined aggregates render as "N/A".
func BuildReconciliationWorkbook(report *ReconciliationReport) (*excelize.File, error) {
	f := excelize.NewFile()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	sr := report.SettlementReconciliation
	internalTotal := "N/A"
	if sr.InternalTotal != nil {
		internalTotal = sr.InternalTotal.StringFixed(2)
	}
	bankTotal := "N/A"
	if sr.BankTotal != nil {
		bankTotal = sr.BankTotal.StringFixed(2)
	}
	percent := "N/A"
	if sr.DiscrepancyPercent != nil {
		percent = sr.DiscrepancyPercent.StringFixed(2)
	}

	summaryRows := [][]interface{}{
		{"Run Id", report.RunId},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{},
		{"Successful Orders", report.SalesSummary.OrderCount},
		{"Successful Sales (USD)", report.SalesSummary.TotalUSD.StringFixed(2)},
		{},
		{"Internal Total (USD)", internalTotal},
		{"Internal Count", sr.InternalCount},
		{"Bank Total (USD)", bankTotal},
		{"Bank Count", sr.BankCount},
		{"Discrepancy (USD)", sr.Discrepancy.StringFixed(2)},
		{"Discrepancy Type", string(sr.DiscrepancyType)},
		{"Discrepancy % of Internal", percent},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const orphanSheet = "Orphan Payments"
	if _, err := f.NewSheet(orphanSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(orphanSheet, "A1", "Payment Id")
	f.SetCellValue(orphanSheet, "B1", "Amount (USD)")
	f.SetCellValue(orphanSheet, "C1", "Status")
	f.SetCellValue(orphanSheet, "D1", "Attempted At")
	for i, p := range report.OrphanPayments {
		row := i + 2
		f.SetCellValue(orphanSheet, "A"+fmt.Sprint(row), p.PaymentId)
		f.SetCellValue(orphanSheet, "B"+fmt.Sprint(row), p.AmountUSD.StringFixed(2))
		f.SetCellValue(orphanSheet, "C"+fmt.Sprint(row), string(p.Status))
		f.SetCellValue(orphanSheet, "D"+fmt.Sprint(row), p.AttemptedAt.Format(time.RFC3339))
	}

	const dailySheet = "Daily Discrepancies"
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, err
	}
	f.SetCellValue(dailySheet, "A1", "Date")
	f.SetCellValue(dailySheet, "B1", "Internal (USD)")
	f.SetCellValue(dailySheet, "C1", "Bank (USD)")
	f.SetCellValue(dailySheet, "D1", "Discrepancy (USD)")
	for i, d := range report.DailyDiscrepancies {
		row := i + 2
		f.SetCellValue(dailySheet, "A"+fmt.Sprint(row), d.Date)
		f.SetCellValue(dailySheet, "B"+fmt.Sprint(row), d.InternalUSD.StringFixed(2))
		f.SetCellValue(dailySheet, "C"+fmt.Sprint(row), d.BankUSD.StringFixed(2))
		f.SetCellValue(dailySheet, "D"+fmt.Sprint(row), d.DiscrepancyUSD.StringFixed(2))
	}

	return f, nil
}
