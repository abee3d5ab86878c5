package reports

import (
	"context"
	"sort"

	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/utils"
	"github.com/shopspring/decimal"
)

// DailyDiscrepancyWindow caps how many calendar dates the breakdown returns.
// The cap is applied after full aggregation; it limits display, it does not
// filter which rows are aggregated.
const DailyDiscrepancyWindow = 30

const dateLayout = "2006-01-02"

type DailyDiscrepancyResponse struct {
	Date           string          `json:"date"`
	InternalUSD    decimal.Decimal `json:"internal_usd"`
	BankUSD        decimal.Decimal `json:"bank_usd"`
	DiscrepancyUSD decimal.Decimal `json:"discrepancy_usd"`
}

type dailyAggregate struct {
	internalUSD decimal.Decimal
	bankCents   int64
}

// ComputeDailyDiscrepancies buckets internal transactions by the date of
// created_at and bank settlements by the date of settled_at, then full-outer
// joins the two on date. The clocks are independent: a date can appear with
// internal activity only, bank activity only, or both. Unlike the global
// reconciliation, a day missing from one side has a well-defined meaning
// (zero activity that day), so the missing side coalesces to 0.
//
// Dates with no activity in either feed never appear at all; the window is
// the most recent dates that had data, not a synthesized calendar range.
func ComputeDailyDiscrepancies(logs []models.RawTransactionLog, settlements []models.BankSettlement) []*DailyDiscrepancyResponse {
	days := make(map[string]*dailyAggregate)

	dayFor := func(key string) *dailyAggregate {
		agg, ok := days[key]
		if !ok {
			agg = &dailyAggregate{}
			days[key] = agg
		}
		return agg
	}

	for _, l := range logs {
		if l.Status != models.TransactionStatusSuccess {
			continue
		}
		agg := dayFor(l.CreatedAt.UTC().Format(dateLayout))
		agg.internalUSD = agg.internalUSD.Add(l.AmountUsd)
	}
	for _, s := range settlements {
		if s.Status != models.SettlementStatusSettled {
			continue
		}
		agg := dayFor(s.SettledAt.UTC().Format(dateLayout))
		agg.bankCents += s.SettledAmountCents
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	// Strictly descending date; the layout sorts lexicographically.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	if len(dates) > DailyDiscrepancyWindow {
		dates = dates[:DailyDiscrepancyWindow]
	}

	rows := make([]*DailyDiscrepancyResponse, 0, len(dates))
	for _, d := range dates {
		agg := days[d]
		bankUSD := decimal.NewFromInt(agg.bankCents).Div(decimal.NewFromInt(100))
		rows = append(rows, &DailyDiscrepancyResponse{
			Date:           d,
			InternalUSD:    utils.RoundUSD(agg.internalUSD),
			BankUSD:        utils.RoundUSD(bankUSD),
			DiscrepancyUSD: utils.RoundUSD(agg.internalUSD.Sub(bankUSD)),
		})
	}

	return rows
}

func GetDailyDiscrepancyReport(ctx context.Context) ([]*DailyDiscrepancyResponse, error) {
	db := config.GetDB()

	var logs []models.RawTransactionLog
	if err := db.WithContext(ctx).Find(&logs).Error; err != nil {
		return nil, err
	}
	var settlements []models.BankSettlement
	if err := db.WithContext(ctx).Find(&settlements).Error; err != nil {
		return nil, err
	}

	return ComputeDailyDiscrepancies(logs, settlements), nil
}
