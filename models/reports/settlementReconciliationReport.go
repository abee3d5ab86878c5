package reports

import (
	"context"

	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/utils"
	"github.com/shopspring/decimal"
)

// SettlementReconciliationResponse compares aggregate internal-transaction
// totals against aggregate bank-settlement totals over the whole dataset.
//
// InternalTotal / BankTotal are nil when the feed had zero qualifying rows.
// "No data" and "summed to zero" are different findings and must stay
// distinguishable at this boundary; only the discrepancy subtraction treats
// a missing side as the additive identity.
type SettlementReconciliationResponse struct {
	InternalTotal      *decimal.Decimal       `json:"internal_total"`
	InternalCount      int                    `json:"internal_count"`
	BankTotal          *decimal.Decimal       `json:"bank_total"`
	BankCount          int                    `json:"bank_count"`
	Discrepancy        decimal.Decimal        `json:"discrepancy"`
	DiscrepancyType    models.DiscrepancyType `json:"discrepancy_type"`
	DiscrepancyPercent *decimal.Decimal       `json:"discrepancy_percent"`
}

// ComputeSettlementReconciliation scans each feed once, independently, and
// combines the two scalar aggregates. The percentage is relative to the
// internal total and is nil, never a division error and never 0, when there
// is no internal activity to measure against.
func ComputeSettlementReconciliation(logs []models.RawTransactionLog, settlements []models.BankSettlement) *SettlementReconciliationResponse {
	var internalSum decimal.Decimal
	var internalCount int
	for _, l := range logs {
		if l.Status != models.TransactionStatusSuccess {
			continue
		}
		internalSum = internalSum.Add(l.AmountUsd)
		internalCount++
	}

	var bankCents int64
	var bankCount int
	for _, s := range settlements {
		if s.Status != models.SettlementStatusSettled {
			continue
		}
		bankCents += s.SettledAmountCents
		bankCount++
	}
	bankSum := decimal.NewFromInt(bankCents).Div(decimal.NewFromInt(100))

	// Rounding happens here, once, at the output boundary.
	discrepancy := utils.RoundUSD(internalSum.Sub(bankSum))

	discrepancyType := models.DiscrepancyTypeBalanced
	switch {
	case discrepancy.IsPositive():
		discrepancyType = models.DiscrepancyTypeInternalExceedsBank
	case discrepancy.IsNegative():
		discrepancyType = models.DiscrepancyTypeBankExceedsInternal
	}

	resp := &SettlementReconciliationResponse{
		InternalCount:   internalCount,
		BankCount:       bankCount,
		Discrepancy:     discrepancy,
		DiscrepancyType: discrepancyType,
	}
	if internalCount > 0 {
		resp.InternalTotal = utils.Ptr(utils.RoundUSD(internalSum))
	}
	if bankCount > 0 {
		resp.BankTotal = utils.Ptr(utils.RoundUSD(bankSum))
	}
	if internalCount > 0 && !internalSum.IsZero() {
		percent := discrepancy.Abs().Div(internalSum).Mul(decimal.NewFromInt(100)).Round(2)
		resp.DiscrepancyPercent = utils.Ptr(percent)
	}

	return resp
}

func GetSettlementReconciliationReport(ctx context.Context) (*SettlementReconciliationResponse, error) {
	db := config.GetDB()

	var logs []models.RawTransactionLog
	if err := db.WithContext(ctx).Find(&logs).Error; err != nil {
		return nil, err
	}
	var settlements []models.BankSettlement
	if err := db.WithContext(ctx).Find(&settlements).Error; err != nil {
		return nil, err
	}

	return ComputeSettlementReconciliation(logs, settlements), nil
}
