package reports

import (
	"context"

	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/utils"
	"github.com/shopspring/decimal"
)

type SalesSummaryResponse struct {
	OrderCount int             `json:"order_count"`
	TotalCents int64           `json:"total_cents"`
	TotalUSD   decimal.Decimal `json:"total_usd"`
}

// ComputeSalesSummary totals successful sales over the order/payment join.
// A qualifying order is non-test and has at least one SUCCESS payment; each
// qualifying order contributes its own order total exactly once, no matter
// how many successful payments reference it.
func ComputeSalesSummary(orders []models.Order, payments []models.Payment) *SalesSummaryResponse {
	paidOrderIds := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		if p.Status != models.PaymentStatusSuccess || p.OrderId == nil {
			continue
		}
		paidOrderIds[*p.OrderId] = struct{}{}
	}

	var orderCount int
	var totalCents int64
	for _, o := range orders {
		if o.IsTest {
			continue
		}
		if _, ok := paidOrderIds[o.OrderId]; !ok {
			continue
		}
		orderCount++
		totalCents += o.OrderTotalCents
	}

	return &SalesSummaryResponse{
		OrderCount: orderCount,
		TotalCents: totalCents,
		TotalUSD:   utils.CentsToUSD(totalCents),
	}
}

func GetSalesSummaryReport(ctx context.Context) (*SalesSummaryResponse, error) {
	db := config.GetDB()

	var orders []models.Order
	if err := db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := db.WithContext(ctx).Find(&payments).Error; err != nil {
		return nil, err
	}

	return ComputeSalesSummary(orders, payments), nil
}
