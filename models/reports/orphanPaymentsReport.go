package reports

import (
	"context"
	"sort"
	"time"

	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/utils"
	"github.com/shopspring/decimal"
)

type OrphanPaymentResponse struct {
	PaymentId   string               `json:"payment_id"`
	AmountCents int64                `json:"amount_cents"`
	AmountUSD   decimal.Decimal      `json:"amount_usd"`
	Status      models.PaymentStatus `json:"status"`
	AttemptedAt time.Time            `json:"attempted_at"`
}

// ComputeOrphanPayments lists payments whose order_id resolves to no order.
// A nil order_id can never match, so such payments are always orphans.
// Ordering is most recent attempt first: reviewers triage newest anomalies
// before old ones.
func ComputeOrphanPayments(payments []models.Payment, orders []models.Order) []*OrphanPaymentResponse {
	orderIds := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		orderIds[o.OrderId] = struct{}{}
	}

	orphans := make([]*OrphanPaymentResponse, 0)
	for _, p := range payments {
		if p.OrderId != nil {
			if _, ok := orderIds[*p.OrderId]; ok {
				continue
			}
		}
		orphans = append(orphans, &OrphanPaymentResponse{
			PaymentId:   p.PaymentId,
			AmountCents: p.AmountCents,
			AmountUSD:   utils.CentsToUSD(p.AmountCents),
			Status:      p.Status,
			AttemptedAt: p.AttemptedAt,
		})
	}

	// Descending attempted_at; payment id breaks ties so re-runs over the
	// same snapshot always yield the same sequence.
	sort.Slice(orphans, func(i, j int) bool {
		if !orphans[i].AttemptedAt.Equal(orphans[j].AttemptedAt) {
			return orphans[i].AttemptedAt.After(orphans[j].AttemptedAt)
		}
		return orphans[i].PaymentId < orphans[j].PaymentId
	})

	return orphans
}

func GetOrphanPaymentsReport(ctx context.Context) ([]*OrphanPaymentResponse, error) {
	db := config.GetDB()

	var payments []models.Payment
	if err := db.WithContext(ctx).Find(&payments).Error; err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}

	return ComputeOrphanPayments(payments, orders), nil
}
