package reports_test

import (
	"testing"
	"time"

	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/models/reports"
	"github.com/quickcart/recon_backend/utils"
	"github.com/shopspring/decimal"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func payment(id string, orderId *string, cents int64, status models.PaymentStatus, attemptedAt time.Time) models.Payment {
	return models.Payment{
		PaymentId:   id,
		OrderId:     orderId,
		AmountCents: cents,
		Status:      status,
		AttemptedAt: attemptedAt,
	}
}

func TestSalesSummaryCountsDistinctOrders(t *testing.T) {
	at := mustTime(t, "2026-03-01T10:00:00Z")
	orders := []models.Order{
		{OrderId: "ORD-1", OrderTotalCents: 5000},
		{OrderId: "ORD-2", OrderTotalCents: 2500},
	}
	payments := []models.Payment{
		// ORD-1 paid twice; must count once and contribute 5000 once.
		payment("PAY-1", utils.Ptr("ORD-1"), 5000, models.PaymentStatusSuccess, at),
		payment("PAY-2", utils.Ptr("ORD-1"), 5000, models.PaymentStatusSuccess, at.Add(time.Minute)),
		payment("PAY-3", utils.Ptr("ORD-2"), 2500, models.PaymentStatusSuccess, at),
	}

	got := reports.ComputeSalesSummary(orders, payments)

	if got.OrderCount != 2 {
		t.Fatalf("OrderCount = %d, want 2", got.OrderCount)
	}
	if got.TotalCents != 7500 {
		t.Fatalf("TotalCents = %d, want 7500", got.TotalCents)
	}
	if !got.TotalUSD.Equal(decimal.RequireFromString("75.00")) {
		t.Fatalf("TotalUSD = %s, want 75.00", got.TotalUSD)
	}
}

func TestSalesSummaryExcludesTestOrders(t *testing.T) {
	at := mustTime(t, "2026-03-01T10:00:00Z")
	orders := []models.Order{
		{OrderId: "ORD-1", OrderTotalCents: 9900, IsTest: true},
		{OrderId: "ORD-2", OrderTotalCents: 1000},
	}
	payments := []models.Payment{
		payment("PAY-1", utils.Ptr("ORD-1"), 9900, models.PaymentStatusSuccess, at),
		payment("PAY-2", utils.Ptr("ORD-2"), 1000, models.PaymentStatusSuccess, at),
	}

	got := reports.ComputeSalesSummary(orders, payments)

	if got.OrderCount != 1 {
		t.Fatalf("OrderCount = %d, want 1 (test order must not appear)", got.OrderCount)
	}
	if got.TotalCents != 1000 {
		t.Fatalf("TotalCents = %d, want 1000", got.TotalCents)
	}
}

func TestSalesSummaryExcludesOrdersWithoutSuccessfulPayment(t *testing.T) {
	at := mustTime(t, "2026-03-01T10:00:00Z")
	orders := []models.Order{
		{OrderId: "ORD-1", OrderTotalCents: 5000}, // no payment at all
		{OrderId: "ORD-2", OrderTotalCents: 2500}, // failed payment only
	}
	payments := []models.Payment{
		payment("PAY-1", utils.Ptr("ORD-2"), 2500, models.PaymentStatusFailed, at),
		// Dangling reference qualifies nothing.
		payment("PAY-2", utils.Ptr("ORD-404"), 100, models.PaymentStatusSuccess, at),
		// Nil order id qualifies nothing either.
		payment("PAY-3", nil, 100, models.PaymentStatusSuccess, at),
	}

	got := reports.ComputeSalesSummary(orders, payments)

	if got.OrderCount != 0 || got.TotalCents != 0 {
		t.Fatalf("got count=%d cents=%d, want 0/0", got.OrderCount, got.TotalCents)
	}
	if !got.TotalUSD.IsZero() {
		t.Fatalf("TotalUSD = %s, want 0", got.TotalUSD)
	}
}
