package ingestion

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/quickcart/recon_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestStandardizeCurrency(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		want  string
		isErr bool
	}{
		{name: "plain float", in: float64(12.5), want: "12.5"},
		{name: "negative clamps to zero", in: float64(-3), want: "0"},
		{name: "currency code prefix", in: "USD 1,234.50", want: "1234.50"},
		{name: "dollar symbol", in: "$12.00", want: "12.00"},
		{name: "pound symbol with spaces", in: " £99.95 ", want: "99.95"},
		{name: "negative string clamps to zero", in: "-45.00", want: "0"},
		{name: "empty string", in: "", want: "0"},
		{name: "nil", in: nil, want: "0"},
		{name: "garbage string", in: "abc", isErr: true},
		{name: "unsupported type", in: []any{1}, isErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StandardizeCurrency(tc.in)
			if tc.isErr {
				if err == nil {
					t.Fatalf("want error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

const sampleFeed = `
{"event":{"id":"EVT-1","ts":"2026-03-10T10:00:00Z"},"entity":{"order":{"id":"ORD-1"},"payment":{"id":"PAY-1"}},"payload":{"Amount":"USD 1,250.00","status":"SUCCESS"}}
{"event":{"id":"EVT-2","ts":"2026-03-10T11:00:00Z"},"entity":{"order":{"id":"ORD-2"},"payment":{"id":"PAY-2"}},"payload":{"Amount":42.5,"status":"FAILED"}}
not json at all
{"event":{"id":"EVT-3","ts":"2026-03-10T12:00:00Z"},"entity":{"order":{"id":"ORD-3"},"payment":{"id":"PAY-3"}},"payload":{"status":"SUCCESS"}}
{"event":{"id":"EVT-4","ts":"2026-03-10T13:00:00Z"},"entity":{"order":{"id":"ORD-4"},"payment":{"id":"PAY-4"}},"payload":{"Amount":"??","status":"SUCCESS"}}
{"event":{"id":"EVT-5","ts":"2026-03-10T14:00:00Z"},"entity":{"order":{"id":"ORD-5"},"payment":{"id":"PAY-5"}},"payload":{"Amount":10,"status":"REFUNDED"}}
`

func TestCleanWarnsAndSkips(t *testing.T) {
	rows, stats := Clean(context.Background(), strings.NewReader(sampleFeed), discardLogger())

	// EVT-1, EVT-2 clean; EVT-4 kept with amount coerced to 0 after a warning.
	// Skipped: the non-JSON line, EVT-3 (no Amount), EVT-5 (unknown status).
	if stats.Processed != 3 {
		t.Fatalf("Processed = %d, want 3", stats.Processed)
	}
	if stats.Skipped != 3 {
		t.Fatalf("Skipped = %d, want 3", stats.Skipped)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	if rows[0].Row.EventId != "EVT-1" || !rows[0].Row.AmountUsd.Equal(decimal.RequireFromString("1250.00")) {
		t.Fatalf("rows[0] = %+v, want EVT-1 / 1250.00", rows[0].Row)
	}
	if rows[1].Row.Status != models.TransactionStatusFailed {
		t.Fatalf("rows[1].Status = %s, want FAILED", rows[1].Row.Status)
	}
	if rows[2].Row.EventId != "EVT-4" || !rows[2].Row.AmountUsd.IsZero() {
		t.Fatalf("rows[2] = %+v, want EVT-4 with zero amount", rows[2].Row)
	}
	if rows[2].Row.CreatedAt.UTC().Format("2006-01-02") != "2026-03-10" {
		t.Fatalf("rows[2].CreatedAt = %s, want event ts, not insert time", rows[2].Row.CreatedAt)
	}

	// Each cleaned row carries its verbatim feed line for archival; the
	// original text is stored, not the cleaned form.
	for i, want := range []string{"EVT-1", "EVT-2", "EVT-4"} {
		if !strings.Contains(rows[i].Raw, `"id":"`+want+`"`) {
			t.Fatalf("rows[%d].Raw = %q, want original line for %s", i, rows[i].Raw, want)
		}
	}
	if !strings.Contains(rows[0].Raw, `"Amount":"USD 1,250.00"`) {
		t.Fatalf("rows[0].Raw = %q, want unstandardized amount preserved", rows[0].Raw)
	}
}
