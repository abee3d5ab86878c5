package ingestion

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quickcart/recon_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAmountNotConvertible = errors.New("amount not convertible")

	currencyCodePrefix = regexp.MustCompile(`^[A-Z]{3}\s+`)
	currencySymbols    = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")
)

// rawLogLine is one upstream JSONL event as emitted by the payment processor.
type rawLogLine struct {
	Event struct {
		Id string    `json:"id"`
		Ts time.Time `json:"ts"`
	} `json:"event"`
	Entity struct {
		Order struct {
			Id string `json:"id"`
		} `json:"order"`
		Payment struct {
			Id string `json:"id"`
		} `json:"payment"`
	} `json:"entity"`
	Payload struct {
		Amount any    `json:"Amount"`
		Status string `json:"status"`
	} `json:"payload"`
}

// cleanedRecord is what the validator sees before a row may be inserted.
// The engine downstream assumes well-typed input; this is the gate.
type cleanedRecord struct {
	EventId   string    `validate:"required"`
	OrderId   string    `validate:"required"`
	PaymentId string    `validate:"required"`
	Status    string    `validate:"required,oneof=SUCCESS FAILED"`
	CreatedAt time.Time `validate:"required"`
}

// StandardizeCurrency converts the feed's assorted amount formats to a
// non-negative decimal USD value. Accepted inputs: JSON numbers, and strings
// like "1234.5", "USD 1,234.50", "$12.00". Negative amounts clamp to zero
// (refunds arrive on a separate feed; a negative here is upstream noise).
// Unparseable strings return ErrAmountNotConvertible so the caller can log
// the line instead of silently coercing it.
func StandardizeCurrency(amount any) (decimal.Decimal, error) {
	switch v := amount.(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		if v < 0 {
			return decimal.Zero, nil
		}
		return decimal.NewFromFloat(v), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, ErrAmountNotConvertible
		}
		if d.IsNegative() {
			return decimal.Zero, nil
		}
		return d, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, nil
		}
		s = currencyCodePrefix.ReplaceAllString(s, "")
		s = currencySymbols.Replace(s)
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, ErrAmountNotConvertible
		}
		if d.IsNegative() {
			return decimal.Zero, nil
		}
		return d, nil
	default:
		return decimal.Zero, ErrAmountNotConvertible
	}
}

// Stats counts what happened to each line of a feed file.
type Stats struct {
	Processed     int `json:"processed"`
	Skipped       int `json:"skipped"`
	Archived      int `json:"archived"`
	Duplicates    int `json:"duplicates"`
	ArchiveFailed int `json:"archive_failed"`
	Inserted      int `json:"inserted"`
	Failed        int `json:"failed"`
}

// CleanedLog pairs a cleaned row with the verbatim feed line it came from;
// the archival phase stores the original payload, not the cleaned form.
type CleanedLog struct {
	Row models.RawTransactionLog
	Raw string
}

// Clean reads a JSONL raw-log stream and returns the rows ready for insert.
// Per-line problems are warn-and-skip, never fatal: a malformed line must not
// sink the rest of the file. A line whose amount is present but unparseable
// is kept with amount 0.00 so the event is still visible to reconciliation.
func Clean(ctx context.Context, r io.Reader, logger *logrus.Logger) ([]CleanedLog, *Stats) {
	validate := validator.New()
	stats := &Stats{}
	var rows []CleanedLog

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawLogLine
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			stats.Skipped++
			logger.WithFields(logrus.Fields{"line": lineNum}).Warnf("JSON decode error: %v", err)
			continue
		}

		if raw.Payload.Amount == nil {
			stats.Skipped++
			logger.WithFields(logrus.Fields{"line": lineNum}).Warn("missing Amount field")
			continue
		}

		amount, err := StandardizeCurrency(raw.Payload.Amount)
		if err != nil {
			logger.WithFields(logrus.Fields{"line": lineNum}).
				Warnf("could not convert amount %v, setting to 0.0", raw.Payload.Amount)
			amount = decimal.Zero
		}

		rec := cleanedRecord{
			EventId:   raw.Event.Id,
			OrderId:   raw.Entity.Order.Id,
			PaymentId: raw.Entity.Payment.Id,
			Status:    raw.Payload.Status,
			CreatedAt: raw.Event.Ts,
		}
		if err := validate.Struct(rec); err != nil {
			stats.Skipped++
			logger.WithFields(logrus.Fields{"line": lineNum}).Warnf("invalid record: %v", err)
			continue
		}

		rows = append(rows, CleanedLog{
			Row: models.RawTransactionLog{
				EventId:   rec.EventId,
				OrderId:   rec.OrderId,
				PaymentId: rec.PaymentId,
				AmountUsd: amount,
				Status:    models.TransactionStatus(rec.Status),
				CreatedAt: rec.CreatedAt,
			},
			Raw: line,
		})
		stats.Processed++
	}
	if err := scanner.Err(); err != nil {
		logger.Warnf("stopped reading feed after line %d: %v", lineNum, err)
	}

	logger.WithFields(logrus.Fields{
		"processed": stats.Processed,
		"skipped":   stats.Skipped,
	}).Info("processed raw logs")

	return rows, stats
}
