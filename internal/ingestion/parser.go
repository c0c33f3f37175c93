package ingestion

import (
	"fmt"
	"strconv"
	"strings"

	"TxReplay/internal/event"

	"github.com/shopspring/decimal"
)

// maxFractionalDigits is the input amount precision. Rows with finer
// precision are malformed.
const maxFractionalDigits = 4

// ParseRow converts one raw CSV row (type, client, tx, amount) into a
// typed record. The amount column may be blank or absent for
// dispute-class rows; when present on one it is ignored. Any row that
// fails to parse must not reach the engine.
func ParseRow(fields []string) (event.Record, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return event.Record{}, fmt.Errorf("expected 3 or 4 columns, got %d", len(fields))
	}

	kind := parseKind(strings.TrimSpace(fields[0]))
	if kind == event.KindUnknown {
		return event.Record{}, fmt.Errorf("unknown event type %q", strings.TrimSpace(fields[0]))
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return event.Record{}, fmt.Errorf("parse client: %w", err)
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return event.Record{}, fmt.Errorf("parse tx: %w", err)
	}

	rec := event.Record{
		Kind:     kind,
		ClientID: uint16(client),
		TxID:     uint32(tx),
	}

	if kind.Funded() {
		raw := ""
		if len(fields) == 4 {
			raw = strings.TrimSpace(fields[3])
		}
		amount, err := parseAmount(raw)
		if err != nil {
			return event.Record{}, fmt.Errorf("parse amount: %w", err)
		}
		rec.Amount = &amount
	}

	return rec, nil
}

func parseKind(s string) event.Kind {
	switch s {
	case "deposit":
		return event.KindDeposit
	case "withdrawal":
		return event.KindWithdrawal
	case "dispute":
		return event.KindDispute
	case "resolve":
		return event.KindResolve
	case "chargeback":
		return event.KindChargeback
	default:
		return event.KindUnknown
	}
}

// parseAmount parses a non-negative decimal with at most four
// fractional digits. Exact arithmetic only; the text never goes through
// a float.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("missing amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %s", s)
	}
	if d.Exponent() < -maxFractionalDigits {
		// Trailing zeros beyond the fourth place are harmless; real
		// extra precision is not.
		if !d.Equal(d.Truncate(maxFractionalDigits)) {
			return decimal.Decimal{}, fmt.Errorf("amount %s exceeds %d fractional digits", s, maxFractionalDigits)
		}
		d = d.Truncate(maxFractionalDigits)
	}
	return d, nil
}
