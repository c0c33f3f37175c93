package event

import (
	"github.com/shopspring/decimal"
)

// Kind discriminates the five payment event types.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDeposit
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Funded reports whether the kind carries its own amount.
// Deposit and Withdrawal do; dispute-class events reference a prior
// transaction's amount instead.
func (k Kind) Funded() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// DisputeClass reports whether the kind references a prior transaction
// by tx id rather than carrying an amount.
func (k Kind) DisputeClass() bool {
	return k == KindDispute || k == KindResolve || k == KindChargeback
}

// Record is one fully parsed input event.
type Record struct {
	Kind     Kind
	ClientID uint16
	TxID     uint32

	// Amount is nil for dispute-class events. When present it is
	// non-negative with at most four fractional digits; the ingestion
	// layer guarantees both before a Record reaches the engine.
	Amount *decimal.Decimal
}
