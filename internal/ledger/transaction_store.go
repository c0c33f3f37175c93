package ledger

import (
	"TxReplay/internal/event"

	"github.com/shopspring/decimal"
)

// DisputeState tracks where a stored transaction sits in the dispute
// lifecycle. Resolved and ChargedBack are terminal: a transaction that
// has been resolved or charged back cannot be disputed again.
type DisputeState uint8

const (
	DisputeNone DisputeState = iota
	DisputeOpen
	DisputeResolved
	DisputeChargedBack
)

func (d DisputeState) String() string {
	switch d {
	case DisputeNone:
		return "none"
	case DisputeOpen:
		return "open"
	case DisputeResolved:
		return "resolved"
	case DisputeChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// StoredTransaction is the retained view of a deposit or withdrawal,
// kept for later dispute resolution. Entries are owned by the
// TransactionStore and mutated in place.
type StoredTransaction struct {
	Kind     event.Kind // KindDeposit or KindWithdrawal only
	ClientID uint16
	Amount   decimal.Decimal
	State    DisputeState
}

// Disputed reports whether the transaction has an open dispute.
func (t *StoredTransaction) Disputed() bool {
	return t.State == DisputeOpen
}

// TransactionStore maps tx ids to the original deposit/withdrawal they
// refer to. There is no removal: a resolved or charged-back transaction
// stays in the store so replays of dispute-class events stay no-ops.
type TransactionStore struct {
	txs map[uint32]*StoredTransaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		txs: make(map[uint32]*StoredTransaction),
	}
}

// Record inserts a stored transaction keyed by txID. Tx ids are unique
// across all deposits and withdrawals; on a duplicate the original entry
// wins and Record reports false.
func (s *TransactionStore) Record(txID uint32, tx *StoredTransaction) bool {
	if _, exists := s.txs[txID]; exists {
		return false
	}
	s.txs[txID] = tx
	return true
}

// Find returns the stored transaction for txID if one was recorded.
func (s *TransactionStore) Find(txID uint32) (*StoredTransaction, bool) {
	tx, ok := s.txs[txID]
	return tx, ok
}

// Len returns the number of recorded transactions.
func (s *TransactionStore) Len() int {
	return len(s.txs)
}
