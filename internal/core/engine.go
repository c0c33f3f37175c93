package core

import (
	"TxReplay/internal/event"
	"TxReplay/internal/ledger"
	"TxReplay/internal/observability"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine is the single-threaded settlement processor. It consumes one
// record at a time in stream order and owns both stores for the
// lifetime of one run; construct a fresh Engine per run.
type Engine struct {
	runID        uuid.UUID
	log          zerolog.Logger
	accounts     *ledger.AccountStore
	transactions *ledger.TransactionStore
	metrics      *observability.Metrics

	applied uint64
	skipped uint64
}

// Stats summarizes one run.
type Stats struct {
	Applied      uint64
	Skipped      uint64
	Accounts     int
	Transactions int
}

// AccountSnapshot is one final output tuple. Total is computed at
// emission time, never stored.
type AccountSnapshot struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// NewEngine creates an engine with empty stores. A nil metrics is
// allowed and disables counters.
func NewEngine(log zerolog.Logger, metrics *observability.Metrics) *Engine {
	runID := uuid.New()
	return &Engine{
		runID:        runID,
		log:          log.With().Str("run_id", runID.String()).Logger(),
		accounts:     ledger.NewAccountStore(),
		transactions: ledger.NewTransactionStore(),
		metrics:      metrics,
	}
}

// RunID identifies this engine instance in logs.
func (e *Engine) RunID() uuid.UUID {
	return e.runID
}

// Process applies one record to the ledger. It returns SkipNone when the
// record mutated state, or the reason it was skipped. A skipped record
// has no effect at all; processing always continues.
func (e *Engine) Process(rec event.Record) SkipReason {
	var reason SkipReason

	if rec.Kind == event.KindUnknown || rec.Kind > event.KindChargeback {
		reason = SkipUnknownKind
	} else {
		// The account exists from the first event referencing the
		// client, even when that event is subsequently skipped.
		acct := e.account(rec.ClientID)

		switch rec.Kind {
		case event.KindDeposit:
			reason = e.applyDeposit(acct, rec)
		case event.KindWithdrawal:
			reason = e.applyWithdrawal(acct, rec)
		case event.KindDispute:
			reason = e.applyDispute(acct, rec)
		case event.KindResolve:
			reason = e.applyResolve(acct, rec)
		case event.KindChargeback:
			reason = e.applyChargeback(acct, rec)
		}
	}

	if reason == SkipNone {
		e.applied++
		if e.metrics != nil {
			e.metrics.EventsApplied.WithLabelValues(rec.Kind.String()).Inc()
		}
		return SkipNone
	}

	e.skipped++
	if e.metrics != nil {
		e.metrics.EventsSkipped.WithLabelValues(rec.Kind.String(), reason.String()).Inc()
	}
	e.log.Debug().
		Str("kind", rec.Kind.String()).
		Uint16("client", rec.ClientID).
		Uint32("tx", rec.TxID).
		Str("reason", reason.String()).
		Msg("event skipped")
	return reason
}

func (e *Engine) applyDeposit(acct *ledger.Account, rec event.Record) SkipReason {
	if rec.Amount == nil || rec.Amount.IsNegative() {
		return SkipMalformedAmount
	}
	if acct.Locked {
		return SkipAccountLocked
	}
	if !e.storeTransaction(rec) {
		return SkipDuplicateTransaction
	}

	acct.Available = acct.Available.Add(*rec.Amount)
	return SkipNone
}

func (e *Engine) applyWithdrawal(acct *ledger.Account, rec event.Record) SkipReason {
	if rec.Amount == nil || rec.Amount.IsNegative() {
		return SkipMalformedAmount
	}
	if acct.Locked {
		return SkipAccountLocked
	}
	if acct.Available.LessThan(*rec.Amount) {
		return SkipInsufficientFunds
	}
	// The funds check gates storage: a failed withdrawal is never
	// recorded, so it can never be disputed.
	if !e.storeTransaction(rec) {
		return SkipDuplicateTransaction
	}

	acct.Available = acct.Available.Sub(*rec.Amount)
	return SkipNone
}

// Disputes move funds from available to held. Locked accounts still
// evaluate dispute-class events: locking blocks new deposits and
// withdrawals only, already-open disputes may still settle.
func (e *Engine) applyDispute(acct *ledger.Account, rec event.Record) SkipReason {
	tx, reason := e.reference(rec)
	if reason != SkipNone {
		return reason
	}
	if tx.State != ledger.DisputeNone {
		return SkipNotDisputable
	}

	acct.Available = acct.Available.Sub(tx.Amount)
	acct.Held = acct.Held.Add(tx.Amount)
	tx.State = ledger.DisputeOpen
	return SkipNone
}

func (e *Engine) applyResolve(acct *ledger.Account, rec event.Record) SkipReason {
	tx, reason := e.reference(rec)
	if reason != SkipNone {
		return reason
	}
	if tx.State != ledger.DisputeOpen {
		return SkipNotDisputed
	}

	acct.Held = acct.Held.Sub(tx.Amount)
	acct.Available = acct.Available.Add(tx.Amount)
	tx.State = ledger.DisputeResolved
	return SkipNone
}

// Chargebacks permanently remove the disputed funds from held and lock
// the account. Nothing returns to available.
func (e *Engine) applyChargeback(acct *ledger.Account, rec event.Record) SkipReason {
	tx, reason := e.reference(rec)
	if reason != SkipNone {
		return reason
	}
	if tx.State != ledger.DisputeOpen {
		return SkipNotDisputed
	}

	acct.Held = acct.Held.Sub(tx.Amount)
	acct.Locked = true
	tx.State = ledger.DisputeChargedBack
	return SkipNone
}

// account resolves the client's account, creating it on first reference.
func (e *Engine) account(clientID uint16) *ledger.Account {
	acct, created := e.accounts.GetOrCreate(clientID)
	if created && e.metrics != nil {
		e.metrics.AccountsCreated.Inc()
	}
	return acct
}

// storeTransaction records a deposit/withdrawal for later dispute
// resolution. Returns false when the tx id was already taken.
func (e *Engine) storeTransaction(rec event.Record) bool {
	ok := e.transactions.Record(rec.TxID, &ledger.StoredTransaction{
		Kind:     rec.Kind,
		ClientID: rec.ClientID,
		Amount:   *rec.Amount,
	})
	if ok && e.metrics != nil {
		e.metrics.TransactionsStored.Inc()
	}
	return ok
}

// reference looks up the transaction a dispute-class event points at and
// checks it belongs to the event's client.
func (e *Engine) reference(rec event.Record) (*ledger.StoredTransaction, SkipReason) {
	tx, ok := e.transactions.Find(rec.TxID)
	if !ok {
		return nil, SkipUnknownTransaction
	}
	if tx.ClientID != rec.ClientID {
		return nil, SkipClientMismatch
	}
	return tx, SkipNone
}

// Snapshot returns the final account tuples in no particular order.
func (e *Engine) Snapshot() []AccountSnapshot {
	snaps := make([]AccountSnapshot, 0, e.accounts.Len())
	for _, clientID := range e.accounts.Clients() {
		acct, _ := e.accounts.Get(clientID)
		snaps = append(snaps, AccountSnapshot{
			ClientID:  acct.ClientID,
			Available: acct.Available,
			Held:      acct.Held,
			Total:     acct.Total(),
			Locked:    acct.Locked,
		})
	}
	return snaps
}

// Accounts exposes the account store, e.g. for invariant checks.
func (e *Engine) Accounts() *ledger.AccountStore {
	return e.accounts
}

// Stats returns run totals for the end-of-run summary.
func (e *Engine) Stats() Stats {
	return Stats{
		Applied:      e.applied,
		Skipped:      e.skipped,
		Accounts:     e.accounts.Len(),
		Transactions: e.transactions.Len(),
	}
}
