package core

// SkipReason classifies why an event produced no ledger mutation.
// Skipping is a terminal, intentional outcome rather than an error:
// one bad record must not abort processing of the rest of the stream.
type SkipReason uint8

const (
	// SkipNone means the event was applied.
	SkipNone SkipReason = iota

	// SkipUnknownKind rejects a record with an unrecognized kind.
	SkipUnknownKind

	// SkipMalformedAmount rejects a deposit/withdrawal whose amount is
	// missing or negative.
	SkipMalformedAmount

	// SkipAccountLocked rejects a deposit/withdrawal on a locked account.
	SkipAccountLocked

	// SkipInsufficientFunds rejects a withdrawal exceeding available.
	SkipInsufficientFunds

	// SkipDuplicateTransaction rejects a deposit/withdrawal whose tx id
	// was already recorded.
	SkipDuplicateTransaction

	// SkipUnknownTransaction rejects a dispute-class event naming a tx
	// id that was never recorded.
	SkipUnknownTransaction

	// SkipClientMismatch rejects a dispute-class event whose client does
	// not own the referenced transaction.
	SkipClientMismatch

	// SkipNotDisputable rejects a dispute on a transaction that is
	// already disputed, or was previously resolved or charged back.
	SkipNotDisputable

	// SkipNotDisputed rejects a resolve/chargeback on a transaction
	// without an open dispute.
	SkipNotDisputed
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipUnknownKind:
		return "unknown_kind"
	case SkipMalformedAmount:
		return "malformed_amount"
	case SkipAccountLocked:
		return "account_locked"
	case SkipInsufficientFunds:
		return "insufficient_funds"
	case SkipDuplicateTransaction:
		return "duplicate_transaction"
	case SkipUnknownTransaction:
		return "unknown_transaction"
	case SkipClientMismatch:
		return "client_mismatch"
	case SkipNotDisputable:
		return "not_disputable"
	case SkipNotDisputed:
		return "not_disputed"
	default:
		return "unknown"
	}
}
