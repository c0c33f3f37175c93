package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters for one replay run.
//
// Each Metrics instance registers on its own private registry so that
// multiple independent engine runs in one process never collide on
// metric registration.
type Metrics struct {
	registry *prometheus.Registry

	// EventsApplied counts events that mutated the ledger, by kind.
	EventsApplied *prometheus.CounterVec

	// EventsSkipped counts events rejected by a precondition, by kind
	// and skip reason.
	EventsSkipped *prometheus.CounterVec

	// RowsMalformed counts input rows the adapter could not parse into
	// a structurally valid record.
	RowsMalformed prometheus.Counter

	// AccountsCreated counts lazily created client accounts.
	AccountsCreated prometheus.Counter

	// TransactionsStored counts deposits/withdrawals retained for
	// dispute resolution.
	TransactionsStored prometheus.Counter
}

// NewMetrics creates and registers all counters on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		EventsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txreplay_events_applied_total",
			Help: "Events successfully applied to the ledger",
		}, []string{"kind"}),

		EventsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txreplay_events_skipped_total",
			Help: "Events skipped by a failed precondition",
		}, []string{"kind", "reason"}),

		RowsMalformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "txreplay_rows_malformed_total",
			Help: "Input rows dropped before reaching the engine",
		}),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "txreplay_accounts_created_total",
			Help: "Client accounts created on first reference",
		}),

		TransactionsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "txreplay_transactions_stored_total",
			Help: "Deposit/withdrawal transactions retained for disputes",
		}),
	}
}

// Registry exposes the private registry, e.g. for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
