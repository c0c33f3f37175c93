package core_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"TxReplay/internal/core"
	"TxReplay/internal/ingestion"
	"TxReplay/internal/observability"
	"TxReplay/internal/report"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// replay runs a whole CSV stream through ingestion and the engine, the
// way cmd/txreplay does.
func replay(t *testing.T, input string) *core.Engine {
	t.Helper()
	engine := core.NewEngine(zerolog.Nop(), nil)
	reader := ingestion.NewReader(strings.NewReader(input), zerolog.Nop(), nil)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		engine.Process(rec)
	}
	return engine
}

func total(t *testing.T, e *core.Engine, client uint16) decimal.Decimal {
	t.Helper()
	acct, ok := e.Accounts().Get(client)
	if !ok {
		t.Fatalf("account %d should exist", client)
	}
	return acct.Total()
}

func TestReplay_MixedClients(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
deposit,2,2,2.0
deposit,1,3,2.0
withdrawal,1,4,1.5
withdrawal,2,5,3.0
deposit,3,6,1.5
deposit,4,7,4.0
`
	e := replay(t, input)

	if e.Accounts().Len() != 4 {
		t.Fatalf("got %d accounts, want 4", e.Accounts().Len())
	}
	if got := total(t, e, 1); !got.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("client 1 total: got %s, want 1.5", got)
	}
	// Client 2's withdrawal exceeds its balance and is skipped whole.
	if got := total(t, e, 2); !got.Equal(decimal.RequireFromString("2.0")) {
		t.Errorf("client 2 total: got %s, want 2.0", got)
	}
	if got := total(t, e, 3); !got.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("client 3 total: got %s, want 1.5", got)
	}
	if got := total(t, e, 4); !got.Equal(decimal.RequireFromString("4.0")) {
		t.Errorf("client 4 total: got %s, want 4.0", got)
	}
}

func TestReplay_DisputeLifecycleAcrossStream(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
deposit,2,2,5.0
dispute,2,2,
chargeback,2,2,
deposit,2,8,1.0
resolve,1,1,
dispute,1,1,
resolve,1,1,
`
	e := replay(t, input)

	// Client 2: deposit disputed and charged back, later deposit blocked
	// by the lock.
	acct2, _ := e.Accounts().Get(2)
	if !acct2.Locked {
		t.Error("client 2 should be locked")
	}
	if !acct2.Total().IsZero() {
		t.Errorf("client 2 total: got %s, want 0", acct2.Total())
	}

	// Client 1: premature resolve skipped, then a full dispute/resolve
	// round-trip.
	acct1, _ := e.Accounts().Get(1)
	if acct1.Locked {
		t.Error("client 1 should not be locked")
	}
	if !acct1.Available.Equal(decimal.RequireFromString("1.0")) {
		t.Errorf("client 1 available: got %s, want 1.0", acct1.Available)
	}
	if !acct1.Held.IsZero() {
		t.Errorf("client 1 held: got %s, want 0", acct1.Held)
	}
}

func TestReplay_InvariantsHoldThroughout(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,10.0
dispute,1,1,
deposit,1,3,0.0001
resolve,1,1,
withdrawal,1,2,2.5
deposit,2,4,3.0
dispute,2,4,
chargeback,2,4,
`
	engine := core.NewEngine(zerolog.Nop(), nil)
	reader := ingestion.NewReader(strings.NewReader(input), zerolog.Nop(), nil)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		engine.Process(rec)

		// Non-negativity and total derivation hold after every event.
		for _, client := range engine.Accounts().Clients() {
			acct, _ := engine.Accounts().Get(client)
			if err := acct.ValidateNonNegative(); err != nil {
				t.Fatalf("after tx %d: %v", rec.TxID, err)
			}
			if !acct.Total().Equal(acct.Available.Add(acct.Held)) {
				t.Fatalf("after tx %d: total != available + held", rec.TxID)
			}
		}
	}

	if got := total(t, engine, 1); !got.Equal(decimal.RequireFromString("7.5001")) {
		t.Errorf("client 1 total: got %s, want 7.5001", got)
	}
	if got := total(t, engine, 2); !got.IsZero() {
		t.Errorf("client 2 total: got %s, want 0", got)
	}
}

func TestReplay_DisputeOfSpentDepositRecordsDebt(t *testing.T) {
	// A deposit that was already withdrawn can still be disputed; the
	// hold then exceeds what is left and available goes into debt. The
	// engine tracks it faithfully rather than blocking the dispute.
	input := `type,client,tx,amount
deposit,1,1,10.0
withdrawal,1,2,8.0
dispute,1,1,
chargeback,1,1,
`
	e := replay(t, input)

	acct, _ := e.Accounts().Get(1)
	if !acct.Locked {
		t.Error("client 1 should be locked")
	}
	if !acct.Available.Equal(decimal.RequireFromString("-8.0")) {
		t.Errorf("available: got %s, want -8.0", acct.Available)
	}
	if !acct.Held.IsZero() {
		t.Errorf("held: got %s, want 0", acct.Held)
	}
}

func TestReplay_ReportOutput(t *testing.T) {
	input := `type,client,tx,amount
deposit,2,1,2.0
deposit,1,2,1.5
dispute,1,2,
`
	e := replay(t, input)

	var buf bytes.Buffer
	if err := report.Write(&buf, e.Snapshot()); err != nil {
		t.Fatalf("write report: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,0,1.5,1.5,false\n" +
		"2,2,0,2,false\n"
	if buf.String() != want {
		t.Errorf("report:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestReplay_MetricsEndToEnd(t *testing.T) {
	m := observability.NewMetrics()
	engine := core.NewEngine(zerolog.Nop(), m)
	input := "type,client,tx,amount\ndeposit,1,1,1.0\nbogus,1,2,1.0\n"
	reader := ingestion.NewReader(strings.NewReader(input), zerolog.Nop(), m)

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		engine.Process(rec)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{
		"txreplay_events_applied_total",
		"txreplay_rows_malformed_total",
		"txreplay_accounts_created_total",
		"txreplay_transactions_stored_total",
	} {
		if !found[name] {
			t.Errorf("metric %s not gathered", name)
		}
	}
}
