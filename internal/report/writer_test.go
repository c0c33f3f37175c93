package report_test

import (
	"bytes"
	"strings"
	"testing"

	"TxReplay/internal/core"
	"TxReplay/internal/report"

	"github.com/shopspring/decimal"
)

func snap(client uint16, available, held string, locked bool) core.AccountSnapshot {
	a := decimal.RequireFromString(available)
	h := decimal.RequireFromString(held)
	return core.AccountSnapshot{
		ClientID:  client,
		Available: a,
		Held:      h,
		Total:     a.Add(h),
		Locked:    locked,
	}
}

func TestWrite_SortedByClient(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, []core.AccountSnapshot{
		snap(3, "1.5", "0", false),
		snap(1, "0", "2", true),
		snap(2, "0.0001", "0", false),
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	want := strings.Join([]string{
		"client,available,held,total,locked",
		"1,0,2,2,true",
		"2,0.0001,0,0.0001,false",
		"3,1.5,0,1.5,false",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("report:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "client,available,held,total,locked\n" {
		t.Errorf("empty ledger should emit header only, got %q", buf.String())
	}
}
