package ingestion_test

import (
	"strings"
	"testing"

	"TxReplay/internal/ingestion"
)

// FuzzParseRow checks the row parser never panics and that every record
// it does accept is structurally valid.
func FuzzParseRow(f *testing.F) {
	f.Add("deposit,1,1,1.0")
	f.Add("withdrawal,65535,4294967295,0.0001")
	f.Add("dispute,1,1,")
	f.Add("resolve,2,3")
	f.Add("chargeback,1,1,1.0")
	f.Add("deposit,1,1,")
	f.Add(",,,")
	f.Add("deposit,-1,1,1e10")

	f.Fuzz(func(t *testing.T, line string) {
		fields := strings.Split(line, ",")
		rec, err := ingestion.ParseRow(fields)
		if err != nil {
			return
		}
		if rec.Kind.Funded() {
			if rec.Amount == nil {
				t.Errorf("%q: funded record without amount", line)
			} else if rec.Amount.IsNegative() {
				t.Errorf("%q: negative amount accepted", line)
			}
		} else if rec.Amount != nil {
			t.Errorf("%q: dispute-class record with amount", line)
		}
	})
}
