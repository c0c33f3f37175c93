package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"TxReplay/internal/core"
)

// Write renders the final account snapshots as CSV. Row order carries no
// meaning in the output contract; rows are sorted by client id anyway so
// runs over the same input diff cleanly.
func Write(w io.Writer, snaps []core.AccountSnapshot) error {
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].ClientID < snaps[j].ClientID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, s := range snaps {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
