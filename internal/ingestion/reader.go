package ingestion

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"TxReplay/internal/event"
	"TxReplay/internal/observability"

	"github.com/rs/zerolog"
)

// Reader streams records out of a CSV source, one at a time, in file
// order. The stream is lazy, finite and non-restartable. Rows that fail
// to parse are counted, logged at debug level and dropped; they never
// reach the engine.
type Reader struct {
	csv     *csv.Reader
	log     zerolog.Logger
	metrics *observability.Metrics

	line      int
	malformed uint64
}

// NewReader wraps r. A nil metrics is allowed.
func NewReader(r io.Reader, log zerolog.Logger, metrics *observability.Metrics) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // dispute-class rows may omit the amount column
	cr.TrimLeadingSpace = true
	return &Reader{
		csv:     cr,
		log:     log,
		metrics: metrics,
	}
}

// Next returns the next valid record. It returns io.EOF at end of
// input; any other error is an unrecoverable read failure.
func (r *Reader) Next() (event.Record, error) {
	for {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return event.Record{}, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Structurally broken row: same policy as a row that
			// fails field parsing.
			r.dropRow(parseErr.Line, err)
			continue
		}
		if err != nil {
			return event.Record{}, err
		}

		r.line++
		if r.line == 1 && isHeader(fields) {
			continue
		}

		rec, err := ParseRow(fields)
		if err != nil {
			r.dropRow(r.line, err)
			continue
		}
		return rec, nil
	}
}

// Malformed returns the number of rows dropped so far.
func (r *Reader) Malformed() uint64 {
	return r.malformed
}

func (r *Reader) dropRow(line int, err error) {
	r.malformed++
	if r.metrics != nil {
		r.metrics.RowsMalformed.Inc()
	}
	r.log.Debug().Int("line", line).Err(err).Msg("row dropped")
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.TrimSpace(fields[0]) == "type"
}
