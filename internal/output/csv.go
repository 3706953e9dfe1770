/*
PURPOSE:
  Append-only semicolon-delimited store for per-run benchmark records.
  Ensures crash resilience by appending each record as one write.

REQUIREMENTS:
  User-specified:
  - Header `run_id;language;size;run_idx;time_ms;cpu_pct;peak_mib`, written
    once and only when the file does not already exist.
  - time_ms %.3f, cpu_pct %.1f, peak_mib %.2f, period decimal separator.
  - Open in append mode per write. Never truncate.

  Implementation-discovered:
  - O_EXCL on header creation makes the exists-check and create one step.
  - Each row is encoded into a buffer first so the file sees a single
    write per record.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on open or write failure. No retries.

RELATED FILES:
  - internal/output/reader.go
*/

package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/matbench/internal/model"
)

// Separator is the field delimiter of every file matbench reads or writes.
const Separator = ';'

// Header lists the raw store columns in order.
var Header = []string{"run_id", "language", "size", "run_idx", "time_ms", "cpu_pct", "peak_mib"}

// CSVWriter appends records to a raw results file.
type CSVWriter struct {
	path string
	mu   sync.Mutex
}

// NewCSVWriter prepares path for appending, writing the header only if
// the file does not exist yet. Existing content is left untouched.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	switch {
	case errors.Is(err, fs.ErrExist):
		return &CSVWriter{path: path}, nil
	case err != nil:
		return nil, err
	}

	if _, err := f.Write(encodeRow(Header)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &CSVWriter{path: path}, nil
}

// Path returns the file being appended to.
func (cw *CSVWriter) Path() string { return cw.path }

// Write appends a single record to the file.
func (cw *CSVWriter) Write(r model.Record) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	f, err := os.OpenFile(cw.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(encodeRow(FormatRecord(r))); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", cw.path, err)
	}
	return f.Close()
}

// MinStoredTimeMS is the smallest time_ms the three-place format can carry.
// Sub-microsecond runs are stored at this value rather than as 0.000.
const MinStoredTimeMS = 0.001

// FormatRecord renders r as raw store fields.
func FormatRecord(r model.Record) []string {
	return []string{
		r.RunID,
		r.Language,
		strconv.Itoa(r.Size),
		strconv.Itoa(r.RunIdx),
		strconv.FormatFloat(max(r.TimeMS, MinStoredTimeMS), 'f', 3, 64),
		strconv.FormatFloat(r.CPUPct, 'f', 1, 64),
		strconv.FormatFloat(r.PeakMiB, 'f', 2, 64),
	}
}

func encodeRow(fields []string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = Separator
	// Writes to a bytes.Buffer cannot fail.
	_ = w.Write(fields)
	w.Flush()
	return buf.Bytes()
}
