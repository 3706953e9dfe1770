package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/daryltucker/matbench/internal/model"
)

// ReadResult holds the rows parsed from a raw store.
type ReadResult struct {
	Records []model.Record
	Skipped int // malformed or partially written rows
}

// ReadRecords parses the raw store at path. The file may still be growing;
// rows with the wrong field count or unparsable numbers are counted in
// Skipped and otherwise ignored.
func ReadRecords(path string) (ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, err
	}
	defer f.Close()
	return DecodeRecords(f)
}

// DecodeRecords is ReadRecords over an arbitrary reader.
func DecodeRecords(r io.Reader) (ReadResult, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var res ReadResult
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Skipped++
				continue
			}
			return res, err
		}
		if len(row) > 0 && strings.TrimPrefix(row[0], "\ufeff") == Header[0] {
			continue
		}
		rec, err := parseRecord(row)
		if err != nil {
			Logger.Debug("Skipping raw row", "row", strings.Join(row, string(Separator)), "error", err)
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}
}

func parseRecord(row []string) (model.Record, error) {
	if len(row) != len(Header) {
		return model.Record{}, fmt.Errorf("got %d fields, want %d", len(row), len(Header))
	}
	size, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return model.Record{}, fmt.Errorf("size: %w", err)
	}
	runIdx, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return model.Record{}, fmt.Errorf("run_idx: %w", err)
	}
	var nums [3]float64
	for i := range nums {
		if nums[i], err = ParseNumber(row[4+i]); err != nil {
			return model.Record{}, fmt.Errorf("%s: %w", Header[4+i], err)
		}
	}
	return model.Record{
		RunID:    row[0],
		Language: row[1],
		Size:     size,
		RunIdx:   runIdx,
		TimeMS:   nums[0],
		CPUPct:   nums[1],
		PeakMiB:  nums[2],
	}, nil
}

// ParseNumber accepts "1234.5", "1234,5" and "1.234,5".
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
