// Package aggregate derives per-size summaries from a closed batch of raw records.
package aggregate

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/daryltucker/matbench/internal/model"
)

type groupKey struct {
	runID    string
	language string
	size     int
}

// Summarize groups records by (run_id, language, size) and reduces each
// group. Output is ordered by language, size, then run_id.
func Summarize(records []model.Record) []model.Summary {
	var order []groupKey
	times := make(map[groupKey][]float64)
	cpus := make(map[groupKey][]float64)
	peaks := make(map[groupKey][]float64)

	for _, r := range records {
		k := groupKey{runID: r.RunID, language: r.Language, size: r.Size}
		if _, seen := times[k]; !seen {
			order = append(order, k)
		}
		times[k] = append(times[k], r.TimeMS)
		cpus[k] = append(cpus[k], r.CPUPct)
		peaks[k] = append(peaks[k], r.PeakMiB)
	}

	out := make([]model.Summary, 0, len(order))
	for _, k := range order {
		t := times[k]
		out = append(out, model.Summary{
			RunID:     k.runID,
			Language:  k.language,
			Size:      k.size,
			Runs:      len(t),
			AvgTimeMS: clamp(stat.Mean(t, nil), floats.Min(t), floats.Max(t)),
			MinTimeMS: floats.Min(t),
			MaxTimeMS: floats.Max(t),
			CPUPctAvg: stat.Mean(cpus[k], nil),
			PeakMiB:   floats.Max(peaks[k]),
		})
	}

	slices.SortStableFunc(out, func(a, b model.Summary) int {
		return cmp.Or(
			cmp.Compare(a.Language, b.Language),
			cmp.Compare(a.Size, b.Size),
			cmp.Compare(a.RunID, b.RunID),
		)
	})
	return out
}

// clamp absorbs rounding in the mean so min <= avg <= max always holds.
func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
