/*
PURPOSE:
  Defines the core data structures used throughout matbench.
  These models represent per-run measurements and their per-size summaries.

REQUIREMENTS:
  User-specified:
  - Record run_id, language, size, run_idx, time_ms, cpu_pct, peak_mib.
  - Summaries group by (run_id, language, size).

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/aggregate, internal/chart
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records are never mutated after creation.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/summary.go

MAINTENANCE:
  - Update the CSV header and writers when adding fields.
*/

package model

// Record is one measured multiplication run.
type Record struct {
	RunID    string  `json:"run_id"`
	Language string  `json:"language"`
	Size     int     `json:"size"`
	RunIdx   int     `json:"run_idx"` // 1-based within a size
	TimeMS   float64 `json:"time_ms"`
	CPUPct   float64 `json:"cpu_pct"`
	PeakMiB  float64 `json:"peak_mib"`
}

// Summary aggregates the records sharing a (RunID, Language, Size) key.
type Summary struct {
	RunID     string  `json:"run_id"`
	Language  string  `json:"language"`
	Size      int     `json:"size"`
	Runs      int     `json:"runs"`
	AvgTimeMS float64 `json:"avg_time_ms"`
	MinTimeMS float64 `json:"min_time_ms"`
	MaxTimeMS float64 `json:"max_time_ms"`
	CPUPctAvg float64 `json:"cpu_pct_avg"`
	PeakMiB   float64 `json:"peak_mib"` // max over the group
}
