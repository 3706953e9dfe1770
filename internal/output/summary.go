package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/daryltucker/matbench/internal/model"
)

// SummaryHeader lists the summary file columns in order.
var SummaryHeader = []string{
	"run_id", "language", "size", "runs",
	"avg_time_ms", "min_time_ms", "max_time_ms", "cpu_pct_avg", "peak_mib",
}

const utf8BOM = "\ufeff"

// WriteSummary replaces path with one row per summary. Decimals use a comma
// separator and the file starts with a UTF-8 BOM so spreadsheet tools in
// comma-decimal locales open it directly.
func WriteSummary(path string, summaries []model.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	buf := []byte(utf8BOM)
	buf = append(buf, encodeRow(SummaryHeader)...)
	for _, s := range summaries {
		buf = append(buf, encodeRow(FormatSummary(s))...)
	}

	if _, err := f.Write(buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatSummary renders s as summary fields.
func FormatSummary(s model.Summary) []string {
	return []string{
		s.RunID,
		s.Language,
		strconv.Itoa(s.Size),
		strconv.Itoa(s.Runs),
		commaDecimal(s.AvgTimeMS, 3),
		commaDecimal(s.MinTimeMS, 3),
		commaDecimal(s.MaxTimeMS, 3),
		commaDecimal(s.CPUPctAvg, 1),
		commaDecimal(s.PeakMiB, 2),
	}
}

func commaDecimal(v float64, prec int) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', prec, 64), ".", ",", 1)
}
