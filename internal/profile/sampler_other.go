//go:build !unix

package profile

import (
	"runtime"
)

// ProcessSampler approximates RSS with the Go runtime's OS reservation.
// CPU time is not available on this platform and always reads zero.
type ProcessSampler struct{}

func (ProcessSampler) Sample() (Sample, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Sample{RSS: ms.Sys}, nil
}
