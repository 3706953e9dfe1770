//go:build unix

package profile

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ProcessSampler reads counters for the calling process via getrusage(2).
type ProcessSampler struct{}

func (ProcessSampler) Sample() (Sample, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return Sample{}, fmt.Errorf("getrusage: %w", err)
	}
	rss, err := residentBytes(&ru)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		CPU: time.Duration(ru.Utime.Nano() + ru.Stime.Nano()),
		RSS: rss,
	}, nil
}
