package profile

import (
	"fmt"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

// residentBytes reads the current RSS of this process from /proc/self/stat.
func residentBytes(_ *unix.Rusage) (uint64, error) {
	self, err := procfs.Self()
	if err != nil {
		return 0, fmt.Errorf("procfs self: %w", err)
	}
	st, err := self.Stat()
	if err != nil {
		return 0, fmt.Errorf("procfs stat: %w", err)
	}
	return uint64(st.ResidentMemory()), nil
}
