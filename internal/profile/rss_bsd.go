//go:build unix && !linux

package profile

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// residentBytes falls back to the rusage high-water mark where no cheap
// current-RSS source exists. Darwin reports bytes, the BSDs kilobytes.
func residentBytes(ru *unix.Rusage) (uint64, error) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return uint64(ru.Maxrss), nil
	}
	return uint64(ru.Maxrss) * 1024, nil
}
