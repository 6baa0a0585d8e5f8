//go:build linux

package scratch

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14.
// On older kernels, madvise returns EINVAL which we ignore.
const madvPopulateWrite = 23

// hugePageThreshold is the region size above which transparent huge pages
// are requested; below it the TLB savings do not pay for the zeroing.
const hugePageThreshold = 4 << 20

// adviseScratch hints that the region will be written in full by the first
// scatter pass. Best-effort: errors are silently ignored.
func adviseScratch(region []byte) {
	if len(region) == 0 {
		return
	}
	if len(region) >= hugePageThreshold {
		_ = unix.Madvise(region, unix.MADV_HUGEPAGE)
	}
	_ = unix.Madvise(region, madvPopulateWrite)
}
