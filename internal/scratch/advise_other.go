//go:build !linux

package scratch

// adviseScratch is a no-op on non-Linux platforms.
func adviseScratch(region []byte) {
	// No-op
}
