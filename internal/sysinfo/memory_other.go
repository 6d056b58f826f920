//go:build !darwin

package sysinfo

// platformMemory is a no-op; Linux is covered by /proc/meminfo.
func platformMemory() int64 {
	return 0
}
