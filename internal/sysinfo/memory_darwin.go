package sysinfo

import "golang.org/x/sys/unix"

// platformMemory reads total physical RAM via sysctl hw.memsize.
func platformMemory() int64 {
	v, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0
	}
	return int64(v)
}
