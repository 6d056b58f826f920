//go:build darwin

package sysinfo

import "golang.org/x/sys/unix"

// detectPlatformCPU fills CPU fields via sysctl. Apple Silicon and Intel
// Macs expose the same keys.
func detectPlatformCPU(s *Snapshot) {
	if v, err := unix.Sysctl("machdep.cpu.brand_string"); err == nil {
		s.CPUModel = v
	}
	if n, err := unix.SysctlUint32("hw.physicalcpu"); err == nil && n > 0 {
		s.PhysicalCores = int(n)
	}
	if n, err := unix.SysctlUint32("hw.logicalcpu"); err == nil && n > 0 {
		s.LogicalCores = int(n)
	}
}
