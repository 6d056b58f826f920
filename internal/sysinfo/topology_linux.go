//go:build linux

package sysinfo

// detectPlatformCPU fills CPU fields from procfs and the cgroup hierarchy.
func detectPlatformCPU(s *Snapshot) {
	parseCPUInfo("/proc/cpuinfo", s)
	s.CPULimit = cgroupCPULimit("/sys/fs/cgroup")
}
