//go:build !darwin && !linux

package sysinfo

// detectPlatformCPU keeps the runtime.NumCPU defaults.
func detectPlatformCPU(s *Snapshot) {}
