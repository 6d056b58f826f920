package sysinfo

import "golang.org/x/sys/cpu"

// detectFeatures reports ARM64 SIMD extensions. NEON is mandatory on ARMv8-A.
func detectFeatures() []string {
	out := []string{"NEON"}
	if cpu.ARM64.HasSVE {
		out = append(out, "SVE")
	}
	return out
}
