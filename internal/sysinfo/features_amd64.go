package sysinfo

import "golang.org/x/sys/cpu"

// detectFeatures reports x86-64 SIMD extensions confirmed by CPUID.
func detectFeatures() []string {
	var out []string
	flags := []struct {
		name string
		ok   bool
	}{
		{"SSE4.2", cpu.X86.HasSSE42},
		{"AVX", cpu.X86.HasAVX},
		{"AVX2", cpu.X86.HasAVX2},
		{"FMA", cpu.X86.HasFMA},
		{"AVX-512", cpu.X86.HasAVX512F},
		{"AMX", cpu.X86.HasAMXBF16},
	}
	for _, f := range flags {
		if f.ok {
			out = append(out, f.name)
		}
	}
	return out
}
