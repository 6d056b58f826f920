// Package sysinfo takes a best-effort snapshot of the host hardware for the
// --debug dump: CPU model and core counts, container CPU limits, SIMD
// features and total memory. Nothing here fails; unknown values are left
// zero or empty.
package sysinfo

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Snapshot describes the machine shellman is running on.
type Snapshot struct {
	// Hostname as reported by the kernel; empty if unavailable.
	Hostname string

	// CPUModel is the human-readable CPU model string.
	CPUModel string

	// LogicalCores counts logical CPUs (hyper-threads included).
	LogicalCores int

	// PhysicalCores is a rough physical core count; equals LogicalCores
	// when it cannot be refined.
	PhysicalCores int

	// CPULimit is the cgroup CPU quota in whole CPUs, 0 when unlimited.
	CPULimit int

	// MemoryBytes is the memory available to the process (cgroup limit or
	// physical RAM), 0 when unknown.
	MemoryBytes int64

	// Features lists detected SIMD extensions, e.g. ["AVX", "AVX2", "FMA"].
	Features []string
}

// Detect gathers a Snapshot of the current machine.
func Detect() Snapshot {
	s := Snapshot{
		LogicalCores:  runtime.NumCPU(),
		PhysicalCores: runtime.NumCPU(),
	}
	if h, err := os.Hostname(); err == nil {
		s.Hostname = h
	}

	detectPlatformCPU(&s)
	s.Features = detectFeatures()
	s.MemoryBytes = availableMemory()
	return s
}

// FeatureSummary returns the features as a space separated string.
func (s Snapshot) FeatureSummary() string {
	if len(s.Features) == 0 {
		return "none detected"
	}
	return strings.Join(s.Features, " ")
}

// MemoryGiB returns MemoryBytes in gibibytes.
func (s Snapshot) MemoryGiB() float64 {
	return float64(s.MemoryBytes) / (1 << 30)
}

// parseCPUInfo reads the model name and socket count from a
// /proc/cpuinfo-formatted file.
func parseCPUInfo(path string, s *Snapshot) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	sockets := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, val, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "model name", "Model":
			if s.CPUModel == "" {
				s.CPUModel = val
			}
		case "physical id":
			sockets[val] = struct{}{}
		}
	}

	// rough: assume symmetric multi-socket
	if len(sockets) > 0 {
		s.PhysicalCores = s.LogicalCores / len(sockets)
	}
}

// cgroupCPULimit returns the cgroup CPU quota in whole CPUs (at least 1), or
// 0 when no quota applies. Supports cgroup v2 cpu.max and v1 cfs files.
func cgroupCPULimit(root string) int {
	// v2: "<quota> <period>" or "max <period>"
	if data, err := os.ReadFile(root + "/cpu.max"); err == nil {
		fields := strings.Fields(string(data))
		if len(fields) >= 2 && fields[0] != "max" {
			return quotaCPUs(fields[0], fields[1])
		}
		return 0
	}

	quota, e1 := os.ReadFile(root + "/cpu/cpu.cfs_quota_us")
	period, e2 := os.ReadFile(root + "/cpu/cpu.cfs_period_us")
	if e1 == nil && e2 == nil {
		return quotaCPUs(strings.TrimSpace(string(quota)), strings.TrimSpace(string(period)))
	}
	return 0
}

func quotaCPUs(quotaStr, periodStr string) int {
	quota, e1 := strconv.ParseFloat(quotaStr, 64)
	period, e2 := strconv.ParseFloat(periodStr, 64)
	if e1 != nil || e2 != nil || quota <= 0 || period <= 0 {
		return 0
	}
	n := int(quota / period)
	if n < 1 {
		n = 1
	}
	return n
}
