package sysinfo

import (
	"os"
	"strconv"
	"strings"
)

// availableMemory returns the memory available to this process in bytes.
//
// Detection priority:
//  1. cgroup v2 memory.max
//  2. cgroup v1 memory.limit_in_bytes
//  3. /proc/meminfo MemTotal
//  4. platform query (macOS hw.memsize)
func availableMemory() int64 {
	if v := cgroupMemoryLimit("/sys/fs/cgroup"); v > 0 {
		return v
	}
	if v := memTotal("/proc/meminfo"); v > 0 {
		return v
	}
	return platformMemory()
}

func cgroupMemoryLimit(root string) int64 {
	if b, err := os.ReadFile(root + "/memory.max"); err == nil {
		s := strings.TrimSpace(string(b))
		if s == "max" {
			return 0
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			return v
		}
	}
	// v1 reports an absurdly large number when unlimited.
	if b, err := os.ReadFile(root + "/memory/memory.limit_in_bytes"); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64); err == nil && v > 0 && v < 1<<50 {
			return v
		}
	}
	return 0
}

func memTotal(path string) int64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(b), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}
