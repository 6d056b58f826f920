package render

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/hartyporpoise/shellman/internal/config"
	"github.com/hartyporpoise/shellman/internal/metrics"
	"github.com/hartyporpoise/shellman/internal/sysinfo"
)

// DebugHeader is the first line of the debug block.
const DebugHeader = "Debug information"

// DebugInfo is everything shown by Debug.
type DebugInfo struct {
	Process    Process
	System     sysinfo.Snapshot
	Config     config.Config
	ConfigPath string
	Timings    metrics.Snapshot
	Env        []string // KEY=VALUE pairs, as from os.Environ
}

// Process describes the running shellman process.
type Process struct {
	PID        int
	PPID       int
	UID        int
	Executable string
	WorkDir    string
	Args       []string
	GoVersion  string
}

// CurrentProcess collects Process for this process. Lookups that fail are
// left empty.
func CurrentProcess() Process {
	p := Process{
		PID:       os.Getpid(),
		PPID:      os.Getppid(),
		UID:       os.Getuid(),
		Args:      os.Args,
		GoVersion: runtime.Version(),
	}
	if exe, err := os.Executable(); err == nil {
		p.Executable = exe
	}
	if wd, err := os.Getwd(); err == nil {
		p.WorkDir = wd
	}
	return p
}

// Debug prints the verbose process, system, config, timing and
// environment-variable dump.
func (r *Renderer) Debug(d DebugInfo) {
	fmt.Fprintln(r.out, r.styles.Title.Render(DebugHeader))
	fmt.Fprintln(r.out)

	r.section("Process")
	r.rows([][2]string{
		{"PID", strconv.Itoa(d.Process.PID)},
		{"Parent PID", strconv.Itoa(d.Process.PPID)},
		{"UID", strconv.Itoa(d.Process.UID)},
		{"Executable", d.Process.Executable},
		{"Working dir", d.Process.WorkDir},
		{"Arguments", strings.Join(d.Process.Args, " ")},
		{"Go version", d.Process.GoVersion},
	})
	fmt.Fprintln(r.out)

	r.section("System")
	cpuLimit := "none"
	if d.System.CPULimit > 0 {
		cpuLimit = strconv.Itoa(d.System.CPULimit)
	}
	memory := "unknown"
	if d.System.MemoryBytes > 0 {
		memory = fmt.Sprintf("%.1f GiB", d.System.MemoryGiB())
	}
	r.rows([][2]string{
		{"Hostname", d.System.Hostname},
		{"CPU", d.System.CPUModel},
		{"Cores", fmt.Sprintf("%d physical / %d logical", d.System.PhysicalCores, d.System.LogicalCores)},
		{"CPU limit", cpuLimit},
		{"SIMD", d.System.FeatureSummary()},
		{"Memory", memory},
	})
	fmt.Fprintln(r.out)

	r.section("Configuration")
	history := "undefined"
	if d.Config.HistoryEnable != nil {
		history = strconv.FormatBool(*d.Config.HistoryEnable)
	}
	r.rows([][2]string{
		{"File", d.ConfigPath},
		{"Provider", d.Config.APIProvider},
		{"Model", d.Config.APIModel},
		{"API key", config.MaskKey(d.Config.APIKey)},
		{"Endpoint", d.Config.APICustomEndpoint},
		{"History", history},
		{"Source", d.Config.Source},
	})
	fmt.Fprintln(r.out)

	if len(d.Timings.Stages) > 0 {
		r.section("Timings")
		rows := make([][2]string, 0, len(d.Timings.Stages)+1)
		for _, st := range d.Timings.Stages {
			v := st.Duration.String()
			if st.Failed {
				v += " (failed)"
			}
			rows = append(rows, [2]string{st.Name, v})
		}
		rows = append(rows,
			[2]string{"total", d.Timings.Total().String()},
			[2]string{"failures", strconv.FormatInt(d.Timings.Failures, 10)},
			[2]string{"uptime", d.Timings.Uptime.String()},
		)
		r.rows(rows)
		fmt.Fprintln(r.out)
	}

	r.section("Environment variables")
	for _, kv := range SortedEnv(d.Env) {
		fmt.Fprintln(r.out, "  "+r.styles.Label.Render(kv[0]+"=")+r.styles.Value.Render(kv[1]))
	}
	fmt.Fprintln(r.out)
}

var secretMarkers = []string{"KEY", "TOKEN", "SECRET", "PASSWORD", "PASSWD", "CREDENTIAL"}

// SortedEnv splits KEY=VALUE pairs, sorts them by key and masks values of
// keys that look like they hold credentials.
func SortedEnv(env []string) [][2]string {
	out := make([][2]string, 0, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		if looksSecret(k) && v != "" {
			v = "****"
		}
		out = append(out, [2]string{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func looksSecret(key string) bool {
	upper := strings.ToUpper(key)
	for _, m := range secretMarkers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}
