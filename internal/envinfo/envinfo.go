// Package envinfo reports the operating system and the user's shell.
//
// Detection is heuristic and never fails: when something cannot be
// determined a conservative default is reported instead.
package envinfo

import (
	"context"
	"os"
	"path"
	"runtime"
	"strings"
	"time"
)

// Info is a snapshot of the host environment.
type Info struct {
	// OSType is the kernel name (e.g. "Linux", "Darwin", "Windows_NT").
	OSType string

	// OSVersion is the kernel release (e.g. "6.8.0-45-generic").
	OSVersion string

	// Architecture is the Go architecture name (e.g. "amd64", "arm64").
	Architecture string

	// ShellPath is the full path or command of the detected shell.
	ShellPath string

	// ShellName is the shell's base name without extension (e.g. "zsh").
	ShellName string
}

// Shell is the detected command shell.
type Shell struct {
	Path string
	Name string
}

// Reader gathers Info. The zero value is not usable; call NewReader.
type Reader struct {
	// GOOS selects the detection branch ("windows" or anything else).
	GOOS string

	// Getenv looks up environment variables.
	Getenv func(string) string

	// Delay is waited out by ReadContext before returning, so a spinner has
	// time to show. Zero disables it.
	Delay time.Duration
}

// NewReader returns a Reader for the current process.
func NewReader() *Reader {
	return &Reader{
		GOOS:   runtime.GOOS,
		Getenv: os.Getenv,
	}
}

// Read returns the environment snapshot.
func (r *Reader) Read() Info {
	sh := r.Shell()
	osType, osVersion := r.kernel()
	return Info{
		OSType:       osType,
		OSVersion:    osVersion,
		Architecture: runtime.GOARCH,
		ShellPath:    sh.Path,
		ShellName:    sh.Name,
	}
}

// ReadContext is Read preceded by the configured Delay. It only fails when
// ctx ends before the delay elapses.
func (r *Reader) ReadContext(ctx context.Context) (Info, error) {
	if r.Delay > 0 {
		t := time.NewTimer(r.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Info{}, ctx.Err()
		case <-t.C:
		}
	}
	return r.Read(), nil
}

// Shell detects the user's shell from the environment.
//
// Windows: COMSPEC, then PSModulePath (PowerShell), else cmd.exe.
// Everything else: SHELL, else /bin/sh.
func (r *Reader) Shell() Shell {
	var p string
	if r.GOOS == "windows" {
		switch {
		case r.Getenv("COMSPEC") != "":
			p = r.Getenv("COMSPEC")
		case r.Getenv("PSModulePath") != "":
			p = "powershell.exe"
		default:
			p = "cmd.exe"
		}
	} else {
		p = r.Getenv("SHELL")
		if p == "" {
			p = "/bin/sh"
		}
	}
	return Shell{Path: p, Name: ShellName(p)}
}

// ShellName derives a shell name from a path, accepting both slash styles
// and dropping a trailing ".exe".
func ShellName(p string) string {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	if ext := path.Ext(base); strings.EqualFold(ext, ".exe") {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.ToLower(base)
}

// kernel returns the OS type and release. The release query only runs when
// GOOS matches the running platform; otherwise it reports the GOOS override.
func (r *Reader) kernel() (string, string) {
	if r.GOOS != runtime.GOOS {
		return osTypeName(r.GOOS), "unknown"
	}
	osType, release, ok := platformRelease()
	if !ok {
		return osTypeName(r.GOOS), "unknown"
	}
	return osType, release
}

// osTypeName mirrors uname-style kernel names for a GOOS value.
func osTypeName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows_NT"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	default:
		return goos
	}
}
