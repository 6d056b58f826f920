//go:build !unix && !windows

package envinfo

// platformRelease is unsupported here; callers fall back to GOOS.
func platformRelease() (string, string, bool) {
	return "", "", false
}
