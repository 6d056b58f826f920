//go:build windows

package envinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// platformRelease reports the Windows version via RtlGetVersion.
func platformRelease() (string, string, bool) {
	v := windows.RtlGetVersion()
	if v == nil {
		return "", "", false
	}
	return "Windows_NT", fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), true
}
