//go:build unix

package envinfo

import (
	"golang.org/x/sys/unix"
)

// platformRelease reads the kernel name and release via uname(2).
func platformRelease() (string, string, bool) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", "", false
	}
	return unix.ByteSliceToString(u.Sysname[:]), unix.ByteSliceToString(u.Release[:]), true
}
