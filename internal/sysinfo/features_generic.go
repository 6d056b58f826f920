//go:build !amd64 && !arm64

package sysinfo

func detectFeatures() []string {
	return nil
}
