//go:build !linux

package tracer

import "os"

// executablePath falls back to os.Executable on platforms without a
// /proc/self/exe symlink.
func executablePath() (string, error) {
	return os.Executable()
}

type dso struct {
	Path string
	Base uintptr
}

// discoverDSOs is a documented limitation on non-Linux platforms:
// without /proc/self/maps or a cgo binding to a platform DSO iterator,
// only the main executable is loaded.
func discoverDSOs() ([]dso, error) {
	return nil, nil
}
