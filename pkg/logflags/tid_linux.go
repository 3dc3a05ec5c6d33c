//go:build linux

package logflags

import "golang.org/x/sys/unix"

// currentThreadID returns the kernel thread id of the calling OS thread,
// for the log header's "0xtid" field.
func currentThreadID() uint64 {
	return uint64(unix.Gettid())
}
