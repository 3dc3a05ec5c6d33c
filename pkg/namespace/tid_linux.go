//go:build linux

package namespace

import "golang.org/x/sys/unix"

// currentThreadID returns the kernel thread id of the calling OS thread,
// the Linux analogue of pthread_self(), used as the ThreadRecord handle.
func currentThreadID() uint64 {
	return uint64(unix.Gettid())
}
