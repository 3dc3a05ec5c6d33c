//go:build !linux

package logflags

import "os"

// currentThreadID falls back to the process id on platforms without a
// cheap kernel thread id syscall wrapper in golang.org/x/sys/unix.
func currentThreadID() uint64 {
	return uint64(os.Getpid())
}
