//go:build !linux

package namespace

import "os"

// currentThreadID falls back to the process id on platforms without a
// cheap kernel thread id syscall wrapper in golang.org/x/sys/unix. This
// means ThreadRecord identity is process-wide rather than per-OS-thread
// on those platforms, a documented limitation.
func currentThreadID() uint64 {
	return uint64(os.Getpid())
}
