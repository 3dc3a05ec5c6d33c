package tracer

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// recursiveMutex is a goroutine-reentrant lock: the same goroutine may
// call Lock any number of times without deadlocking, and must call
// Unlock the same number of times to release it. The hook path needs
// this because a plugin's entry/exit callback is free to call back
// into the tracer (for example to render a trace), re-acquiring the
// lock from the same goroutine that already holds it.
type recursiveMutex struct {
	mu    sync.Mutex
	owner int64
	count int
}

func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if i := bytes.Index(b, []byte(prefix)); i >= 0 {
		b = b[i+len(prefix):]
	}
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}

func (m *recursiveMutex) Lock() {
	gid := goroutineID()
	m.mu.Lock()
	if m.count > 0 && m.owner == gid {
		m.count++
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	for {
		m.mu.Lock()
		if m.count == 0 {
			m.owner = gid
			m.count = 1
			m.mu.Unlock()
			return
		}
		if m.owner == gid {
			m.count++
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
		runtime.Gosched()
	}
}

func (m *recursiveMutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count--
	if m.count <= 0 {
		m.count = 0
		m.owner = 0
	}
}
