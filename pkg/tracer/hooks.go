package tracer

import (
	"fmt"
	"os"
)

// enterImpl is the shared body of the cgo-exported entry hook and
// ManualEnter: acquire the lock, dispatch plugins, apply filters,
// resolve the symbol, and push a shadow-stack frame.
func enterImpl(thisFn, callSite uintptr) {
	tr := instance
	if tr == nil {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	runHookBody(tr, thisFn, callSite, true)
}

func exitImpl(thisFn, callSite uintptr) {
	tr := instance
	if tr == nil {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	runHookBody(tr, thisFn, callSite, false)
}

func runHookBody(tr *Tracer, thisFn, callSite uintptr, isEntry bool) {
	defer func() {
		if r := recover(); r != nil {
			logHooks().Errorf("fatal error in instrumentation hook: %v", r)
			os.Exit(1)
		}
	}()

	if isEntry {
		tr.dispatchEnter(thisFn, callSite)
	} else {
		tr.dispatchExit(thisFn, callSite)
	}

	modulePath, _, ok := tr.ns.ILookup(thisFn)
	if ok && excluded(tr.moduleFilters, modulePath) {
		return
	}

	name, ok := tr.ns.Lookup(thisFn)
	if !ok {
		return
	}
	if excluded(tr.symbolFilters, name) {
		return
	}

	th := tr.ns.CurrentThread()
	if isEntry {
		if err := th.Called(thisFn, callSite, name); err != nil {
			panic(fmt.Errorf("shadow stack push: %w", err))
		}
	} else {
		th.Returned()
	}
}

// ManualEnter is the pure-Go equivalent of the cgo-exported entry hook,
// for programs that instrument calls directly rather than through a
// compiler-injected -finstrument-functions shim.
func ManualEnter(thisFn, callSite uintptr) {
	enterImpl(thisFn, callSite)
}

// ManualExit is the pure-Go equivalent of the cgo-exported exit hook.
func ManualExit(thisFn, callSite uintptr) {
	exitImpl(thisFn, callSite)
}

// Guard instruments one call in pure Go: call it at function entry and
// defer-call its result. Guard fires the entry hook immediately and
// returns a closure that fires the exit hook either on normal return
// or while a panic is unwinding through this frame — in the latter
// case it marks the current thread as unwinding before calling the
// exit hook, then re-panics so the panic keeps propagating.
func Guard(thisFn, callSite uintptr) func() {
	enterImpl(thisFn, callSite)
	return func() {
		if r := recover(); r != nil {
			if tr := instance; tr != nil {
				tr.mu.Lock()
				tr.ns.CurrentThread().BeginUnwind()
				tr.mu.Unlock()
			}
			exitImpl(thisFn, callSite)
			panic(r)
		}
		exitImpl(thisFn, callSite)
	}
}

// RecoverAndUnwind is deferred once, at a goroutine's outermost
// instrumented frame, to reconcile the shadow stack after a panic has
// unwound through one or more Guard-wrapped frames: it pops the
// remaining lag, clears the unwinding flag, and re-panics so the
// program's normal crash behavior (and any outer recover) is
// unaffected.
func RecoverAndUnwind() {
	r := recover()
	if r == nil {
		return
	}
	if tr := instance; tr != nil {
		tr.mu.Lock()
		th := tr.ns.CurrentThread()
		th.Unwind()
		th.EndUnwind()
		tr.mu.Unlock()
	}
	panic(r)
}

// CleanupCurrentThread removes the calling OS thread's record from the
// namespace. Callers that pin goroutines to OS threads (runtime.
// LockOSThread) and are about to exit that thread should call this to
// avoid leaking a stale ThreadRecord.
func CleanupCurrentThread() {
	tr := instance
	if tr == nil {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.ns.CleanupThread(tr.ns.CurrentThread().Handle)
}
