package shadowstack

import (
	"fmt"

	"github.com/fabic/libcsdbg/pkg/csdbgerr"
)

// ThreadRecord is the per-thread state the process namespace tracks: an
// optional name, the OS thread identity, its shadow stack, and the
// unwind-lag counter.
//
// lag counts calls that occurred while a panic was already propagating
// through this thread (see BeginUnwind/EndUnwind). Invariant: lag == 0
// immediately before and after any non-unwinding hook invocation.
type ThreadRecord struct {
	Name     string
	Handle   uint64 // OS thread id, analogous to pthread_t
	Stack    Stack
	lag      int
	unwindin bool
}

// NewThreadRecord creates a thread record for the given OS thread
// handle. name may be empty (rendered as "anonymous" by the renderer).
func NewThreadRecord(handle uint64, name string) *ThreadRecord {
	return &ThreadRecord{Handle: handle, Name: name}
}

// Lag returns the current unwind-lag count.
func (t *ThreadRecord) Lag() int {
	return t.lag
}

// CallDepth returns the depth of the shadow stack.
func (t *ThreadRecord) CallDepth() int {
	return t.Stack.Depth()
}

// Backtrace returns the call record at offset i from the top of the
// shadow stack (offset 0 is the most recent call).
func (t *ThreadRecord) Backtrace(i int) (CallRecord, error) {
	return t.Stack.Peek(i)
}

// BeginUnwind marks this thread as currently unwinding (a panic is
// propagating). Called and Returned change behavior while this flag is
// set. This explicit bracketing pair stands in for the std::
// uncaught_exception() query a C++ runtime can use instead.
func (t *ThreadRecord) BeginUnwind() {
	t.unwindin = true
}

// EndUnwind clears the unwinding flag, normally called once a panic has
// been recovered and Unwind has reconciled the shadow stack.
func (t *ThreadRecord) EndUnwind() {
	t.unwindin = false
}

// Unwinding reports whether this thread is currently marked as
// unwinding.
func (t *ThreadRecord) Unwinding() bool {
	return t.unwindin
}

// Called simulates a function call. If this thread is currently
// unwinding, the call is not pushed onto the shadow stack; instead lag
// is decremented, tracking the deficit between the (shorter) real stack
// and the (not-yet-reconciled) shadow stack. Otherwise a new call
// record is pushed.
func (t *ThreadRecord) Called(addr, site uintptr, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty function name for addr %#x", csdbgerr.ErrLogic, addr)
	}
	if t.unwindin {
		t.lag--
		return nil
	}
	t.Stack.Push(CallRecord{CalleeAddr: addr, CallSiteAddr: site, Name: name})
	return nil
}

// Returned simulates a function return. If this thread is currently
// unwinding, lag is incremented (the exit hook fires for every frame
// being unwound, including ones Called chose not to push). Otherwise
// the top call record is popped.
func (t *ThreadRecord) Returned() {
	if t.unwindin {
		t.lag++
		return
	}
	t.Stack.Pop()
}

// Unwind pops frames off the shadow stack until lag reaches zero,
// bringing it back into agreement with the real stack after a panic has
// been handled. It does not itself clear the unwinding
// flag — callers that are done unwinding should follow up with
// EndUnwind.
func (t *ThreadRecord) Unwind() {
	for t.lag > 0 {
		t.Stack.Pop()
		t.lag--
	}
}
