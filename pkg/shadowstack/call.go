package shadowstack

// CallRecord is one entry of a ShadowStack: the callee's address, the
// address of the call instruction that invoked it, and its resolved
// name. Distinct call records never share Name storage — in Go this
// falls out naturally since strings are immutable values, not pointers
// into a shared arena.
type CallRecord struct {
	CalleeAddr   uintptr
	CallSiteAddr uintptr
	Name         string
}
