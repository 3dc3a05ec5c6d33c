package tracer

import "fmt"

// Plugin observes every instrumented call and return. Plugin failures
// are caught and logged by the hook dispatcher; they never abort the
// hook or the instrumented program.
type Plugin interface {
	Enter(thisFn, callSite uintptr) error
	Exit(thisFn, callSite uintptr) error
}

// Filter gates hook processing by module path (RegisterModuleFilter) or
// resolved symbol name (RegisterSymbolFilter). The first filter whose
// Match reports true and whose Exclude is set stops the hook early.
type Filter struct {
	Match   func(string) bool
	Exclude bool
}

func (tr *Tracer) RegisterPlugin(p Plugin) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.plugins = append(tr.plugins, p)
}

func (tr *Tracer) RegisterModuleFilter(f Filter) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.moduleFilters = append(tr.moduleFilters, f)
}

func (tr *Tracer) RegisterSymbolFilter(f Filter) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.symbolFilters = append(tr.symbolFilters, f)
}

// excluded reports whether s is rejected by any exclude-polarity filter
// that matches it, regardless of position. An earlier include-polarity
// match does not short-circuit a later exclude match; filters are an
// opaque extension point, not an ordered allow/deny chain, so this is
// deliberate.
func excluded(filters []Filter, s string) bool {
	for _, f := range filters {
		if f.Match(s) && f.Exclude {
			return true
		}
	}
	return false
}

func (tr *Tracer) dispatchEnter(thisFn, callSite uintptr) {
	for _, p := range tr.plugins {
		if err := safeCall(func() error { return p.Enter(thisFn, callSite) }); err != nil {
			logHooks().WithError(err).Warn("plugin enter callback failed")
		}
	}
}

func (tr *Tracer) dispatchExit(thisFn, callSite uintptr) {
	for i := len(tr.plugins) - 1; i >= 0; i-- {
		p := tr.plugins[i]
		if err := safeCall(func() error { return p.Exit(thisFn, callSite) }); err != nil {
			logHooks().WithError(err).Warn("plugin exit callback failed")
		}
	}
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{r}
		}
	}()
	return fn()
}

type panicError struct{ v interface{} }

func (p panicError) Error() string { return fmt.Sprintf("plugin panicked: %v", p.v) }
