// Package namespace implements the process-wide symbol namespace (C3):
// aggregates module symbol tables, resolves addresses to names and back
// to owning modules, and tracks one ThreadRecord per live thread. All
// namespace operations are expected to run under the tracer package's
// global recursive mutex; this package itself does not lock, to avoid
// re-entrancy with the caller's own lock.
package namespace

import (
	"fmt"
	"os"

	"github.com/fabic/libcsdbg/pkg/csdbgerr"
	"github.com/fabic/libcsdbg/pkg/shadowstack"
	"github.com/fabic/libcsdbg/pkg/symtab"
)

// Namespace aggregates the module symbol tables and thread records of
// one process. Modules are append-only during library
// init and stable thereafter. Cache entries are never invalidated, but
// the bounded cache evicts the least recently used entry once full.
type Namespace struct {
	PID int

	modules []*symtab.Table
	threads []*shadowstack.ThreadRecord
	cache   *lookupCache
}

// New creates an empty namespace for the calling process, with a
// lookup cache capacity of cacheCapacity (0 selects the default).
func New(cacheCapacity int) *Namespace {
	return &Namespace{
		PID:   os.Getpid(),
		cache: newLookupCache(cacheCapacity),
	}
}

// AddModule loads and appends a module symbol table. Modules are never
// removed once added.
func (ns *Namespace) AddModule(path string, base uintptr) error {
	tbl, err := symtab.Load(path, base)
	if err != nil {
		return err
	}
	ns.modules = append(ns.modules, tbl)
	return nil
}

// ModuleCount returns the number of loaded modules.
func (ns *Namespace) ModuleCount() int {
	return len(ns.modules)
}

// SymbolCount returns the total number of retained symbols across all
// loaded modules.
func (ns *Namespace) SymbolCount() int {
	n := 0
	for _, m := range ns.modules {
		n += m.Len()
	}
	return n
}

// Lookup resolves addr to a demangled symbol name (forward lookup).
// The cache is checked first before falling back to a head-to-tail
// module scan; both positive and negative results are cached.
func (ns *Namespace) Lookup(addr uintptr) (string, bool) {
	if sym, ok := ns.cache.get(addr); ok {
		return sym.Name, sym.Resolved()
	}

	for _, m := range ns.modules {
		if sym, ok := m.Lookup(addr); ok {
			ns.cache.add(addr, sym)
			return sym.Name, true
		}
	}

	ns.cache.add(addr, symtab.NegativeSymbol(addr))
	return "", false
}

// ILookup performs an inverse lookup: given addr, find the module that
// defines it and return its path and load base. base is always <= addr
// when a module is found.
func (ns *Namespace) ILookup(addr uintptr) (path string, base uintptr, ok bool) {
	for _, m := range ns.modules {
		if m.Contains(addr) {
			return m.Path, m.Base, true
		}
	}
	return "", 0, false
}

// CurrentThread returns the ThreadRecord for the calling OS thread,
// creating and registering one on first encounter.
func (ns *Namespace) CurrentThread() *shadowstack.ThreadRecord {
	id := currentThreadID()
	for _, t := range ns.threads {
		if t.Handle == id {
			return t
		}
	}
	tr := shadowstack.NewThreadRecord(id, "")
	ns.threads = append(ns.threads, tr)
	return tr
}

// ThreadByHandle returns the thread record registered under the given
// OS thread handle, or nil if none matches. Matching is strictly on
// handle, not on whether the calling thread happens to be current.
func (ns *Namespace) ThreadByHandle(handle uint64) *shadowstack.ThreadRecord {
	for _, t := range ns.threads {
		if t.Handle == handle {
			return t
		}
	}
	return nil
}

// ThreadByName returns the first thread record registered under name,
// or nil if none matches.
func (ns *Namespace) ThreadByName(name string) *shadowstack.ThreadRecord {
	for _, t := range ns.threads {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ThreadAt returns the i-th registered thread record, in registration
// order.
func (ns *Namespace) ThreadAt(i int) (*shadowstack.ThreadRecord, error) {
	if i < 0 || i >= len(ns.threads) {
		return nil, fmt.Errorf("%w: thread index %d out of range (%d registered)", csdbgerr.ErrArgument, i, len(ns.threads))
	}
	return ns.threads[i], nil
}

// ThreadCount returns the number of registered thread records.
func (ns *Namespace) ThreadCount() int {
	return len(ns.threads)
}

// Threads returns the registered thread records in registration order.
// The caller must not mutate the returned slice.
func (ns *Namespace) Threads() []*shadowstack.ThreadRecord {
	return ns.threads
}

// CleanupThread removes the thread record registered under handle, if
// any. A second call for the same, already-removed handle is a no-op.
func (ns *Namespace) CleanupThread(handle uint64) {
	for i, t := range ns.threads {
		if t.Handle == handle {
			ns.threads = append(ns.threads[:i], ns.threads[i+1:]...)
			return
		}
	}
}

// CacheLen returns the number of entries currently in the lookup cache,
// mostly useful for tests exercising the caching invariants.
func (ns *Namespace) CacheLen() int {
	return ns.cache.len()
}
