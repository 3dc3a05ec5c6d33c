package namespace

import "testing"

func TestAddModuleAndLookup(t *testing.T) {
	ns := New(0)

	self, err := osExecutableForTest()
	if err != nil {
		t.Skipf("cannot locate self binary: %v", err)
	}

	if err := ns.AddModule(self, 0); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	if ns.ModuleCount() != 1 {
		t.Fatalf("ModuleCount() = %d; want 1", ns.ModuleCount())
	}
	if ns.SymbolCount() == 0 {
		t.Fatalf("SymbolCount() = 0; want > 0")
	}
}

// TestForwardLookupCaching checks that a miss is cached negatively, and
// a repeated lookup of the same unresolved address hits the cache
// without growing it further.
func TestForwardLookupCaching(t *testing.T) {
	ns := New(0)

	name, ok := ns.Lookup(0xdeadbeef)
	if ok || name != "" {
		t.Fatalf("Lookup(unresolved) = %q, %v; want \"\", false", name, ok)
	}
	if ns.CacheLen() != 1 {
		t.Fatalf("CacheLen() after one miss = %d; want 1", ns.CacheLen())
	}

	name, ok = ns.Lookup(0xdeadbeef)
	if ok || name != "" {
		t.Fatalf("second Lookup(unresolved) = %q, %v; want \"\", false", name, ok)
	}
	if ns.CacheLen() != 1 {
		t.Fatalf("CacheLen() after repeated miss = %d; want 1 (cache hit, no growth)", ns.CacheLen())
	}
}

// TestInverseLookupAtBase checks that inverse lookup of an address at
// exactly a module's base returns that module, with base == the
// queried address.
func TestInverseLookupAtBase(t *testing.T) {
	ns := New(0)

	self, err := osExecutableForTest()
	if err != nil {
		t.Skipf("cannot locate self binary: %v", err)
	}
	if err := ns.AddModule(self, 0); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	path, base, ok := ns.ILookup(0)
	if !ok {
		t.Fatalf("ILookup(0) not found in a module loaded at base 0")
	}
	if path != self {
		t.Errorf("ILookup(0).path = %s; want %s", path, self)
	}
	if base != 0 {
		t.Errorf("ILookup(0).base = %#x; want 0", base)
	}
}

func TestThreadLifecycle(t *testing.T) {
	ns := New(0)

	tr := ns.CurrentThread()
	if tr == nil {
		t.Fatal("CurrentThread() returned nil")
	}

	again := ns.CurrentThread()
	if again != tr {
		t.Fatalf("CurrentThread() returned a different record on the second call")
	}

	handle := tr.Handle
	if ns.ThreadByHandle(handle) != tr {
		t.Fatalf("ThreadByHandle(%d) did not return the registered record", handle)
	}

	ns.CleanupThread(handle)
	if ns.ThreadByHandle(handle) != nil {
		t.Fatalf("ThreadByHandle(%d) still found after CleanupThread", handle)
	}

	// A second cleanup of an already-removed handle is a no-op.
	ns.CleanupThread(handle)
}

func TestThreadAtOutOfRange(t *testing.T) {
	ns := New(0)
	if _, err := ns.ThreadAt(0); err == nil {
		t.Fatalf("ThreadAt(0) on an empty namespace did not fail")
	}
}
