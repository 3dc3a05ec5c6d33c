package tracer

import (
	"os"
	"testing"

	"github.com/fabic/libcsdbg/pkg/symtab"
)

// firstOwnSymbolAddr locates the current test binary and returns the
// runtime address of its first retained function symbol, for use as a
// stand-in "instrumented function" address in hook tests.
func firstOwnSymbolAddr(t *testing.T) uintptr {
	t.Helper()
	self, err := os.Executable()
	if err != nil {
		t.Skipf("cannot locate self binary: %v", err)
	}
	tbl, err := symtab.Load(self, 0)
	if err != nil {
		t.Skipf("cannot load self binary symbols: %v", err)
	}
	syms := tbl.Symbols()
	if len(syms) == 0 {
		t.Skip("self binary has no retained function symbols")
	}
	return syms[0].Addr
}

func TestManualEnterExitBalancesDepth(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()

	addr := firstOwnSymbolAddr(t)

	th := instance.ns.CurrentThread()
	before := th.CallDepth()

	ManualEnter(addr, 0)
	if th.CallDepth() != before+1 {
		t.Fatalf("CallDepth() after ManualEnter = %d; want %d", th.CallDepth(), before+1)
	}

	ManualExit(addr, 0)
	if th.CallDepth() != before {
		t.Fatalf("CallDepth() after ManualExit = %d; want %d", th.CallDepth(), before)
	}
}

func TestGuardUnwindsOnPanic(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()

	addr := firstOwnSymbolAddr(t)
	th := instance.ns.CurrentThread()
	before := th.CallDepth()

	func() {
		defer func() { recover() }()
		defer RecoverAndUnwind()
		defer Guard(addr, 0)()
		panic("simulated")
	}()

	if th.CallDepth() != before {
		t.Fatalf("CallDepth() after a recovered panic = %d; want %d", th.CallDepth(), before)
	}
	if th.Unwinding() {
		t.Fatalf("thread still marked unwinding after RecoverAndUnwind")
	}
}

func TestHooksNoopBeforeInit(t *testing.T) {
	Shutdown()
	ManualEnter(1, 2) // must not panic
	ManualExit(1, 2)
}

func TestCleanupCurrentThreadRemovesRecord(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Shutdown()

	handle := instance.ns.CurrentThread().Handle
	CleanupCurrentThread()
	if instance.ns.ThreadByHandle(handle) != nil {
		t.Fatalf("thread record still present after CleanupCurrentThread")
	}
}
