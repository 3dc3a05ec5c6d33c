package symtab

import (
	"os"
	"testing"
)

func TestLoadSelfBinary(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Skipf("os.Executable: %v", err)
	}

	tbl, err := Load(self, 0)
	if err != nil {
		t.Fatalf("Load(%s, 0) failed: %v", self, err)
	}

	if tbl.Len() == 0 {
		t.Fatalf("Load(%s, 0) retained zero symbols", self)
	}

	if tbl.Path != self {
		t.Errorf("Path = %s; want %s", tbl.Path, self)
	}

	if _, ok := tbl.Lookup(0); ok {
		t.Errorf("Lookup(0) = ok; want not found")
	}

	first := tbl.Symbols()[0]
	if !tbl.Contains(first.Addr) {
		t.Errorf("Contains(%#x) = false for the table's own first symbol", first.Addr)
	}

	if !tbl.Contains(tbl.Base) {
		t.Errorf("Contains(Base) = false; the load base itself must always be contained")
	}
}

func TestContainsRejectsAddressBeforeBase(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Skipf("os.Executable: %v", err)
	}

	tbl, err := Load(self, 0x1000)
	if err != nil {
		t.Fatalf("Load(%s, 0x1000) failed: %v", self, err)
	}

	if tbl.Contains(0) {
		t.Errorf("Contains(0) = true for a table loaded at base 0x1000")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/to/binary", 0); err == nil {
		t.Errorf("Load of a nonexistent file did not fail")
	}
}
