package symtab

import (
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"fmt"
	"os"
	"runtime"

	"github.com/ianlancetaylor/demangle"

	"github.com/fabic/libcsdbg/pkg/csdbgerr"
)

// Table holds the demangled function symbols of one object file (the
// main executable or a DSO), loaded at a given runtime base address.
// Only function symbols in executable sections are retained. Order of
// symbols is the order the underlying object reader produced them in,
// preserved for deterministic iteration.
type Table struct {
	Path string
	Base uintptr

	maxAddr uintptr
	symbols []Symbol
}

// Load opens path via the platform's native object reader, verifies its
// format, and retains function symbols from executable sections,
// computed at the given load base. base is 0 for the main executable
// under absolute addressing, and the module's mapped load address for a
// relocatable DSO.
func Load(path string, base uintptr) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", csdbgerr.ErrIO, path, err)
	}
	defer f.Close()

	var syms []Symbol
	switch runtime.GOOS {
	case "darwin":
		syms, err = loadMacho(f, base)
	case "windows":
		syms, err = loadPE(f, base)
	default:
		syms, err = loadELF(f, base)
	}
	if err != nil {
		return nil, err
	}

	if len(syms) == 0 {
		return nil, fmt.Errorf("%w: %s has no retained function symbols (stripped?)", csdbgerr.ErrBinaryFormat, path)
	}

	maxAddr := base
	for _, s := range syms {
		if s.Addr > maxAddr {
			maxAddr = s.Addr
		}
	}

	return &Table{Path: path, Base: base, maxAddr: maxAddr, symbols: syms}, nil
}

// Lookup performs a linear scan and returns the first symbol whose
// address equals addr. The zero Symbol and false
// are returned when nothing matches.
func (t *Table) Lookup(addr uintptr) (Symbol, bool) {
	for _, s := range t.symbols {
		if s.Addr == addr {
			return s, true
		}
	}
	return Symbol{}, false
}

// Contains reports whether addr falls within this table's address span:
// from its load base (inclusive, so the base address itself always
// resolves even though no symbol may sit exactly there) up to its
// highest retained symbol address (inclusive). debug/macho and
// debug/pe don't expose per-symbol sizes, so for one rule across all
// three readers the true upper edge of the last function is treated as
// unknown (ELF sizes are not used either); this is a deliberate
// approximation, used by namespace.Namespace for inverse lookup.
func (t *Table) Contains(addr uintptr) bool {
	return addr >= t.Base && addr <= t.maxAddr
}

// Len returns the number of retained function symbols.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Symbols returns the retained function symbols in load order. The
// caller must not mutate the returned slice.
func (t *Table) Symbols() []Symbol {
	return t.symbols
}

func loadELF(f *os.File, base uintptr) ([]Symbol, error) {
	ef, err := elf.NewFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", csdbgerr.ErrBinaryFormat, err)
	}
	defer ef.Close()

	execSections := make(map[int]bool)
	for i, sec := range ef.Sections {
		if sec.Flags&elf.SHF_EXECINSTR != 0 {
			execSections[i] = true
		}
	}

	raw, err := ef.Symbols()
	if err != nil && len(raw) == 0 {
		// A fully stripped binary has no .symtab at all; treat as empty
		// rather than a hard failure so the caller can report Stripped.
		return nil, nil
	}

	syms := make([]Symbol, 0, len(raw))
	for _, s := range raw {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC {
			continue
		}
		if int(s.Section) < 0 || int(s.Section) >= len(ef.Sections) {
			continue
		}
		if !execSections[int(s.Section)] {
			continue
		}
		if s.Name == "" {
			continue
		}
		// Unlike BFD's asymbol->value (section-relative), Go's elf.Symbol
		// Value is already the absolute in-module virtual address, so no
		// separate section VMA term is added here.
		syms = append(syms, Symbol{Addr: base + uintptr(s.Value), Name: demangleName(s.Name)})
	}
	return syms, nil
}

func loadMacho(f *os.File, base uintptr) ([]Symbol, error) {
	mf, err := macho.NewFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", csdbgerr.ErrBinaryFormat, err)
	}
	defer mf.Close()

	if mf.Symtab == nil {
		return nil, nil
	}

	textSections := make(map[string]bool)
	for _, sec := range mf.Sections {
		if sec.Flags&0x80000400 != 0 { // S_ATTR_SOME_INSTRUCTIONS | S_ATTR_PURE_INSTRUCTIONS
			textSections[sec.Name] = true
		}
	}

	syms := make([]Symbol, 0, len(mf.Symtab.Syms))
	for _, s := range mf.Symtab.Syms {
		if s.Name == "" || s.Sect == 0 || int(s.Sect) > len(mf.Sections) {
			continue
		}
		sec := mf.Sections[s.Sect-1]
		if !textSections[sec.Name] {
			continue
		}
		syms = append(syms, Symbol{Addr: base + uintptr(s.Value), Name: demangleName(s.Name)})
	}
	return syms, nil
}

func loadPE(f *os.File, base uintptr) ([]Symbol, error) {
	pf, err := pe.NewFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", csdbgerr.ErrBinaryFormat, err)
	}
	defer pf.Close()

	syms := make([]Symbol, 0, len(pf.Symbols))
	for _, s := range pf.Symbols {
		if s.SectionNumber <= 0 || int(s.SectionNumber) > len(pf.Sections) {
			continue
		}
		sec := pf.Sections[s.SectionNumber-1]
		if sec.Characteristics&0x20000000 == 0 { // IMAGE_SCN_MEM_EXECUTE
			continue
		}
		if s.Name == "" {
			continue
		}
		syms = append(syms, Symbol{Addr: base + uintptr(sec.VirtualAddress) + uintptr(s.Value), Name: demangleName(s.Name)})
	}
	return syms, nil
}

// demangleName demangles an Itanium C++ ABI mangled name. Go symbols and
// plain C names are not mangled and pass through unchanged. Demangle
// failures retain the decorated name.
func demangleName(name string) string {
	out, err := demangle.ToString(name, demangle.NoParams)
	if err != nil {
		return name
	}
	return out
}
