package symtab

// Symbol is an immutable (address, name) record. It is created either
// while a Table is loaded (demangled eagerly) or while a namespace
// lookup cache records a resolution — positive or
// negative (see namespace.Namespace).
type Symbol struct {
	Addr uintptr
	Name string
}

// NegativeSymbol reports a cached address that resolved to nothing.
func NegativeSymbol(addr uintptr) Symbol {
	return Symbol{Addr: addr}
}

// Resolved reports whether the symbol names an actual function, as
// opposed to being a negative cache entry.
func (s Symbol) Resolved() bool {
	return s.Name != ""
}
