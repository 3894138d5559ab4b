package symbol

// Resolver maps between source lines and memory addresses. The real
// mapping belongs to a debugger engine; this is only the seam the
// viewer calls through.
//
// base is the module's load address. Passing 0 means "wherever the
// resolver believes the module is loaded".
type Resolver interface {
	// AddrFromLine returns the address of the 1-based line in file,
	// or ok=false when no code maps to it.
	AddrFromLine(base uint64, file string, line int) (addr uint64, ok bool)

	// LineFromAddr returns the file and 1-based line containing addr,
	// or ok=false when the address has no source.
	LineFromAddr(base uint64, addr uint64) (file string, line int, ok bool)
}

// None resolves nothing. Used when no line map is loaded, so every row
// renders with an empty address column.
type None struct{}

func (None) AddrFromLine(uint64, string, int) (uint64, bool) {
	return 0, false
}

func (None) LineFromAddr(uint64, uint64) (string, int, bool) {
	return "", 0, false
}
