package source

// Line is one display row of a source file. It is built per visible
// row and thrown away after rendering.
type Line struct {
	Number  int    // 1-based line number
	Addr    uint64 // resolved address, valid when HasAddr
	HasAddr bool
	Text    string // tab-expanded line text
}

// LineProvider is the core abstraction for accessing lines.
// The viewport only interacts with this interface.
type LineProvider interface {
	// LineCount returns total number of lines
	LineCount() int

	// GetLine returns line at index (0-based)
	GetLine(index int) (*Line, error)

	// GetLines returns a range of lines efficiently
	GetLines(start, count int) ([]*Line, error)
}
