package source

import (
	"fmt"
	"strings"

	"github.com/user/srcview/internal/fileio"
	"github.com/user/srcview/internal/index"
	"github.com/user/srcview/internal/symbol"
)

const defaultTabWidth = 4

// Options configures how a FileSource is opened
type Options struct {
	// Resolver supplies the address column; nil means no addresses
	Resolver symbol.Resolver

	// ModBase is the module load address handed to the resolver
	ModBase uint64

	// TabWidth is the number of spaces a tab expands to for display
	TabWidth int

	// Mapped reads through a memory-mapped file instead of the
	// window-buffered reader
	Mapped bool
}

// FileSource provides display rows for a single source file. The line
// index is rebuilt from scratch every time a file is opened; nothing
// is persisted.
type FileSource struct {
	lineIndex *index.LineIndex
	resolver  symbol.Resolver
	modBase   uint64
	path      string
	tabText   string
}

// NewFileSource opens path, indexes its lines and wires up address
// resolution. Open and parse failures come back as distinct errors so
// the caller can report which step failed.
func NewFileSource(path string, opts Options) (*FileSource, error) {
	li := index.New()
	if opts.Mapped {
		r, err := fileio.OpenMapped(path)
		if err != nil {
			return nil, err
		}
		if err := li.OpenReader(r); err != nil {
			r.Close()
			return nil, err
		}
	} else {
		if err := li.Open(path); err != nil {
			return nil, err
		}
	}

	if err := li.Parse(); err != nil {
		li.Close()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = symbol.None{}
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}

	return &FileSource{
		lineIndex: li,
		resolver:  resolver,
		modBase:   opts.ModBase,
		path:      path,
		tabText:   strings.Repeat(" ", tabWidth),
	}, nil
}

// LineCount returns total number of lines
func (s *FileSource) LineCount() int {
	return s.lineIndex.LineCount()
}

// GetLine returns the display row for the 0-based line idx
func (s *FileSource) GetLine(idx int) (*Line, error) {
	if idx < 0 || idx >= s.lineIndex.LineCount() {
		return nil, nil
	}

	text, err := s.lineIndex.Line(idx)
	if err != nil {
		return nil, err
	}

	line := &Line{
		Number: idx + 1,
		Text:   strings.ReplaceAll(text, "\t", s.tabText),
	}
	line.Addr, line.HasAddr = s.resolver.AddrFromLine(s.modBase, s.path, line.Number)
	return line, nil
}

// GetLines returns a range of rows, clamped to the file
func (s *FileSource) GetLines(start, count int) ([]*Line, error) {
	if start < 0 {
		start = 0
	}
	if start >= s.LineCount() {
		return nil, nil
	}
	if start+count > s.LineCount() {
		count = s.LineCount() - start
	}

	lines := make([]*Line, count)
	for i := 0; i < count; i++ {
		line, err := s.GetLine(start + i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

// LineFromAddr asks the resolver which line contains addr
func (s *FileSource) LineFromAddr(addr uint64) (int, bool) {
	file, line, ok := s.resolver.LineFromAddr(s.modBase, addr)
	if !ok {
		return 0, false
	}
	// A hit in a different translation unit is not a hit here.
	if file != "" && file != s.path && !sameBase(file, s.path) {
		return 0, false
	}
	return line, true
}

func sameBase(a, b string) bool {
	return baseName(a) == baseName(b)
}

func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}

// Close tears down the index and its file handle together
func (s *FileSource) Close() error {
	return s.lineIndex.Close()
}
