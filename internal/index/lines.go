package index

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/user/srcview/internal/fileio"
)

// Buffer used for the parse pass. The scan is strictly forward, so one
// big window turns the whole pass into a handful of positioned reads.
const parseBufferSize = 10 * 1024 * 1024

// Chunk handed to the scanner per reader call. Always smaller than the
// parse buffer, so chunks are served from the window.
const scanChunkSize = 64 * 1024

var (
	// ErrAlreadyOpen is returned by Open on an index that has a reader
	ErrAlreadyOpen = errors.New("index: already open")

	// ErrNotParsed is returned when querying an index before a
	// successful Parse
	ErrNotParsed = errors.New("index: not parsed")
)

// LineIndex maps line numbers to byte spans of a file. Parse records
// the starting offset of every line in one forward pass; after that,
// fetching a line is a single ranged read.
//
// The offset table holds one entry per line start plus a trailing
// sentinel of fileSize+1 that bounds the last line's length, so its
// length is always lineCount+1.
type LineIndex struct {
	offsets []int64
	reader  fileio.Reader
	parsed  bool
}

// New returns an index with no file attached
func New() *LineIndex {
	return &LineIndex{}
}

// IsOpen reports whether a reader is attached and open
func (li *LineIndex) IsOpen() bool {
	return li.reader != nil && li.reader.IsOpen()
}

// Open attaches a buffered file reader for path. Fails if the index
// already has a reader.
func (li *LineIndex) Open(path string) error {
	if li.IsOpen() {
		return ErrAlreadyOpen
	}
	r, err := fileio.Open(path)
	if err != nil {
		return err
	}
	li.reader = r
	return nil
}

// OpenReader attaches an existing reader instead of opening a file.
// The caller keeps ownership of the reader's lifetime.
func (li *LineIndex) OpenReader(r fileio.Reader) error {
	if li.IsOpen() {
		return ErrAlreadyOpen
	}
	li.reader = r
	return nil
}

// Parse scans the whole file once and builds the offset table. On
// failure the index is unusable and should be discarded; the offset
// table is dropped so later queries fail rather than lie.
func (li *LineIndex) Parse() error {
	if !li.IsOpen() {
		return fileio.ErrNotOpen
	}

	size := li.reader.Size()
	li.reader.SetDirection(fileio.Forward)
	li.reader.SetBufferSize(parseBufferSize)

	// Guess ~100 bytes per line for the initial table capacity.
	offsets := make([]int64, 0, size/100+2)

	var lineStart int64 // start offset of the line being scanned
	var lineLen int64   // bytes seen on it, CR excluded

	chunk := make([]byte, scanChunkSize)
	for pos := int64(0); pos < size; {
		n := int64(len(chunk))
		if pos+n > size {
			n = size - pos
		}
		if err := li.reader.ReadAt(chunk[:n], pos); err != nil {
			li.offsets = nil
			li.parsed = false
			return fmt.Errorf("index: scan at %d: %w", pos, err)
		}

		for i, ch := range chunk[:n] {
			switch ch {
			case '\r':
				// stripped, never a terminator
			case '\n':
				offsets = append(offsets, lineStart)
				lineStart = pos + int64(i) + 1
				lineLen = 0
			default:
				lineLen++
			}
		}
		pos += n
	}

	// Flush an unterminated final line, then bound it with the sentinel.
	if lineLen > 0 {
		offsets = append(offsets, lineStart)
	}
	offsets = append(offsets, size+1)

	li.offsets = offsets
	li.parsed = true
	return nil
}

// LineCount returns the number of lines in the parsed file
func (li *LineIndex) LineCount() int {
	if !li.parsed {
		return 0
	}
	return len(li.offsets) - 1
}

// Line returns the text of the 0-based line i. Carriage returns are
// never part of a line: the scan skips them, so the text drops them
// too, wherever they sit in the span.
func (li *LineIndex) Line(i int) (string, error) {
	if !li.parsed {
		return "", ErrNotParsed
	}
	if i < 0 || i >= li.LineCount() {
		return "", fmt.Errorf("index: line %d out of range [0,%d)", i, li.LineCount())
	}

	start := li.offsets[i]
	end := li.offsets[i+1] - 1
	if max := li.reader.Size(); end > max {
		end = max
	}

	raw, err := fileio.ReadBytesAt(li.reader, start, int(end-start))
	if err != nil {
		return "", fmt.Errorf("index: read line %d: %w", i, err)
	}
	raw = bytes.ReplaceAll(raw, []byte{'\r'}, nil)
	return string(bytes.TrimRight(raw, "\n")), nil
}

// Offset returns the byte offset where the 0-based line i starts,
// or -1 when out of range.
func (li *LineIndex) Offset(i int) int64 {
	if !li.parsed || i < 0 || i >= li.LineCount() {
		return -1
	}
	return li.offsets[i]
}

// Close detaches and closes the reader if it owns a handle
func (li *LineIndex) Close() error {
	var err error
	if c, ok := li.reader.(interface{ Close() error }); ok && c != nil {
		err = c.Close()
	}
	li.reader = nil
	li.offsets = nil
	li.parsed = false
	return err
}
