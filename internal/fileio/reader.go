package fileio

import (
	"errors"
	"fmt"
	"os"
)

// Direction hints which way reads are expected to progress, so the
// window can be placed ahead of the access pattern. Only Forward
// windowing is implemented; Backward is accepted and stored but does
// not change window placement.
type Direction int

const (
	Forward Direction = iota
	Backward
)

var (
	// ErrNotOpen is returned when reading from a reader with no open file
	ErrNotOpen = errors.New("fileio: reader not open")

	// ErrOutOfRange is returned when offset+length exceeds the file size.
	// The request is rejected before any I/O happens.
	ErrOutOfRange = errors.New("fileio: read out of range")
)

// Reader is random access over a fixed-size byte source.
// ReadAt fills all of p or fails; there are no short reads.
type Reader interface {
	IsOpen() bool
	Size() int64
	SetBufferSize(n int)
	SetDirection(d Direction)
	ReadAt(p []byte, off int64) error
}

// FileReader reads a file through a single contiguous window buffer.
// Requests inside the window are served from memory; requests outside
// it refill the window with one positioned read. Requests larger than
// the configured buffer bypass the window entirely.
type FileReader struct {
	file *os.File
	size int64

	window    []byte
	windowOff int64
	bufSize   int
	direction Direction
}

// Open opens path read-only and records its size. On any failure no
// handle is retained.
func Open(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fileio: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fileio: stat %s: %w", path, err)
	}

	return &FileReader{
		file: f,
		size: info.Size(),
	}, nil
}

// IsOpen reports whether the underlying file handle is valid
func (r *FileReader) IsOpen() bool {
	return r.file != nil
}

// Size returns the total byte length of the file
func (r *FileReader) Size() int64 {
	return r.size
}

// SetBufferSize sets the maximum window size, clamped to the file size.
// Zero disables buffering: every read takes the direct path.
func (r *FileReader) SetBufferSize(n int) {
	if int64(n) > r.size {
		n = int(r.size)
	}
	if n < 0 {
		n = 0
	}
	r.bufSize = n
	r.window = nil
}

// SetDirection records the expected access direction
func (r *FileReader) SetDirection(d Direction) {
	r.direction = d
}

// ReadAt reads len(p) bytes starting at off.
func (r *FileReader) ReadAt(p []byte, off int64) error {
	if !r.IsOpen() {
		return ErrNotOpen
	}
	if off < 0 || off+int64(len(p)) > r.size {
		return ErrOutOfRange
	}
	if len(p) == 0 {
		return nil
	}

	// Too big to cache: one direct positioned read.
	if len(p) > r.bufSize {
		return r.readDirect(p, off)
	}

	// Refill the window if the request is not fully covered.
	if off < r.windowOff || off+int64(len(p)) > r.windowOff+int64(len(r.window)) {
		want := int64(r.bufSize)
		if remain := r.size - off; want > remain {
			want = remain
		}
		if cap(r.window) < int(want) {
			r.window = make([]byte, want)
		}
		r.window = r.window[:want]
		r.windowOff = off
		if err := r.readDirect(r.window, r.windowOff); err != nil {
			r.window = nil
			return err
		}
	}

	copy(p, r.window[off-r.windowOff:])
	return nil
}

func (r *FileReader) readDirect(p []byte, off int64) error {
	if _, err := r.file.ReadAt(p, off); err != nil {
		return fmt.Errorf("fileio: read %d bytes at %d: %w", len(p), off, err)
	}
	return nil
}

// Close releases the file handle and drops the window
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.window = nil
	return err
}

// ReadByteAt reads the single byte at off
func ReadByteAt(r Reader, off int64) (byte, error) {
	var b [1]byte
	if err := r.ReadAt(b[:], off); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBytesAt reads n bytes starting at off
func ReadBytesAt(r Reader, off int64, n int) ([]byte, error) {
	p := make([]byte, n)
	if err := r.ReadAt(p, off); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadStringAt reads n bytes starting at off as a string
func ReadStringAt(r Reader, off int64, n int) (string, error) {
	p, err := ReadBytesAt(r, off, n)
	if err != nil {
		return "", err
	}
	return string(p), nil
}
