package fileio

import (
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

// MappedReader is a Reader backed by a memory-mapped file. For very
// large files the page cache already does the windowing, so the
// buffer-size and direction knobs are no-ops here.
type MappedReader struct {
	reader *mmap.ReaderAt
	size   int64
	path   string
}

// OpenMapped opens a file with memory mapping
func OpenMapped(path string) (*MappedReader, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fileio: mmap %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("fileio: stat %s: %w", path, err)
	}

	return &MappedReader{
		reader: reader,
		size:   info.Size(),
		path:   path,
	}, nil
}

// IsOpen reports whether the mapping is still valid
func (m *MappedReader) IsOpen() bool {
	return m.reader != nil
}

// Size returns the file size at open time
func (m *MappedReader) Size() int64 {
	return m.size
}

// SetBufferSize is a no-op for mapped files
func (m *MappedReader) SetBufferSize(int) {}

// SetDirection is a no-op for mapped files
func (m *MappedReader) SetDirection(Direction) {}

// ReadAt copies len(p) bytes starting at off out of the mapping
func (m *MappedReader) ReadAt(p []byte, off int64) error {
	if m.reader == nil {
		return ErrNotOpen
	}
	if off < 0 || off+int64(len(p)) > m.size {
		return ErrOutOfRange
	}
	if _, err := m.reader.ReadAt(p, off); err != nil {
		return fmt.Errorf("fileio: mmap read %d bytes at %d: %w", len(p), off, err)
	}
	return nil
}

// Close unmaps the file
func (m *MappedReader) Close() error {
	if m.reader == nil {
		return nil
	}
	err := m.reader.Close()
	m.reader = nil
	return err
}

// Path returns the mapped file's path
func (m *MappedReader) Path() string {
	return m.path
}
