package fileio

// BytesReader serves reads from an in-memory byte slice. It satisfies
// Reader so anything built on the interface can run against content
// that is already in memory, tests included.
type BytesReader struct {
	data []byte
}

// NewBytesReader wraps data without copying it
func NewBytesReader(data []byte) *BytesReader {
	return &BytesReader{data: data}
}

// IsOpen always reports true; there is no handle to lose
func (r *BytesReader) IsOpen() bool {
	return true
}

// Size returns the length of the wrapped slice
func (r *BytesReader) Size() int64 {
	return int64(len(r.data))
}

// SetBufferSize is a no-op: the whole content is already resident
func (r *BytesReader) SetBufferSize(int) {}

// SetDirection is a no-op
func (r *BytesReader) SetDirection(Direction) {}

// ReadAt copies len(p) bytes starting at off
func (r *BytesReader) ReadAt(p []byte, off int64) error {
	if off < 0 || off+int64(len(p)) > int64(len(r.data)) {
		return ErrOutOfRange
	}
	copy(p, r.data[off:])
	return nil
}
