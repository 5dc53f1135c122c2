package generator

import (
	"fmt"
	"io"
	"os"
)

// DefaultSpoolMemory is the number of bytes a SpooledBuffer holds in memory
// before spilling to a temporary file
const DefaultSpoolMemory = 4 * 1024 * 1024

// SpooledBuffer is scoped temporary storage for a fully materialized byte
// sequence. Content stays in memory up to a threshold and spills to a
// temporary file past it. Close releases the file; the buffer must not be
// used afterwards. Writes are append-only, reads go through ReadAt so
// several readers can share one buffer.
type SpooledBuffer struct {
	threshold int
	buf       []byte
	file      *os.File
	size      int64
	closed    bool
}

// NewSpooledBuffer creates an empty buffer that spills to disk once more
// than threshold bytes have been written. A non-positive threshold spills
// on the first write.
func NewSpooledBuffer(threshold int) *SpooledBuffer {
	return &SpooledBuffer{threshold: threshold}
}

// Write implements io.Writer, appending to the buffer
func (s *SpooledBuffer) Write(p []byte) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("spool: write after close")
	}

	if s.file == nil && len(s.buf)+len(p) > s.threshold {
		if err := s.spill(); err != nil {
			return 0, err
		}
	}

	if s.file != nil {
		n, err := s.file.Write(p)
		s.size += int64(n)
		if err != nil {
			return n, fmt.Errorf("spool: write to backing file: %w", err)
		}
		return n, nil
	}

	s.buf = append(s.buf, p...)
	s.size += int64(len(p))
	return len(p), nil
}

// spill moves the in-memory content into a temporary file
func (s *SpooledBuffer) spill() error {
	f, err := os.CreateTemp("", "corpus-spool-*")
	if err != nil {
		return fmt.Errorf("spool: create backing file: %w", err)
	}
	if _, err := f.Write(s.buf); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("spool: spill to backing file: %w", err)
	}
	s.file = f
	s.buf = nil
	return nil
}

// ReadAt implements io.ReaderAt over the buffered content
func (s *SpooledBuffer) ReadAt(p []byte, off int64) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("spool: read after close")
	}
	if off < 0 {
		return 0, fmt.Errorf("spool: negative offset %d", off)
	}
	if off >= s.size {
		return 0, io.EOF
	}

	if s.file != nil {
		n, err := s.file.ReadAt(p, off)
		if err != nil && err != io.EOF {
			return n, fmt.Errorf("spool: read from backing file: %w", err)
		}
		return n, err
	}

	n := copy(p, s.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the number of bytes written so far
func (s *SpooledBuffer) Size() int64 {
	return s.size
}

// Spilled reports whether the content lives in a backing file
func (s *SpooledBuffer) Spilled() bool {
	return s.file != nil
}

// Close releases the backing file, if any. Safe to call more than once.
func (s *SpooledBuffer) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.buf = nil

	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	if err := s.file.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("spool: close backing file: %w", err)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("spool: remove backing file: %w", err)
	}
	return nil
}
