package generator

import (
	"fmt"
	"io"
	"time"

	"github.com/Project-Sylos/Corpus/internal/types"
)

// PrecomputedContentFile replays an already-materialized byte sequence from
// a spooled buffer. It mirrors RandomContentFile's observable interface
// (Read, Seek, Tell, chunk records) so callers are agnostic to which backing
// implementation they hold, but unlike the streaming source it supports
// seeking to arbitrary offsets. Only a seek to 0 rotates the chunk records
// and resets the chunk clock; other seeks reposition without touching the
// bookkeeping, supporting multiple independent passes over cached content.
//
// Not safe for concurrent use.
type PrecomputedContentFile struct {
	spool *SpooledBuffer
	pos   int64

	chunks     []types.ChunkRecord
	lastChunks []types.ChunkRecord
	lastSeek   time.Time
}

// NewPrecomputedContentFile rewinds src and copies its full content into a
// fresh spooled buffer. src is typically a RandomContentFile or a section
// reader over another spool. The returned file owns its buffer; Close
// releases it.
func NewPrecomputedContentFile(src io.ReadSeeker, spoolMemory int) (*PrecomputedContentFile, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("precomputed: rewind source: %w", err)
	}

	spool := NewSpooledBuffer(spoolMemory)
	if _, err := io.Copy(spool, src); err != nil {
		spool.Close()
		return nil, fmt.Errorf("precomputed: materialize source: %w", err)
	}

	f := &PrecomputedContentFile{spool: spool}
	f.resetChunks()
	return f, nil
}

func (f *PrecomputedContentFile) resetChunks() {
	f.lastChunks = f.chunks
	f.lastSeek = time.Now()
	f.chunks = nil
}

// Seek implements io.Seeker. Any offset inside the buffer is valid; only a
// seek to 0 resets the chunk bookkeeping.
func (f *PrecomputedContentFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.pos + offset
	case io.SeekEnd:
		target = f.spool.Size() + offset
	default:
		return 0, fmt.Errorf("precomputed: invalid whence %d", whence)
	}

	if target < 0 {
		return 0, fmt.Errorf("precomputed: negative offset %d", target)
	}

	f.pos = target
	if target == 0 {
		f.resetChunks()
	}
	return target, nil
}

// Tell returns the current offset
func (f *PrecomputedContentFile) Tell() int64 {
	return f.pos
}

// Size returns the materialized content size
func (f *PrecomputedContentFile) Size() int64 {
	return f.spool.Size()
}

// Read implements io.Reader. Every call appends a chunk record with the new
// cursor position, including the empty read at EOF.
func (f *PrecomputedContentFile) Read(p []byte) (int, error) {
	n, err := f.spool.ReadAt(p, f.pos)
	f.pos += int64(n)
	f.markChunk()

	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (f *PrecomputedContentFile) markChunk() {
	f.chunks = append(f.chunks, types.ChunkRecord{
		Offset:  f.pos,
		Elapsed: time.Since(f.lastSeek),
	})
}

// Chunks returns the chunk records of the current pass
func (f *PrecomputedContentFile) Chunks() []types.ChunkRecord {
	return f.chunks
}

// LastChunks returns the chunk records of the pass before the last rewind
func (f *PrecomputedContentFile) LastChunks() []types.ChunkRecord {
	return f.lastChunks
}

// Close releases the underlying spooled buffer
func (f *PrecomputedContentFile) Close() error {
	return f.spool.Close()
}
