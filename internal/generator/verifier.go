package generator

import (
	"bytes"
	"hash"
	"time"

	"github.com/Project-Sylos/Corpus/internal/types"
)

// FileVerifier incrementally consumes a byte stream and answers whether the
// stream observed so far ends with the digest of everything before it, i.e.
// whether it could have been produced by a RandomContentFile with the same
// digest algorithm. The trailing digestSize bytes are held back from the
// running digest after every write, so the check works no matter how the
// stream is chunked, down to single-byte writes.
//
// Valid is non-destructive: hash.Hash.Sum appends the digest without
// mutating the accumulator, so it may be called between writes any number
// of times.
//
// Not safe for concurrent use.
type FileVerifier struct {
	size int64
	hash hash.Hash
	buf  []byte // trailing bytes withheld from the running digest, at most digest-size long

	createdAt time.Time
	chunks    []types.ChunkRecord
}

// NewFileVerifier creates a verifier. The digest algorithm must match the
// one used by the stream being checked; the default is MD5.
func NewFileVerifier(opts ...Option) *FileVerifier {
	o := applyOptions(opts)
	return &FileVerifier{
		hash:      o.digest(),
		createdAt: time.Now(),
	}
}

// Write implements io.Writer. Each call folds everything except the last
// digest-size bytes into the running digest and appends a chunk record
// (total bytes seen, elapsed since construction).
func (v *FileVerifier) Write(p []byte) (int, error) {
	v.size += int64(len(p))
	v.buf = append(v.buf, p...)

	if cut := len(v.buf) - v.hash.Size(); cut > 0 {
		v.hash.Write(v.buf[:cut])
		n := copy(v.buf, v.buf[cut:])
		v.buf = v.buf[:n]
	}

	v.markChunk()
	return len(p), nil
}

// Valid reports whether the stream looks intact: the trailing bytes equal
// the digest of the rest. A stream still shorter than one full digest is
// valid as long as the bytes seen so far are a prefix of the digest of an
// empty payload, so a correct stream stays valid at every point of its
// arrival.
func (v *FileVerifier) Valid() bool {
	sum := v.hash.Sum(nil)
	if v.size < int64(v.hash.Size()) {
		return bytes.HasPrefix(sum, v.buf)
	}
	return bytes.Equal(v.buf, sum)
}

// Size returns the total number of bytes written
func (v *FileVerifier) Size() int64 {
	return v.size
}

func (v *FileVerifier) markChunk() {
	v.chunks = append(v.chunks, types.ChunkRecord{
		Offset:  v.size,
		Elapsed: time.Since(v.createdAt),
	})
}

// Chunks returns the chunk records collected since construction
func (v *FileVerifier) Chunks() []types.ChunkRecord {
	return v.chunks
}
