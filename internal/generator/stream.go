package generator

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"time"

	"github.com/Project-Sylos/Corpus/internal/types"
)

var (
	// ErrUnsupportedSeek is returned for any seek target other than offset 0
	// on a RandomContentFile. Callers re-read a stream from the start after
	// partial failures; no other rewind mode exists.
	ErrUnsupportedSeek = errors.New("generator: only seek to start is supported")

	// ErrSealed is returned when a payload read is attempted after the
	// trailer digest has been materialized. The payload accumulator is
	// consumed by sealing and cannot be reopened without a rewind.
	ErrSealed = errors.New("generator: payload region read after digest was sealed")
)

// Digest sealing states. Reads move the stream forward only: once the first
// trailer byte is produced the payload accumulator is gone, and once the
// declared size is reached the stream only yields EOF until rewound.
const (
	statePayload = iota
	stateSealing
	stateSealed
)

// RandomContentFile is a reproducible pseudorandom byte stream of a declared
// size. The last digestSize bytes are the digest of everything before them,
// so a round-tripped copy can be checked by FileVerifier without keeping the
// original around. Two instances with the same size and seed produce
// byte-identical output, as does one instance rewound with Seek(0).
//
// Every Read call appends a chunk record (current offset, elapsed since the
// last rewind), including a zero-byte read after full consumption; clients
// tend to issue one trailing read before treating a body as done.
//
// Not safe for concurrent use.
type RandomContentFile struct {
	size int64
	seed int64
	opts options

	gen        *blockGenerator
	digestSize int

	offset int64
	buffer []byte    // generated bytes not yet emitted
	hash   hash.Hash // running payload digest, nil once sealed
	digest []byte    // materialized trailer, nil until sealed
	state  int

	chunks     []types.ChunkRecord
	lastChunks []types.ChunkRecord
	lastSeek   time.Time
}

// NewRandomContentFile creates a content stream of the given size and seed.
// Size may be smaller than the digest size, in which case the whole stream
// is a prefix of the digest of an empty payload.
func NewRandomContentFile(size, seed int64, opts ...Option) *RandomContentFile {
	o := applyOptions(opts)
	f := &RandomContentFile{
		size:       size,
		seed:       seed,
		opts:       o,
		gen:        newBlockGenerator(seed, o.maxBlockBytes),
		digestSize: o.digest().Size(),
	}
	f.rewind()
	return f
}

// rewind puts the stream back into its initial state and rotates the chunk
// records of the finished pass into the last-pass slot
func (f *RandomContentFile) rewind() {
	f.gen.reset()
	f.offset = 0
	f.buffer = nil
	f.hash = f.opts.digest()
	f.digest = nil
	f.state = statePayload

	f.lastChunks = f.chunks
	f.lastSeek = time.Now()
	f.chunks = nil
}

// Seek implements io.Seeker. Only a seek to offset 0 from the start (or an
// equivalent relative target) is supported; anything else is a caller bug
// and fails rather than clamping.
func (f *RandomContentFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.offset + offset
	case io.SeekEnd:
		target = f.size + offset
	default:
		return 0, fmt.Errorf("generator: invalid whence %d", whence)
	}

	if target != 0 {
		return 0, fmt.Errorf("%w: target offset %d", ErrUnsupportedSeek, target)
	}

	f.rewind()
	return 0, nil
}

// Tell returns the current offset
func (f *RandomContentFile) Tell() int64 {
	return f.offset
}

// Size returns the declared stream size
func (f *RandomContentFile) Size() int64 {
	return f.size
}

// Seed returns the seed the stream was created with
func (f *RandomContentFile) Seed() int64 {
	return f.seed
}

// DigestSize returns the size of the trailer digest in bytes
func (f *RandomContentFile) DigestSize() int {
	return f.digestSize
}

// payloadLen is the number of pseudorandom bytes before the trailer.
// For streams shorter than the digest it is zero and the whole stream is
// trailer territory.
func (f *RandomContentFile) payloadLen() int64 {
	if n := f.size - int64(f.digestSize); n > 0 {
		return n
	}
	return 0
}

// Read implements io.Reader. A call may span the payload/trailer boundary;
// the trailer digest is materialized exactly once, on the first read that
// touches it. Returns io.EOF only on a call that produces no bytes after
// the declared size has been consumed.
func (f *RandomContentFile) Read(p []byte) (int, error) {
	n := 0
	want := int64(len(p))

	randomCount := want
	if rest := f.payloadLen() - f.offset; randomCount > rest {
		randomCount = rest
	}
	if randomCount > 0 {
		if f.state != statePayload {
			return 0, ErrSealed
		}
		for int64(len(f.buffer)) < randomCount {
			f.buffer = append(f.buffer, f.gen.block(f.size)...)
		}
		copy(p, f.buffer[:randomCount])
		f.hash.Write(f.buffer[:randomCount])
		f.buffer = f.buffer[randomCount:]
		f.offset += randomCount
		want -= randomCount
		n += int(randomCount)
	}

	digestCount := want
	if rest := f.size - f.offset; digestCount > rest {
		digestCount = rest
	}
	if digestCount > 0 {
		if f.digest == nil {
			// The seal: after this the payload accumulator is gone.
			f.digest = f.hash.Sum(nil)
			f.hash = nil
			f.state = stateSealing
		}
		start := f.offset - f.payloadLen()
		copy(p[n:], f.digest[start:start+digestCount])
		f.offset += digestCount
		n += int(digestCount)
	}

	if f.state == stateSealing && f.offset == f.size {
		f.state = stateSealed
	}

	f.markChunk()

	if n == 0 && len(p) > 0 && f.offset >= f.size {
		return 0, io.EOF
	}
	return n, nil
}

func (f *RandomContentFile) markChunk() {
	f.chunks = append(f.chunks, types.ChunkRecord{
		Offset:  f.offset,
		Elapsed: time.Since(f.lastSeek),
	})
}

// Chunks returns the chunk records of the current pass
func (f *RandomContentFile) Chunks() []types.ChunkRecord {
	return f.chunks
}

// LastChunks returns the chunk records of the pass before the last rewind
func (f *RandomContentFile) LastChunks() []types.ChunkRecord {
	return f.lastChunks
}
