package generator

import (
	"fmt"
	"io"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCharset is the filename alphabet used when none is configured
const DefaultCharset = "abcdefghijklmnopqrstuvwxyz"

// FileSource yields an infinite sequence of RandomContentFiles whose sizes
// follow a normal distribution. Negative size draws are rejected and
// resampled. Each file gets its own 32-bit seed drawn from the source's
// seeded RNG, so the whole sequence is reproducible from (mean, stddev,
// seed). Restart the sequence by constructing a new source with the same
// parameters.
type FileSource struct {
	dist distuv.Normal
	rng  *RNG
	opts []Option
}

// NewFileSource creates a file source. opts are passed through to every
// generated stream.
func NewFileSource(mean, stddev float64, seed int64, opts ...Option) *FileSource {
	return &FileSource{
		dist: distuv.Normal{
			Mu:    mean,
			Sigma: stddev,
			Src:   exprand.NewSource(uint64(seed)),
		},
		rng:  NewRNG(seed),
		opts: opts,
	}
}

// Next returns the next content stream in the sequence
func (s *FileSource) Next() *RandomContentFile {
	var size int64
	for {
		size = int64(s.dist.Rand())
		if size >= 0 {
			break
		}
	}
	seed := int64(s.rng.Uint32())
	return NewRandomContentFile(size, seed, s.opts...)
}

// PooledFileSource pre-computes a fixed number of content streams into
// spooled buffers and cycles through them forever, wrapping each in a fresh
// PrecomputedContentFile per Next call. Use it when generating content on
// the fly is too expensive for the access pattern, at the cost of holding
// the pool in temporary storage until Close.
type PooledFileSource struct {
	spools      []*SpooledBuffer
	next        int
	spoolMemory int
}

// NewPooledFileSource materializes numFiles streams drawn from a FileSource
// with the given parameters. Close releases the pool's buffers.
func NewPooledFileSource(mean, stddev float64, seed int64, numFiles, spoolMemory int, opts ...Option) (*PooledFileSource, error) {
	if numFiles < 1 {
		return nil, fmt.Errorf("factory: numFiles must be at least 1, got %d", numFiles)
	}

	src := NewFileSource(mean, stddev, seed, opts...)
	spools := make([]*SpooledBuffer, 0, numFiles)
	for i := 0; i < numFiles; i++ {
		f := src.Next()
		spool := NewSpooledBuffer(spoolMemory)
		if _, err := io.Copy(spool, f); err != nil {
			spool.Close()
			for _, sp := range spools {
				sp.Close()
			}
			return nil, fmt.Errorf("factory: materialize pooled file %d: %w", i, err)
		}
		spools = append(spools, spool)
	}

	return &PooledFileSource{
		spools:      spools,
		spoolMemory: spoolMemory,
	}, nil
}

// Next returns the next pooled stream, cycling through the pool. The
// returned file holds an independent copy of the pooled content; the caller
// owns it and should Close it when done.
func (s *PooledFileSource) Next() (*PrecomputedContentFile, error) {
	spool := s.spools[s.next]
	s.next = (s.next + 1) % len(s.spools)

	sec := io.NewSectionReader(spool, 0, spool.Size())
	f, err := NewPrecomputedContentFile(sec, s.spoolMemory)
	if err != nil {
		return nil, fmt.Errorf("factory: copy pooled file: %w", err)
	}
	return f, nil
}

// Close releases all pooled buffers
func (s *PooledFileSource) Close() error {
	var firstErr error
	for _, spool := range s.spools {
		if err := spool.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NameSource yields an infinite sequence of plausible filenames whose
// lengths follow a normal distribution. Draws of zero or negative length
// are rejected and resampled.
type NameSource struct {
	dist    distuv.Normal
	rng     *RNG
	charset string
}

// NewNameSource creates a name source. An empty charset falls back to
// DefaultCharset.
func NewNameSource(mean, stddev float64, charset string, seed int64) *NameSource {
	if charset == "" {
		charset = DefaultCharset
	}
	return &NameSource{
		dist: distuv.Normal{
			Mu:    mean,
			Sigma: stddev,
			Src:   exprand.NewSource(uint64(seed)),
		},
		rng:     NewRNG(seed),
		charset: charset,
	}
}

// Next returns the next filename in the sequence
func (s *NameSource) Next() string {
	var length int
	for {
		length = int(s.dist.Rand())
		if length > 0 {
			break
		}
	}

	name := make([]byte, length)
	for i := range name {
		name[i] = s.charset[s.rng.Intn(len(s.charset))]
	}
	return string(name)
}
