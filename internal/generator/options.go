package generator

import (
	"crypto/md5"
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/Project-Sylos/Corpus/internal/types"
)

// DefaultMaxBlockBytes is the largest block a single generation step produces
const DefaultMaxBlockBytes = 1024 * 1024

// Option configures content streams and verifiers at construction time
type Option func(*options)

type options struct {
	digest        func() hash.Hash
	maxBlockBytes int
}

func defaultOptions() options {
	return options{
		digest:        md5.New,
		maxBlockBytes: DefaultMaxBlockBytes,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDigest replaces the trailer digest algorithm. The default is MD5,
// which defines the 16-byte wire format; substitutes exist so tests can
// exercise the digest plumbing with other algorithms.
func WithDigest(fn func() hash.Hash) Option {
	return func(o *options) {
		o.digest = fn
	}
}

// WithMaxBlockBytes bounds the size of a single generation block
func WithMaxBlockBytes(n int) Option {
	return func(o *options) {
		o.maxBlockBytes = n
	}
}

// DigestByName maps a configured algorithm name to its hash constructor
func DigestByName(name string) (func() hash.Hash, error) {
	switch name {
	case "", types.DigestMD5:
		return md5.New, nil
	case types.DigestSHA256:
		return sha256.New, nil
	}
	return nil, fmt.Errorf("unknown digest algorithm: %q", name)
}
