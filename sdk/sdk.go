package sdk

import (
	"fmt"
	"io"

	"github.com/Project-Sylos/Corpus/internal/config"
	"github.com/Project-Sylos/Corpus/internal/db"
	"github.com/Project-Sylos/Corpus/internal/generator"
	"github.com/Project-Sylos/Corpus/internal/types"
)

// Corpus is the public SDK interface for synthetic content generation and
// verification. It wraps the internal implementation to provide a clean
// public API: content streams, stream factories, verifiers, and the chunk
// telemetry store.
type Corpus struct {
	cfg       *types.Config
	telemetry *db.DB // nil when telemetry is disabled
	opts      []generator.Option
}

// New creates a new Corpus instance using the specified config file
func New(configPath string) (*Corpus, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithDefaults creates a new Corpus instance using default configuration
func NewWithDefaults() (*Corpus, error) {
	cfg := config.DefaultConfig()
	return NewWithConfig(&cfg)
}

// NewWithConfig creates a new Corpus instance from an already-validated
// configuration
func NewWithConfig(cfg *types.Config) (*Corpus, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	digest, err := generator.DigestByName(cfg.Content.Digest)
	if err != nil {
		return nil, err
	}
	opts := []generator.Option{
		generator.WithDigest(digest),
		generator.WithMaxBlockBytes(cfg.Content.MaxBlockBytes),
	}

	c := &Corpus{cfg: cfg, opts: opts}

	if cfg.Telemetry.Enabled {
		store, err := db.New(cfg.Telemetry.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open telemetry store: %w", err)
		}
		c.telemetry = store
	}

	return c, nil
}

// NewStream creates a content stream of the given size and seed using the
// configured digest and block size
func (c *Corpus) NewStream(size, seed int64) *generator.RandomContentFile {
	return generator.NewRandomContentFile(size, seed, c.opts...)
}

// NewVerifier creates a verifier matching the configured digest
func (c *Corpus) NewVerifier() *generator.FileVerifier {
	return generator.NewFileVerifier(c.opts...)
}

// Files returns an infinite source of content streams with sizes drawn from
// the configured normal distribution
func (c *Corpus) Files() *generator.FileSource {
	return generator.NewFileSource(
		c.cfg.Content.MeanSize, c.cfg.Content.StddevSize, c.cfg.Content.Seed, c.opts...)
}

// PooledFiles returns a bounded source cycling through num_files
// pre-computed streams
func (c *Corpus) PooledFiles() (*generator.PooledFileSource, error) {
	return generator.NewPooledFileSource(
		c.cfg.Content.MeanSize, c.cfg.Content.StddevSize, c.cfg.Content.Seed,
		c.cfg.Content.NumFiles, c.cfg.Content.SpoolMemory, c.opts...)
}

// Names returns an infinite source of filenames with lengths drawn from the
// configured normal distribution
func (c *Corpus) Names() *generator.NameSource {
	return generator.NewNameSource(
		c.cfg.Names.MeanLength, c.cfg.Names.StddevLength, c.cfg.Names.Charset, c.cfg.Content.Seed)
}

// VerifyReader feeds r through a fresh verifier and reports whether the
// content ends with the digest of everything before it. The verifier's
// chunk telemetry is recorded when the store is enabled.
func (c *Corpus) VerifyReader(r io.Reader) (*types.VerifyResult, error) {
	v := c.NewVerifier()
	if _, err := io.Copy(v, r); err != nil {
		return nil, fmt.Errorf("failed to consume stream: %w", err)
	}

	result := &types.VerifyResult{
		Valid: v.Valid(),
		Size:  v.Size(),
	}

	passID, err := c.RecordPass(types.PassKindVerifier, 0, v.Size(), v.Chunks())
	if err != nil {
		return nil, err
	}
	result.Pass = passID

	return result, nil
}

// RecordPass stores one pass of chunk records in the telemetry store.
// Returns an empty ID without error when telemetry is disabled.
func (c *Corpus) RecordPass(kind string, seed, size int64, chunks []types.ChunkRecord) (string, error) {
	if c.telemetry == nil {
		return "", nil
	}
	id, err := c.telemetry.RecordPass(kind, seed, size, chunks)
	if err != nil {
		return "", fmt.Errorf("failed to record pass: %w", err)
	}
	return id, nil
}

// RecordStreamPass records the current pass of a content stream
func (c *Corpus) RecordStreamPass(f *generator.RandomContentFile) (string, error) {
	return c.RecordPass(types.PassKindStream, f.Seed(), f.Size(), f.Chunks())
}

// GetPass retrieves a recorded pass with its chunk records
func (c *Corpus) GetPass(id string) (*types.Pass, []types.ChunkRecord, error) {
	if c.telemetry == nil {
		return nil, nil, fmt.Errorf("telemetry is disabled")
	}
	return c.telemetry.GetPass(id)
}

// ListPasses returns the most recent recorded passes
func (c *Corpus) ListPasses(limit int) ([]types.Pass, error) {
	if c.telemetry == nil {
		return nil, fmt.Errorf("telemetry is disabled")
	}
	return c.telemetry.ListPasses(limit)
}

// PassStats summarizes chunk latencies for one recorded pass
func (c *Corpus) PassStats(id string) (*types.ChunkStats, error) {
	if c.telemetry == nil {
		return nil, fmt.Errorf("telemetry is disabled")
	}
	return c.telemetry.PassStats(id)
}

// Stats summarizes chunk latencies across all recorded passes
func (c *Corpus) Stats() (*types.ChunkStats, error) {
	if c.telemetry == nil {
		return nil, fmt.Errorf("telemetry is disabled")
	}
	return c.telemetry.GlobalStats()
}

// Reset clears all recorded telemetry
func (c *Corpus) Reset() error {
	if c.telemetry == nil {
		return nil
	}
	return c.telemetry.Reset()
}

// GetConfig returns the current configuration
func (c *Corpus) GetConfig() *types.Config {
	return c.cfg
}

// Close closes the telemetry store. Always call this during graceful
// shutdown when telemetry is enabled.
func (c *Corpus) Close() error {
	if c.telemetry == nil {
		return nil
	}
	return c.telemetry.Close()
}
