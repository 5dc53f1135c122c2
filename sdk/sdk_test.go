package sdk

import (
	"bytes"
	"crypto/sha256"
	"io"
	"testing"

	"github.com/Project-Sylos/Corpus/internal/config"
	"github.com/Project-Sylos/Corpus/internal/types"
)

// testConfig returns a valid config with telemetry disabled, so tests do
// not touch a database unless they opt in
func testConfig() *types.Config {
	cfg := config.DefaultConfig()
	cfg.Telemetry.Enabled = false
	return &cfg
}

// newTestCorpus builds a Corpus from the given config
func newTestCorpus(t *testing.T, cfg *types.Config) *Corpus {
	t.Helper()
	c, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize Corpus: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// TestNewWithConfigValidation tests config rejection
func TestNewWithConfigValidation(t *testing.T) {
	cfg := testConfig()
	cfg.Content.Digest = "crc32"
	if _, err := NewWithConfig(cfg); err == nil {
		t.Errorf("Unknown digest should be rejected")
	}
}

// TestStreamRoundTrip tests generation and verification through the facade
func TestStreamRoundTrip(t *testing.T) {
	c := newTestCorpus(t, testConfig())

	s1 := c.NewStream(500, 42)
	s2 := c.NewStream(500, 42)

	b1, err := io.ReadAll(s1)
	if err != nil {
		t.Fatalf("Unexpected read error: %v", err)
	}
	b2, err := io.ReadAll(s2)
	if err != nil {
		t.Fatalf("Unexpected read error: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Errorf("Streams with the same parameters should be identical")
	}

	result, err := c.VerifyReader(bytes.NewReader(b1))
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if !result.Valid {
		t.Errorf("Round-tripped stream should verify")
	}
	if result.Size != 500 {
		t.Errorf("Expected size 500, got %d", result.Size)
	}
	if result.Pass != "" {
		t.Errorf("Disabled telemetry should not assign a pass ID, got %q", result.Pass)
	}
}

// TestVerifyReaderCorrupt tests corruption detection through the facade
func TestVerifyReaderCorrupt(t *testing.T) {
	c := newTestCorpus(t, testConfig())

	data, err := io.ReadAll(c.NewStream(100, 7))
	if err != nil {
		t.Fatalf("Unexpected read error: %v", err)
	}
	data[10] ^= 0x01

	result, err := c.VerifyReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if result.Valid {
		t.Errorf("Corrupted stream should not verify")
	}
}

// TestDigestConfig tests that the configured digest reaches streams and
// verifiers
func TestDigestConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Content.Digest = types.DigestSHA256
	c := newTestCorpus(t, cfg)

	stream := c.NewStream(100, 42)
	if stream.DigestSize() != sha256.Size {
		t.Errorf("Expected digest size %d, got %d", sha256.Size, stream.DigestSize())
	}

	result, err := c.VerifyReader(stream)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if !result.Valid {
		t.Errorf("SHA256 stream should verify against the same config")
	}
}

// TestFactories tests the factory accessors
func TestFactories(t *testing.T) {
	cfg := testConfig()
	cfg.Content.MeanSize = 300
	cfg.Content.StddevSize = 50
	cfg.Content.NumFiles = 2
	c := newTestCorpus(t, cfg)

	files := c.Files()
	f := files.Next()
	if f.Size() < 0 {
		t.Errorf("Factory stream should have non-negative size")
	}

	pool, err := c.PooledFiles()
	if err != nil {
		t.Fatalf("Failed to build pool: %v", err)
	}
	defer pool.Close()

	pooled, err := pool.Next()
	if err != nil {
		t.Fatalf("Failed to fetch pooled file: %v", err)
	}
	defer pooled.Close()

	result, err := c.VerifyReader(pooled)
	if err != nil {
		t.Fatalf("Failed to verify pooled file: %v", err)
	}
	if !result.Valid {
		t.Errorf("Pooled file should verify")
	}

	names := c.Names()
	if name := names.Next(); name == "" {
		t.Errorf("Name source should produce non-empty names")
	}
}

// TestTelemetryRecording tests pass recording through an in-memory store
func TestTelemetryRecording(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.DBPath = "" // in-memory
	c := newTestCorpus(t, cfg)

	stream := c.NewStream(200, 42)
	result, err := c.VerifyReader(stream)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if result.Pass == "" {
		t.Fatalf("Enabled telemetry should assign a pass ID")
	}

	pass, chunks, err := c.GetPass(result.Pass)
	if err != nil {
		t.Fatalf("Failed to get pass: %v", err)
	}
	if pass.Kind != types.PassKindVerifier {
		t.Errorf("Expected verifier pass, got %q", pass.Kind)
	}
	if len(chunks) == 0 {
		t.Errorf("Expected chunk records on the pass")
	}

	if _, err := c.RecordStreamPass(stream); err != nil {
		t.Fatalf("Failed to record stream pass: %v", err)
	}

	passes, err := c.ListPasses(10)
	if err != nil {
		t.Fatalf("Failed to list passes: %v", err)
	}
	if len(passes) != 2 {
		t.Errorf("Expected 2 passes, got %d", len(passes))
	}

	if _, err := c.Stats(); err != nil {
		t.Errorf("Failed to compute stats: %v", err)
	}

	if err := c.Reset(); err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	passes, err = c.ListPasses(10)
	if err != nil {
		t.Fatalf("Failed to list passes after reset: %v", err)
	}
	if len(passes) != 0 {
		t.Errorf("Expected 0 passes after reset, got %d", len(passes))
	}
}

// TestTelemetryDisabled tests the disabled-store errors and no-ops
func TestTelemetryDisabled(t *testing.T) {
	c := newTestCorpus(t, testConfig())

	if _, err := c.ListPasses(10); err == nil {
		t.Errorf("ListPasses should fail with telemetry disabled")
	}
	if _, err := c.Stats(); err == nil {
		t.Errorf("Stats should fail with telemetry disabled")
	}
	if err := c.Reset(); err != nil {
		t.Errorf("Reset should be a no-op with telemetry disabled, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close should be a no-op with telemetry disabled, got %v", err)
	}
}
