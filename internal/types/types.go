package types

import (
	"time"
)

// Config represents the complete configuration for Corpus
type Config struct {
	Content   ContentConfig   `json:"content"`
	Names     NamesConfig     `json:"names"`
	API       APIConfig       `json:"api"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

// ContentConfig represents the content stream generation configuration
type ContentConfig struct {
	MeanSize      float64 `json:"mean_size"`       // Mean stream size in bytes
	StddevSize    float64 `json:"stddev_size"`     // Stddev of stream size in bytes
	Seed          int64   `json:"seed"`            // Master seed for the stream factories
	NumFiles      int     `json:"num_files"`       // Pool size for the precomputed factory
	Digest        string  `json:"digest"`          // Digest algorithm name ("md5" or "sha256")
	MaxBlockBytes int     `json:"max_block_bytes"` // Upper bound on a single generation block
	SpoolMemory   int     `json:"spool_memory"`    // Bytes kept in memory before spilling to disk
}

// NamesConfig represents the filename generation configuration
type NamesConfig struct {
	MeanLength   float64 `json:"mean_length"`
	StddevLength float64 `json:"stddev_length"`
	Charset      string  `json:"charset"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// TelemetryConfig represents the chunk telemetry store configuration
type TelemetryConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"db_path"`
}

// ChunkRecord is a single timestamped offset sample taken on every read or
// write call of a content stream or verifier. Elapsed is measured from the
// last seek-to-start (streams) or from construction (verifiers). The records
// are instrumentation only and never affect the generated bytes.
type ChunkRecord struct {
	Offset  int64         `json:"offset"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Pass represents one recorded read or write pass over a content stream,
// stored in the telemetry table together with its chunk records
type Pass struct {
	ID        string    `json:"id" db:"id"`                 // UUID assigned at record time
	Kind      string    `json:"kind" db:"kind"`             // "stream", "precomputed" or "verifier"
	Seed      int64     `json:"seed" db:"seed"`             // Seed of the generating stream (0 for verifiers)
	Size      int64     `json:"size" db:"size"`             // Declared stream size in bytes
	Chunks    int       `json:"chunks" db:"chunks"`         // Number of chunk records in the pass
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Record insertion time
}

// ChunkStats summarizes chunk latencies for one pass or for the whole store
type ChunkStats struct {
	Count    int     `json:"count"`
	MeanNs   float64 `json:"mean_ns"`
	MedianNs float64 `json:"median_ns"`
	P95Ns    float64 `json:"p95_ns"`
	MaxNs    float64 `json:"max_ns"`
}

// VerifyResult represents the outcome of feeding a byte stream through a verifier
type VerifyResult struct {
	Valid bool   `json:"valid"`
	Size  int64  `json:"size"`
	Pass  string `json:"pass,omitempty"` // Telemetry pass ID, when recording is enabled
}

// APIResponse represents a generic API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Pass kind constants
const (
	PassKindStream      = "stream"
	PassKindPrecomputed = "precomputed"
	PassKindVerifier    = "verifier"
)

// Digest algorithm name constants
const (
	DigestMD5    = "md5"
	DigestSHA256 = "sha256"
)
