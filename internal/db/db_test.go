package db

import (
	"testing"
	"time"

	"github.com/Project-Sylos/Corpus/internal/types"
)

// newTestDB opens an in-memory telemetry store
func newTestDB(t *testing.T) *DB {
	t.Helper()
	store, err := New("")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleChunks() []types.ChunkRecord {
	return []types.ChunkRecord{
		{Offset: 100, Elapsed: 10 * time.Microsecond},
		{Offset: 200, Elapsed: 25 * time.Microsecond},
		{Offset: 300, Elapsed: 45 * time.Microsecond},
	}
}

// TestRecordAndGetPass tests the pass round trip
func TestRecordAndGetPass(t *testing.T) {
	store := newTestDB(t)

	chunks := sampleChunks()
	id, err := store.RecordPass(types.PassKindStream, 42, 300, chunks)
	if err != nil {
		t.Fatalf("Failed to record pass: %v", err)
	}
	if id == "" {
		t.Fatalf("Expected a pass ID")
	}

	pass, gotChunks, err := store.GetPass(id)
	if err != nil {
		t.Fatalf("Failed to get pass: %v", err)
	}

	if pass.Kind != types.PassKindStream {
		t.Errorf("Expected kind %q, got %q", types.PassKindStream, pass.Kind)
	}
	if pass.Seed != 42 || pass.Size != 300 {
		t.Errorf("Expected seed=42 size=300, got seed=%d size=%d", pass.Seed, pass.Size)
	}
	if pass.Chunks != len(chunks) {
		t.Errorf("Expected %d chunks, got %d", len(chunks), pass.Chunks)
	}

	if len(gotChunks) != len(chunks) {
		t.Fatalf("Expected %d chunk records, got %d", len(chunks), len(gotChunks))
	}
	for i, chunk := range gotChunks {
		if chunk.Offset != chunks[i].Offset {
			t.Errorf("Chunk %d: expected offset %d, got %d", i, chunks[i].Offset, chunk.Offset)
		}
		if chunk.Elapsed != chunks[i].Elapsed {
			t.Errorf("Chunk %d: expected elapsed %v, got %v", i, chunks[i].Elapsed, chunk.Elapsed)
		}
	}
}

// TestGetPassMissing tests the not-found error
func TestGetPassMissing(t *testing.T) {
	store := newTestDB(t)
	if _, _, err := store.GetPass("no-such-pass"); err == nil {
		t.Errorf("Expected an error for a missing pass")
	}
}

// TestListPassesAndCount tests listing and counting
func TestListPassesAndCount(t *testing.T) {
	store := newTestDB(t)

	for i := 0; i < 5; i++ {
		if _, err := store.RecordPass(types.PassKindVerifier, 0, int64(i*100), sampleChunks()); err != nil {
			t.Fatalf("Failed to record pass %d: %v", i, err)
		}
	}

	count, err := store.PassCount()
	if err != nil {
		t.Fatalf("Failed to count passes: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 passes, got %d", count)
	}

	passes, err := store.ListPasses(3)
	if err != nil {
		t.Fatalf("Failed to list passes: %v", err)
	}
	if len(passes) != 3 {
		t.Errorf("Expected 3 passes with limit 3, got %d", len(passes))
	}
}

// TestReset tests clearing the store
func TestReset(t *testing.T) {
	store := newTestDB(t)

	if _, err := store.RecordPass(types.PassKindStream, 1, 100, sampleChunks()); err != nil {
		t.Fatalf("Failed to record pass: %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}

	count, err := store.PassCount()
	if err != nil {
		t.Fatalf("Failed to count passes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 passes after reset, got %d", count)
	}
}

// TestPassStats tests per-pass latency summarization
func TestPassStats(t *testing.T) {
	store := newTestDB(t)

	id, err := store.RecordPass(types.PassKindStream, 42, 300, sampleChunks())
	if err != nil {
		t.Fatalf("Failed to record pass: %v", err)
	}

	passStats, err := store.PassStats(id)
	if err != nil {
		t.Fatalf("Failed to compute pass stats: %v", err)
	}

	// Deltas of 10us, 15us, 20us
	if passStats.Count != 3 {
		t.Errorf("Expected 3 samples, got %d", passStats.Count)
	}
	if passStats.MeanNs != 15000 {
		t.Errorf("Expected mean 15000ns, got %f", passStats.MeanNs)
	}
	if passStats.MedianNs != 15000 {
		t.Errorf("Expected median 15000ns, got %f", passStats.MedianNs)
	}
	if passStats.MaxNs != 20000 {
		t.Errorf("Expected max 20000ns, got %f", passStats.MaxNs)
	}
}

// TestGlobalStats tests latency summarization across passes
func TestGlobalStats(t *testing.T) {
	store := newTestDB(t)

	for i := 0; i < 2; i++ {
		if _, err := store.RecordPass(types.PassKindStream, int64(i), 300, sampleChunks()); err != nil {
			t.Fatalf("Failed to record pass %d: %v", i, err)
		}
	}

	globalStats, err := store.GlobalStats()
	if err != nil {
		t.Fatalf("Failed to compute global stats: %v", err)
	}
	if globalStats.Count != 6 {
		t.Errorf("Expected 6 samples across passes, got %d", globalStats.Count)
	}
	if globalStats.MaxNs != 20000 {
		t.Errorf("Expected max 20000ns, got %f", globalStats.MaxNs)
	}
}

// TestGlobalStatsEmpty tests the empty store
func TestGlobalStatsEmpty(t *testing.T) {
	store := newTestDB(t)

	globalStats, err := store.GlobalStats()
	if err != nil {
		t.Fatalf("Failed to compute global stats: %v", err)
	}
	if globalStats.Count != 0 {
		t.Errorf("Expected 0 samples, got %d", globalStats.Count)
	}
}
