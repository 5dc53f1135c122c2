package db

import (
	"fmt"

	"github.com/Project-Sylos/Corpus/internal/types"
	"github.com/montanaflynn/stats"
)

// PassStats summarizes per-chunk latencies for one pass. The chunk records
// carry cumulative elapsed time, so the sample for chunk i is the delta to
// chunk i-1.
func (db *DB) PassStats(id string) (*types.ChunkStats, error) {
	_, chunks, err := db.GetPass(id)
	if err != nil {
		return nil, err
	}
	return summarize(chunkDeltas(chunks))
}

// GlobalStats summarizes per-chunk latencies across all recorded passes
func (db *DB) GlobalStats() (*types.ChunkStats, error) {
	db.mu.Lock()
	rows, err := db.conn.Query(`SELECT pass_id, elapsed_ns FROM chunks ORDER BY pass_id, seq`)
	if err != nil {
		db.mu.Unlock()
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}

	var samples []float64
	var prevPass string
	var prevElapsed int64
	for rows.Next() {
		var passID string
		var elapsed int64
		if err := rows.Scan(&passID, &elapsed); err != nil {
			rows.Close()
			db.mu.Unlock()
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if passID != prevPass {
			prevPass = passID
			prevElapsed = 0
		}
		samples = append(samples, float64(elapsed-prevElapsed))
		prevElapsed = elapsed
	}
	err = rows.Err()
	rows.Close()
	db.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}

	return summarize(samples)
}

// chunkDeltas converts cumulative elapsed samples into per-chunk latencies
func chunkDeltas(chunks []types.ChunkRecord) []float64 {
	deltas := make([]float64, 0, len(chunks))
	var prev int64
	for _, chunk := range chunks {
		deltas = append(deltas, float64(chunk.Elapsed.Nanoseconds()-prev))
		prev = chunk.Elapsed.Nanoseconds()
	}
	return deltas
}

func summarize(samples []float64) (*types.ChunkStats, error) {
	if len(samples) == 0 {
		return &types.ChunkStats{}, nil
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}
	p95, err := stats.Percentile(samples, 95)
	if err != nil {
		return nil, fmt.Errorf("failed to compute p95: %w", err)
	}
	max, err := stats.Max(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to compute max: %w", err)
	}

	return &types.ChunkStats{
		Count:    len(samples),
		MeanNs:   mean,
		MedianNs: median,
		P95Ns:    p95,
		MaxNs:    max,
	}, nil
}
