package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Project-Sylos/Corpus/internal/types"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
)

// DB wraps a DuckDB connection and stores chunk-timing telemetry: one row
// per recorded pass, plus the pass's chunk records
type DB struct {
	conn *sql.DB
	mu   sync.Mutex // Protects all database operations from concurrent access
}

// New creates a new database connection and initializes the schema. An
// empty path opens an in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.InitializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// InitializeSchema creates the passes and chunks tables with their indexes
func (db *DB) InitializeSchema() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(BuildPassesTableSQL()); err != nil {
		return fmt.Errorf("failed to create passes table: %w", err)
	}
	if _, err := db.conn.Exec(BuildChunksTableSQL()); err != nil {
		return fmt.Errorf("failed to create chunks table: %w", err)
	}
	if _, err := db.conn.Exec(BuildIndexesSQL()); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// RecordPass stores one pass and its chunk records, returning the assigned
// pass ID
func (db *DB) RecordPass(kind string, seed, size int64, chunks []types.ChunkRecord) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := uuid.New().String()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO passes (id, kind, seed, size, chunks, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, kind, seed, size, len(chunks), time.Now(),
	); err != nil {
		return "", fmt.Errorf("failed to insert pass: %w", err)
	}

	for i, chunk := range chunks {
		if _, err := tx.Exec(
			`INSERT INTO chunks (pass_id, seq, "offset", elapsed_ns) VALUES (?, ?, ?, ?)`,
			id, i, chunk.Offset, chunk.Elapsed.Nanoseconds(),
		); err != nil {
			return "", fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit pass: %w", err)
	}

	return id, nil
}

// GetPass retrieves a pass and its chunk records by ID
func (db *DB) GetPass(id string) (*types.Pass, []types.ChunkRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var pass types.Pass
	err := db.conn.QueryRow(
		"SELECT id, kind, seed, size, chunks, created_at FROM passes WHERE id = ?", id,
	).Scan(&pass.ID, &pass.Kind, &pass.Seed, &pass.Size, &pass.Chunks, &pass.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("pass not found: %s", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query pass: %w", err)
	}

	chunks, err := db.passChunks(id)
	if err != nil {
		return nil, nil, err
	}

	return &pass, chunks, nil
}

// passChunks loads a pass's chunk records in seq order. Caller holds the lock.
func (db *DB) passChunks(id string) ([]types.ChunkRecord, error) {
	rows, err := db.conn.Query(
		`SELECT "offset", elapsed_ns FROM chunks WHERE pass_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []types.ChunkRecord
	for rows.Next() {
		var offset, elapsed int64
		if err := rows.Scan(&offset, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, types.ChunkRecord{
			Offset:  offset,
			Elapsed: time.Duration(elapsed),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chunks: %w", err)
	}

	return chunks, nil
}

// ListPasses returns the most recent passes, newest first
func (db *DB) ListPasses(limit int) ([]types.Pass, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(
		"SELECT id, kind, seed, size, chunks, created_at FROM passes ORDER BY created_at DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query passes: %w", err)
	}
	defer rows.Close()

	var passes []types.Pass
	for rows.Next() {
		var pass types.Pass
		if err := rows.Scan(&pass.ID, &pass.Kind, &pass.Seed, &pass.Size, &pass.Chunks, &pass.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pass: %w", err)
		}
		passes = append(passes, pass)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate passes: %w", err)
	}

	return passes, nil
}

// PassCount returns the total number of recorded passes
func (db *DB) PassCount() (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM passes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count passes: %w", err)
	}
	return count, nil
}

// Reset clears all recorded telemetry
func (db *DB) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec("DELETE FROM chunks"); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	if _, err := db.conn.Exec("DELETE FROM passes"); err != nil {
		return fmt.Errorf("failed to clear passes: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
