package db

// BuildPassesTableSQL returns the DDL for the passes table. One row per
// recorded read/write pass over a content stream or verifier.
func BuildPassesTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS passes (
		id VARCHAR PRIMARY KEY,
		kind VARCHAR NOT NULL,
		seed BIGINT NOT NULL,
		size BIGINT NOT NULL,
		chunks INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`
}

// BuildChunksTableSQL returns the DDL for the chunk records table. Rows are
// ordered within a pass by seq and carry the cumulative offset and elapsed
// nanoseconds sampled at each read or write call.
func BuildChunksTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS chunks (
		pass_id VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		"offset" BIGINT NOT NULL,
		elapsed_ns BIGINT NOT NULL
	)`
}

// BuildIndexesSQL returns the DDL for all indexes
func BuildIndexesSQL() string {
	return `CREATE INDEX IF NOT EXISTS idx_chunks_pass ON chunks (pass_id);
	CREATE INDEX IF NOT EXISTS idx_passes_kind ON passes (kind)`
}
