// Package store provides the durable run journal: a SQLite database of
// past expansions, keyed by UUIDv7 run ID.
//
// Each recorded run keeps the canonical event sequence, its
// content-addressed hash, and the packed trace it produced, which is
// enough to re-expand the sequence later and check that the engine
// still produces the identical trace (the "runs verify" command).
//
// SQLite is opened in WAL mode with a single-writer connection pool;
// the journal has no concurrent writers by design.
package store
