// Package store provides the SQLite-backed merge journal.
//
// Every merge the CLI runs can be recorded with its input, context and
// outcome. The journal is append-only:
//   - Entries are identified by UUIDv7 and ordered by seq, a logical counter
//     assigned at write time, never by wall time
//   - Queries order by seq ASC, id ASC COLLATE BINARY
//   - The input is stored as canonical JSON and hashed with a domain prefix,
//     so equal inputs under equal contexts share an input_hash
//
// Replay re-runs recorded entries through a caller-supplied merge function
// and reports entries whose outcome changed.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
