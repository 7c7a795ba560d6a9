// Package audit provides audit trail logging for parameter operations.
//
// Every operation that changes or reads a parameter file (create, dispose,
// veil, unveil, save, load) is recorded next to that file. The log records
// who touched which parameter and when. It never records values or tokens.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<directory>/.conson/audit.jsonl
//
// Each entry contains:
//   - A random entry id
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS user and hostname
//   - Operation name
//   - Operation-specific details (parameter name, list index, file)
//
// # Usage
//
//	entry := audit.LogWithUser("veil")
//	entry.Name = "db_password"
//	audit.Log(store.Directory(), entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails the operation continues
// without error.
package audit
