// Package audit provides audit trail logging for Kōwhai operations.
//
// Every mutating operation (set, sync, remove) is recorded in a
// user-level audit log, so it is possible to reconstruct which secrets
// were pushed where, and when.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) in
// the user data directory:
//
//	~/.local/share/kowhai/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - GitHub login and operation name
//   - Target repository and the names of the secrets involved
//
// Secret values and access tokens are never written to the log.
//
// # Usage
//
// Create an entry with the operation and login pre-populated:
//
//	entry := audit.ForOperation("sync", session.Login)
//	entry.Repo = "octocat/widgets"
//	entry.Secrets = uploadedNames
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk
// full, etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
