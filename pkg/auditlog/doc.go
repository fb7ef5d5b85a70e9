// Package auditlog keeps the append-only record of enforcement denials and
// the aggregate queries analytics runs over it.
//
// The write path is deliberately lossy-but-quiet: LogBlock swallows storage
// failures after emitting a warning, because an enforcement decision that was
// already made must never fail just because its audit trail did. Reads go
// through Reader, which never mutates anything.
//
// The blocks table is provisioned by the goose migrations in migrations/,
// not by the logger itself.
package auditlog
