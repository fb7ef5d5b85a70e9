// Package logger builds the slog.Logger handed to the enforcement components
// (heavyuser.WithLogger, auditlog.WithLogger). It offers JSON and text
// handlers, per-environment presets, static attributes, and context
// extractors that pull request-scoped values (request ID, user ID) into every
// record.
package logger
