// Package enforcement is the single decision point answering "can this user
// perform this action right now" for session starts, question answering,
// piece practice and complete-report access.
//
// Denials are values, never errors: every check returns a Decision carrying a
// stable machine-readable reason code plus the human-facing message bundle
// the client renders. Errors are reserved for genuine faults (storage
// unreachable, misconfigured plan), which propagate to the caller so the API
// layer can answer 5xx. A user is never told "limit reached" because the
// database was down.
//
// Every denial is appended to the enforcement audit log; allows are not
// logged to keep writes off the hot path.
package enforcement
