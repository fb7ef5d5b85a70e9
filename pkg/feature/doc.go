// Package feature provides global on/off flags stored out of process, so an
// operator toggle takes effect without a deploy.
//
// Providers read the flag row on demand; the TTL-cached decorator bounds how
// stale a read can be without introducing a long-lived in-process singleton.
// Enabled is the fail-closed helper callers should use: a missing flag or a
// storage error reads as disabled.
package feature
