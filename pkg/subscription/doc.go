// Package subscription binds a user to exactly one active plan at a time.
//
// The Store interface is the read contract consumed by enforcement checks
// (ActiveForUser) plus the write path (Activate/Cancel) that upholds the
// single-active-subscription invariant by cancelling any existing
// subscription before creating a new one.
package subscription
