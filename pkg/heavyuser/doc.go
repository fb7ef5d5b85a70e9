// Package heavyuser implements the escape valve that rewards consistently
// active students: when a user hits the daily session cap, the valve may
// grant the plan's configured bonus sessions, at most once per user per
// calendar day.
//
// The whole subsystem sits behind the global "heavy_user_escape_valve"
// feature flag and fails closed: any flag-read or storage problem means no
// grant, never a failed request.
//
// The once-per-day constraint is enforced at the activation write (unique
// index in Postgres, keyed map in memory), not by call sequencing, so
// concurrent requests cannot double-grant.
package heavyuser
