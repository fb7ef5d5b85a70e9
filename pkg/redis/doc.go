// Package redis opens the go-redis client used by the cross-process
// feature-flag cache (feature.RedisCached). Connection parameters come from
// environment variables; Connect retries until the server answers a ping or
// the attempts run out.
package redis
