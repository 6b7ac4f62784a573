// Package cache provides persistent, TTL-governed caching for geocoding and
// routing results.
//
// Network lookups against the routing API are slow and rate-limited, so
// results are cached on disk and served until they age out. Key features:
//   - Single JSON document per cache, loaded at construction and rewritten on
//     every mutation (durable without any background work)
//   - TTL measured in days, reconfigurable at runtime; 0 disables the cache
//   - SHA256-based cache keys derived from the ordered lookup arguments
//   - Expired entries are evicted on read and when the TTL is lowered
//
// Load and save failures never propagate to callers: a corrupt or missing
// file is a cold cache, and a failed save leaves the in-memory store
// authoritative for the rest of the process.
package cache
