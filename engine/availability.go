/*
availability.go - Side cache of availability verdicts

Keyed by the exact (resource, start, end) triple; distinct time ranges
for the same resource never collide. Entries are immutable once written:
a write only ever replaces or removes an entry by exact key. There is no
automatic expiry and no invalidation hook tied to booking creation — a
cached "available" verdict can outlive the state it described, and
callers clear keys explicitly when they want a fresh check.
*/
package engine

import "time"

// AvailabilityKey builds the composite cache key for a check. Instants
// are rendered in UTC RFC3339 so equal instants always produce equal keys.
func AvailabilityKey(id ResourceID, start, end time.Time) string {
	return string(id) + "-" + start.UTC().Format(time.RFC3339) + "-" + end.UTC().Format(time.RFC3339)
}

// AvailabilityCache maps composite keys to the last known verdict.
type AvailabilityCache struct {
	checks map[string]AvailabilityResult
}

// NewAvailabilityCache returns an empty cache.
func NewAvailabilityCache() *AvailabilityCache {
	return &AvailabilityCache{checks: make(map[string]AvailabilityResult)}
}

// Put stores the verdict under key, replacing any previous entry.
func (c *AvailabilityCache) Put(key string, result AvailabilityResult) {
	c.checks[key] = result
}

// Get returns the cached verdict for key.
func (c *AvailabilityCache) Get(key string) (AvailabilityResult, bool) {
	r, ok := c.checks[key]
	return r, ok
}

// Clear removes one entry by exact key.
func (c *AvailabilityCache) Clear(key string) {
	delete(c.checks, key)
}

// ClearAll removes every entry.
func (c *AvailabilityCache) ClearAll() {
	c.checks = make(map[string]AvailabilityResult)
}

// Len returns the number of cached verdicts.
func (c *AvailabilityCache) Len() int { return len(c.checks) }

// Snapshot returns a copy of the cache contents.
func (c *AvailabilityCache) Snapshot() map[string]AvailabilityResult {
	out := make(map[string]AvailabilityResult, len(c.checks))
	for k, v := range c.checks {
		out[k] = v
	}
	return out
}
