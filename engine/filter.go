/*
filter.go - Conjunctive resource filtering

All predicates AND together. The free-text query is applied after, and in
addition to, the structured criteria, so a resource is kept iff it
satisfies every active criterion simultaneously. The function is pure:
reapplying the same criteria to the same input yields the same output.
*/
package engine

import "strings"

// ApplyFilters returns the resources matching every active criterion in c.
// The input slice is never mutated; the result is a fresh slice.
func ApplyFilters(resources []Resource, c FilterCriteria) []Resource {
	filtered := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if matchesCriteria(r, c) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesCriteria(r Resource, c FilterCriteria) bool {
	if c.Type != "" && r.Type != c.Type {
		return false
	}

	// Every requested feature must be present (subset test).
	for _, f := range c.Features {
		if !r.HasFeature(f) {
			return false
		}
	}

	if c.MinCapacity > 0 && r.Capacity < c.MinCapacity {
		return false
	}

	if c.Location != "" &&
		!strings.Contains(strings.ToLower(r.Location), strings.ToLower(c.Location)) {
		return false
	}

	if c.Query != "" {
		q := strings.ToLower(c.Query)
		return strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Location), q) ||
			strings.Contains(strings.ToLower(r.Type), q)
	}

	return true
}
