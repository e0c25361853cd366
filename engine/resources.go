/*
resources.go - Resource slice operations

Fetches replace the unfiltered list wholesale and recompute the filtered
list under the same commit; a fetch-by-id does an index-preserving
replace (or append) so the list order survives refreshes. Filter setters
are synchronous: they rerun the criteria against the unfiltered list,
never against a previously filtered result.
*/
package engine

import "context"

// =============================================================================
// FETCH OPERATIONS
// =============================================================================

// FetchResources loads the full resource list.
func (e *Engine) FetchResources(ctx context.Context) error {
	return run(ctx, e, &e.resources.flags, opFetchResources,
		func(ctx context.Context) ([]Resource, error) {
			return e.api.ListResources(ctx, FilterCriteria{})
		},
		e.commitResourceList)
}

// SearchResources loads resources matching criteria server-side. The
// result still replaces the whole unfiltered list; client-side criteria
// are reapplied on top.
func (e *Engine) SearchResources(ctx context.Context, criteria FilterCriteria) error {
	return run(ctx, e, &e.resources.flags, opSearchResources,
		func(ctx context.Context) ([]Resource, error) {
			return e.api.ListResources(ctx, criteria)
		},
		e.commitResourceList)
}

// FetchResourceByID loads one resource, selects it, and folds it into
// the resource list.
func (e *Engine) FetchResourceByID(ctx context.Context, id ResourceID) error {
	return run(ctx, e, &e.resources.flags, opFetchResource,
		func(ctx context.Context) (Resource, error) {
			return e.api.GetResource(ctx, id)
		},
		func(r Resource) {
			e.entities.UpsertResource(r)
			e.resources.selected = &r

			replaced := false
			for i := range e.resources.all {
				if e.resources.all[i].ID == r.ID {
					e.resources.all[i] = r
					replaced = true
					break
				}
			}
			if !replaced {
				e.resources.all = append(e.resources.all, r)
			}
			e.resources.filtered = ApplyFilters(e.resources.all, e.resources.filters)
		})
}

// FetchFeatures loads the feature reference data.
func (e *Engine) FetchFeatures(ctx context.Context) error {
	return run(ctx, e, &e.resources.flags, opFetchFeatures,
		func(ctx context.Context) ([]Feature, error) {
			return e.api.ListFeatures(ctx)
		},
		func(fs []Feature) {
			e.resources.features = fs
		})
}

// commitResourceList is the shared fulfilled commit for whole-list
// fetches.
func (e *Engine) commitResourceList(rs []Resource) {
	for _, r := range rs {
		e.entities.UpsertResource(r)
	}
	e.resources.all = rs
	e.resources.filtered = ApplyFilters(rs, e.resources.filters)
}

// =============================================================================
// SELECTION
// =============================================================================

// SelectResource selects the resource with the given id from the loaded
// list, or clears the selection when id is "" or unknown.
func (e *Engine) SelectResource(id ResourceID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id == "" {
		e.resources.selected = nil
		return
	}
	for i := range e.resources.all {
		if e.resources.all[i].ID == id {
			r := e.resources.all[i]
			e.resources.selected = &r
			return
		}
	}
	e.resources.selected = nil
}

// =============================================================================
// FILTERS
// =============================================================================

// SetTypeFilter sets the exact-match type criterion ("" clears it).
func (e *Engine) SetTypeFilter(t string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources.filters.Type = t
	e.applyFiltersLocked()
}

// SetFeatureFilter sets the feature subset criterion (empty clears it).
func (e *Engine) SetFeatureFilter(features []FeatureID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources.filters.Features = append([]FeatureID(nil), features...)
	e.applyFiltersLocked()
}

// SetCapacityFilter sets the minimum-capacity criterion (0 clears it).
func (e *Engine) SetCapacityFilter(min int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources.filters.MinCapacity = min
	e.applyFiltersLocked()
}

// SetLocationFilter sets the location substring criterion ("" clears it).
func (e *Engine) SetLocationFilter(location string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources.filters.Location = location
	e.applyFiltersLocked()
}

// SetQueryFilter sets the free-text criterion ("" clears it).
func (e *Engine) SetQueryFilter(query string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources.filters.Query = query
	e.applyFiltersLocked()
}

// ResetFilters clears all criteria and shows the full list again.
func (e *Engine) ResetFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resources.filters = FilterCriteria{}
	e.resources.filtered = copyResources(e.resources.all)
}

func (e *Engine) applyFiltersLocked() {
	e.resources.filtered = ApplyFilters(e.resources.all, e.resources.filters)
}
