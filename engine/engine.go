/*
engine.go - Engine wiring and read surface

PURPOSE:
  Engine bundles the canonical entity store, the derived views, the
  availability cache, the session, and the UI preferences behind a single
  mutex. The browser's single-threaded event loop maps onto that mutex:
  every state transition runs to completion under it, so no reader ever
  observes a partial commit. Remote calls run with no lock held, which is
  where concurrent operations interleave.

READ SURFACE:
  Accessors return copies (slices and maps are duplicated, selected
  entities returned as fresh pointers) so callers can hold results across
  later commits without aliasing engine state.
*/
package engine

import (
	"sync"
	"time"
)

// =============================================================================
// STATE SLICES
// =============================================================================

// resourcesState holds the resource projections: the unfiltered list,
// the filtered list (FilterEngine applied), reference data, the current
// criteria, and the selected resource.
type resourcesState struct {
	all      []Resource
	filtered []Resource
	features []Feature
	types    []ResourceType
	filters  FilterCriteria
	selected *Resource
	flags    sliceFlags
}

// bookingsState holds the booking projections. user starts empty and is
// appended to by creation; byResource keys exist only after an explicit
// per-resource fetch — missing keys are lazy, untouched views.
type bookingsState struct {
	all          []Booking
	user         []Booking
	byResource   map[ResourceID][]Booking
	selected     *Booking
	availability *AvailabilityCache
	flags        sliceFlags
}

// authState is the session: held token, decoded profile, and the
// authenticated flag.
type authState struct {
	token         string
	user          *User
	authenticated bool
	flags         sliceFlags
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine is the client-side state-synchronization engine. Safe for
// concurrent use.
type Engine struct {
	mu  sync.RWMutex
	api API
	kv  KV
	now func() time.Time

	entities  *EntityStore
	resources resourcesState
	bookings  bookingsState
	auth      authState
	ui        uiState
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine reading initial session and preference state
// from kv. The session expiry check runs once eagerly; subsequent checks
// are driven by an external timer calling CheckTokenExpiration.
func New(api API, kv KV, opts ...Option) *Engine {
	e := &Engine{
		api:      api,
		kv:       kv,
		now:      time.Now,
		entities: NewEntityStore(),
		bookings: bookingsState{
			byResource:   make(map[ResourceID][]Booking),
			availability: NewAvailabilityCache(),
		},
		ui: uiState{theme: ThemeLight},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.loadSession()
	e.loadTheme()
	e.CheckTokenExpiration()
	return e
}

// =============================================================================
// READ SURFACE - resources
// =============================================================================

// Resources returns the unfiltered resource list.
func (e *Engine) Resources() []Resource {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyResources(e.resources.all)
}

// FilteredResources returns the resource list with the current criteria
// applied.
func (e *Engine) FilteredResources() []Resource {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyResources(e.resources.filtered)
}

// Features returns the loaded feature reference data.
func (e *Engine) Features() []Feature {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Feature(nil), e.resources.features...)
}

// ResourceTypes returns the loaded resource-type reference data.
func (e *Engine) ResourceTypes() []ResourceType {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]ResourceType(nil), e.resources.types...)
}

// Filters returns the current filter criteria.
func (e *Engine) Filters() FilterCriteria {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c := e.resources.filters
	c.Features = append([]FeatureID(nil), c.Features...)
	return c
}

// SelectedResource returns the selected resource, or nil.
func (e *Engine) SelectedResource() *Resource {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.resources.selected == nil {
		return nil
	}
	r := *e.resources.selected
	return &r
}

// ResourceTypeNames returns the distinct types present in the loaded
// resource list, in first-seen order.
func (e *Engine) ResourceTypeNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return distinct(e.resources.all, func(r Resource) string { return r.Type })
}

// Locations returns the distinct locations present in the loaded
// resource list, in first-seen order.
func (e *Engine) Locations() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return distinct(e.resources.all, func(r Resource) string { return r.Location })
}

// ResourcesLoading reports the resources slice loading flag.
func (e *Engine) ResourcesLoading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resources.flags.loading
}

// ResourcesError returns the resources slice error message, "" if none.
func (e *Engine) ResourcesError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resources.flags.err
}

// ClearResourcesError clears the resources slice error.
func (e *Engine) ClearResourcesError() {
	e.mu.Lock()
	e.resources.flags.err = ""
	e.mu.Unlock()
}

// =============================================================================
// READ SURFACE - bookings
// =============================================================================

// Bookings returns the full booking list.
func (e *Engine) Bookings() []Booking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyBookings(e.bookings.all)
}

// UserBookings returns the current user's booking list.
func (e *Engine) UserBookings() []Booking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyBookings(e.bookings.user)
}

// ResourceBookings returns the booking list for one resource and whether
// that view has been populated by a fetch.
func (e *Engine) ResourceBookings(id ResourceID) ([]Booking, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	bs, ok := e.bookings.byResource[id]
	if !ok {
		return nil, false
	}
	return copyBookings(bs), true
}

// SelectedBooking returns the selected booking, or nil.
func (e *Engine) SelectedBooking() *Booking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.bookings.selected == nil {
		return nil
	}
	b := *e.bookings.selected
	return &b
}

// AvailabilityCheck returns the cached verdict for key.
func (e *Engine) AvailabilityCheck(key string) (AvailabilityResult, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bookings.availability.Get(key)
}

// AvailabilityChecks returns a copy of all cached verdicts.
func (e *Engine) AvailabilityChecks() map[string]AvailabilityResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bookings.availability.Snapshot()
}

// BookingsLoading reports the bookings slice loading flag.
func (e *Engine) BookingsLoading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bookings.flags.loading
}

// BookingsError returns the bookings slice error message, "" if none.
func (e *Engine) BookingsError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bookings.flags.err
}

// ClearBookingsError clears the bookings slice error.
func (e *Engine) ClearBookingsError() {
	e.mu.Lock()
	e.bookings.flags.err = ""
	e.mu.Unlock()
}

// =============================================================================
// READ SURFACE - entity store
// =============================================================================

// Entity lookups go through the canonical store, not the views.

// Resource returns the canonical entity for id.
func (e *Engine) Resource(id ResourceID) (Resource, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entities.Resource(id)
}

// Booking returns the canonical entity for id.
func (e *Engine) Booking(id BookingID) (Booking, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entities.Booking(id)
}

// =============================================================================
// HELPERS
// =============================================================================

func copyResources(rs []Resource) []Resource {
	return append([]Resource(nil), rs...)
}

func copyBookings(bs []Booking) []Booking {
	return append([]Booking(nil), bs...)
}

func distinct(rs []Resource, field func(Resource) string) []string {
	seen := make(map[string]bool, len(rs))
	var out []string
	for _, r := range rs {
		v := field(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
