/*
store.go - Canonical entity store

PURPOSE:
  Holds at most one Resource and one Booking per id: the single source of
  truth every derived view is rebuilt or patched from. Upserts replace
  whole entities; there is no partial-field merge and no delete (no
  remote delete operation exists, so entities persist for the life of
  the process).

CONCURRENCY:
  The store itself is not locked. It is only ever touched inside the
  engine's commit step, which runs under the engine mutex.
*/
package engine

// EntityStore is the canonical, deduplicated holder of entities keyed by
// id. Operations are synchronous and total: there are no error cases.
type EntityStore struct {
	resources map[ResourceID]Resource
	bookings  map[BookingID]Booking
}

// NewEntityStore returns an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		resources: make(map[ResourceID]Resource),
		bookings:  make(map[BookingID]Booking),
	}
}

// UpsertResource replaces the entry for r.ID, or adds it.
func (s *EntityStore) UpsertResource(r Resource) {
	s.resources[r.ID] = r
}

// UpsertBooking replaces the entry for b.ID, or adds it.
func (s *EntityStore) UpsertBooking(b Booking) {
	s.bookings[b.ID] = b
}

// Resource returns the canonical entity for id.
func (s *EntityStore) Resource(id ResourceID) (Resource, bool) {
	r, ok := s.resources[id]
	return r, ok
}

// Booking returns the canonical entity for id.
func (s *EntityStore) Booking(id BookingID) (Booking, bool) {
	b, ok := s.bookings[id]
	return b, ok
}

// ResourceCount returns the number of distinct resources held.
func (s *EntityStore) ResourceCount() int { return len(s.resources) }

// BookingCount returns the number of distinct bookings held.
func (s *EntityStore) BookingCount() int { return len(s.bookings) }
