/*
bookings.go - Booking slice operations

THE CONSISTENCY CONTRACT:
  A committed booking mutation must land in every populated projection in
  one step:
    a. insert/replace in the full booking list
    b. creation appends to the user's list; a status update replaces by
       id where present
    c. insert/replace in the per-resource list, only if that resource's
       view was already populated by a fetch
    d. replace the selected booking when the id matches
  Views never populated stay untouched; they are filled by an explicit
  fetch, not derived lazily from (a).

  Replacement by id is a linear scan. View sizes are bounded by one
  user's or one resource's booking count, not the whole dataset.
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// FETCH OPERATIONS
// =============================================================================

// FetchBookings loads the full booking list.
func (e *Engine) FetchBookings(ctx context.Context) error {
	return run(ctx, e, &e.bookings.flags, opFetchBookings,
		func(ctx context.Context) ([]Booking, error) {
			return e.api.ListBookings(ctx, BookingQuery{})
		},
		func(bs []Booking) {
			for _, b := range bs {
				e.entities.UpsertBooking(b)
			}
			e.bookings.all = bs
		})
}

// FetchUserBookings populates the user's booking view.
func (e *Engine) FetchUserBookings(ctx context.Context, userID UserID) error {
	return run(ctx, e, &e.bookings.flags, opFetchUserBookings,
		func(ctx context.Context) ([]Booking, error) {
			return e.api.ListBookings(ctx, BookingQuery{UserID: userID})
		},
		func(bs []Booking) {
			for _, b := range bs {
				e.entities.UpsertBooking(b)
			}
			e.bookings.user = bs
		})
}

// FetchResourceBookings populates the per-resource booking view for id.
func (e *Engine) FetchResourceBookings(ctx context.Context, id ResourceID) error {
	return run(ctx, e, &e.bookings.flags, opFetchResBookings,
		func(ctx context.Context) ([]Booking, error) {
			return e.api.ListBookings(ctx, BookingQuery{ResourceID: id})
		},
		func(bs []Booking) {
			for _, b := range bs {
				e.entities.UpsertBooking(b)
			}
			if bs == nil {
				bs = []Booking{}
			}
			e.bookings.byResource[id] = bs
		})
}

// FetchBookingByID loads one booking and selects it.
func (e *Engine) FetchBookingByID(ctx context.Context, id BookingID) error {
	return run(ctx, e, &e.bookings.flags, opFetchBooking,
		func(ctx context.Context) (Booking, error) {
			return e.api.GetBooking(ctx, id)
		},
		func(b Booking) {
			e.commitBookingLocked(b, false)
			e.bookings.selected = &b
		})
}

// SearchBookings loads bookings matching query and replaces the full
// booking list with the result.
func (e *Engine) SearchBookings(ctx context.Context, query BookingQuery) error {
	return run(ctx, e, &e.bookings.flags, opSearchBookings,
		func(ctx context.Context) ([]Booking, error) {
			return e.api.ListBookings(ctx, query)
		},
		func(bs []Booking) {
			for _, b := range bs {
				e.entities.UpsertBooking(b)
			}
			e.bookings.all = bs
		})
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateBooking creates a booking and commits it into every applicable
// projection. The created booking is returned for convenience; it is
// also readable through the views.
func (e *Engine) CreateBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	var out Booking
	err := run(ctx, e, &e.bookings.flags, opCreateBooking,
		func(ctx context.Context) (Booking, error) {
			return e.api.CreateBooking(ctx, req)
		},
		func(b Booking) {
			out = b
			e.commitBookingLocked(b, true)
		})
	return out, err
}

// UpdateBookingStatus updates one booking's status and propagates the
// returned entity to every projection holding that id.
func (e *Engine) UpdateBookingStatus(ctx context.Context, id BookingID, status BookingStatus) (Booking, error) {
	var out Booking
	err := run(ctx, e, &e.bookings.flags, opUpdateBooking,
		func(ctx context.Context) (Booking, error) {
			return e.api.UpdateBookingStatus(ctx, id, status)
		},
		func(b Booking) {
			out = b
			e.commitBookingLocked(b, false)
		})
	return out, err
}

// commitBookingLocked applies one booking to the canonical store and
// every populated projection. created selects append-vs-replace
// semantics for the full and user lists. Caller holds the engine lock.
func (e *Engine) commitBookingLocked(b Booking, created bool) {
	e.entities.UpsertBooking(b)

	if created {
		e.bookings.all = append(e.bookings.all, b)
		e.bookings.user = append(e.bookings.user, b)
	} else {
		if !replaceBookingByID(e.bookings.all, b) {
			e.bookings.all = append(e.bookings.all, b)
		}
		replaceBookingByID(e.bookings.user, b)
	}

	if rb, ok := e.bookings.byResource[b.ResourceID]; ok {
		if created {
			e.bookings.byResource[b.ResourceID] = append(rb, b)
		} else {
			replaceBookingByID(rb, b)
		}
	}

	if e.bookings.selected != nil && e.bookings.selected.ID == b.ID {
		sel := b
		e.bookings.selected = &sel
	}
}

// replaceBookingByID overwrites the entry matching b.ID in place and
// reports whether it was found. A missing id is not an error: that
// projection simply does not hold the entity.
func replaceBookingByID(bs []Booking, b Booking) bool {
	for i := range bs {
		if bs[i].ID == b.ID {
			bs[i] = b
			return true
		}
	}
	return false
}

// =============================================================================
// AVAILABILITY
// =============================================================================

// CheckAvailability asks the remote collaborator whether the resource is
// free over [start, end] and caches the verdict under the composite key.
// Re-checking the identical triple overwrites the cached entry.
func (e *Engine) CheckAvailability(ctx context.Context, id ResourceID, start, end time.Time) (AvailabilityResult, error) {
	var out AvailabilityResult
	err := run(ctx, e, &e.bookings.flags, opCheckAvailability,
		func(ctx context.Context) (AvailabilityResult, error) {
			return e.api.CheckAvailability(ctx, id, start, end)
		},
		func(res AvailabilityResult) {
			out = res
			e.bookings.availability.Put(AvailabilityKey(id, start, end), res)
		})
	return out, err
}

// ClearAvailabilityCheck removes one cached verdict by exact key.
func (e *Engine) ClearAvailabilityCheck(key string) {
	e.mu.Lock()
	e.bookings.availability.Clear(key)
	e.mu.Unlock()
}

// ClearAllAvailabilityChecks removes every cached verdict.
func (e *Engine) ClearAllAvailabilityChecks() {
	e.mu.Lock()
	e.bookings.availability.ClearAll()
	e.mu.Unlock()
}

// =============================================================================
// SELECTION
// =============================================================================

// SelectBooking selects the booking with the given id from the full
// list, or clears the selection when id is "" or unknown.
func (e *Engine) SelectBooking(id BookingID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id == "" {
		e.bookings.selected = nil
		return
	}
	for i := range e.bookings.all {
		if e.bookings.all[i].ID == id {
			b := e.bookings.all[i]
			e.bookings.selected = &b
			return
		}
	}
	e.bookings.selected = nil
}
