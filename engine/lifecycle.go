/*
lifecycle.go - The remote operation protocol

PURPOSE:
  Every remote operation runs through the same three-state protocol:

    pending   -> owning slice's loading flag set, its error cleared
    fulfilled -> loading cleared, result committed to store/views/cache
                 as one step under the engine lock
    rejected  -> loading cleared, a human-readable message recorded
                 (remote error body preferred, kind default as fallback)

  Commit logic runs only on the fulfilled transition, exactly once. No
  operation is retried, de-duplicated, or sequence-tagged: concurrent
  operations of the same kind each flip the shared loading flag, and a
  stale response can commit after a newer one (last-settled-wins). The
  flag therefore reflects only the most recently settled operation and
  can visibly flicker under concurrent requests.

AUTHORIZATION ESCALATION:
  A rejected transition caused by a 401 additionally invalidates the
  session — unless the operation is the refresh or login call itself, or
  the session is already unauthenticated.
*/
package engine

import "context"

// =============================================================================
// OPERATION KINDS
// =============================================================================

type opKind string

const (
	opLogin              opKind = "auth.login"
	opRefreshToken       opKind = "auth.refresh"
	opFetchResources     opKind = "resources.fetch"
	opFetchResource      opKind = "resources.fetchByID"
	opSearchResources    opKind = "resources.search"
	opFetchFeatures      opKind = "resources.features"
	opFetchResourceTypes opKind = "resources.types.fetch"
	opCreateResourceType opKind = "resources.types.create"
	opUpdateResourceType opKind = "resources.types.update"
	opDeleteResourceType opKind = "resources.types.delete"
	opFetchBookings      opKind = "bookings.fetch"
	opFetchUserBookings  opKind = "bookings.fetchByUser"
	opFetchResBookings   opKind = "bookings.fetchByResource"
	opFetchBooking       opKind = "bookings.fetchByID"
	opSearchBookings     opKind = "bookings.search"
	opCreateBooking      opKind = "bookings.create"
	opUpdateBooking      opKind = "bookings.updateStatus"
	opCheckAvailability  opKind = "bookings.checkAvailability"
)

// defaultMessages are the fallback error strings recorded when the
// remote collaborator supplies no structured message.
var defaultMessages = map[opKind]string{
	opLogin:              "invalid credentials",
	opRefreshToken:       "failed to refresh token",
	opFetchResources:     "failed to fetch resources",
	opFetchResource:      "failed to fetch resource",
	opSearchResources:    "failed to search resources",
	opFetchFeatures:      "failed to fetch features",
	opFetchResourceTypes: "failed to fetch resource types",
	opCreateResourceType: "failed to create resource type",
	opUpdateResourceType: "failed to update resource type",
	opDeleteResourceType: "failed to delete resource type",
	opFetchBookings:      "failed to fetch bookings",
	opFetchUserBookings:  "failed to fetch user bookings",
	opFetchResBookings:   "failed to fetch resource bookings",
	opFetchBooking:       "failed to fetch booking",
	opSearchBookings:     "failed to search bookings",
	opCreateBooking:      "failed to create booking",
	opUpdateBooking:      "failed to update booking",
	opCheckAvailability:  "failed to check availability",
}

// =============================================================================
// SLICE STATE
// =============================================================================

// sliceFlags is the loading/error pair shared by every operation of an
// owning slice (resources, bookings, auth).
type sliceFlags struct {
	loading bool
	err     string
}

// =============================================================================
// PROTOCOL RUNNER
// =============================================================================

// run executes one remote operation through the lifecycle protocol.
// call runs with no lock held; commit runs under the engine lock,
// indivisible from the perspective of any concurrent read.
func run[T any](ctx context.Context, e *Engine, slice *sliceFlags, kind opKind, call func(context.Context) (T, error), commit func(T)) error {
	e.begin(slice)

	result, err := call(ctx)
	if err != nil {
		e.reject(slice, kind, err)
		return err
	}

	e.mu.Lock()
	slice.loading = false
	slice.err = ""
	commit(result)
	e.mu.Unlock()
	return nil
}

// begin is the pending transition.
func (e *Engine) begin(slice *sliceFlags) {
	e.mu.Lock()
	slice.loading = true
	slice.err = ""
	e.mu.Unlock()
}

// reject is the rejected transition. Authorization failures escalate to
// session invalidation, except for the login and refresh calls (refresh
// handles its own invalidation on any failure, see session.go).
func (e *Engine) reject(slice *sliceFlags, kind opKind, err error) {
	e.mu.Lock()
	slice.loading = false
	if msg := remoteMessage(err); msg != "" {
		slice.err = msg
	} else {
		slice.err = defaultMessages[kind]
	}

	if IsAuthFailure(err) && kind != opLogin && kind != opRefreshToken && e.auth.authenticated {
		e.invalidateSessionLocked()
	}
	e.mu.Unlock()
}
