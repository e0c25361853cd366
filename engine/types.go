/*
Package engine keeps the client-side state of a reservation application
consistent while remote operations race against user interaction.

PURPOSE:
  A reservation UI holds several denormalized projections of the same
  entity set: the full resource list, a filtered view of it, the current
  user's bookings, per-resource booking schedules, selected entities, and
  a cache of availability verdicts. This package owns all of that state
  and guarantees that a committed mutation is visible in every projection
  at once.

KEY CONCEPTS IN THIS FILE (types.go):
  - Resource:  A bookable thing (room, vehicle, equipment)
  - Booking:   A time-bounded reservation against a resource
  - Feature:   Reference data describing resource equipment
  - FilterCriteria: Conjunctive predicate set for narrowing resources
  - AvailabilityResult: Point-in-time free/busy verdict for a time range

DESIGN PRINCIPLES:
  1. Whole-entity replacement: entities are never partially patched,
     except the targeted Booking status update which propagates to every
     projection holding that id.
  2. Type safety: distinct id types prevent mixing resource, booking,
     user, and feature identifiers.
  3. Copies out: read accessors return copies so callers can never
     observe a half-applied commit.

SEE ALSO:
  - store.go:     canonical entity store
  - lifecycle.go: the pending/fulfilled/rejected operation protocol
  - session.go:   token handling and session invalidation
*/
package engine

import (
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ResourceID string
type BookingID string
type UserID string
type FeatureID string

// =============================================================================
// BOOKING STATUS
// =============================================================================

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the three known statuses.
func (s BookingStatus) Valid() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCancelled
}

// =============================================================================
// ENTITIES
// =============================================================================

// Resource is a bookable resource. Identity is the ID; every other field
// is replaceable wholesale on fetch.
type Resource struct {
	ID         ResourceID  `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Capacity   int         `json:"capacity"`
	Location   string      `json:"location"`
	Features   []FeatureID `json:"features"`
	Email      string      `json:"email"`
	CalendarID string      `json:"calendar_id"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	Manager    string      `json:"manager"`
}

// HasFeature reports whether the resource carries the given feature id.
func (r Resource) HasFeature(id FeatureID) bool {
	for _, f := range r.Features {
		if f == id {
			return true
		}
	}
	return false
}

// Booking is a time-bounded reservation. ResourceID may reference a
// Resource that is not currently loaded; the engine does not resolve it.
type Booking struct {
	ID          BookingID     `json:"id"`
	ResourceID  ResourceID    `json:"resource_id"`
	UserID      UserID        `json:"user_id"`
	Title       string        `json:"title"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Status      BookingStatus `json:"status"`
	Attendees   []UserID      `json:"attendees"`
	CreatedAt   time.Time     `json:"created_at"`
	Description string        `json:"description,omitempty"`
}

// Feature is reference data, never mutated, only replaced wholesale.
type Feature struct {
	ID   FeatureID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon"`
}

// ResourceType is administrative reference data describing a category of
// resources (room, vehicle, ...).
type ResourceType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ResourceTypeInput is the payload for creating or updating a ResourceType.
type ResourceTypeInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

// User is the profile of the authenticated user.
type User struct {
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	Role       string   `json:"role"`
	Department string   `json:"department"`
	Groups     []string `json:"groups"`
}

// =============================================================================
// REQUESTS AND VERDICTS
// =============================================================================

// BookingRequest carries the fields needed to create a booking. The
// server assigns id, user, status, and creation time.
type BookingRequest struct {
	ResourceID  ResourceID `json:"resource_id"`
	Title       string     `json:"title"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Attendees   []UserID   `json:"attendees"`
	Description string     `json:"description,omitempty"`
}

// BookingQuery narrows a bookings fetch. Zero values mean "not set".
type BookingQuery struct {
	UserID     UserID
	ResourceID ResourceID
	StartDate  time.Time
	EndDate    time.Time
	Status     BookingStatus
}

// AvailabilityResult is an immutable point-in-time verdict for whether a
// resource is free over a time range. The conflicting booking, when
// present, is a snapshot and is never related back to live entities.
type AvailabilityResult struct {
	Available          bool     `json:"available"`
	Reason             string   `json:"reason,omitempty"`
	ConflictingBooking *Booking `json:"conflicting_booking,omitempty"`
}

// =============================================================================
// FILTER CRITERIA
// =============================================================================

// FilterCriteria is the conjunctive predicate set applied to the resource
// list. Zero values ("" / 0 / empty set) mean the criterion is inactive.
type FilterCriteria struct {
	Type        string
	Features    []FeatureID
	MinCapacity int
	Location    string
	Query       string
}

// Active reports whether any criterion is set.
func (c FilterCriteria) Active() bool {
	return c.Type != "" || len(c.Features) > 0 || c.MinCapacity > 0 ||
		c.Location != "" || c.Query != ""
}

// =============================================================================
// SESSION
// =============================================================================

// Claims are the decoded token claims the engine inspects. Only the
// expiry claim participates in session decisions; the signature is never
// verified here.
type Claims struct {
	Subject string   `json:"sub"`
	Expiry  int64    `json:"exp"`
	Role    string   `json:"role"`
	Groups  []string `json:"groups"`
}

// ExpiresAt returns the expiry claim as a time.
func (c Claims) ExpiresAt() time.Time {
	return time.Unix(c.Expiry, 0)
}

// Session is a snapshot of the authentication state.
type Session struct {
	Token         string
	User          *User
	Authenticated bool
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
