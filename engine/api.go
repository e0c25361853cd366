package engine

import (
	"context"
	"time"
)

// =============================================================================
// REMOTE COLLABORATOR - The engine's only outbound dependency
// =============================================================================

// API is the remote reservation service as the engine sees it. Transport
// details (base URL, bearer headers, timeouts) live in the implementation;
// the engine only cares about results and the error taxonomy in errors.go.
//
// Implementations:
//   - remote/client.go: production HTTP client
//   - engine tests:     scripted fakes
type API interface {
	// Auth
	Login(ctx context.Context, username, password string) (LoginResult, error)
	RefreshToken(ctx context.Context) (string, error)

	// Resources and reference data
	ListResources(ctx context.Context, criteria FilterCriteria) ([]Resource, error)
	GetResource(ctx context.Context, id ResourceID) (Resource, error)
	ListFeatures(ctx context.Context) ([]Feature, error)
	ListResourceTypes(ctx context.Context) ([]ResourceType, error)
	CreateResourceType(ctx context.Context, input ResourceTypeInput) (ResourceType, error)
	UpdateResourceType(ctx context.Context, id int, input ResourceTypeInput) (ResourceType, error)
	DeleteResourceType(ctx context.Context, id int) error

	// Bookings
	ListBookings(ctx context.Context, query BookingQuery) ([]Booking, error)
	GetBooking(ctx context.Context, id BookingID) (Booking, error)
	CreateBooking(ctx context.Context, req BookingRequest) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id BookingID, status BookingStatus) (Booking, error)
	CheckAvailability(ctx context.Context, id ResourceID, start, end time.Time) (AvailabilityResult, error)
}
