/*
engine_test.go - Shared test fixtures

The fake remote collaborator is scripted per-test through function
fields; unscripted calls return zero values so a test only wires what it
exercises.
*/
package engine_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/warp/reservation-engine/engine"
	"github.com/warp/reservation-engine/engine/store"
)

// =============================================================================
// SCRIPTED REMOTE COLLABORATOR
// =============================================================================

type fakeAPI struct {
	login              func(ctx context.Context, username, password string) (engine.LoginResult, error)
	refreshToken       func(ctx context.Context) (string, error)
	listResources      func(ctx context.Context, criteria engine.FilterCriteria) ([]engine.Resource, error)
	getResource        func(ctx context.Context, id engine.ResourceID) (engine.Resource, error)
	listFeatures       func(ctx context.Context) ([]engine.Feature, error)
	listResourceTypes  func(ctx context.Context) ([]engine.ResourceType, error)
	createResourceType func(ctx context.Context, input engine.ResourceTypeInput) (engine.ResourceType, error)
	updateResourceType func(ctx context.Context, id int, input engine.ResourceTypeInput) (engine.ResourceType, error)
	deleteResourceType func(ctx context.Context, id int) error
	listBookings       func(ctx context.Context, query engine.BookingQuery) ([]engine.Booking, error)
	getBooking         func(ctx context.Context, id engine.BookingID) (engine.Booking, error)
	createBooking      func(ctx context.Context, req engine.BookingRequest) (engine.Booking, error)
	updateBooking      func(ctx context.Context, id engine.BookingID, status engine.BookingStatus) (engine.Booking, error)
	checkAvailability  func(ctx context.Context, id engine.ResourceID, start, end time.Time) (engine.AvailabilityResult, error)
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (engine.LoginResult, error) {
	if f.login != nil {
		return f.login(ctx, username, password)
	}
	return engine.LoginResult{}, nil
}

func (f *fakeAPI) RefreshToken(ctx context.Context) (string, error) {
	if f.refreshToken != nil {
		return f.refreshToken(ctx)
	}
	return "", nil
}

func (f *fakeAPI) ListResources(ctx context.Context, criteria engine.FilterCriteria) ([]engine.Resource, error) {
	if f.listResources != nil {
		return f.listResources(ctx, criteria)
	}
	return nil, nil
}

func (f *fakeAPI) GetResource(ctx context.Context, id engine.ResourceID) (engine.Resource, error) {
	if f.getResource != nil {
		return f.getResource(ctx, id)
	}
	return engine.Resource{}, nil
}

func (f *fakeAPI) ListFeatures(ctx context.Context) ([]engine.Feature, error) {
	if f.listFeatures != nil {
		return f.listFeatures(ctx)
	}
	return nil, nil
}

func (f *fakeAPI) ListResourceTypes(ctx context.Context) ([]engine.ResourceType, error) {
	if f.listResourceTypes != nil {
		return f.listResourceTypes(ctx)
	}
	return nil, nil
}

func (f *fakeAPI) CreateResourceType(ctx context.Context, input engine.ResourceTypeInput) (engine.ResourceType, error) {
	if f.createResourceType != nil {
		return f.createResourceType(ctx, input)
	}
	return engine.ResourceType{}, nil
}

func (f *fakeAPI) UpdateResourceType(ctx context.Context, id int, input engine.ResourceTypeInput) (engine.ResourceType, error) {
	if f.updateResourceType != nil {
		return f.updateResourceType(ctx, id, input)
	}
	return engine.ResourceType{}, nil
}

func (f *fakeAPI) DeleteResourceType(ctx context.Context, id int) error {
	if f.deleteResourceType != nil {
		return f.deleteResourceType(ctx, id)
	}
	return nil
}

func (f *fakeAPI) ListBookings(ctx context.Context, query engine.BookingQuery) ([]engine.Booking, error) {
	if f.listBookings != nil {
		return f.listBookings(ctx, query)
	}
	return nil, nil
}

func (f *fakeAPI) GetBooking(ctx context.Context, id engine.BookingID) (engine.Booking, error) {
	if f.getBooking != nil {
		return f.getBooking(ctx, id)
	}
	return engine.Booking{}, nil
}

func (f *fakeAPI) CreateBooking(ctx context.Context, req engine.BookingRequest) (engine.Booking, error) {
	if f.createBooking != nil {
		return f.createBooking(ctx, req)
	}
	return engine.Booking{}, nil
}

func (f *fakeAPI) UpdateBookingStatus(ctx context.Context, id engine.BookingID, status engine.BookingStatus) (engine.Booking, error) {
	if f.updateBooking != nil {
		return f.updateBooking(ctx, id, status)
	}
	return engine.Booking{}, nil
}

func (f *fakeAPI) CheckAvailability(ctx context.Context, id engine.ResourceID, start, end time.Time) (engine.AvailabilityResult, error) {
	if f.checkAvailability != nil {
		return f.checkAvailability(ctx, id, start, end)
	}
	return engine.AvailabilityResult{}, nil
}

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestEngine(t *testing.T, api *fakeAPI) (*engine.Engine, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return engine.New(api, kv), kv
}

// unsignedToken builds a JWT-shaped token the session guard can decode.
func unsignedToken(t *testing.T, claims engine.Claims) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func sampleResources() []engine.Resource {
	return []engine.Resource{
		{
			ID:       "room-alpha",
			Name:     "Alpha Conference Room",
			Type:     "room",
			Capacity: 10,
			Location: "Building A, Floor 2",
			Features: []engine.FeatureID{"projector", "whiteboard"},
			Status:   "active",
		},
		{
			ID:       "room-beta",
			Name:     "Beta Huddle Room",
			Type:     "room",
			Capacity: 2,
			Location: "Building A, Floor 3",
			Features: []engine.FeatureID{"whiteboard"},
			Status:   "active",
		},
		{
			ID:       "van-01",
			Name:     "Delivery Van 01",
			Type:     "vehicle",
			Capacity: 2,
			Location: "Parking Lot C",
			Status:   "active",
		},
	}
}
