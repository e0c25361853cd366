package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/reservation-engine/engine"
)

func seedBooking(id engine.BookingID, resource engine.ResourceID, status engine.BookingStatus) engine.Booking {
	return engine.Booking{
		ID:         id,
		ResourceID: resource,
		UserID:     "jdoe",
		Title:      "Booking " + string(id),
		StartTime:  time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
		Status:     status,
	}
}

// =============================================================================
// CREATE-THEN-VIEW CONSISTENCY
// =============================================================================

func TestEngine_CreateBooking_VisibleInEveryPopulatedView(t *testing.T) {
	// GIVEN: The full list, the user's list, and resource R's list are all
	//        populated
	// WHEN: Creating a booking against R
	// THEN: One read of each view, immediately after the create returns,
	//       contains the new booking

	existing := seedBooking("b-1", "room-alpha", engine.BookingConfirmed)
	created := seedBooking("b-2", "room-alpha", engine.BookingPending)

	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return []engine.Booking{existing}, nil
		},
		createBooking: func(ctx context.Context, _ engine.BookingRequest) (engine.Booking, error) {
			return created, nil
		},
	}
	eng, _ := newTestEngine(t, api)
	ctx := context.Background()

	require.NoError(t, eng.FetchBookings(ctx))
	require.NoError(t, eng.FetchUserBookings(ctx, "jdoe"))
	require.NoError(t, eng.FetchResourceBookings(ctx, "room-alpha"))

	got, err := eng.CreateBooking(ctx, engine.BookingRequest{ResourceID: "room-alpha"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	assert.Len(t, eng.Bookings(), 2)
	assert.Len(t, eng.UserBookings(), 2)

	rb, ok := eng.ResourceBookings("room-alpha")
	require.True(t, ok)
	assert.Len(t, rb, 2)

	canonical, ok := eng.Booking("b-2")
	require.True(t, ok)
	assert.Equal(t, created, canonical)
}

func TestEngine_CreateBooking_LazyResourceViewUntouched(t *testing.T) {
	// GIVEN: Resource R's per-resource view was never fetched
	// WHEN: Creating a booking against R
	// THEN: The view stays unpopulated; it fills only on explicit fetch

	api := &fakeAPI{
		createBooking: func(ctx context.Context, _ engine.BookingRequest) (engine.Booking, error) {
			return seedBooking("b-9", "room-beta", engine.BookingPending), nil
		},
	}
	eng, _ := newTestEngine(t, api)

	_, err := eng.CreateBooking(context.Background(), engine.BookingRequest{ResourceID: "room-beta"})
	require.NoError(t, err)

	_, ok := eng.ResourceBookings("room-beta")
	assert.False(t, ok, "unfetched view must stay unpopulated")
	assert.Len(t, eng.Bookings(), 1, "full list still receives the booking")
}

func TestEngine_FetchResourceBookings_EmptyResultPopulatesView(t *testing.T) {
	// GIVEN: A resource with no bookings
	// WHEN: Fetching its per-resource view
	// THEN: The view is populated (and empty), distinguishable from never
	//       fetched

	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return nil, nil
		},
	}
	eng, _ := newTestEngine(t, api)

	require.NoError(t, eng.FetchResourceBookings(context.Background(), "van-01"))

	bs, ok := eng.ResourceBookings("van-01")
	assert.True(t, ok)
	assert.Empty(t, bs)
}

// =============================================================================
// STATUS UPDATE PROPAGATION
// =============================================================================

func TestEngine_UpdateBookingStatus_PropagatesToEveryProjection(t *testing.T) {
	// GIVEN: One booking present in the full list, the user's list, the
	//        per-resource list, and selected
	// WHEN: Its status is updated
	// THEN: All four projections hold the replaced entity; no projection
	//       shows the old status

	before := seedBooking("b-1", "room-alpha", engine.BookingPending)
	after := before
	after.Status = engine.BookingConfirmed

	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return []engine.Booking{before}, nil
		},
		updateBooking: func(ctx context.Context, id engine.BookingID, status engine.BookingStatus) (engine.Booking, error) {
			return after, nil
		},
	}
	eng, _ := newTestEngine(t, api)
	ctx := context.Background()

	require.NoError(t, eng.FetchBookings(ctx))
	require.NoError(t, eng.FetchUserBookings(ctx, "jdoe"))
	require.NoError(t, eng.FetchResourceBookings(ctx, "room-alpha"))
	eng.SelectBooking("b-1")

	got, err := eng.UpdateBookingStatus(ctx, "b-1", engine.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, engine.BookingConfirmed, got.Status)

	assert.Equal(t, engine.BookingConfirmed, eng.Bookings()[0].Status)
	assert.Equal(t, engine.BookingConfirmed, eng.UserBookings()[0].Status)

	rb, ok := eng.ResourceBookings("room-alpha")
	require.True(t, ok)
	assert.Equal(t, engine.BookingConfirmed, rb[0].Status)

	sel := eng.SelectedBooking()
	require.NotNil(t, sel)
	assert.Equal(t, engine.BookingConfirmed, sel.Status)
}

func TestEngine_UpdateBookingStatus_AbsentInViewIsNotAnError(t *testing.T) {
	// GIVEN: A booking known canonically but absent from the user's list
	// WHEN: Updating its status
	// THEN: The full list gains the entity; the user's list stays empty

	after := seedBooking("b-7", "van-01", engine.BookingCancelled)
	api := &fakeAPI{
		updateBooking: func(ctx context.Context, id engine.BookingID, status engine.BookingStatus) (engine.Booking, error) {
			return after, nil
		},
	}
	eng, _ := newTestEngine(t, api)

	_, err := eng.UpdateBookingStatus(context.Background(), "b-7", engine.BookingCancelled)
	require.NoError(t, err)

	assert.Len(t, eng.Bookings(), 1)
	assert.Empty(t, eng.UserBookings())
}

// =============================================================================
// FETCH AND SELECTION
// =============================================================================

func TestEngine_FetchBookingByID_SelectsAndFoldsIn(t *testing.T) {
	b := seedBooking("b-3", "room-beta", engine.BookingPending)
	api := &fakeAPI{
		getBooking: func(ctx context.Context, id engine.BookingID) (engine.Booking, error) {
			return b, nil
		},
	}
	eng, _ := newTestEngine(t, api)

	require.NoError(t, eng.FetchBookingByID(context.Background(), "b-3"))

	sel := eng.SelectedBooking()
	require.NotNil(t, sel)
	assert.Equal(t, b.ID, sel.ID)
	assert.Len(t, eng.Bookings(), 1)
}

func TestEngine_SelectBooking_UnknownOrEmptyClears(t *testing.T) {
	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return []engine.Booking{seedBooking("b-1", "room-alpha", engine.BookingPending)}, nil
		},
	}
	eng, _ := newTestEngine(t, api)
	require.NoError(t, eng.FetchBookings(context.Background()))

	eng.SelectBooking("b-1")
	require.NotNil(t, eng.SelectedBooking())

	eng.SelectBooking("no-such-id")
	assert.Nil(t, eng.SelectedBooking())

	eng.SelectBooking("b-1")
	eng.SelectBooking("")
	assert.Nil(t, eng.SelectedBooking())
}

func TestEngine_ReadsReturnCopies(t *testing.T) {
	// GIVEN: A populated booking list
	// WHEN: A caller mutates a returned slice
	// THEN: Engine state is unaffected

	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return []engine.Booking{seedBooking("b-1", "room-alpha", engine.BookingPending)}, nil
		},
	}
	eng, _ := newTestEngine(t, api)
	require.NoError(t, eng.FetchBookings(context.Background()))

	out := eng.Bookings()
	out[0].Status = engine.BookingCancelled

	assert.Equal(t, engine.BookingPending, eng.Bookings()[0].Status)
}
