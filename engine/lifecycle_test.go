package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/reservation-engine/engine"
)

// =============================================================================
// PENDING / FULFILLED / REJECTED TRANSITIONS
// =============================================================================

func TestEngine_LoadingFlagSpansTheRemoteCall(t *testing.T) {
	// GIVEN: A fetch blocked mid-flight
	// WHEN: Observing the slice while blocked and after release
	// THEN: loading is true during the call and false after it settles

	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		listResources: func(ctx context.Context, _ engine.FilterCriteria) ([]engine.Resource, error) {
			close(entered)
			<-release
			return sampleResources(), nil
		},
	}
	eng, _ := newTestEngine(t, api)

	done := make(chan error, 1)
	go func() { done <- eng.FetchResources(context.Background()) }()

	<-entered
	assert.True(t, eng.ResourcesLoading())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, eng.ResourcesLoading())
	assert.Empty(t, eng.ResourcesError())
}

func TestEngine_RejectedRecordsRemoteMessageOverDefault(t *testing.T) {
	// GIVEN: A remote failure carrying a structured message
	// WHEN: The operation rejects
	// THEN: The structured message wins over the kind default

	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return nil, &engine.RemoteError{Status: 409, Message: "conflicts with existing booking: Sprint Planning"}
		},
	}
	eng, _ := newTestEngine(t, api)

	err := eng.FetchBookings(context.Background())
	require.Error(t, err)

	assert.Equal(t, "conflicts with existing booking: Sprint Planning", eng.BookingsError())
	assert.False(t, eng.BookingsLoading())
}

func TestEngine_RejectedFallsBackToKindDefault(t *testing.T) {
	// GIVEN: A transport failure carrying no structured message
	// WHEN: The operation rejects
	// THEN: The per-kind default message is recorded

	api := &fakeAPI{
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return nil, fmt.Errorf("%w: dial tcp: connection refused", engine.ErrNetwork)
		},
	}
	eng, _ := newTestEngine(t, api)

	err := eng.FetchBookings(context.Background())
	require.Error(t, err)
	assert.True(t, engine.IsNetworkFailure(err))
	assert.Equal(t, "failed to fetch bookings", eng.BookingsError())
}

func TestEngine_NewOperationClearsPreviousSliceError(t *testing.T) {
	// GIVEN: A recorded slice error from a failed fetch
	// WHEN: A new operation on the same slice begins and fulfills
	// THEN: The error is gone

	fail := true
	api := &fakeAPI{
		listResources: func(ctx context.Context, _ engine.FilterCriteria) ([]engine.Resource, error) {
			if fail {
				return nil, fmt.Errorf("%w: timeout", engine.ErrNetwork)
			}
			return sampleResources(), nil
		},
	}
	eng, _ := newTestEngine(t, api)
	ctx := context.Background()

	require.Error(t, eng.FetchResources(ctx))
	require.Equal(t, "failed to fetch resources", eng.ResourcesError())

	fail = false
	require.NoError(t, eng.FetchResources(ctx))
	assert.Empty(t, eng.ResourcesError())
}

func TestEngine_ClearErrorAccessors(t *testing.T) {
	api := &fakeAPI{
		listResources: func(ctx context.Context, _ engine.FilterCriteria) ([]engine.Resource, error) {
			return nil, fmt.Errorf("%w: down", engine.ErrNetwork)
		},
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return nil, fmt.Errorf("%w: down", engine.ErrNetwork)
		},
	}
	eng, _ := newTestEngine(t, api)
	ctx := context.Background()

	_ = eng.FetchResources(ctx)
	_ = eng.FetchBookings(ctx)
	require.NotEmpty(t, eng.ResourcesError())
	require.NotEmpty(t, eng.BookingsError())

	eng.ClearResourcesError()
	eng.ClearBookingsError()
	assert.Empty(t, eng.ResourcesError())
	assert.Empty(t, eng.BookingsError())
}

func TestEngine_SlicesFailIndependently(t *testing.T) {
	// GIVEN: The bookings fetch fails while the resources fetch succeeds
	// WHEN: Both settle
	// THEN: Only the bookings slice carries an error

	api := &fakeAPI{
		listResources: func(ctx context.Context, _ engine.FilterCriteria) ([]engine.Resource, error) {
			return sampleResources(), nil
		},
		listBookings: func(ctx context.Context, _ engine.BookingQuery) ([]engine.Booking, error) {
			return nil, fmt.Errorf("%w: down", engine.ErrNetwork)
		},
	}
	eng, _ := newTestEngine(t, api)
	ctx := context.Background()

	require.NoError(t, eng.FetchResources(ctx))
	require.Error(t, eng.FetchBookings(ctx))

	assert.Empty(t, eng.ResourcesError())
	assert.Equal(t, "failed to fetch bookings", eng.BookingsError())
	assert.Len(t, eng.Resources(), 3, "fulfilled commit is unaffected by the other slice")
}

func TestEngine_RejectedCommitsNothing(t *testing.T) {
	// GIVEN: A populated resource list
	// WHEN: A later fetch rejects
	// THEN: The previous data is still served

	fail := false
	api := &fakeAPI{
		listResources: func(ctx context.Context, _ engine.FilterCriteria) ([]engine.Resource, error) {
			if fail {
				return nil, fmt.Errorf("%w: down", engine.ErrNetwork)
			}
			return sampleResources(), nil
		},
	}
	eng, _ := newTestEngine(t, api)
	ctx := context.Background()

	require.NoError(t, eng.FetchResources(ctx))
	fail = true
	require.Error(t, eng.FetchResources(ctx))

	assert.Len(t, eng.Resources(), 3)
}
