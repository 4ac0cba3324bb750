// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/session"
)

// fakeUpstreamStore scripts upstream behaviour per test.
type fakeUpstreamStore struct {
	fetchFunc      func() (*Cart, error)
	addLineFunc    func(productID int64, quantity int) (*WrittenLine, error)
	updateLineFunc func(lineID int64, quantity int) error
	removeLineFunc func(lineID int64) error

	fetchCalls  int
	addCalls    int
	updateCalls int
	removeCalls int
}

func (fake *fakeUpstreamStore) Fetch(context.Context) (*Cart, error) {
	fake.fetchCalls++
	return fake.fetchFunc()
}

func (fake *fakeUpstreamStore) AddLine(_ context.Context, productID int64, quantity int) (*WrittenLine, error) {
	fake.addCalls++
	return fake.addLineFunc(productID, quantity)
}

func (fake *fakeUpstreamStore) UpdateLine(_ context.Context, lineID int64, quantity int) error {
	fake.updateCalls++
	return fake.updateLineFunc(lineID, quantity)
}

func (fake *fakeUpstreamStore) RemoveLine(_ context.Context, lineID int64) error {
	fake.removeCalls++
	return fake.removeLineFunc(lineID)
}

func authedSession(t *testing.T) *session.Session {
	t.Helper()

	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "sid-1", &session.Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &session.User{ID: 7, Email: "client@datadoit.app", Role: "client"},
	}))

	sess, err := session.Resolve(context.Background(), store, "sid-1")
	require.NoError(t, err)
	return sess
}

func anonymousSession(t *testing.T) *session.Session {
	t.Helper()

	sess, err := session.Resolve(context.Background(), session.NewMemoryStore(), "sid-1")
	require.NoError(t, err)
	return sess
}

func newTestService(upstream UpstreamStore) (*Service, *MemorySnapshotStore) {
	snapshots := NewMemorySnapshotStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(upstream, snapshots, logger), snapshots
}

func TestService_FetchReplacesSnapshot(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc: func() (*Cart, error) { return sampleCart(), nil },
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	cart, err := service.Fetch(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cart.Total().Float64())

	// The snapshot now serves local reads.
	local, err := service.Current(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, local.Size())
}

func TestService_FetchFailureLeavesSnapshotUntouched(t *testing.T) {
	calls := 0
	upstream := &fakeUpstreamStore{
		fetchFunc: func() (*Cart, error) {
			calls++
			if calls == 1 {
				return sampleCart(), nil
			}
			return nil, errors.New("upstream down")
		},
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	_, err = service.Fetch(ctx, sess)
	require.Error(t, err)

	// The earlier snapshot survives the failed refresh.
	local, err := service.Current(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, local.Size())
	assert.Equal(t, 25.0, local.Total().Float64())
}

func TestService_AddLineRequiresAuthentication(t *testing.T) {
	upstream := &fakeUpstreamStore{}
	service, _ := newTestService(upstream)

	_, err := service.AddLine(context.Background(), anonymousSession(t), 101, 1)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "AUTH_REQUIRED", ae.Code)

	// The refusal is local.
	assert.Equal(t, 0, upstream.addCalls)
	assert.Equal(t, 0, upstream.fetchCalls)
}

func TestService_AddLineMergesExisting(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc: func() (*Cart, error) { return sampleCart(), nil },
		addLineFunc: func(productID int64, quantity int) (*WrittenLine, error) {
			// The upstream merges: line 11 already held 2, now 3.
			return &WrittenLine{ID: 11, ProductID: productID, Quantity: 3}, nil
		},
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	cart, err := service.AddLine(ctx, sess, 101, 1)
	require.NoError(t, err)

	// Merged in place: still two lines, quantity updated, no re-fetch.
	assert.Equal(t, 2, cart.Size())
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, 35.0, cart.Total().Float64())
	assert.Equal(t, 1, upstream.fetchCalls, "a merged add must not re-fetch")
}

func TestService_AddLineUnknownLineRefetches(t *testing.T) {
	enriched := sampleCart()
	enriched.Lines = append(enriched.Lines, Line{
		ID:       13,
		Product:  ProductSnapshot{ID: 103, Name: "Lampe", Price: 20},
		Quantity: 1,
	})

	upstream := &fakeUpstreamStore{
		fetchFunc: func() (*Cart, error) { return enriched, nil },
		addLineFunc: func(productID int64, quantity int) (*WrittenLine, error) {
			return &WrittenLine{ID: 13, ProductID: productID, Quantity: 1}, nil
		},
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)

	// No prior snapshot: the acknowledgement cannot be merged locally.
	cart, err := service.AddLine(context.Background(), sess, 103, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.fetchCalls, "an unknown line forces one re-fetch")
	assert.Equal(t, 3, cart.Size())
	assert.Equal(t, 45.0, cart.Total().Float64())
}

func TestService_RemoveLineFiltersSnapshot(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc:      func() (*Cart, error) { return sampleCart(), nil },
		removeLineFunc: func(lineID int64) error { return nil },
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	cart, err := service.RemoveLine(ctx, sess, 12)
	require.NoError(t, err)

	assert.Equal(t, 1, cart.Size())
	assert.Equal(t, 20.0, cart.Total().Float64())
}

func TestService_RemoveLineFailureKeepsLine(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc:      func() (*Cart, error) { return sampleCart(), nil },
		removeLineFunc: func(lineID int64) error { return errors.New("boom") },
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	_, err = service.RemoveLine(ctx, sess, 12)
	require.Error(t, err)

	local, err := service.Current(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, local.Size())
}

func TestService_UpdateQuantityZeroRemoves(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc:      func() (*Cart, error) { return sampleCart(), nil },
		removeLineFunc: func(lineID int64) error { return nil },
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	cart, err := service.UpdateQuantity(ctx, sess, 12, 0)
	require.NoError(t, err)

	// Zero quantity is a removal, never a retained zero line.
	assert.Equal(t, 1, cart.Size())
	assert.Equal(t, 1, upstream.removeCalls)
	assert.Equal(t, 0, upstream.updateCalls)
}

func TestService_UpdateQuantityReplacesValue(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc:      func() (*Cart, error) { return sampleCart(), nil },
		updateLineFunc: func(lineID int64, quantity int) error { return nil },
	}
	service, _ := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	cart, err := service.UpdateQuantity(ctx, sess, 11, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Equal(t, 55.0, cart.Total().Float64())
}

// TestService_StaleResponseDiscarded interleaves a removal inside a slow
// fetch: the fetch response was computed before the removal, so applying it
// would resurrect the removed line.
func TestService_StaleResponseDiscarded(t *testing.T) {
	var service *Service
	sess := authedSession(t)
	ctx := context.Background()

	upstream := &fakeUpstreamStore{
		removeLineFunc: func(lineID int64) error { return nil },
	}

	seeded := false
	upstream.fetchFunc = func() (*Cart, error) {
		if !seeded {
			seeded = true
			return sampleCart(), nil
		}

		// While this fetch is in flight, the shopper removes line 12. The
		// removal stamps a newer Pending, so the fetch below is stale.
		_, err := service.RemoveLine(ctx, sess, 12)
		require.NoError(t, err)

		return sampleCart(), nil
	}

	service, _ = newTestService(upstream)

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	cart, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	// The stale fetch result (two lines) was discarded in favour of the
	// later removal's state.
	assert.Equal(t, 1, cart.Size())
	assert.Equal(t, int64(11), cart.Lines[0].ID)

	local, err := service.Current(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, local.Size())
}

func TestService_ClearDropsSnapshot(t *testing.T) {
	upstream := &fakeUpstreamStore{
		fetchFunc: func() (*Cart, error) { return sampleCart(), nil },
	}
	service, snapshots := newTestService(upstream)
	sess := authedSession(t)
	ctx := context.Background()

	_, err := service.Fetch(ctx, sess)
	require.NoError(t, err)

	service.Clear(ctx, sess)

	_, err = snapshots.Load(ctx, sess.ID())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	local, err := service.Current(ctx, sess)
	require.NoError(t, err)
	assert.True(t, local.IsEmpty())
}

/*
TestMemorySnapshotStore_NextPendingIsAtomic verifies that concurrent
mutations always receive distinct stamps. If two callers could share one,
both of their responses would pass the staleness check.
*/
func TestMemorySnapshotStore_NextPendingIsAtomic(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()

	const workers = 32
	stamps := make(chan uint64, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stamp, err := store.NextPending(ctx, "sid-1")
			assert.NoError(t, err)
			stamps <- stamp
		}()
	}
	wg.Wait()
	close(stamps)

	seen := make(map[uint64]bool, workers)
	for stamp := range stamps {
		assert.False(t, seen[stamp], "stamp %d issued twice", stamp)
		seen[stamp] = true
	}
	assert.Len(t, seen, workers)

	current, err := store.PendingStamp(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), current)

	// Clearing the session drops the counter with the snapshot.
	require.NoError(t, store.Delete(ctx, "sid-1"))
	current, err = store.PendingStamp(ctx, "sid-1")
	require.NoError(t, err)
	assert.Zero(t, current)
}
