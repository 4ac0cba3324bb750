// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadoit/storefront/internal/cart"
	"github.com/datadoit/storefront/internal/platform/apperr"
	"github.com/datadoit/storefront/internal/session"
)

type fakeStore struct {
	submitFunc func(ShippingInfo) (*Receipt, error)
	ordersFunc func() ([]Order, error)
	orderFunc  func(int64) (*Order, error)

	submitCalls int
	orderCalls  int
}

func (fake *fakeStore) Submit(_ context.Context, shipping ShippingInfo) (*Receipt, error) {
	fake.submitCalls++
	return fake.submitFunc(shipping)
}

func (fake *fakeStore) Orders(context.Context) ([]Order, error) {
	return fake.ordersFunc()
}

func (fake *fakeStore) Order(_ context.Context, orderID int64) (*Order, error) {
	fake.orderCalls++
	return fake.orderFunc(orderID)
}

// fakeCartUpstream seeds the cart service with a fixed upstream cart.
type fakeCartUpstream struct {
	cart *cart.Cart
}

func (fake *fakeCartUpstream) Fetch(context.Context) (*cart.Cart, error) {
	return fake.cart, nil
}

func (fake *fakeCartUpstream) AddLine(context.Context, int64, int) (*cart.WrittenLine, error) {
	return nil, errors.New("not scripted")
}

func (fake *fakeCartUpstream) UpdateLine(context.Context, int64, int) error {
	return errors.New("not scripted")
}

func (fake *fakeCartUpstream) RemoveLine(context.Context, int64) error {
	return errors.New("not scripted")
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		FirstName: "Amina",
		LastName:  "Benali",
		Address:   "12 rue des Oliviers",
		City:      "Casablanca",
	}
}

func newFixture(t *testing.T, lines []cart.Line, store *fakeStore) (*Service, *cart.Service, *session.Session) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.Save(context.Background(), "sid-1", &session.Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &session.User{ID: 7, Email: "client@datadoit.app", Role: "client"},
	}))
	sess, err := session.Resolve(context.Background(), sessions, "sid-1")
	require.NoError(t, err)

	upstreamCart := &cart.Cart{ID: 1, OwnerID: 7, Lines: lines}
	cartService := cart.NewService(&fakeCartUpstream{cart: upstreamCart}, cart.NewMemorySnapshotStore(), logger)

	// Seed the local snapshot the way a browsing session would.
	if len(lines) > 0 {
		_, err = cartService.Fetch(context.Background(), sess)
		require.NoError(t, err)
	}

	return NewService(store, cartService, logger), cartService, sess
}

func linesWorth25() []cart.Line {
	return []cart.Line{
		{ID: 11, Product: cart.ProductSnapshot{ID: 101, Name: "Tapis berbère", Price: 10}, Quantity: 2},
		{ID: 12, Product: cart.ProductSnapshot{ID: 102, Name: "Poterie", Price: 5}, Quantity: 1},
	}
}

func TestService_SubmitSettlesCart(t *testing.T) {
	store := &fakeStore{
		submitFunc: func(shipping ShippingInfo) (*Receipt, error) {
			assert.Equal(t, "Casablanca", shipping.City)
			return &Receipt{OrderID: 42, Message: "Order placed successfully"}, nil
		},
	}
	service, cartService, sess := newFixture(t, linesWorth25(), store)
	ctx := context.Background()

	receipt, err := service.Submit(ctx, sess, validShipping())
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.OrderID)

	// The local snapshot is settled along with the upstream cart.
	local, err := cartService.Current(ctx, sess)
	require.NoError(t, err)
	assert.True(t, local.IsEmpty())
}

func TestService_SubmitEmptyCartFailsLocally(t *testing.T) {
	store := &fakeStore{
		submitFunc: func(ShippingInfo) (*Receipt, error) {
			return &Receipt{OrderID: 1}, nil
		},
	}
	service, _, sess := newFixture(t, nil, store)

	_, err := service.Submit(context.Background(), sess, validShipping())

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "EMPTY_CART", ae.Code)

	assert.Equal(t, 0, store.submitCalls, "an empty cart must never reach the upstream")
}

func TestService_SubmitFailureKeepsCart(t *testing.T) {
	store := &fakeStore{
		submitFunc: func(ShippingInfo) (*Receipt, error) {
			return nil, apperr.Upstream(500, "order creation failed")
		},
	}
	service, cartService, sess := newFixture(t, linesWorth25(), store)
	ctx := context.Background()

	_, err := service.Submit(ctx, sess, validShipping())
	require.Error(t, err)

	// The shopper can retry with the same cart.
	local, err := cartService.Current(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, local.Size())
	assert.Equal(t, 25.0, local.Total().Float64())
}

func TestService_SubmitRequiresAuthentication(t *testing.T) {
	store := &fakeStore{
		submitFunc: func(ShippingInfo) (*Receipt, error) { return &Receipt{}, nil },
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess, err := session.Resolve(context.Background(), session.NewMemoryStore(), "sid-2")
	require.NoError(t, err)

	cartService := cart.NewService(&fakeCartUpstream{cart: &cart.Cart{}}, cart.NewMemorySnapshotStore(), logger)
	service := NewService(store, cartService, logger)

	_, err = service.Submit(context.Background(), sess, validShipping())

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "AUTH_REQUIRED", ae.Code)
	assert.Equal(t, 0, store.submitCalls)
}

func TestService_Orders(t *testing.T) {
	store := &fakeStore{
		ordersFunc: func() ([]Order, error) {
			return []Order{{ID: 42, Boutique: "Artisanat du Sud", Amount: 25}}, nil
		},
	}
	service, _, sess := newFixture(t, linesWorth25(), store)

	orders, err := service.Orders(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(42), orders[0].ID)
}

func TestService_Order(t *testing.T) {
	store := &fakeStore{
		orderFunc: func(orderID int64) (*Order, error) {
			assert.Equal(t, int64(42), orderID)
			return &Order{ID: 42, Boutique: "Artisanat du Sud", Amount: 25}, nil
		},
	}
	service, _, sess := newFixture(t, linesWorth25(), store)

	order, err := service.Order(context.Background(), sess, 42)
	require.NoError(t, err)
	assert.Equal(t, "Artisanat du Sud", order.Boutique)
	assert.Equal(t, 1, store.orderCalls)
}

func TestService_OrderRequiresAuthentication(t *testing.T) {
	store := &fakeStore{
		orderFunc: func(int64) (*Order, error) { return &Order{}, nil },
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess, err := session.Resolve(context.Background(), session.NewMemoryStore(), "sid-3")
	require.NoError(t, err)

	cartService := cart.NewService(&fakeCartUpstream{cart: &cart.Cart{}}, cart.NewMemorySnapshotStore(), logger)
	service := NewService(store, cartService, logger)

	_, err = service.Order(context.Background(), sess, 42)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "AUTH_REQUIRED", ae.Code)
	assert.Equal(t, 0, store.orderCalls)
}
