// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datadoit/storefront/pkg/money"
)

func sampleCart() *Cart {
	return &Cart{
		ID:      1,
		OwnerID: 7,
		Lines: []Line{
			{ID: 11, Product: ProductSnapshot{ID: 101, Name: "Tapis berbère", Price: 10}, Quantity: 2},
			{ID: 12, Product: ProductSnapshot{ID: 102, Name: "Poterie", Price: 5}, Quantity: 1},
		},
	}
}

func TestCart_Total(t *testing.T) {
	cart := sampleCart()

	// Two lines: 10*2 + 5*1.
	assert.Equal(t, money.Amount(25), cart.Total())

	// The total is derived, so changing a line changes the next read.
	cart.Lines[0].Quantity = 3
	assert.Equal(t, money.Amount(35), cart.Total())

	cart.removeLine(12)
	assert.Equal(t, money.Amount(30), cart.Total())
}

func TestCart_TotalEmpty(t *testing.T) {
	empty := &Cart{}
	assert.Equal(t, money.Amount(0), empty.Total())
	assert.True(t, empty.IsEmpty())

	var nilCart *Cart
	assert.True(t, nilCart.IsEmpty())
}

func TestCart_SetQuantity(t *testing.T) {
	cart := sampleCart()

	assert.True(t, cart.setQuantity(12, 4))
	assert.Equal(t, 4, cart.Lines[1].Quantity)

	// Unknown line IDs are reported, not invented.
	assert.False(t, cart.setQuantity(999, 1))

	// Quantity below one removes the line instead of keeping a zero.
	assert.True(t, cart.setQuantity(11, 0))
	assert.Equal(t, 1, cart.Size())
	assert.Equal(t, int64(12), cart.Lines[0].ID)
}

func TestCart_RemoveLineIdempotent(t *testing.T) {
	cart := sampleCart()

	cart.removeLine(11)
	cart.removeLine(11)

	assert.Equal(t, 1, cart.Size())
}

func TestCart_Normalize(t *testing.T) {
	cart := &Cart{
		Lines: []Line{
			{ID: 1, Quantity: 2},
			{ID: 2, Quantity: 0},
			{ID: 3, Quantity: -1},
			{ID: 4, Quantity: 1},
		},
	}

	cart.normalize()

	assert.Equal(t, 2, cart.Size())
	assert.Equal(t, int64(1), cart.Lines[0].ID)
	assert.Equal(t, int64(4), cart.Lines[1].ID)
}
