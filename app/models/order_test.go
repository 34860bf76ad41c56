package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	blocked := []struct{ from, to string }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusProcessing, StatusPending},
		{StatusShipped, StatusCancelled},
		{StatusShipped, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusDelivered, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusDelivered},
	}
	for _, tc := range blocked {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be blocked", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("REFUNDED"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("pending"))
}

func TestShippingCost(t *testing.T) {
	assert.Equal(t, 0.0, ShippingCost(ShippingFree))
	assert.Equal(t, 15.00, ShippingCost(ShippingFlat))
	assert.Equal(t, 8.00, ShippingCost(ShippingLocal))
	assert.Equal(t, 0.0, ShippingCost("CARRIER_PIGEON"))
}

func TestDeriveStatus(t *testing.T) {
	f := func(statuses ...string) []OrderFulfillment {
		out := make([]OrderFulfillment, 0, len(statuses))
		for i, s := range statuses {
			out = append(out, OrderFulfillment{SellerID: uint(i + 1), Status: s})
		}
		return out
	}

	assert.Equal(t, StatusPending, DeriveStatus(nil))
	assert.Equal(t, StatusPending, DeriveStatus(f(StatusPending, StatusDelivered)))
	assert.Equal(t, StatusProcessing, DeriveStatus(f(StatusProcessing, StatusShipped)))
	assert.Equal(t, StatusDelivered, DeriveStatus(f(StatusDelivered, StatusDelivered)))
	assert.Equal(t, StatusCancelled, DeriveStatus(f(StatusCancelled, StatusCancelled)))

	// A cancelled share drops out of the aggregate.
	assert.Equal(t, StatusShipped, DeriveStatus(f(StatusCancelled, StatusShipped)))
	assert.Equal(t, StatusDelivered, DeriveStatus(f(StatusCancelled, StatusDelivered)))
}

func TestCartTotals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Quantity: 2, Product: Product{DiscountedPrice: 5.00}},
		{Quantity: 3, Product: Product{DiscountedPrice: 4.20}},
	}}
	assert.InDelta(t, 22.60, cart.Total(), 0.0001)
	assert.InDelta(t, 10.00, cart.Items[0].Subtotal(), 0.0001)
}
