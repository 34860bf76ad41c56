package services

import (
	"regexp"
	"testing"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/cache"
	"github.com/anikasharma/greenbasket/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		FirstName:      "Anika",
		LastName:       "Sharma",
		Email:          "anika@example.com",
		Phone:          "0400000000",
		Address:        "1 Market St",
		City:           "Melbourne",
		Country:        "Australia",
		Postcode:       "3000",
		ShippingMethod: models.ShippingFlat,
		PaymentMethod:  models.PaymentCOD,
	}
}

func TestPlaceOrder(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)
	salmon := createProduct(t, seller.ID, "Salmon", 7.50)

	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: salmon.ID, Quantity: 2})
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD[A-Z0-9]{10}$`), order.OrderNumber)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 25.00, order.Subtotal, 0.0001)
	assert.InDelta(t, 15.00, order.ShippingCost, 0.0001)
	assert.InDelta(t, 40.00, order.Total, 0.0001)
	require.Len(t, order.Items, 2)
	require.Len(t, order.Fulfillments, 1, "one fulfillment per distinct seller")
	assert.Equal(t, seller.ID, order.Fulfillments[0].SellerID)
	assert.Equal(t, models.StatusPending, order.Fulfillments[0].Status)

	// The cart is emptied in the same transaction.
	cart, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	setupDB(t)
	checkout := NewCheckoutService()
	user := createUser(t, "shopper@example.com")

	_, err := checkout.PlaceOrder(user.ID, checkoutInput(), "")
	assert.ErrorIs(t, err, ErrCartEmpty)

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected checkout must create nothing")
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	// A later catalogue edit must not touch the recorded order.
	apples.DiscountedPrice = 99.99
	require.NoError(t, database.DB.Save(&apples).Error)

	reloaded, err := NewOrderService().GetByNumber(user.ID, order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.InDelta(t, 5.00, reloaded.Items[0].Price, 0.0001)
	assert.InDelta(t, 5.00, reloaded.Subtotal, 0.0001)
}

func TestPlaceOrderMultiSellerFulfillments(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()

	user := createUser(t, "shopper@example.com")
	grocer := createSeller(t, "grocer@example.com", "Grocer")
	baker := createSeller(t, "baker@example.com", "Baker")
	apples := createProduct(t, grocer.ID, "Apples", 5.00)
	bread := createProduct(t, baker.ID, "Sourdough", 5.50)

	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: bread.ID})
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	require.Len(t, order.Fulfillments, 2)
	sellers := map[uint]bool{}
	for _, f := range order.Fulfillments {
		sellers[f.SellerID] = true
		assert.Equal(t, models.StatusPending, f.Status)
	}
	assert.True(t, sellers[grocer.ID])
	assert.True(t, sellers[baker.ID])
}

func TestOrderHistoryScopedToOwner(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()
	orders := NewOrderService()

	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	_, err := carts.AddItem(alice.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	order, err := checkout.PlaceOrder(alice.ID, checkoutInput(), "")
	require.NoError(t, err)

	_, err = orders.GetByNumber(bob.ID, order.OrderNumber)
	assert.ErrorIs(t, err, ErrNotFound)

	list, _, err := orders.List(bob.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^ORD[A-Z0-9]{10}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := newOrderNumber()
		assert.Regexp(t, re, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 95, "numbers should be effectively unique")
}

func TestPlaceOrderRetriesOnNumberCollision(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	original := newOrderNumber
	defer func() { newOrderNumber = original }()

	newOrderNumber = func() string { return "ORDAAAAAAAAAA" }
	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	first, err := checkout.PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)
	require.Equal(t, "ORDAAAAAAAAAA", first.OrderNumber)

	// Refill the cart and make the generator collide once before yielding
	// a fresh number.
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	calls := 0
	newOrderNumber = func() string {
		calls++
		if calls == 1 {
			return "ORDAAAAAAAAAA"
		}
		return "ORDBBBBBBBBBB"
	}

	second, err := checkout.PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)
	assert.Equal(t, "ORDBBBBBBBBBB", second.OrderNumber)
	assert.Equal(t, 2, calls, "one collision, one retry")

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPlaceOrderGivesUpAfterRepeatedCollisions(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	checkout := NewCheckoutService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	original := newOrderNumber
	defer func() { newOrderNumber = original }()

	newOrderNumber = func() string { return "ORDAAAAAAAAAA" }
	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	_, err = checkout.PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	// Every further attempt collides, so checkout exhausts its retries.
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	_, err = checkout.PlaceOrder(user.ID, checkoutInput(), "")
	assert.ErrorIs(t, err, ErrOrderNumberBusy)

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Each failed attempt rolled back, so the cart is still intact.
	cart, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestPlaceOrderIdempotencyReplay(t *testing.T) {
	setupDB(t)
	restore := cache.UseMemory()
	defer restore()

	carts := NewCartService()
	checkout := NewCheckoutService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	first, err := checkout.PlaceOrder(user.ID, checkoutInput(), "retry-123")
	require.NoError(t, err)

	// Refill the cart; a repeated key must return the original order and
	// create nothing from the new cart.
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)

	replayed, err := checkout.PlaceOrder(user.ID, checkoutInput(), "retry-123")
	require.NoError(t, err)
	assert.Equal(t, first.OrderNumber, replayed.OrderNumber)

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	cart, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "a replay must not consume the cart")

	// A different key checks out normally.
	fresh, err := checkout.PlaceOrder(user.ID, checkoutInput(), "retry-456")
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, fresh.OrderNumber)
}
