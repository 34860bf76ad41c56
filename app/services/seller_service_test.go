package services

import (
	"testing"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSeller(t *testing.T) {
	setupDB(t)
	svc := NewSellerService()

	user := createUser(t, "newshop@example.com")

	seller, err := svc.Register(user.ID, RegisterSellerInput{ShopName: "Corner Shop", Bio: "Open late."})
	require.NoError(t, err)
	assert.Equal(t, user.ID, seller.UserID)

	// Registration promotes the account.
	var reloaded models.User
	require.NoError(t, database.DB.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, models.RoleSeller, reloaded.Role)

	// One shop per account.
	_, err = svc.Register(user.ID, RegisterSellerInput{ShopName: "Second Shop"})
	assert.ErrorIs(t, err, ErrAlreadySeller)

	// Shop names are globally unique.
	other := createUser(t, "other@example.com")
	_, err = svc.Register(other.ID, RegisterSellerInput{ShopName: "Corner Shop"})
	assert.ErrorIs(t, err, ErrShopNameTaken)
}

func TestUpdateFulfillmentTransitions(t *testing.T) {
	setupDB(t)
	sellers := NewSellerService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	_, err := NewCartService().AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	order, err := NewCheckoutService().PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	// Skipping a stage is rejected.
	_, err = sellers.UpdateFulfillment(seller.ID, order.ID, UpdateFulfillmentInput{Status: models.StatusShipped})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	order, err = sellers.UpdateFulfillment(seller.ID, order.ID, UpdateFulfillmentInput{Status: models.StatusProcessing})
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)

	// Going backwards is rejected.
	_, err = sellers.UpdateFulfillment(seller.ID, order.ID, UpdateFulfillmentInput{Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// A stranger seller has no fulfillment to move.
	intruder := createSeller(t, "intruder@example.com", "Intruder")
	_, err = sellers.UpdateFulfillment(intruder.ID, order.ID, UpdateFulfillmentInput{Status: models.StatusProcessing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDerivedOrderStatusAcrossSellers(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	sellers := NewSellerService()

	user := createUser(t, "shopper@example.com")
	grocer := createSeller(t, "grocer@example.com", "Grocer")
	baker := createSeller(t, "baker@example.com", "Baker")
	apples := createProduct(t, grocer.ID, "Apples", 5.00)
	bread := createProduct(t, baker.ID, "Sourdough", 5.50)

	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: bread.ID})
	require.NoError(t, err)
	order, err := NewCheckoutService().PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	// One seller racing ahead does not advance the whole order.
	for _, status := range []string{models.StatusProcessing, models.StatusShipped, models.StatusDelivered} {
		order, err = sellers.UpdateFulfillment(grocer.ID, order.ID, UpdateFulfillmentInput{Status: status})
		require.NoError(t, err)
	}
	assert.Equal(t, models.StatusPending, order.Status)

	// The baker cancelling leaves the delivered share as the aggregate.
	order, err = sellers.UpdateFulfillment(baker.ID, order.ID, UpdateFulfillmentInput{Status: models.StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestSellerOrderViewIsFiltered(t *testing.T) {
	setupDB(t)
	carts := NewCartService()
	sellers := NewSellerService()

	user := createUser(t, "shopper@example.com")
	grocer := createSeller(t, "grocer@example.com", "Grocer")
	baker := createSeller(t, "baker@example.com", "Baker")
	apples := createProduct(t, grocer.ID, "Apples", 5.00)
	bread := createProduct(t, baker.ID, "Sourdough", 5.50)

	_, err := carts.AddItem(user.ID, AddItemInput{ProductID: apples.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.AddItem(user.ID, AddItemInput{ProductID: bread.ID})
	require.NoError(t, err)
	order, err := NewCheckoutService().PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)

	views, _, err := sellers.Orders(grocer.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 1, "only the seller's own lines are visible")
	assert.Equal(t, apples.ID, views[0].Items[0].ProductID)
	assert.InDelta(t, 10.00, views[0].ItemsTotal, 0.0001)
	assert.Equal(t, models.StatusPending, views[0].Status)

	// A seller with no items in the order sees nothing.
	intruder := createSeller(t, "intruder@example.com", "Intruder")
	_, err = sellers.Order(intruder.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSellerDashboard(t *testing.T) {
	setupDB(t)
	sellers := NewSellerService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	// Earnings only count delivered fulfillments.
	dash, err := sellers.Dashboard(seller.ID)
	require.NoError(t, err)
	assert.Zero(t, dash.Earnings)
	assert.EqualValues(t, 1, dash.ProductCount)

	placeDeliveredOrder(t, user.ID, seller, apples.ID)

	dash, err = sellers.Dashboard(seller.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.00, dash.Earnings, 0.0001)
	assert.EqualValues(t, 1, dash.OrderCount)
	assert.EqualValues(t, 1, dash.Fulfillments[models.StatusDelivered])
}

func TestSellerOrderWithoutFulfillmentIsNotFound(t *testing.T) {
	setupDB(t)
	sellers := NewSellerService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	// An order row carrying the seller's item but no fulfillment for them
	// must read as not-found, not as a pending order.
	order := models.Order{
		UserID:         user.ID,
		OrderNumber:    "ORDXXXXXXXXXX",
		FirstName:      "Anika",
		LastName:       "Sharma",
		Email:          "anika@example.com",
		Phone:          "0400000000",
		Address:        "1 Market St",
		City:           "Melbourne",
		Country:        "Australia",
		Postcode:       "3000",
		ShippingMethod: models.ShippingFree,
		PaymentMethod:  models.PaymentCOD,
		Status:         models.StatusPending,
	}
	require.NoError(t, database.DB.Create(&order).Error)
	item := models.OrderItem{
		OrderID:   order.ID,
		ProductID: apples.ID,
		SellerID:  &seller.ID,
		Quantity:  1,
		Price:     5.00,
		Subtotal:  5.00,
	}
	require.NoError(t, database.DB.Create(&item).Error)

	_, err := sellers.Order(seller.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
