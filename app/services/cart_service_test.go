package services

import (
	"testing"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem(t *testing.T) {
	setupDB(t)
	svc := NewCartService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	cart, err := svc.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Adding the same product again increments the existing line.
	cart, err = svc.AddItem(user.ID, AddItemInput{ProductID: apples.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 15.00, cart.Total(), 0.0001)

	_, err = svc.AddItem(user.ID, AddItemInput{ProductID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartGetCreatesLazily(t *testing.T) {
	setupDB(t)
	svc := NewCartService()
	user := createUser(t, "shopper@example.com")

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Empty(t, cart.Items)

	again, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID, "second access must reuse the same cart")
}

func TestCartUpdateItem(t *testing.T) {
	setupDB(t)
	svc := NewCartService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	cart, err := svc.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(user.ID, itemID, UpdateItemInput{Action: "increment"})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.UpdateItem(user.ID, itemID, UpdateItemInput{Action: "decrement"})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Decrement floors at 1, it never removes the line.
	cart, err = svc.UpdateItem(user.ID, itemID, UpdateItemInput{Action: "decrement"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.UpdateItem(user.ID, itemID, UpdateItemInput{Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	_, err = svc.UpdateItem(user.ID, 9999, UpdateItemInput{Action: "increment"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartUpdateItemScopedToOwner(t *testing.T) {
	setupDB(t)
	svc := NewCartService()

	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	cart, err := svc.AddItem(alice.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)

	_, err = svc.UpdateItem(bob.ID, cart.Items[0].ID, UpdateItemInput{Action: "increment"})
	assert.ErrorIs(t, err, ErrNotFound, "one user must not reach another's cart line")
}

func TestCartRemoveAndClear(t *testing.T) {
	setupDB(t)
	svc := NewCartService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)
	milk := createProduct(t, seller.ID, "Milk", 2.90)

	cart, err := svc.AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	_, err = svc.AddItem(user.ID, AddItemInput{ProductID: milk.ID})
	require.NoError(t, err)

	cart, err = svc.RemoveItem(user.ID, cart.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, milk.ID, cart.Items[0].ProductID)

	cart, err = svc.Clear(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.NotZero(t, cart.ID, "clearing empties the cart but keeps it")

	var count int64
	require.NoError(t, database.DB.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}
