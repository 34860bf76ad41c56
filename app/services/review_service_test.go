package services

import (
	"testing"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeDeliveredOrder runs a full checkout and walks the seller's
// fulfillment to DELIVERED.
func placeDeliveredOrder(t *testing.T, userID uint, seller models.Seller, productID uint) models.Order {
	t.Helper()

	_, err := NewCartService().AddItem(userID, AddItemInput{ProductID: productID})
	require.NoError(t, err)
	order, err := NewCheckoutService().PlaceOrder(userID, checkoutInput(), "")
	require.NoError(t, err)

	sellers := NewSellerService()
	for _, status := range []string{models.StatusProcessing, models.StatusShipped, models.StatusDelivered} {
		order, err = sellers.UpdateFulfillment(seller.ID, order.ID, UpdateFulfillmentInput{Status: status})
		require.NoError(t, err)
	}
	require.Equal(t, models.StatusDelivered, order.Status)
	return order
}

func TestReviewRequiresDelivery(t *testing.T) {
	setupDB(t)
	reviews := NewReviewService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	input := CreateReviewInput{Rating: 5, Review: "Crisp and delicious."}

	// No purchase at all.
	_, err := reviews.Create(user.ID, apples.ID, input)
	assert.ErrorIs(t, err, ErrNotEligible)

	// Purchased but not delivered yet.
	_, err = NewCartService().AddItem(user.ID, AddItemInput{ProductID: apples.ID})
	require.NoError(t, err)
	_, err = NewCheckoutService().PlaceOrder(user.ID, checkoutInput(), "")
	require.NoError(t, err)
	_, err = reviews.Create(user.ID, apples.ID, input)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestReviewOncePerDeliveredOrder(t *testing.T) {
	setupDB(t)
	reviews := NewReviewService()

	user := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	placeDeliveredOrder(t, user.ID, seller, apples.ID)

	review, err := reviews.Create(user.ID, apples.ID, CreateReviewInput{Rating: 4, Review: "Very fresh produce."})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	// Same delivered order cannot be reviewed twice.
	_, err = reviews.Create(user.ID, apples.ID, CreateReviewInput{Rating: 5, Review: "Changed my mind, perfect."})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// A second delivered purchase unlocks a second review.
	placeDeliveredOrder(t, user.ID, seller, apples.ID)
	_, err = reviews.Create(user.ID, apples.ID, CreateReviewInput{Rating: 5, Review: "Still great on reorder."})
	require.NoError(t, err)

	var count int64
	require.NoError(t, database.DB.Model(&models.ProductReview{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAskAndAnswerQuestion(t *testing.T) {
	setupDB(t)
	reviews := NewReviewService()

	shopper := createUser(t, "shopper@example.com")
	seller := createSeller(t, "grocer@example.com", "Grocer")
	other := createSeller(t, "baker@example.com", "Baker")
	apples := createProduct(t, seller.ID, "Apples", 5.00)

	question, err := reviews.Ask(shopper.ID, apples.ID, CreateQuestionInput{Question: "Are these waxed?"})
	require.NoError(t, err)
	assert.False(t, question.IsAnswered)

	// Only the owning seller may answer.
	var otherUser models.User
	require.NoError(t, database.DB.Where("id = ?", other.UserID).First(&otherUser).Error)
	_, err = reviews.Answer(otherUser.ID, other.ID, question.ID, AnswerQuestionInput{Answer: "No."})
	assert.ErrorIs(t, err, ErrNotSellersQuestion)

	var sellerUser models.User
	require.NoError(t, database.DB.Where("id = ?", seller.UserID).First(&sellerUser).Error)
	answered, err := reviews.Answer(sellerUser.ID, seller.ID, question.ID, AnswerQuestionInput{Answer: "No wax, just polish."})
	require.NoError(t, err)
	assert.True(t, answered.IsAnswered)
	assert.NotNil(t, answered.AnsweredAt)
	require.NotNil(t, answered.AnsweredByID)
	assert.Equal(t, sellerUser.ID, *answered.AnsweredByID)

	// Answers are final.
	_, err = reviews.Answer(sellerUser.ID, seller.ID, question.ID, AnswerQuestionInput{Answer: "Actually..."})
	assert.ErrorIs(t, err, ErrQuestionAnswered)
}
