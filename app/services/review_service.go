package services

import (
	"errors"
	"time"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/pkg/orm"
	"gorm.io/gorm"
)

// CreateReviewInput carries a purchase-verified product review.
type CreateReviewInput struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"required,min=10,max=5000"`
}

type CreateQuestionInput struct {
	Question string `json:"question" validate:"required,min=5,max=2000"`
}

type AnswerQuestionInput struct {
	Answer string `json:"answer" validate:"required,min=2,max=5000"`
}

// ReviewService gates reviews behind delivery and handles product Q&A.
type ReviewService struct {
	reviews  *repositories.ReviewRepository
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		reviews:  repositories.NewReviewRepository(),
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
	}
}

func (s *ReviewService) ForProduct(productID uint, page, perPage int) ([]models.ProductReview, orm.Pagination, error) {
	return s.reviews.ForProduct(productID, page, perPage)
}

// Create stores a review if the user has a delivered order containing the
// product that has not been reviewed yet. Each delivered order grants one
// review of the product; a second purchase allows a second review.
func (s *ReviewService) Create(userID, productID uint, input CreateReviewInput) (models.ProductReview, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProductReview{}, ErrNotFound
		}
		return models.ProductReview{}, err
	}

	orderIDs, err := s.orders.DeliveredOrderIDsWithProduct(userID, productID)
	if err != nil {
		return models.ProductReview{}, err
	}
	if len(orderIDs) == 0 {
		return models.ProductReview{}, ErrNotEligible
	}

	var orderID uint
	found := false
	for _, id := range orderIDs {
		exists, err := s.reviews.Exists(productID, userID, id)
		if err != nil {
			return models.ProductReview{}, err
		}
		if !exists {
			orderID = id
			found = true
			break
		}
	}
	if !found {
		return models.ProductReview{}, ErrAlreadyReviewed
	}

	review := models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		OrderID:   orderID,
		Rating:    input.Rating,
		Review:    input.Review,
	}
	if err := s.reviews.Create(&review); err != nil {
		return models.ProductReview{}, err
	}
	return review, nil
}

func (s *ReviewService) QuestionsForProduct(productID uint, page, perPage int) ([]models.ProductQuestion, orm.Pagination, error) {
	return s.reviews.QuestionsForProduct(productID, page, perPage)
}

// Ask records a question against a product. Any authenticated user may ask.
func (s *ReviewService) Ask(userID, productID uint, input CreateQuestionInput) (models.ProductQuestion, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProductQuestion{}, ErrNotFound
		}
		return models.ProductQuestion{}, err
	}

	question := models.ProductQuestion{
		ProductID: productID,
		UserID:    userID,
		Question:  input.Question,
	}
	if err := s.reviews.CreateQuestion(&question); err != nil {
		return models.ProductQuestion{}, err
	}
	return question, nil
}

func (s *ReviewService) UnansweredForSeller(sellerID uint, page, perPage int) ([]models.ProductQuestion, orm.Pagination, error) {
	return s.reviews.UnansweredForSeller(sellerID, page, perPage)
}

// Answer lets the seller owning the product answer a question once.
func (s *ReviewService) Answer(userID, sellerID, questionID uint, input AnswerQuestionInput) (models.ProductQuestion, error) {
	question, err := s.reviews.FindQuestion(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProductQuestion{}, ErrNotFound
	}
	if err != nil {
		return models.ProductQuestion{}, err
	}
	if question.IsAnswered {
		return models.ProductQuestion{}, ErrQuestionAnswered
	}

	product, err := s.products.FindByID(question.ProductID)
	if err != nil {
		return models.ProductQuestion{}, err
	}
	if product.SellerID == nil || *product.SellerID != sellerID {
		return models.ProductQuestion{}, ErrNotSellersQuestion
	}

	now := time.Now()
	question.Answer = input.Answer
	question.AnsweredByID = &userID
	question.IsAnswered = true
	question.AnsweredAt = &now
	if err := s.reviews.SaveQuestion(&question); err != nil {
		return models.ProductQuestion{}, err
	}
	return question, nil
}
