package repositories

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/orm"
)

// ReviewRepository handles database operations for reviews and questions.
type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// ForProduct returns one page of a product's reviews, newest first.
func (r *ReviewRepository) ForProduct(productID uint, page, perPage int) ([]models.ProductReview, orm.Pagination, error) {
	var reviews []models.ProductReview
	pagination, err := orm.DB().Model(&models.ProductReview{}).
		Where("product_id = ?", productID).
		Order("created_at desc").
		GetWithPagination(&reviews, page, perPage)
	return reviews, pagination, err
}

// Exists reports whether the (product, user, order) triple already has a review.
func (r *ReviewRepository) Exists(productID, userID, orderID uint) (bool, error) {
	var n int64
	err := orm.DB().Model(&models.ProductReview{}).
		Where("product_id = ? AND user_id = ? AND order_id = ?", productID, userID, orderID).
		Count(&n)
	return n > 0, err
}

// Create persists a review.
func (r *ReviewRepository) Create(review *models.ProductReview) error {
	return orm.DB().Create(review)
}

// QuestionsForProduct returns a product's questions, answered or not.
func (r *ReviewRepository) QuestionsForProduct(productID uint, page, perPage int) ([]models.ProductQuestion, orm.Pagination, error) {
	var questions []models.ProductQuestion
	pagination, err := orm.DB().Model(&models.ProductQuestion{}).
		Where("product_id = ?", productID).
		Order("created_at desc").
		GetWithPagination(&questions, page, perPage)
	return questions, pagination, err
}

// UnansweredForSeller returns open questions on any of the seller's products.
func (r *ReviewRepository) UnansweredForSeller(sellerID uint, page, perPage int) ([]models.ProductQuestion, orm.Pagination, error) {
	var questions []models.ProductQuestion
	pagination, err := orm.DB().Model(&models.ProductQuestion{}).
		Joins("JOIN products ON products.id = product_questions.product_id").
		Where("products.seller_id = ? AND product_questions.is_answered = ?", sellerID, false).
		Order("product_questions.created_at asc").
		GetWithPagination(&questions, page, perPage)
	return questions, pagination, err
}

// FindQuestion loads one question by id.
func (r *ReviewRepository) FindQuestion(id uint) (models.ProductQuestion, error) {
	var q models.ProductQuestion
	err := orm.DB().Model(&models.ProductQuestion{}).Where("id = ?", id).First(&q)
	return q, err
}

// CreateQuestion persists a question.
func (r *ReviewRepository) CreateQuestion(q *models.ProductQuestion) error {
	return orm.DB().Create(q)
}

// SaveQuestion persists answer changes.
func (r *ReviewRepository) SaveQuestion(q *models.ProductQuestion) error {
	return orm.DB().Save(q)
}

// CountUnansweredForSeller counts open questions on the seller's products.
func (r *ReviewRepository) CountUnansweredForSeller(sellerID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.ProductQuestion{}).
		Joins("JOIN products ON products.id = product_questions.product_id").
		Where("products.seller_id = ? AND product_questions.is_answered = ?", sellerID, false).
		Count(&n)
	return n, err
}
