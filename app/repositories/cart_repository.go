package repositories

import (
	"errors"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/orm"
	"gorm.io/gorm"
)

// CartRepository handles database operations for carts and their items.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// GetOrCreateByUser returns the user's cart with items and products loaded,
// creating the cart on first access.
func (r *CartRepository) GetOrCreateByUser(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := orm.DB().Model(&models.Cart{}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := orm.DB().Create(&cart); err != nil {
			return models.Cart{}, err
		}
		return cart, nil
	}
	return cart, err
}

// FindItem returns one cart item by id, scoped to the given cart.
func (r *CartRepository) FindItem(cartID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item)
	return item, err
}

// FindItemByProduct returns the cart line for a product, if one exists.
func (r *CartRepository) FindItemByProduct(cartID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item)
	return item, err
}

// CreateItem persists a new cart line.
func (r *CartRepository) CreateItem(item *models.CartItem) error {
	return orm.DB().Create(item)
}

// SaveItem persists quantity changes.
func (r *CartRepository) SaveItem(item *models.CartItem) error {
	return orm.DB().Save(item)
}

// DeleteItem removes a cart line.
func (r *CartRepository) DeleteItem(item *models.CartItem) error {
	return orm.DB().Delete(item)
}

// ClearItems removes every line from the cart. The cart row itself survives.
func (r *CartRepository) ClearItems(cartID uint) error {
	return orm.DB().Where("cart_id = ?", cartID).Delete(&models.CartItem{})
}
