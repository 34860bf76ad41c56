package repositories

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/orm"
)

// SellerRepository handles database operations for sellers.
type SellerRepository struct{}

func NewSellerRepository() *SellerRepository {
	return &SellerRepository{}
}

// FindByUser returns the seller record owned by the user.
func (r *SellerRepository) FindByUser(userID uint) (models.Seller, error) {
	var seller models.Seller
	err := orm.DB().Model(&models.Seller{}).Where("user_id = ?", userID).First(&seller)
	return seller, err
}

// FindByID returns a seller by primary key.
func (r *SellerRepository) FindByID(id uint) (models.Seller, error) {
	var seller models.Seller
	err := orm.DB().Model(&models.Seller{}).Where("id = ?", id).First(&seller)
	return seller, err
}

// ShopNameTaken reports whether another seller already uses the shop name.
func (r *SellerRepository) ShopNameTaken(name string, excludeID uint) (bool, error) {
	var n int64
	err := orm.DB().Model(&models.Seller{}).
		Where("shop_name = ? AND id <> ?", name, excludeID).
		Count(&n)
	return n > 0, err
}

// Create persists a new seller.
func (r *SellerRepository) Create(seller *models.Seller) error {
	return orm.DB().Create(seller)
}

// Update persists seller changes.
func (r *SellerRepository) Update(seller *models.Seller) error {
	return orm.DB().Save(seller)
}
