package models

import "gorm.io/gorm"

// Cart is a user's in-progress selection of products. One cart per user,
// created lazily on first access and emptied (never deleted) at checkout.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one product line inside a cart. Quantity never drops below 1
// via decrement; removal is an explicit separate operation. One row per
// product is maintained by the add operation, not a schema constraint.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"index;not null" json:"cart_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Product   Product `json:"product"`
}

// Subtotal is quantity times the product's current discounted price.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Product.DiscountedPrice
}

// Total sums the subtotals of all loaded items. Computed on read; carts
// never cache money.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
