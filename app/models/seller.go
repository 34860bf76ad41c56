package models

import "gorm.io/gorm"

// Seller is the vendor half of a user account. One per user; the shop name
// is globally unique.
type Seller struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	ShopName string `gorm:"uniqueIndex;size:150;not null" json:"shop_name"`
	Bio      string `gorm:"type:text" json:"bio"`
	ShopLogo string `gorm:"size:255" json:"shop_logo"`
}
