package seeders

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("demo_shop", SeedDemoShop)
	Register("catalog", SeedCatalog)
}

// SeedDemoShop creates a demo seller account so the catalogue has an owner.
func SeedDemoShop(db *gorm.DB) error {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	user := models.User{
		Name:     "Demo Grocer",
		Email:    "grocer@greenbasket.app",
		Password: hash,
		Role:     models.RoleSeller,
	}
	if err := db.Where(models.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
		return err
	}

	seller := models.Seller{
		UserID:   user.ID,
		ShopName: "Greenfield Grocers",
		Bio:      "Fresh produce straight from the valley.",
	}
	return db.Where(models.Seller{UserID: user.ID}).FirstOrCreate(&seller).Error
}

// SeedCatalog fills the catalogue with one product per category.
func SeedCatalog(db *gorm.DB) error {
	var seller models.Seller
	if err := db.First(&seller).Error; err != nil {
		return err
	}

	organic := models.Tag{Name: "organic"}
	if err := db.Where(organic).FirstOrCreate(&organic).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Title: "Honeycrisp Apples 1kg", Category: "F", RegularPrice: 6.50, DiscountedPrice: 5.00, IsFeatured: true, Tags: []models.Tag{organic}},
		{Title: "Heirloom Tomatoes 500g", Category: "V", RegularPrice: 4.80, DiscountedPrice: 4.20, Tags: []models.Tag{organic}},
		{Title: "Whole Milk 2L", Category: "DF", RegularPrice: 3.20, DiscountedPrice: 2.90},
		{Title: "Grass-Fed Beef Mince 500g", Category: "M", RegularPrice: 11.00, DiscountedPrice: 9.50},
		{Title: "Atlantic Salmon Fillet 300g", Category: "FH", RegularPrice: 13.50, DiscountedPrice: 12.00, IsFeatured: true},
		{Title: "Sourdough Loaf", Category: "B", RegularPrice: 5.50, DiscountedPrice: 5.00},
	}

	for _, p := range products {
		p.SellerID = &seller.ID
		if err := db.Where(models.Product{Title: p.Title}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
