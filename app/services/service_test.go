package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupDB points the shared connection at a fresh in-memory SQLite database
// with the full schema.
func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.Product{}, &models.Tag{},
		&models.Seller{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.OrderFulfillment{},
		&models.ProductReview{}, &models.ProductQuestion{},
	))

	database.DB = db
}

func createUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createSeller(t *testing.T, email, shop string) models.Seller {
	t.Helper()
	user := createUser(t, email)
	user.Role = models.RoleSeller
	require.NoError(t, database.DB.Save(&user).Error)

	seller := models.Seller{UserID: user.ID, ShopName: shop}
	require.NoError(t, database.DB.Create(&seller).Error)
	return seller
}

func createProduct(t *testing.T, sellerID uint, title string, price float64) models.Product {
	t.Helper()
	product := models.Product{
		SellerID:        &sellerID,
		Title:           title,
		Category:        "F",
		RegularPrice:    price + 1,
		DiscountedPrice: price,
	}
	require.NoError(t, database.DB.Create(&product).Error)
	return product
}
