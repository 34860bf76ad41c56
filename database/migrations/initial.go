package migrations

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_tables", &CreateUsersTables{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_sellers_table", &CreateSellersTable{})
	migration.Register("20260101000003_create_cart_tables", &CreateCartTables{})
	migration.Register("20260101000004_create_order_tables", &CreateOrderTables{})
	migration.Register("20260101000005_create_review_tables", &CreateReviewTables{})
}

// -------- 0001: users, profiles --------

type CreateUsersTables struct{}

func (m *CreateUsersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Profile{})
}

func (m *CreateUsersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("profiles", "users")
}

// -------- 0002: products, tags --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.Tag{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_tags", "tags", "products")
}

// -------- 0003: sellers --------

type CreateSellersTable struct{}

func (m *CreateSellersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Seller{})
}

func (m *CreateSellersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sellers")
}

// -------- 0004: carts, cart items --------

type CreateCartTables struct{}

func (m *CreateCartTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0005: orders, order items, fulfillments --------

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderFulfillment{})
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_fulfillments", "order_items", "orders")
}

// -------- 0006: reviews, questions --------

type CreateReviewTables struct{}

func (m *CreateReviewTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProductReview{}, &models.ProductQuestion{})
}

func (m *CreateReviewTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_questions", "product_reviews")
}
