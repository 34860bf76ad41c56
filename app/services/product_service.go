package services

import (
	"errors"
	"io"
	"strings"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/pkg/cache"
	"github.com/anikasharma/greenbasket/pkg/orm"
	"gorm.io/gorm"
)

// ProductInput is the seller-facing create/update payload.
type ProductInput struct {
	Title           string   `json:"title" validate:"required,min=3,max=255"`
	Description     string   `json:"description" validate:"nullable,max=10000"`
	RegularPrice    float64  `json:"regular_price" validate:"required,gte=0"`
	DiscountedPrice float64  `json:"discounted_price" validate:"required,gte=0"`
	Category        string   `json:"category" validate:"required,in=F,V,DF,M,FH,B"`
	IsFeatured      bool     `json:"is_featured"`
	Tags            []string `json:"tags" validate:"nullable"`
}

// ProductService covers the public catalogue reads and the seller-scoped
// catalogue writes.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

func (s *ProductService) List(f repositories.ProductFilter) ([]models.Product, orm.Pagination, error) {
	return s.products.List(f)
}

func (s *ProductService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return product, err
}

func (s *ProductService) Featured(limit int) ([]models.Product, error) {
	return s.products.Featured(limit)
}

func (s *ProductService) Related(id uint, limit int) ([]models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.products.Related(product, limit)
}

func (s *ProductService) BySeller(sellerID uint, page, perPage int) ([]models.Product, orm.Pagination, error) {
	return s.products.BySeller(sellerID, page, perPage)
}

// Create adds a product to the seller's catalogue.
func (s *ProductService) Create(sellerID uint, input ProductInput) (models.Product, error) {
	tags, err := s.products.ResolveTags(input.Tags)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		SellerID:        &sellerID,
		Title:           input.Title,
		Slug:            slugify(input.Title),
		Description:     input.Description,
		RegularPrice:    input.RegularPrice,
		DiscountedPrice: input.DiscountedPrice,
		Category:        input.Category,
		IsFeatured:      input.IsFeatured,
		Tags:            tags,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	s.invalidate()
	return product, nil
}

// Update modifies one of the seller's own products. Editing another
// seller's product reads as not found.
func (s *ProductService) Update(sellerID, productID uint, input ProductInput) (models.Product, error) {
	product, err := s.owned(sellerID, productID)
	if err != nil {
		return models.Product{}, err
	}

	product.Title = input.Title
	product.Slug = slugify(input.Title)
	product.Description = input.Description
	product.RegularPrice = input.RegularPrice
	product.DiscountedPrice = input.DiscountedPrice
	product.Category = input.Category
	product.IsFeatured = input.IsFeatured
	if input.Tags != nil {
		tags, err := s.products.ResolveTags(input.Tags)
		if err != nil {
			return models.Product{}, err
		}
		product.Tags = tags
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	s.invalidate()
	return product, nil
}

// Delete removes one of the seller's own products. Existing order items
// keep their snapshot and survive the delete.
func (s *ProductService) Delete(sellerID, productID uint) error {
	product, err := s.owned(sellerID, productID)
	if err != nil {
		return err
	}
	if err := s.products.Delete(&product); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// UploadImage validates and stores the product image.
func (s *ProductService) UploadImage(sellerID, productID uint, filename string, size int64, r io.Reader) (models.Product, error) {
	product, err := s.owned(sellerID, productID)
	if err != nil {
		return models.Product{}, err
	}

	stored, err := SaveImage("products", filename, size, r)
	if err != nil {
		return models.Product{}, err
	}

	product.Image = stored
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductService) owned(sellerID, productID uint) (models.Product, error) {
	product, err := s.products.FindByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	if product.SellerID == nil || *product.SellerID != sellerID {
		return models.Product{}, ErrNotFound
	}
	return product, nil
}

func (s *ProductService) invalidate() {
	cache.Forget("catalog:featured")
}

// slugify lowercases the title and collapses every non-alphanumeric run
// into a single hyphen.
func slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}
