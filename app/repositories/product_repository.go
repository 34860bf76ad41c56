package repositories

import (
	"time"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/orm"
)

// ProductFilter carries the catalogue listing options.
type ProductFilter struct {
	Category string
	Tag      string
	Search   string
	MinPrice float64
	MaxPrice float64
	Sort     string // "price_asc" | "price_desc" | "newest"
	Page     int
	PerPage  int
}

// ProductRepository handles database operations for the catalogue.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// List returns one catalogue page matching the filter.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{}).Preload("Tags")

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}
	if f.MinPrice > 0 {
		q = q.Where("discounted_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("discounted_price <= ?", f.MaxPrice)
	}
	if f.Tag != "" {
		q = q.Joins("JOIN product_tags pt ON pt.product_id = products.id").
			Joins("JOIN tags ON tags.id = pt.tag_id").
			Where("tags.name = ?", f.Tag)
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("discounted_price asc")
	case "price_desc":
		q = q.Order("discounted_price desc")
	default:
		q = q.Order("created_at desc")
	}

	var products []models.Product
	pagination, err := q.GetWithPagination(&products, f.Page, f.PerPage)
	return products, pagination, err
}

// FindByID loads a product with its tags.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Preload("Tags").Where("id = ?", id).First(&product)
	return product, err
}

// Featured returns the featured products, cached briefly since the set
// changes rarely and sits on the hottest page.
func (r *ProductRepository) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("is_featured = ?", true).
		Order("created_at desc").
		Limit(limit).
		Cache("catalog:featured", 5*time.Minute, &products)
	return products, err
}

// Related returns products sharing the category, excluding the product itself.
func (r *ProductRepository) Related(product models.Product, limit int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("category = ? AND id <> ?", product.Category, product.ID).
		Order("created_at desc").
		Limit(limit).
		Get(&products)
	return products, err
}

// BySeller returns one page of a seller's own products.
func (r *ProductRepository) BySeller(sellerID uint, page, perPage int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pagination, err := orm.DB().Model(&models.Product{}).
		Preload("Tags").
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		GetWithPagination(&products, page, perPage)
	return products, pagination, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists product changes.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete removes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	return orm.DB().Delete(product)
}

// CountBySeller counts the seller's products.
func (r *ProductRepository) CountBySeller(sellerID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Where("seller_id = ?", sellerID).Count(&n)
	return n, err
}

// ResolveTags maps tag names to Tag rows, creating missing ones. Reuse by
// name keeps the tags table deduplicated under the unique index.
func (r *ProductRepository) ResolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag models.Tag
		err := orm.DB().Gorm().Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
