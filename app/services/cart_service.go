package services

import (
	"errors"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"gorm.io/gorm"
)

// AddItemInput is the payload for adding a product to the cart.
type AddItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"nullable,gte=1,lte=999"`
}

// UpdateItemInput changes a cart line's quantity. Either an absolute
// quantity or a delta of +1/-1; decrement never drops below 1.
type UpdateItemInput struct {
	Quantity int    `json:"quantity" validate:"nullable,gte=1,lte=999"`
	Action   string `json:"action" validate:"nullable,in=increment,decrement"`
}

type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Get returns the user's cart, creating it on first access.
func (s *CartService) Get(userID uint) (models.Cart, error) {
	return s.carts.GetOrCreateByUser(userID)
}

// AddItem puts a product in the cart. Adding a product already present
// increments its quantity instead of creating a second line.
func (s *CartService) AddItem(userID uint, input AddItemInput) (models.Cart, error) {
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	product, err := s.products.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}

	cart, err := s.carts.GetOrCreateByUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, err := s.carts.FindItemByProduct(cart.ID, product.ID)
	switch {
	case err == nil:
		item.Quantity += input.Quantity
		if err := s.carts.SaveItem(&item); err != nil {
			return models.Cart{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: input.Quantity}
		if err := s.carts.CreateItem(&item); err != nil {
			return models.Cart{}, err
		}
	default:
		return models.Cart{}, err
	}

	return s.carts.GetOrCreateByUser(userID)
}

// UpdateItem applies an absolute quantity or an increment/decrement to a
// cart line. Decrementing at quantity 1 is a no-op; removal is explicit.
func (s *CartService) UpdateItem(userID, itemID uint, input UpdateItemInput) (models.Cart, error) {
	cart, err := s.carts.GetOrCreateByUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, err := s.carts.FindItem(cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}

	switch input.Action {
	case "increment":
		item.Quantity++
	case "decrement":
		if item.Quantity > 1 {
			item.Quantity--
		}
	default:
		if input.Quantity >= 1 {
			item.Quantity = input.Quantity
		}
	}

	if err := s.carts.SaveItem(&item); err != nil {
		return models.Cart{}, err
	}
	return s.carts.GetOrCreateByUser(userID)
}

// RemoveItem deletes a cart line. This is the only way a line reaches
// quantity zero.
func (s *CartService) RemoveItem(userID, itemID uint) (models.Cart, error) {
	cart, err := s.carts.GetOrCreateByUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, err := s.carts.FindItem(cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}

	if err := s.carts.DeleteItem(&item); err != nil {
		return models.Cart{}, err
	}
	return s.carts.GetOrCreateByUser(userID)
}

// Clear empties the cart without deleting it.
func (s *CartService) Clear(userID uint) (models.Cart, error) {
	cart, err := s.carts.GetOrCreateByUser(userID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.carts.ClearItems(cart.ID); err != nil {
		return models.Cart{}, err
	}
	return s.carts.GetOrCreateByUser(userID)
}
