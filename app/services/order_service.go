package services

import (
	"errors"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/pkg/orm"
	"gorm.io/gorm"
)

// OrderService serves the customer-facing order history. All reads are
// owner-scoped; an order that exists but belongs to someone else is
// indistinguishable from one that does not exist.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

func (s *OrderService) List(userID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ListForUser(userID, page, perPage)
}

func (s *OrderService) GetByNumber(userID uint, number string) (models.Order, error) {
	order, err := s.orders.FindByNumberForUser(userID, number)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	return order, err
}
