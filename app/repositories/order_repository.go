package repositories

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/orm"
)

// OrderRepository handles database operations for orders, order items and
// per-seller fulfillments.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// ListForUser returns one page of the user's orders, newest first.
func (r *OrderRepository) ListForUser(userID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).
		Preload("Items.Product").
		Preload("Fulfillments").
		Where("user_id = ?", userID).
		Order("created_at desc").
		GetWithPagination(&orders, page, perPage)
	return orders, pagination, err
}

// FindByNumberForUser loads an order by its number, scoped to the owner.
func (r *OrderRepository) FindByNumberForUser(userID uint, number string) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items.Product").
		Preload("Fulfillments").
		Where("order_number = ? AND user_id = ?", number, userID).
		First(&order)
	return order, err
}

// FindByID loads an order with items and fulfillments.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items.Product").
		Preload("Fulfillments").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// ListForSeller returns one page of orders containing at least one of the
// seller's items, newest first.
func (r *OrderRepository) ListForSeller(sellerID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	var ids []uint
	err := orm.DB().Model(&models.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Distinct("order_id").
		Pluck("order_id", &ids)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	if len(ids) == 0 {
		return nil, orm.Pagination{Page: 1, PerPage: perPage}, nil
	}

	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).
		Preload("Items.Product").
		Preload("Fulfillments").
		Where("id IN ?", ids).
		Order("created_at desc").
		GetWithPagination(&orders, page, perPage)
	return orders, pagination, err
}

// Fulfillment returns the seller's fulfillment row for an order.
func (r *OrderRepository) Fulfillment(orderID, sellerID uint) (models.OrderFulfillment, error) {
	var f models.OrderFulfillment
	err := orm.DB().Model(&models.OrderFulfillment{}).
		Where("order_id = ? AND seller_id = ?", orderID, sellerID).
		First(&f)
	return f, err
}

// SellerEarnings sums the seller's item subtotals across their delivered
// fulfillments. Cancelled and in-flight shares earn nothing yet.
func (r *OrderRepository) SellerEarnings(sellerID uint) (float64, error) {
	var rows []struct{ Total float64 }
	err := orm.DB().Model(&models.OrderItem{}).
		Joins("JOIN order_fulfillments f ON f.order_id = order_items.order_id AND f.seller_id = order_items.seller_id").
		Where("order_items.seller_id = ? AND f.status = ?", sellerID, models.StatusDelivered).
		Select("COALESCE(SUM(order_items.subtotal), 0) AS total").
		Get(&rows)
	if err != nil || len(rows) == 0 {
		return 0, err
	}
	return rows[0].Total, nil
}

// CountOrdersForSeller counts distinct orders containing the seller's items.
func (r *OrderRepository) CountOrdersForSeller(sellerID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Distinct("order_id").
		Count(&n)
	return n, err
}

// CountFulfillmentsByStatus breaks the seller's fulfillments down by status.
func (r *OrderRepository) CountFulfillmentsByStatus(sellerID uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := orm.DB().Model(&models.OrderFulfillment{}).
		Where("seller_id = ?", sellerID).
		Group("status").
		Select("status, COUNT(*) AS n").
		Get(&rows)
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Status] = row.N
	}
	return counts, nil
}

// DeliveredOrderIDsWithProduct returns ids of the user's delivered orders
// that contain the product. Drives the review-eligibility gate.
func (r *OrderRepository) DeliveredOrderIDsWithProduct(userID, productID uint) ([]uint, error) {
	var ids []uint
	err := orm.DB().Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, models.StatusDelivered, productID).
		Distinct("order_items.order_id").
		Pluck("order_items.order_id", &ids)
	return ids, err
}
