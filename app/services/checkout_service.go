package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/pkg/cache"
	"github.com/anikasharma/greenbasket/pkg/event"
	"github.com/anikasharma/greenbasket/pkg/logger"
	"github.com/anikasharma/greenbasket/pkg/metrics"
	"github.com/anikasharma/greenbasket/pkg/orm"
	"gorm.io/gorm"
)

// EventOrderPlaced is fired with the completed models.Order after a
// successful checkout commit.
const EventOrderPlaced = "order.placed"

const (
	orderNumberPrefix   = "ORD"
	orderNumberLength   = 10
	orderNumberAttempts = 5
	idempotencyTTL      = 24 * time.Hour
)

var (
	ordersPlaced = metrics.NewCounter("greenbasket", "orders_placed_total",
		"Orders successfully placed.", []string{"payment_method"})
	orderFailures = metrics.NewCounter("greenbasket", "order_failures_total",
		"Checkout attempts that did not produce an order.", []string{"reason"})
)

// CheckoutInput is the billing/shipping payload for order placement.
// The subtotal is never taken from the client.
type CheckoutInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Company   string `json:"company" validate:"nullable,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Address   string `json:"address" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	Country   string `json:"country" validate:"required,max=100"`
	Postcode  string `json:"postcode" validate:"required,max=20"`
	Notes     string `json:"notes" validate:"nullable,max=2000"`

	ShippingMethod string `json:"shipping_method" validate:"required,in=FREE,FLAT,LOCAL"`
	PaymentMethod  string `json:"payment_method" validate:"required,in=BANK,CHECK,COD,PAYPAL"`
}

type CheckoutService struct {
	orders *repositories.OrderRepository
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{orders: repositories.NewOrderRepository()}
}

// PlaceOrder converts the user's cart into an order.
//
// The whole conversion runs in one transaction with the cart row locked, so
// two concurrent submissions from the same user serialise: the second finds
// an empty cart and is rejected. A non-empty idempotencyKey deduplicates
// client retries across requests.
func (s *CheckoutService) PlaceOrder(userID uint, input CheckoutInput, idempotencyKey string) (models.Order, error) {
	if idempotencyKey != "" {
		if order, ok := s.replayed(userID, idempotencyKey); ok {
			return order, nil
		}
	}

	var order models.Order
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order, err = s.placeOnce(userID, input)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Order number collided with an existing order. Regenerate
			// and retry the whole transaction.
			continue
		}
		break
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrOrderNumberBusy
	}
	if err != nil {
		orderFailures.WithLabelValues(failureReason(err)).Inc()
		return models.Order{}, err
	}

	if idempotencyKey != "" {
		if err := cache.Set(idempotencyCacheKey(userID, idempotencyKey), order.OrderNumber, idempotencyTTL); err != nil {
			logger.Warn("checkout: idempotency key not recorded, retries will not replay",
				"order_number", order.OrderNumber, "error", err)
		}
	}

	ordersPlaced.WithLabelValues(order.PaymentMethod).Inc()
	logger.Info("checkout: order placed",
		"order_number", order.OrderNumber,
		"user_id", userID,
		"total", order.Total,
		"items", len(order.Items),
	)
	event.FireAsync(EventOrderPlaced, order)

	return order, nil
}

func (s *CheckoutService) placeOnce(userID uint, input CheckoutInput) (models.Order, error) {
	var order models.Order

	err := orm.Transaction(func(tx *orm.Query) error {
		var cart models.Cart
		err := tx.Model(&models.Cart{}).
			ForUpdate().
			Where("user_id = ?", userID).
			First(&cart)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartEmpty
		}
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Model(&models.CartItem{}).
			Preload("Product").
			Where("cart_id = ?", cart.ID).
			Get(&items); err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var subtotal float64
		for _, item := range items {
			subtotal += item.Subtotal()
		}
		shipping := models.ShippingCost(input.ShippingMethod)

		order = models.Order{
			UserID:         userID,
			OrderNumber:    newOrderNumber(),
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Company:        input.Company,
			Email:          input.Email,
			Phone:          input.Phone,
			Address:        input.Address,
			City:           input.City,
			Country:        input.Country,
			Postcode:       input.Postcode,
			Notes:          input.Notes,
			ShippingMethod: input.ShippingMethod,
			ShippingCost:   shipping,
			PaymentMethod:  input.PaymentMethod,
			Subtotal:       subtotal,
			Total:          subtotal + shipping,
			Status:         models.StatusPending,
		}
		if err := tx.Create(&order); err != nil {
			return err
		}

		sellers := map[uint]bool{}
		for _, item := range items {
			line := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				SellerID:  item.Product.SellerID,
				Quantity:  item.Quantity,
				Price:     item.Product.DiscountedPrice,
				Subtotal:  item.Subtotal(),
			}
			if err := tx.Create(&line); err != nil {
				return err
			}
			order.Items = append(order.Items, line)

			if item.Product.SellerID != nil {
				sellers[*item.Product.SellerID] = true
			}
		}

		for sellerID := range sellers {
			f := models.OrderFulfillment{
				OrderID:  order.ID,
				SellerID: sellerID,
				Status:   models.StatusPending,
			}
			if err := tx.Create(&f); err != nil {
				return err
			}
			order.Fulfillments = append(order.Fulfillments, f)
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	})

	return order, err
}

// replayed returns the order a previous submission with the same key
// produced, if any.
func (s *CheckoutService) replayed(userID uint, key string) (models.Order, bool) {
	var number string
	if !cache.Get(idempotencyCacheKey(userID, key), &number) {
		return models.Order{}, false
	}
	order, err := s.orders.FindByNumberForUser(userID, number)
	if err != nil {
		return models.Order{}, false
	}
	return order, true
}

func idempotencyCacheKey(userID uint, key string) string {
	return fmt.Sprintf("checkout:idem:%d:%s", userID, key)
}

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newOrderNumber returns "ORD" followed by 10 random uppercase
// alphanumerics. Uniqueness is enforced by the order_number index; callers
// retry on conflict. Package var so tests can force collisions.
var newOrderNumber = func() string {
	b := make([]byte, orderNumberLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = orderNumberAlphabet[int(b[i])%len(orderNumberAlphabet)]
	}
	return orderNumberPrefix + string(b)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrCartEmpty):
		return "empty_cart"
	case errors.Is(err, ErrOrderNumberBusy):
		return "order_number"
	default:
		return "internal"
	}
}
