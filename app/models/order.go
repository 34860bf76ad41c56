package models

import "gorm.io/gorm"

// Order statuses. An order moves forward through this lifecycle only;
// transitions outside the table below are rejected.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// statusTransitions is the allowed-transition table. DELIVERED and
// CANCELLED are terminal.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order or fulfillment may move from
// one status to the next.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// statusRank orders statuses by fulfillment progress, used to derive an
// order's aggregate status from its per-seller fulfillments.
var statusRank = map[string]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// Shipping methods and their fixed costs.
const (
	ShippingFree  = "FREE"
	ShippingFlat  = "FLAT"
	ShippingLocal = "LOCAL"
)

var shippingCosts = map[string]float64{
	ShippingFree:  0,
	ShippingFlat:  15.00,
	ShippingLocal: 8.00,
}

// ShippingCost maps a shipping method to its fixed cost. Unknown methods
// cost nothing rather than failing the checkout.
func ShippingCost(method string) float64 {
	return shippingCosts[method]
}

// Payment methods recorded on an order. Capture happens out of band.
const (
	PaymentBank   = "BANK"
	PaymentCheck  = "CHECK"
	PaymentCOD    = "COD"
	PaymentPaypal = "PAYPAL"
)

// Order is the immutable snapshot produced by a checkout. Only Status (and
// the per-seller fulfillments driving it) changes after creation.
type Order struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	OrderNumber string `gorm:"uniqueIndex;size:20;not null" json:"order_number"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Company   string `gorm:"size:150" json:"company"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:30;not null" json:"phone"`
	Address   string `gorm:"size:255;not null" json:"address"`
	City      string `gorm:"size:100;not null" json:"city"`
	Country   string `gorm:"size:100;not null" json:"country"`
	Postcode  string `gorm:"size:20;not null" json:"postcode"`
	Notes     string `gorm:"type:text" json:"notes"`

	ShippingMethod string  `gorm:"size:20;not null" json:"shipping_method"`
	ShippingCost   float64 `gorm:"not null" json:"shipping_cost"`
	PaymentMethod  string  `gorm:"size:20;not null" json:"payment_method"`
	Subtotal       float64 `gorm:"not null" json:"subtotal"`
	Total          float64 `gorm:"not null" json:"total"`
	Status         string  `gorm:"size:20;not null;default:PENDING" json:"status"`

	Items        []OrderItem        `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Fulfillments []OrderFulfillment `gorm:"constraint:OnDelete:CASCADE" json:"fulfillments"`
}

// OrderItem is one product line frozen at purchase time. Price is copied
// from the product's discounted price when the order is created, so later
// catalogue edits never alter historical orders.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	SellerID  *uint   `gorm:"index" json:"seller_id"` // denormalised for seller-scoped views
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"`
	Product   Product `json:"product"`
}

// OrderFulfillment tracks one seller's share of an order. Each seller moves
// only their own fulfillment; the order's Status is derived from the set.
type OrderFulfillment struct {
	gorm.Model
	OrderID  uint   `gorm:"uniqueIndex:idx_order_seller;not null" json:"order_id"`
	SellerID uint   `gorm:"uniqueIndex:idx_order_seller;index;not null" json:"seller_id"`
	Status   string `gorm:"size:20;not null;default:PENDING" json:"status"`
}

// DeriveStatus computes an order's aggregate status from its fulfillments:
// the least-advanced non-cancelled stage. If every fulfillment is cancelled
// the order is cancelled. An empty set leaves the order pending.
func DeriveStatus(fulfillments []OrderFulfillment) string {
	if len(fulfillments) == 0 {
		return StatusPending
	}

	derived := ""
	rank := -1
	for _, f := range fulfillments {
		if f.Status == StatusCancelled {
			continue
		}
		r := statusRank[f.Status]
		if rank == -1 || r < rank {
			rank = r
			derived = f.Status
		}
	}

	if derived == "" {
		return StatusCancelled
	}
	return derived
}
