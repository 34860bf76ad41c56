package services

import (
	"errors"
	"io"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/app/stream"
	"github.com/anikasharma/greenbasket/pkg/logger"
	"github.com/anikasharma/greenbasket/pkg/orm"
	"gorm.io/gorm"
)

// RegisterSellerInput opens a shop for an existing user account.
type RegisterSellerInput struct {
	ShopName string `json:"shop_name" validate:"required,min=3,max=150"`
	Bio      string `json:"bio" validate:"nullable,max=2000"`
}

type UpdateShopInput struct {
	ShopName string `json:"shop_name" validate:"required,min=3,max=150"`
	Bio      string `json:"bio" validate:"nullable,max=2000"`
}

type UpdateFulfillmentInput struct {
	Status string `json:"status" validate:"required,in=PROCESSING,SHIPPED,DELIVERED,CANCELLED"`
}

// Dashboard aggregates a seller's trading position. Everything is computed
// at read time; nothing here is stored.
type Dashboard struct {
	Earnings            float64          `json:"earnings"`
	OrderCount          int64            `json:"order_count"`
	ProductCount        int64            `json:"product_count"`
	UnansweredQuestions int64            `json:"unanswered_questions"`
	Fulfillments        map[string]int64 `json:"fulfillments"`
}

// SellerOrder is an order as one seller sees it: the shared header, only
// their own lines, and only their own fulfillment.
type SellerOrder struct {
	ID          uint               `json:"id"`
	OrderNumber string             `json:"order_number"`
	CreatedAt   string             `json:"created_at"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	City        string             `json:"city"`
	Country     string             `json:"country"`
	Items       []models.OrderItem `json:"items"`
	ItemsTotal  float64            `json:"items_total"`
	Status      string             `json:"status"`
}

type SellerService struct {
	sellers  *repositories.SellerRepository
	users    *repositories.UserRepository
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	reviews  *repositories.ReviewRepository
}

func NewSellerService() *SellerService {
	return &SellerService{
		sellers:  repositories.NewSellerRepository(),
		users:    repositories.NewUserRepository(),
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		reviews:  repositories.NewReviewRepository(),
	}
}

// Register opens a shop for the user and promotes their role. One shop per
// user; shop names are globally unique.
func (s *SellerService) Register(userID uint, input RegisterSellerInput) (models.Seller, error) {
	if _, err := s.sellers.FindByUser(userID); err == nil {
		return models.Seller{}, ErrAlreadySeller
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Seller{}, err
	}

	taken, err := s.sellers.ShopNameTaken(input.ShopName, 0)
	if err != nil {
		return models.Seller{}, err
	}
	if taken {
		return models.Seller{}, ErrShopNameTaken
	}

	seller := models.Seller{
		UserID:   userID,
		ShopName: input.ShopName,
		Bio:      input.Bio,
	}

	err = orm.Transaction(func(tx *orm.Query) error {
		if err := tx.Create(&seller); err != nil {
			return err
		}

		var user models.User
		if err := tx.Model(&models.User{}).Where("id = ?", userID).First(&user); err != nil {
			return err
		}
		user.Role = models.RoleSeller
		return tx.Save(&user)
	})
	if err != nil {
		return models.Seller{}, err
	}

	logger.Info("seller registered", "seller_id", seller.ID, "shop_name", seller.ShopName)
	return seller, nil
}

// ByUser resolves the seller record behind an authenticated user.
func (s *SellerService) ByUser(userID uint) (models.Seller, error) {
	seller, err := s.sellers.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Seller{}, ErrNotFound
	}
	return seller, err
}

// UpdateShop changes the shop's name and bio.
func (s *SellerService) UpdateShop(sellerID uint, input UpdateShopInput) (models.Seller, error) {
	seller, err := s.sellers.FindByID(sellerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Seller{}, ErrNotFound
	}
	if err != nil {
		return models.Seller{}, err
	}

	taken, err := s.sellers.ShopNameTaken(input.ShopName, sellerID)
	if err != nil {
		return models.Seller{}, err
	}
	if taken {
		return models.Seller{}, ErrShopNameTaken
	}

	seller.ShopName = input.ShopName
	seller.Bio = input.Bio
	if err := s.sellers.Update(&seller); err != nil {
		return models.Seller{}, err
	}
	return seller, nil
}

// UploadLogo validates and stores the shop logo.
func (s *SellerService) UploadLogo(sellerID uint, filename string, size int64, r io.Reader) (models.Seller, error) {
	seller, err := s.sellers.FindByID(sellerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Seller{}, ErrNotFound
	}
	if err != nil {
		return models.Seller{}, err
	}

	stored, err := SaveImage("logos", filename, size, r)
	if err != nil {
		return models.Seller{}, err
	}

	seller.ShopLogo = stored
	if err := s.sellers.Update(&seller); err != nil {
		return models.Seller{}, err
	}
	return seller, nil
}

// Dashboard computes the seller's aggregates.
func (s *SellerService) Dashboard(sellerID uint) (Dashboard, error) {
	earnings, err := s.orders.SellerEarnings(sellerID)
	if err != nil {
		return Dashboard{}, err
	}
	orderCount, err := s.orders.CountOrdersForSeller(sellerID)
	if err != nil {
		return Dashboard{}, err
	}
	productCount, err := s.products.CountBySeller(sellerID)
	if err != nil {
		return Dashboard{}, err
	}
	questionCount, err := s.reviews.CountUnansweredForSeller(sellerID)
	if err != nil {
		return Dashboard{}, err
	}
	fulfillments, err := s.orders.CountFulfillmentsByStatus(sellerID)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Earnings:            earnings,
		OrderCount:          orderCount,
		ProductCount:        productCount,
		UnansweredQuestions: questionCount,
		Fulfillments:        fulfillments,
	}, nil
}

// Orders returns the seller's view of orders containing their items. Other
// sellers' lines and the customer's full billing details stay hidden.
func (s *SellerService) Orders(sellerID uint, page, perPage int) ([]SellerOrder, orm.Pagination, error) {
	orders, pagination, err := s.orders.ListForSeller(sellerID, page, perPage)
	if err != nil {
		return nil, orm.Pagination{}, err
	}

	views := make([]SellerOrder, 0, len(orders))
	for _, order := range orders {
		views = append(views, sellerView(order, sellerID))
	}
	return views, pagination, nil
}

// Order returns a single order in the seller's view.
func (s *SellerService) Order(sellerID, orderID uint) (SellerOrder, error) {
	order, err := s.orders.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SellerOrder{}, ErrNotFound
	}
	if err != nil {
		return SellerOrder{}, err
	}

	view := sellerView(order, sellerID)
	if len(view.Items) == 0 || view.Status == "" {
		// No line or no fulfillment of this order belongs to the seller.
		return SellerOrder{}, ErrNotFound
	}
	return view, nil
}

// sellerView leaves Status empty when the order carries no fulfillment for
// the seller; callers treat that as not-found.
func sellerView(order models.Order, sellerID uint) SellerOrder {
	view := SellerOrder{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		FirstName:   order.FirstName,
		LastName:    order.LastName,
		City:        order.City,
		Country:     order.Country,
	}
	for _, item := range order.Items {
		if item.SellerID != nil && *item.SellerID == sellerID {
			view.Items = append(view.Items, item)
			view.ItemsTotal += item.Subtotal
		}
	}
	for _, f := range order.Fulfillments {
		if f.SellerID == sellerID {
			view.Status = f.Status
			break
		}
	}
	return view
}

// UpdateFulfillment moves the seller's fulfillment along the status
// lifecycle and re-derives the order's aggregate status in the same
// transaction. Illegal transitions are rejected without touching anything.
func (s *SellerService) UpdateFulfillment(sellerID, orderID uint, input UpdateFulfillmentInput) (models.Order, error) {
	if !models.ValidStatus(input.Status) {
		return models.Order{}, ErrInvalidTransition
	}

	err := orm.Transaction(func(tx *orm.Query) error {
		var f models.OrderFulfillment
		err := tx.Model(&models.OrderFulfillment{}).
			ForUpdate().
			Where("order_id = ? AND seller_id = ?", orderID, sellerID).
			First(&f)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if !models.CanTransition(f.Status, input.Status) {
			return ErrInvalidTransition
		}

		f.Status = input.Status
		if err := tx.Save(&f); err != nil {
			return err
		}

		var all []models.OrderFulfillment
		if err := tx.Model(&models.OrderFulfillment{}).
			Where("order_id = ?", orderID).
			Get(&all); err != nil {
			return err
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{"status": models.DeriveStatus(all)})
	})
	if err != nil {
		return models.Order{}, err
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}

	logger.Info("fulfillment updated",
		"order_id", orderID,
		"seller_id", sellerID,
		"status", input.Status,
		"order_status", order.Status,
	)
	stream.NotifyOrderUpdated(order)
	return order, nil
}
