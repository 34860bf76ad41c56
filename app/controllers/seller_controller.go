package controllers

import (
	"net/http"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/app/stream"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/response"
	"github.com/anikasharma/greenbasket/pkg/ws"
)

// SellerController serves the seller-scoped surface. Every handler first
// resolves the seller record behind the authenticated user; role middleware
// has already filtered out plain customers.
type SellerController struct {
	sellers  *services.SellerService
	products *services.ProductService
	reviews  *services.ReviewService
}

func NewSellerController() *SellerController {
	return &SellerController{
		sellers:  services.NewSellerService(),
		products: services.NewProductService(),
		reviews:  services.NewReviewService(),
	}
}

func (sc *SellerController) seller(c *ctx.Context) (models.Seller, bool) {
	id, ok := userID(c)
	if !ok {
		return models.Seller{}, false
	}
	seller, err := sc.sellers.ByUser(id)
	if err != nil {
		respondErr(c, err)
		return models.Seller{}, false
	}
	return seller, true
}

// Register opens a shop for the authenticated user. This one runs outside
// the seller role group since the caller is still a plain customer.
func (sc *SellerController) Register(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var input services.RegisterSellerInput
	if !c.BindJSON(&input) {
		return
	}

	seller, err := sc.sellers.Register(id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Created(seller)
}

func (sc *SellerController) Profile(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	c.Success(seller)
}

func (sc *SellerController) UpdateProfile(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}

	var input services.UpdateShopInput
	if !c.BindJSON(&input) {
		return
	}

	updated, err := sc.sellers.UpdateShop(seller.ID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(updated)
}

func (sc *SellerController) UploadLogo(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}

	file, header, err := c.R.FormFile("logo")
	if err != nil {
		c.Error(http.StatusBadRequest, "Missing logo file")
		return
	}
	defer file.Close()

	updated, err := sc.sellers.UploadLogo(seller.ID, header.Filename, header.Size, file)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(updated)
}

func (sc *SellerController) Dashboard(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}

	dashboard, err := sc.sellers.Dashboard(seller.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(dashboard)
}

// ─── Products ─────────────────────────────────────────────────────────────────

func (sc *SellerController) Products(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	products, pagination, err := sc.products.BySeller(seller.ID, page, perPage)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Paginated(c.W, products, pagination)
}

func (sc *SellerController) CreateProduct(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}

	var input services.ProductInput
	if !c.BindJSON(&input) {
		return
	}

	product, err := sc.products.Create(seller.ID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Created(product)
}

func (sc *SellerController) UpdateProduct(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.ProductInput
	if !c.BindJSON(&input) {
		return
	}

	product, err := sc.products.Update(seller.ID, productID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(product)
}

func (sc *SellerController) DeleteProduct(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := sc.products.Delete(seller.ID, productID); err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]string{"message": "Product deleted"})
}

func (sc *SellerController) UploadProductImage(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	product, err := sc.products.UploadImage(seller.ID, productID, header.Filename, header.Size, file)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(product)
}

// ─── Orders ───────────────────────────────────────────────────────────────────

func (sc *SellerController) Orders(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	orders, pagination, err := sc.sellers.Orders(seller.ID, page, perPage)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Paginated(c.W, orders, pagination)
}

func (sc *SellerController) Order(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := sc.sellers.Order(seller.ID, orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(order)
}

func (sc *SellerController) UpdateOrderStatus(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateFulfillmentInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := sc.sellers.UpdateFulfillment(seller.ID, orderID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(order)
}

// OrderStream upgrades to a websocket carrying the seller's live order feed.
func (sc *SellerController) OrderStream(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	ws.Upgrade(c.W, c.R, stream.SellerHub(seller.ID))
}

// ─── Questions ────────────────────────────────────────────────────────────────

func (sc *SellerController) Questions(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	questions, pagination, err := sc.reviews.UnansweredForSeller(seller.ID, page, perPage)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Paginated(c.W, questions, pagination)
}

func (sc *SellerController) AnswerQuestion(c *ctx.Context) {
	seller, ok := sc.seller(c)
	if !ok {
		return
	}
	id, _ := userID(c)
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.AnswerQuestionInput
	if !c.BindJSON(&input) {
		return
	}

	question, err := sc.reviews.Answer(id, seller.ID, questionID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(question)
}
