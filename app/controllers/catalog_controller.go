package controllers

import (
	"strconv"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/app/resources"
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/resource"
)

// CatalogController serves the public product browsing surface.
type CatalogController struct {
	products *services.ProductService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{products: services.NewProductService()}
}

func (cc *CatalogController) List(c *ctx.Context) {
	page, perPage := pageParams(c)
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("q"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     c.Query("sort"),
		Page:     page,
		PerPage:  perPage,
	}

	products, pagination, err := cc.products.List(filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	resource.CollectionOf(&resources.ProductResource{}, products).
		WithPagination(pagination).
		Respond(c.W)
}

func (cc *CatalogController) Show(c *ctx.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := cc.products.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resource.New(&resources.ProductResource{}, product).Respond(c.W)
}

func (cc *CatalogController) Featured(c *ctx.Context) {
	products, err := cc.products.Featured(12)
	if err != nil {
		respondErr(c, err)
		return
	}
	resource.CollectionOf(&resources.ProductResource{}, products).Respond(c.W)
}

func (cc *CatalogController) Related(c *ctx.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	products, err := cc.products.Related(id, 8)
	if err != nil {
		respondErr(c, err)
		return
	}
	resource.CollectionOf(&resources.ProductResource{}, products).Respond(c.W)
}

func (cc *CatalogController) Categories(c *ctx.Context) {
	c.Success(models.Categories)
}
