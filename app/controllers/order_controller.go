package controllers

import (
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

func (oc *OrderController) List(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	orders, pagination, err := oc.service.List(id, page, perPage)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Paginated(c.W, orders, pagination)
}

func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	order, err := oc.service.GetByNumber(id, c.Param("number"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(order)
}
