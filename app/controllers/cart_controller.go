package controllers

import (
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

func (cc *CartController) Show(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	cart, err := cc.service.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"cart": cart, "total": cart.Total()})
}

func (cc *CartController) AddItem(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var input services.AddItemInput
	if !c.BindJSON(&input) {
		return
	}

	cart, err := cc.service.AddItem(id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"cart": cart, "total": cart.Total()})
}

func (cc *CartController) UpdateItem(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "item")
	if !ok {
		return
	}

	var input services.UpdateItemInput
	if !c.BindJSON(&input) {
		return
	}

	cart, err := cc.service.UpdateItem(id, itemID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"cart": cart, "total": cart.Total()})
}

func (cc *CartController) RemoveItem(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "item")
	if !ok {
		return
	}

	cart, err := cc.service.RemoveItem(id, itemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"cart": cart, "total": cart.Total()})
}

func (cc *CartController) Clear(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	cart, err := cc.service.Clear(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"cart": cart, "total": cart.Total()})
}
