package controllers

import (
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
)

type CheckoutController struct {
	service *services.CheckoutService
}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{service: services.NewCheckoutService()}
}

// Place converts the cart into an order. An Idempotency-Key header makes
// retries of the same submission safe.
func (cc *CheckoutController) Place(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var input services.CheckoutInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := cc.service.PlaceOrder(id, input, c.Header("Idempotency-Key"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Created(order)
}
