// Package controllers maps HTTP requests onto the service layer and service
// errors onto the JSON envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/logger"
	"github.com/anikasharma/greenbasket/pkg/middleware"
)

// respondErr translates service sentinels into envelope responses. Unknown
// errors are logged and hidden behind a generic 500.
func respondErr(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized("Invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		c.Error(http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrShopNameTaken):
		c.Error(http.StatusConflict, "Shop name already taken")
	case errors.Is(err, services.ErrAlreadySeller):
		c.Error(http.StatusConflict, "Account already has a shop")
	case errors.Is(err, services.ErrAlreadyReviewed):
		c.Error(http.StatusConflict, "Product already reviewed for this purchase")
	case errors.Is(err, services.ErrQuestionAnswered):
		c.Error(http.StatusConflict, "Question already answered")
	case errors.Is(err, services.ErrNotSellersQuestion):
		c.Forbidden()
	case errors.Is(err, services.ErrCartEmpty):
		c.Error(http.StatusUnprocessableEntity, "Cart is empty")
	case errors.Is(err, services.ErrNotEligible):
		c.Error(http.StatusUnprocessableEntity, "Only delivered purchases can be reviewed")
	case errors.Is(err, services.ErrInvalidTransition):
		c.Error(http.StatusUnprocessableEntity, "Invalid status transition")
	case errors.Is(err, services.ErrImageTooLarge):
		c.Error(http.StatusUnprocessableEntity, "Image exceeds the 5MB limit")
	case errors.Is(err, services.ErrImageExtension):
		c.Error(http.StatusUnprocessableEntity, "Image must be .jpg, .jpeg, .png or .gif")
	case errors.Is(err, services.ErrOrderNumberBusy):
		c.Error(http.StatusServiceUnavailable, "Could not allocate an order number, retry")
	default:
		logger.WithCtx(c.R.Context()).Error("unhandled service error", "error", err)
		c.Error(http.StatusInternalServerError, "Something went wrong")
	}
}

// userID pulls the authenticated user's id out of the request context.
// Routes behind the auth middleware always have it.
func userID(c *ctx.Context) (uint, bool) {
	id, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
	}
	return id, ok
}

// paramID parses a numeric path parameter.
func paramID(c *ctx.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Error(http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the page/per_page query parameters.
func pageParams(c *ctx.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return page, perPage
}
