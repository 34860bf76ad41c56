package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map them onto
// HTTP status codes; anything not listed here surfaces as a 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("not allowed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	ErrCartEmpty       = errors.New("cart is empty")
	ErrOrderNumberBusy = errors.New("could not allocate a unique order number")

	ErrNotEligible     = errors.New("only verified purchasers of a delivered order can review")
	ErrAlreadyReviewed = errors.New("product already reviewed for this order")

	ErrAlreadySeller      = errors.New("user already has a shop")
	ErrShopNameTaken      = errors.New("shop name already in use")
	ErrInvalidTransition  = errors.New("illegal status transition")
	ErrImageTooLarge      = errors.New("image exceeds the 5MB limit")
	ErrImageExtension     = errors.New("image must be .jpg, .jpeg, .png or .gif")
	ErrQuestionAnswered   = errors.New("question is already answered")
	ErrNotSellersQuestion = errors.New("question does not belong to one of your products")
)
