package controllers

import (
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/response"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController() *ReviewController {
	return &ReviewController{service: services.NewReviewService()}
}

func (rc *ReviewController) List(c *ctx.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	reviews, pagination, err := rc.service.ForProduct(productID, page, perPage)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Paginated(c.W, reviews, pagination)
}

func (rc *ReviewController) Create(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.CreateReviewInput
	if !c.BindJSON(&input) {
		return
	}

	review, err := rc.service.Create(id, productID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Created(review)
}

func (rc *ReviewController) Questions(c *ctx.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	questions, pagination, err := rc.service.QuestionsForProduct(productID, page, perPage)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Paginated(c.W, questions, pagination)
}

func (rc *ReviewController) Ask(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.CreateQuestionInput
	if !c.BindJSON(&input) {
		return
	}

	question, err := rc.service.Ask(id, productID, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Created(question)
}
