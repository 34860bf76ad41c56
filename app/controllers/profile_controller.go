package controllers

import (
	"net/http"

	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
)

type ProfileController struct {
	service *services.ProfileService
}

func NewProfileController() *ProfileController {
	return &ProfileController{service: services.NewProfileService()}
}

func (pc *ProfileController) Show(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	profile, err := pc.service.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(profile)
}

func (pc *ProfileController) Update(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var input services.UpdateProfileInput
	if !c.BindJSON(&input) {
		return
	}

	profile, err := pc.service.Update(id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(profile)
}

// UploadImage accepts a multipart form with an "image" field.
func (pc *ProfileController) UploadImage(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	profile, err := pc.service.UploadImage(id, header.Filename, header.Size, file)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(profile)
}
