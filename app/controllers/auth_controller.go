package controllers

import (
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

func (a *AuthController) Register(c *ctx.Context) {
	var input services.RegisterInput
	if !c.BindJSON(&input) {
		return
	}

	user, tokens, err := a.service.Register(input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Created(map[string]interface{}{"user": user, "tokens": tokens})
}

func (a *AuthController) Login(c *ctx.Context) {
	var input services.LoginInput
	if !c.BindJSON(&input) {
		return
	}

	user, tokens, err := a.service.Login(input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"user": user, "tokens": tokens})
}

func (a *AuthController) Refresh(c *ctx.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	tokens, err := a.service.Refresh(input.RefreshToken)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]interface{}{"tokens": tokens})
}

func (a *AuthController) ChangePassword(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var input services.ChangePasswordInput
	if !c.BindJSON(&input) {
		return
	}

	if err := a.service.ChangePassword(id, input); err != nil {
		respondErr(c, err)
		return
	}
	c.Success(map[string]string{"message": "Password updated"})
}
