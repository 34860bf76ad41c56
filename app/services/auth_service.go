package services

import (
	"errors"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/pkg/auth"
	"gorm.io/gorm"
)

// TokenPair is the access/refresh token pair issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Name                 string `json:"name" validate:"required,min=2,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginInput is the payload for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput is the payload for a password change.
type ChangePasswordInput struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a user account and issues tokens.
func (s *AuthService) Register(input RegisterInput) (models.User, TokenPair, error) {
	if _, err := s.users.FindByEmail(input.Email); err == nil {
		return models.User{}, TokenPair{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, TokenPair{}, err
	}

	tokens, err := s.issueTokens(user)
	return user, tokens, err
}

// Login verifies credentials and issues tokens.
func (s *AuthService) Login(input LoginInput) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	return user, tokens, err
}

// Refresh validates a refresh token and issues a fresh pair. The role is
// re-read from the database so a seller upgrade takes effect immediately.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(userID uint, input ChangePasswordInput) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return ErrNotFound
	}

	if !auth.CheckPassword(user.Password, input.CurrentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user.Password = hash
	return s.users.Update(&user)
}

func (s *AuthService) issueTokens(user models.User) (TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
