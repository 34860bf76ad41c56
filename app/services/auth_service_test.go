package services

import (
	"testing"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, tokens, err := svc.Register(RegisterInput{
		Name:                 "Anika",
		Email:                "anika@example.com",
		Password:             "sup3rsecret",
		PasswordConfirmation: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.True(t, auth.CheckPassword(user.Password, "sup3rsecret"), "password must be stored hashed")
	assert.NotEqual(t, "sup3rsecret", user.Password)

	// Duplicate email.
	_, _, err = svc.Register(RegisterInput{
		Name:                 "Imposter",
		Email:                "anika@example.com",
		Password:             "whatever1",
		PasswordConfirmation: "whatever1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Login(LoginInput{Email: "anika@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(LoginInput{Email: "nobody@example.com", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, pair, err := svc.Login(LoginInput{Email: "anika@example.com", Password: "sup3rsecret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	refreshed, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestChangePassword(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, _, err := svc.Register(RegisterInput{
		Name:                 "Anika",
		Email:                "anika@example.com",
		Password:             "oldpassword",
		PasswordConfirmation: "oldpassword",
	})
	require.NoError(t, err)

	user, _, err := svc.Login(LoginInput{Email: "anika@example.com", Password: "oldpassword"})
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, ChangePasswordInput{
		CurrentPassword:      "wrong",
		Password:             "newpassword",
		PasswordConfirmation: "newpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(user.ID, ChangePasswordInput{
		CurrentPassword:      "oldpassword",
		Password:             "newpassword",
		PasswordConfirmation: "newpassword",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "anika@example.com", Password: "newpassword"})
	assert.NoError(t, err)
}
