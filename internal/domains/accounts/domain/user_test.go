package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, User{Role: "admin"}.IsAdmin())
	assert.False(t, User{Role: "customer"}.IsAdmin())
	assert.False(t, User{}.IsAdmin())
}

func TestCredentials_Validate(t *testing.T) {
	creds, err := Credentials{Email: " a@b.co ", Password: "pw"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", creds.Email)

	_, err = Credentials{Email: "a@b.co"}.Validate()
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = Credentials{Email: "not-an-email", Password: "pw"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegistration_Validate(t *testing.T) {
	_, err := Registration{Email: "a@b.co", Password: "pw"}.Validate()
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = Registration{Name: "Lina"}.Validate()
	assert.ErrorIs(t, err, ErrMissingCredentials)

	reg, err := Registration{Name: " Lina ", Email: "a@b.co", Password: "pw"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Lina", reg.Name)
}
