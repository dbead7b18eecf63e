package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const RoleAdmin = "admin"

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingName        = errors.New("name is required")
	ErrInvalidEmail       = errors.New("email is not a valid address")
	ErrUnauthenticated    = errors.New("not signed in")
	ErrForbidden          = errors.New("admin role required")
)

type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials are the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() (Credentials, error) {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return c, ErrMissingCredentials
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, ErrInvalidEmail
	}
	return c, nil
}

// Registration is the sign-up form.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r Registration) Validate() (Registration, error) {
	r.Name = strings.TrimSpace(r.Name)
	creds, err := Credentials{Email: r.Email, Password: r.Password}.Validate()
	r.Email = creds.Email
	if r.Name == "" {
		return r, errors.Join(ErrMissingName, err)
	}
	return r, err
}
