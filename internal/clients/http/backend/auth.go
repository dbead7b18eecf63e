package backend

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, in LoginRequest) (AuthResult, error) {
	if c == nil {
		return AuthResult{}, ErrNotConfigured
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/login", nil, in, requestOptions{})
	if err != nil {
		return AuthResult{}, err
	}
	return do[AuthResult](c, req)
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (AuthResult, error) {
	if c == nil {
		return AuthResult{}, ErrNotConfigured
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/register", nil, in, requestOptions{})
	if err != nil {
		return AuthResult{}, err
	}
	return do[AuthResult](c, req)
}

// Me returns the user owning the token passed via WithToken.
func (c *Client) Me(ctx context.Context, optFns ...RequestOption) (User, error) {
	if c == nil {
		return User{}, ErrNotConfigured
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", nil, nil, collect(optFns))
	if err != nil {
		return User{}, err
	}
	out, err := do[struct {
		User User `json:"user"`
	}](c, req)
	if err != nil {
		return User{}, err
	}
	return out.User, nil
}
