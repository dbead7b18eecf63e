package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
)

// Session is the signed-in state of one browser session.
type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Gateway is the outbound port to the backend auth endpoints.
// A rejected token surfaces as domain.ErrUnauthenticated.
type Gateway interface {
	Login(ctx context.Context, creds domain.Credentials) (Session, error)
	Register(ctx context.Context, reg domain.Registration) (Session, error)
	Me(ctx context.Context, token string) (domain.User, error)
}

// TokenStore keeps the bearer credential of a browser session.
type TokenStore interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Service defines the account use cases exposed to adapters.
type Service interface {
	Login(ctx context.Context, tokens TokenStore, creds domain.Credentials) (domain.User, error)
	Register(ctx context.Context, tokens TokenStore, reg domain.Registration) (domain.User, error)
	Me(ctx context.Context, tokens TokenStore) (domain.User, error)
	RequireAdmin(ctx context.Context, tokens TokenStore) (domain.User, error)
	Logout(ctx context.Context, tokens TokenStore) error
}
