package backend

import (
	"context"
	"fmt"
	"net/http"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
)

// Gateway implements the accounts outbound port over the backend /auth endpoints.
type Gateway struct {
	client *backendclient.Client
}

func NewGateway(client *backendclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Login(ctx context.Context, creds domain.Credentials) (ports.Session, error) {
	result, err := g.client.Login(ctx, backendclient.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return ports.Session{}, mapError(err)
	}
	return toSession(result), nil
}

func (g *Gateway) Register(ctx context.Context, reg domain.Registration) (ports.Session, error) {
	result, err := g.client.Register(ctx, backendclient.RegisterRequest{Name: reg.Name, Email: reg.Email, Password: reg.Password})
	if err != nil {
		return ports.Session{}, mapError(err)
	}
	return toSession(result), nil
}

func (g *Gateway) Me(ctx context.Context, token string) (domain.User, error) {
	user, err := g.client.Me(ctx, backendclient.WithToken(token))
	if err != nil {
		return domain.User{}, mapError(err)
	}
	return toUser(user), nil
}

func toSession(result backendclient.AuthResult) ports.Session {
	return ports.Session{User: toUser(result.User), Token: result.Token}
}

func toUser(u backendclient.User) domain.User {
	return domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func mapError(err error) error {
	switch backendclient.StatusCode(err) {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	default:
		return err
	}
}

var _ ports.Gateway = (*Gateway)(nil)
