package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
)

// ErrInvalidInput signals a malformed login or registration form.
var ErrInvalidInput = errors.New("invalid account input")

type Service struct {
	gateway ports.Gateway
}

func NewService(gateway ports.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Login authenticates and stores the issued token in the session.
func (s *Service) Login(ctx context.Context, tokens ports.TokenStore, creds domain.Credentials) (domain.User, error) {
	creds, err := creds.Validate()
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	session, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}
	return s.signIn(ctx, tokens, session)
}

// Register creates the account and signs the session in.
func (s *Service) Register(ctx context.Context, tokens ports.TokenStore, reg domain.Registration) (domain.User, error) {
	reg, err := reg.Validate()
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	session, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}
	return s.signIn(ctx, tokens, session)
}

// Me resolves the signed-in user. A token the backend rejects is dropped.
func (s *Service) Me(ctx context.Context, tokens ports.TokenStore) (domain.User, error) {
	token, ok := tokens.Token(ctx)
	if !ok {
		return domain.User{}, domain.ErrUnauthenticated
	}
	user, err := s.gateway.Me(ctx, token)
	if errors.Is(err, domain.ErrUnauthenticated) {
		if clearErr := tokens.ClearToken(ctx); clearErr != nil {
			return domain.User{}, errors.Join(err, clearErr)
		}
	}
	return user, err
}

func (s *Service) RequireAdmin(ctx context.Context, tokens ports.TokenStore) (domain.User, error) {
	user, err := s.Me(ctx, tokens)
	if err != nil {
		return domain.User{}, err
	}
	if !user.IsAdmin() {
		return domain.User{}, domain.ErrForbidden
	}
	return user, nil
}

// Logout forgets the token. The backend keeps no server-side session to revoke.
func (s *Service) Logout(ctx context.Context, tokens ports.TokenStore) error {
	return tokens.ClearToken(ctx)
}

func (s *Service) signIn(ctx context.Context, tokens ports.TokenStore, session ports.Session) (domain.User, error) {
	if session.Token == "" {
		return domain.User{}, errors.New("backend issued an empty token")
	}
	if err := tokens.SetToken(ctx, session.Token); err != nil {
		return domain.User{}, fmt.Errorf("store token: %w", err)
	}
	return session.User, nil
}

var _ ports.Service = (*Service)(nil)
