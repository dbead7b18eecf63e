package application

import (
	"context"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
	storageports "github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
)

// Preferences reads and writes the language and token keys of one browser session.
type Preferences struct {
	storage storageports.LocalStorage
}

// New binds preferences to a session's storage.
func New(storage storageports.LocalStorage) *Preferences {
	return &Preferences{storage: storage}
}

// Language returns the stored language, or en when nothing valid is stored.
func (p *Preferences) Language(ctx context.Context) domain.Language {
	raw, ok, err := p.storage.GetItem(ctx, storageports.KeyLanguage)
	if err != nil || !ok {
		return domain.DefaultLanguage
	}
	lang, err := domain.ParseLanguage(raw)
	if err != nil {
		return domain.DefaultLanguage
	}
	return lang
}

// SetLanguage validates and stores the language.
func (p *Preferences) SetLanguage(ctx context.Context, raw string) (domain.Language, error) {
	lang, err := domain.ParseLanguage(raw)
	if err != nil {
		return "", err
	}
	if err := p.storage.SetItem(ctx, storageports.KeyLanguage, string(lang)); err != nil {
		return "", err
	}
	return lang, nil
}

// Token returns the bearer credential of the signed-in user.
func (p *Preferences) Token(ctx context.Context) (string, bool) {
	raw, ok, err := p.storage.GetItem(ctx, storageports.KeyToken)
	if err != nil || !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

// SetToken stores the bearer credential.
func (p *Preferences) SetToken(ctx context.Context, token string) error {
	return p.storage.SetItem(ctx, storageports.KeyToken, strings.TrimSpace(token))
}

// ClearToken signs the session out.
func (p *Preferences) ClearToken(ctx context.Context) error {
	return p.storage.RemoveItem(ctx, storageports.KeyToken)
}
