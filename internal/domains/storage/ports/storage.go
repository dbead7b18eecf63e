package ports

import "context"

// Keys used by the storefront inside a browser session namespace.
const (
	KeyCart     = "cart"
	KeyToken    = "token"
	KeyLanguage = "language"
)

// LocalStorage is a string-keyed store scoped to one browser session.
type LocalStorage interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes the key; removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Provider hands out per-session LocalStorage namespaces.
type Provider interface {
	Namespace(sessionID string) LocalStorage
	// Drop removes every key stored for the session.
	Drop(ctx context.Context, sessionID string) error
}
