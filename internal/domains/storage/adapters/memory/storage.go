package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
)

var (
	_ ports.Provider     = (*Provider)(nil)
	_ ports.LocalStorage = (*namespace)(nil)
)

// Provider keeps every namespace in process memory. Used for demos/tests and as the fallback
// when PostgreSQL is not configured.
type Provider struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewProvider constructs an empty in-memory provider.
func NewProvider() *Provider {
	return &Provider{items: map[string]map[string]string{}}
}

// Namespace returns the storage scoped to sessionID.
func (p *Provider) Namespace(sessionID string) ports.LocalStorage {
	return &namespace{provider: p, id: sessionID}
}

// Drop forgets every key of the session.
func (p *Provider) Drop(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.items, sessionID)
	return nil
}

// Keys lists the keys currently stored for a session.
func (p *Provider) Keys(sessionID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.items[sessionID]))
	for key := range p.items[sessionID] {
		keys = append(keys, key)
	}
	return keys
}

type namespace struct {
	provider *Provider
	id       string
}

func (n *namespace) GetItem(_ context.Context, key string) (string, bool, error) {
	n.provider.mu.RLock()
	defer n.provider.mu.RUnlock()
	value, ok := n.provider.items[n.id][key]
	return value, ok, nil
}

func (n *namespace) SetItem(_ context.Context, key, value string) error {
	n.provider.mu.Lock()
	defer n.provider.mu.Unlock()
	bucket, ok := n.provider.items[n.id]
	if !ok {
		bucket = map[string]string{}
		n.provider.items[n.id] = bucket
	}
	bucket[key] = value
	return nil
}

func (n *namespace) RemoveItem(_ context.Context, key string) error {
	n.provider.mu.Lock()
	defer n.provider.mu.Unlock()
	bucket, ok := n.provider.items[n.id]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(n.provider.items, n.id)
	}
	return nil
}
