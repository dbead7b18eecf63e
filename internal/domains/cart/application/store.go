package application

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	storageports "github.com/Apurer/go-gin-storefront/internal/domains/storage/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/observable"
)

var _ ports.Store = (*Store)(nil)

// Store owns a cart, mirrors it to local storage under the "cart" key, and publishes every change.
type Store struct {
	storage storageports.LocalStorage
	logger  *slog.Logger
	state   *observable.Subject[domain.Cart]
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs a store and rehydrates it once from storage. Missing or unreadable data
// yields an empty cart.
func NewStore(ctx context.Context, storage storageports.LocalStorage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.state = observable.NewSubject(s.load(ctx), observable.WithClone(domain.Cart.Clone))
	return s
}

// AddItem merges quantity into the line for product.ID, appending a new line when absent.
// Quantities below one are ignored; stock limits are the caller's concern.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		return
	}
	s.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		next := cart.Clone()
		if i := next.IndexOf(product.ID); i >= 0 {
			next[i].Quantity += quantity
			return next, true
		}
		return append(next, domain.Line{Product: product.Clone(), Quantity: quantity}), true
	})
}

// RemoveItem deletes the line for productID if present.
func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	s.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		i := cart.IndexOf(productID)
		if i < 0 {
			return cart, false
		}
		next := make(domain.Cart, 0, len(cart)-1)
		next = append(next, cart[:i]...)
		next = append(next, cart[i+1:]...)
		return next.Clone(), true
	})
}

// SetQuantity sets the exact quantity for productID. Zero or below removes the line.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}
	s.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		i := cart.IndexOf(productID)
		if i < 0 || cart[i].Quantity == quantity {
			return cart, false
		}
		next := cart.Clone()
		next[i].Quantity = quantity
		return next, true
	})
}

// Clear empties the cart and deletes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.state.Update(func(cart domain.Cart) (domain.Cart, bool) {
		if err := s.storage.RemoveItem(ctx, storageports.KeyCart); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to remove persisted cart", slog.String("error", err.Error()))
		}
		return domain.Cart{}, len(cart) > 0
	})
}

// Subtract takes the quantities in placed out of the matching lines. Lines that reach zero are
// dropped; lines and quantities added after placed was read survive. An emptied cart deletes the
// snapshot like Clear.
func (s *Store) Subtract(ctx context.Context, placed domain.Cart) {
	remaining := make(map[int64]int, len(placed))
	for _, line := range placed {
		if line.Quantity > 0 {
			remaining[line.Product.ID] += line.Quantity
		}
	}
	if len(remaining) == 0 {
		return
	}
	s.state.Update(func(cart domain.Cart) (domain.Cart, bool) {
		next := make(domain.Cart, 0, len(cart))
		changed := false
		for _, line := range cart {
			if take := min(remaining[line.Product.ID], line.Quantity); take > 0 {
				remaining[line.Product.ID] -= take
				line.Quantity -= take
				changed = true
				if line.Quantity == 0 {
					continue
				}
			}
			next = append(next, domain.Line{Product: line.Product.Clone(), Quantity: line.Quantity})
		}
		if !changed {
			return cart, false
		}
		if len(next) == 0 {
			if err := s.storage.RemoveItem(ctx, storageports.KeyCart); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "failed to remove persisted cart", slog.String("error", err.Error()))
			}
			return next, true
		}
		s.persist(ctx, next)
		return next, true
	})
}

// Items returns a copy of the current lines.
func (s *Store) Items() domain.Cart {
	return s.state.Value()
}

// Total returns the sum of price*quantity.
func (s *Store) Total() float64 {
	return s.state.Value().Total()
}

// ItemCount returns the sum of quantities.
func (s *Store) ItemCount() int {
	return s.state.Value().ItemCount()
}

// Subscribe delivers the current cart now and after every change.
func (s *Store) Subscribe(observer func(domain.Cart)) func() {
	return s.state.Subscribe(observer)
}

func (s *Store) mutate(ctx context.Context, fn func(domain.Cart) (domain.Cart, bool)) {
	s.state.Update(func(cart domain.Cart) (domain.Cart, bool) {
		next, changed := fn(cart)
		if changed {
			s.persist(ctx, next)
		}
		return next, changed
	})
}

func (s *Store) persist(ctx context.Context, cart domain.Cart) {
	payload, err := json.Marshal(cart)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to encode cart", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.SetItem(ctx, storageports.KeyCart, string(payload)); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to persist cart", slog.String("error", err.Error()))
	}
}

func (s *Store) load(ctx context.Context) domain.Cart {
	raw, ok, err := s.storage.GetItem(ctx, storageports.KeyCart)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read persisted cart, starting empty", slog.String("error", err.Error()))
		return domain.Cart{}
	}
	if !ok {
		return domain.Cart{}
	}
	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// Corrupted snapshots are discarded, not repaired; the key is overwritten on the next mutation.
		s.logger.LogAttrs(ctx, slog.LevelWarn, "discarding corrupted cart snapshot", slog.String("error", err.Error()))
		return domain.Cart{}
	}
	// Snapshots are rehydrated as stored; only mutations rewrite them.
	if cart == nil {
		return domain.Cart{}
	}
	return cart
}
