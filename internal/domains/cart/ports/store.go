package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Store is the single source of truth for one browser session's cart.
//
// Mutations never fail from the caller's point of view; persistence problems are handled inside
// the store.
type Store interface {
	AddItem(ctx context.Context, product domain.Product, quantity int)
	RemoveItem(ctx context.Context, productID int64)
	SetQuantity(ctx context.Context, productID int64, quantity int)
	Clear(ctx context.Context)
	// Subtract takes the quantities of placed out of the cart, leaving anything added since.
	Subtract(ctx context.Context, placed domain.Cart)
	Items() domain.Cart
	Total() float64
	ItemCount() int
	// Subscribe delivers the current cart immediately and again after every change.
	Subscribe(observer func(domain.Cart)) (unsubscribe func())
}
