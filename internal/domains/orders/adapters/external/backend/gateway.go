package backend

import (
	"context"
	"fmt"
	"net/http"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// Gateway implements the orders outbound port over the REST backend.
type Gateway struct {
	client *backendclient.Client
}

func NewGateway(client *backendclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (domain.Order, error) {
	order, err := g.client.CreateOrder(ctx, toCreateRequest(req), backendclient.WithToken(token))
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	return toOrder(order), nil
}

func (g *Gateway) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	orders, err := g.client.MyOrders(ctx, backendclient.WithToken(token))
	if err != nil {
		return nil, mapError(err)
	}
	return toOrders(orders), nil
}

func (g *Gateway) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	orders, err := g.client.ListOrders(ctx, backendclient.WithToken(token))
	if err != nil {
		return nil, mapError(err)
	}
	return toOrders(orders), nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, token string, id int64, status domain.Status) (domain.Order, error) {
	order, err := g.client.UpdateOrderStatus(ctx, id, string(status), backendclient.WithToken(token))
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	return toOrder(order), nil
}

func toCreateRequest(req domain.OrderRequest) backendclient.CreateOrderRequest {
	items := make([]backendclient.OrderLine, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, backendclient.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return backendclient.CreateOrderRequest{
		Items: items,
		Shipping: backendclient.Shipping{
			Name:   req.Shipping.Name,
			Phone:  req.Shipping.Phone,
			City:   req.Shipping.City,
			Street: req.Shipping.Street,
			Notes:  req.Shipping.Notes,
		},
		PaymentMethod: req.PaymentMethod,
	}
}

func toOrders(orders []backendclient.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}

func toOrder(o backendclient.Order) domain.Order {
	out := domain.Order{
		ID:             o.ID,
		UserID:         o.UserID,
		Status:         domain.Status(o.Status),
		Total:          o.Total,
		PaymentMethod:  o.PaymentMethod,
		ShippingName:   o.ShippingName,
		ShippingPhone:  o.ShippingPhone,
		ShippingCity:   o.ShippingCity,
		ShippingStreet: o.ShippingStreet,
		ShippingNotes:  o.ShippingNotes,
		CreatedAt:      o.CreatedAt,
		Items:          make([]domain.OrderItem, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		mapped := domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		if item.Product != nil {
			mapped.Name = item.Product.NameEn
			if mapped.Name == "" {
				mapped.Name = item.Product.Name
			}
		}
		out.Items = append(out.Items, mapped)
	}
	return out
}

func mapError(err error) error {
	switch backendclient.StatusCode(err) {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", domain.ErrSignInRequired, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	default:
		return err
	}
}

var _ ports.Gateway = (*Gateway)(nil)
