package backend

import (
	"context"
	"net/http"
)

// CreateOrder places an order for the authenticated user.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest, optFns ...RequestOption) (Order, error) {
	if c == nil {
		return Order{}, ErrNotConfigured
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/orders", nil, in, collect(optFns))
	if err != nil {
		return Order{}, err
	}
	return do[Order](c, req)
}

// MyOrders lists the authenticated user's orders.
func (c *Client) MyOrders(ctx context.Context, optFns ...RequestOption) ([]Order, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/my", nil, nil, collect(optFns))
	if err != nil {
		return nil, err
	}
	return do[[]Order](c, req)
}

// ListOrders lists every order. Admin only.
func (c *Client) ListOrders(ctx context.Context, optFns ...RequestOption) ([]Order, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/orders", nil, nil, collect(optFns))
	if err != nil {
		return nil, err
	}
	return do[[]Order](c, req)
}

// UpdateOrderStatus moves an order to status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string, optFns ...RequestOption) (Order, error) {
	if c == nil {
		return Order{}, ErrNotConfigured
	}
	idParam, err := pathParam("id", id)
	if err != nil {
		return Order{}, err
	}
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/orders/"+idParam+"/status", nil, body, collect(optFns))
	if err != nil {
		return Order{}, err
	}
	return do[Order](c, req)
}
