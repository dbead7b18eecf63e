package domain

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentCashOnDelivery is the only payment method the storefront offers.
const PaymentCashOnDelivery = "cash_on_delivery"

var (
	ErrNotFound           = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSignInRequired     = errors.New("sign in to place orders")
	ErrInvalidStatus      = errors.New("status must be pending, paid, shipped, delivered or cancelled")
	ErrUnsupportedPayment = errors.New("unsupported payment method")
	ErrMissingShipping    = errors.New("shipping name, phone, city and street are required")
)

var statusLabels = map[Status][2]string{
	StatusPending:   {"Pending", "قيد الانتظار"},
	StatusPaid:      {"Paid", "مدفوع"},
	StatusShipped:   {"Shipped", "تم الشحن"},
	StatusDelivered: {"Delivered", "تم التوصيل"},
	StatusCancelled: {"Cancelled", "ملغي"},
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := statusLabels[s]; !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Label renders the status for display; unknown statuses render as-is.
func (s Status) Label(arabic bool) string {
	labels, ok := statusLabels[s]
	if !ok {
		return string(s)
	}
	if arabic {
		return labels[1]
	}
	return labels[0]
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type Order struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id"`
	Status         Status      `json:"status"`
	Total          float64     `json:"total"`
	PaymentMethod  string      `json:"payment_method"`
	ShippingName   string      `json:"shipping_name"`
	ShippingPhone  string      `json:"shipping_phone"`
	ShippingCity   string      `json:"shipping_city"`
	ShippingStreet string      `json:"shipping_street"`
	ShippingNotes  string      `json:"shipping_notes,omitempty"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ShippingForm is the delivery address collected at checkout.
type ShippingForm struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	City   string `json:"city"`
	Street string `json:"street"`
	Notes  string `json:"notes,omitempty"`
}

func (f ShippingForm) Validate() (ShippingForm, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.City = strings.TrimSpace(f.City)
	f.Street = strings.TrimSpace(f.Street)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.Name == "" || f.Phone == "" || f.City == "" || f.Street == "" {
		return f, ErrMissingShipping
	}
	return f, nil
}

// OrderLine is one cart line as sent to the backend.
type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is what checkout submits.
type OrderRequest struct {
	Items         []OrderLine  `json:"items"`
	Shipping      ShippingForm `json:"shipping"`
	PaymentMethod string       `json:"payment_method"`
}

// NewOrderRequest validates the checkout form. An empty payment method defaults to cash on delivery.
func NewOrderRequest(lines []OrderLine, shipping ShippingForm, paymentMethod string) (OrderRequest, error) {
	if len(lines) == 0 {
		return OrderRequest{}, ErrEmptyCart
	}
	shipping, err := shipping.Validate()
	if err != nil {
		return OrderRequest{}, err
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = PaymentCashOnDelivery
	}
	if paymentMethod != PaymentCashOnDelivery {
		return OrderRequest{}, ErrUnsupportedPayment
	}
	return OrderRequest{Items: lines, Shipping: shipping, PaymentMethod: paymentMethod}, nil
}
