package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, status)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Delivered", StatusDelivered.Label(false))
	assert.Equal(t, "تم التوصيل", StatusDelivered.Label(true))
	assert.Equal(t, "refunded", Status("refunded").Label(true))
}

func TestNewOrderRequest(t *testing.T) {
	shipping := ShippingForm{Name: " Lina ", Phone: "0100", City: "Cairo", Street: "Nile St"}
	lines := []OrderLine{{ProductID: 1, Quantity: 2}}

	req, err := NewOrderRequest(lines, shipping, "")
	require.NoError(t, err)
	assert.Equal(t, PaymentCashOnDelivery, req.PaymentMethod)
	assert.Equal(t, "Lina", req.Shipping.Name)

	_, err = NewOrderRequest(nil, shipping, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = NewOrderRequest(lines, ShippingForm{Name: "Lina"}, "")
	assert.ErrorIs(t, err, ErrMissingShipping)

	_, err = NewOrderRequest(lines, shipping, "card")
	assert.ErrorIs(t, err, ErrUnsupportedPayment)
}
