package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_TotalAndItemCount(t *testing.T) {
	cart := Cart{
		{Product: Product{ID: 1, Price: 10}, Quantity: 2},
		{Product: Product{ID: 2, Price: 5}, Quantity: 3},
	}

	assert.InDelta(t, 35.0, cart.Total(), 1e-9)
	assert.Equal(t, 5, cart.ItemCount())
}

func TestCart_EmptyAggregates(t *testing.T) {
	var cart Cart
	assert.Zero(t, cart.Total())
	assert.Zero(t, cart.ItemCount())
	assert.Equal(t, -1, cart.IndexOf(1))
	assert.NotNil(t, cart.Clone())
}

func TestCart_CloneIsDeep(t *testing.T) {
	cart := Cart{{Product: Product{ID: 1, Images: []ProductImage{{ID: 7, URL: "a.png"}}}, Quantity: 1}}

	clone := cart.Clone()
	clone[0].Quantity = 9
	clone[0].Product.Images[0].URL = "b.png"

	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, "a.png", cart[0].Product.Images[0].URL)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "35.00", FormatAmount(35))
	assert.Equal(t, "0.30", FormatAmount(0.1+0.2))
	assert.Equal(t, "12.35", FormatAmount(12.345))
}
