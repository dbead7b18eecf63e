package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned by callers validating a quantity before it reaches the store.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// ProductImage is an image attached to a product snapshot.
type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
}

// Product is the snapshot of a product's displayable fields taken when it is added to the cart.
// The cart never re-fetches or validates it.
type Product struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	NameEn        string         `json:"name_en,omitempty"`
	NameAr        string         `json:"name_ar,omitempty"`
	Description   string         `json:"description,omitempty"`
	DescriptionEn string         `json:"description_en,omitempty"`
	DescriptionAr string         `json:"description_ar,omitempty"`
	Price         float64        `json:"price"`
	Stock         int            `json:"stock"`
	SKU           string         `json:"sku,omitempty"`
	CategoryID    int64          `json:"category_id,omitempty"`
	IsFeatured    bool           `json:"is_featured,omitempty"`
	Images        []ProductImage `json:"images,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (p Product) Clone() Product {
	if p.Images != nil {
		p.Images = append([]ProductImage(nil), p.Images...)
	}
	return p
}

// Line pairs a product snapshot with a positive quantity.
type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is the ordered list of lines, at most one per product id.
type Cart []Line

// Total sums price*quantity over every line.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c {
		total += line.Subtotal()
	}
	return total
}

// ItemCount sums the quantities of every line.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// IndexOf returns the position of productID or -1.
func (c Cart) IndexOf(productID int64) int {
	for i, line := range c {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// QuantityOf returns the quantity held for productID, zero when absent.
func (c Cart) QuantityOf(productID int64) int {
	if i := c.IndexOf(productID); i >= 0 {
		return c[i].Quantity
	}
	return 0
}

// Clone returns a deep copy that shares nothing with c. A nil cart clones to an empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for i, line := range c {
		out[i] = Line{Product: line.Product.Clone(), Quantity: line.Quantity}
	}
	return out
}

// FormatAmount renders a floating-point amount with two decimals for display.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
