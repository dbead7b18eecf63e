package domain

import (
	"strings"
	"time"
)

// LowStockThreshold is the stock level below which a product counts as running low.
const LowStockThreshold = 10

// PlaceholderImage is served for products without images.
const PlaceholderImage = "/assets/placeholder-product.svg"

type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
	NameAr string `json:"name_ar"`
	Slug   string `json:"slug"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
}

// Product is a catalog entry as served by the backend.
type Product struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	NameEn        string         `json:"name_en"`
	NameAr        string         `json:"name_ar"`
	Description   string         `json:"description"`
	DescriptionEn string         `json:"description_en"`
	DescriptionAr string         `json:"description_ar"`
	Price         float64        `json:"price"`
	Stock         int            `json:"stock"`
	SKU           string         `json:"sku"`
	CategoryID    int64          `json:"category_id"`
	Category      *Category      `json:"category,omitempty"`
	Ingredients   string         `json:"ingredients,omitempty"`
	IngredientsEn string         `json:"ingredients_en,omitempty"`
	IngredientsAr string         `json:"ingredients_ar,omitempty"`
	Usage         string         `json:"usage,omitempty"`
	UsageEn       string         `json:"usage_en,omitempty"`
	UsageAr       string         `json:"usage_ar,omitempty"`
	IsFeatured    bool           `json:"is_featured"`
	Images        []ProductImage `json:"images"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
}

// StockStatus classifies how much of a product is left.
type StockStatus string

const (
	InStock    StockStatus = "in_stock"
	LowStock   StockStatus = "low_stock"
	OutOfStock StockStatus = "out_of_stock"
)

// ParseStockStatus accepts the three known statuses; anything else reports false.
func ParseStockStatus(raw string) (StockStatus, bool) {
	switch s := StockStatus(strings.TrimSpace(strings.ToLower(raw))); s {
	case InStock, LowStock, OutOfStock:
		return s, true
	default:
		return "", false
	}
}

func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return OutOfStock
	case p.Stock < LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

// Matches reports whether the product belongs to status. InStock covers every product with stock left.
func (s StockStatus) Matches(p Product) bool {
	switch s {
	case InStock:
		return p.Stock > 0
	case LowStock:
		return p.StockStatus() == LowStock
	case OutOfStock:
		return p.Stock <= 0
	default:
		return true
	}
}

// PrimaryImage is the first image URL, or "" when there is none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// LocalizedName picks the Arabic or English name, falling back to the generic one.
func (p Product) LocalizedName(arabic bool) string {
	if arabic && p.NameAr != "" {
		return p.NameAr
	}
	if p.NameEn != "" {
		return p.NameEn
	}
	return p.Name
}

// ResolveImageURL makes a backend-relative image path absolute against baseURL.
// Absolute http(s) URLs pass through; an empty url yields the placeholder.
func ResolveImageURL(baseURL, url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + url
}

// WithResolvedImages returns a copy whose image URLs are absolute.
func (p Product) WithResolvedImages(baseURL string) Product {
	if len(p.Images) == 0 {
		p.Images = []ProductImage{}
		return p
	}
	images := make([]ProductImage, len(p.Images))
	for i, img := range p.Images {
		img.URL = ResolveImageURL(baseURL, img.URL)
		images[i] = img
	}
	p.Images = images
	return p
}
