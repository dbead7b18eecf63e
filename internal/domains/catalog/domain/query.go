package domain

import "strings"

// SortOrder is the ordering of the public product listing.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// ParseSortOrder accepts "" as the backend default.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch s := SortOrder(strings.TrimSpace(raw)); s {
	case "", SortNewest, SortPriceAsc, SortPriceDesc:
		return s, nil
	default:
		return "", ErrInvalidSort
	}
}

// ProductQuery filters the public product listing. Zero values mean "no filter".
type ProductQuery struct {
	Search     string
	CategoryID int64
	MinPrice   float64
	MaxPrice   float64
	Sort       SortOrder
	Featured   bool
}

func (q ProductQuery) Validate() error {
	if q.MinPrice < 0 || q.MaxPrice < 0 {
		return ErrInvalidPriceRange
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return ErrInvalidPriceRange
	}
	return nil
}

// AdminFilter narrows the admin product table. It runs locally over the full listing.
type AdminFilter struct {
	Search     string
	CategoryID int64
	Stock      StockStatus
	Featured   *bool
}

func (f AdminFilter) Match(p Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.NameEn), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) {
			return false
		}
	}
	if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Stock != "" && !f.Stock.Matches(p) {
		return false
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	return true
}

// Apply keeps the products matching f, preserving order.
func (f AdminFilter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// InventoryStats summarizes a product listing for the admin dashboard.
type InventoryStats struct {
	Total      int `json:"total"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
	Featured   int `json:"featured"`
}

func Stats(products []Product) InventoryStats {
	stats := InventoryStats{Total: len(products)}
	for _, p := range products {
		switch p.StockStatus() {
		case LowStock:
			stats.LowStock++
		case OutOfStock:
			stats.OutOfStock++
		}
		if p.IsFeatured {
			stats.Featured++
		}
	}
	return stats
}
