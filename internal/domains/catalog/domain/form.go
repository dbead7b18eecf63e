package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxImageSize is the largest accepted product image upload.
const MaxImageSize int64 = 10 * 1024 * 1024

var (
	ErrNotFound          = errors.New("product not found")
	ErrMissingFields     = errors.New("name_en, sku and category_id are required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrNegativeStock     = errors.New("stock must not be negative")
	ErrImageTooLarge     = errors.New("image is larger than 10MB")
	ErrMissingImage      = errors.New("image file is required")
	ErrInvalidSort       = errors.New("sort must be newest, price_asc or price_desc")
	ErrInvalidPriceRange = errors.New("invalid price range")
)

// ProductForm is the admin create/update payload.
type ProductForm struct {
	Name          string  `json:"name"`
	NameEn        string  `json:"name_en"`
	NameAr        string  `json:"name_ar"`
	Description   string  `json:"description"`
	DescriptionEn string  `json:"description_en"`
	DescriptionAr string  `json:"description_ar"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	SKU           string  `json:"sku"`
	CategoryID    int64   `json:"category_id"`
	Ingredients   string  `json:"ingredients"`
	IngredientsEn string  `json:"ingredients_en"`
	IngredientsAr string  `json:"ingredients_ar"`
	Usage         string  `json:"usage"`
	UsageEn       string  `json:"usage_en"`
	UsageAr       string  `json:"usage_ar"`
	IsFeatured    bool    `json:"is_featured"`
}

// Normalize trims the form and fills blank Arabic and generic fields from English.
func (f ProductForm) Normalize() ProductForm {
	trim := func(values ...*string) {
		for _, v := range values {
			*v = strings.TrimSpace(*v)
		}
	}
	trim(&f.Name, &f.NameEn, &f.NameAr, &f.Description, &f.DescriptionEn, &f.DescriptionAr, &f.SKU,
		&f.Ingredients, &f.IngredientsEn, &f.IngredientsAr, &f.Usage, &f.UsageEn, &f.UsageAr)
	fallback := func(target *string, source string) {
		if *target == "" {
			*target = source
		}
	}
	fallback(&f.NameAr, f.NameEn)
	fallback(&f.Name, f.NameEn)
	fallback(&f.DescriptionAr, f.DescriptionEn)
	fallback(&f.Description, f.DescriptionEn)
	fallback(&f.IngredientsAr, f.IngredientsEn)
	fallback(&f.UsageAr, f.UsageEn)
	return f
}

// Validate normalizes the form and checks its invariants.
func (f ProductForm) Validate() (ProductForm, error) {
	f = f.Normalize()
	var errs []error
	if f.NameEn == "" || f.SKU == "" || f.CategoryID <= 0 {
		errs = append(errs, ErrMissingFields)
	}
	if f.Price < 0 || math.IsNaN(f.Price) {
		errs = append(errs, ErrNegativePrice)
	}
	if f.Stock < 0 {
		errs = append(errs, ErrNegativeStock)
	}
	return f, errors.Join(errs...)
}

// ValidateImageSize rejects uploads over MaxImageSize.
func ValidateImageSize(filename string, size int64) error {
	if size > MaxImageSize {
		return fmt.Errorf("%w: %s is %s", ErrImageTooLarge, filename, FormatFileSize(size))
	}
	return nil
}

// FormatFileSize renders a byte count as Bytes, KB or MB rounded to two decimals.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB"}
	value := decimal.NewFromInt(bytes)
	unit := 0
	step := decimal.NewFromInt(1024)
	for unit < len(units)-1 && value.GreaterThanOrEqual(step) {
		value = value.Div(step)
		unit++
	}
	return value.Round(2).String() + " " + units[unit]
}
