package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// AdminListing is the filtered admin product table with stats over the unfiltered set.
type AdminListing struct {
	Products []domain.Product      `json:"products"`
	Stats    domain.InventoryStats `json:"stats"`
	Total    int                   `json:"total"`
}

// Service defines the catalog use cases exposed to adapters.
type Service interface {
	ListCategories(ctx context.Context, creds Credentials) ([]domain.Category, error)
	ListProducts(ctx context.Context, creds Credentials, query domain.ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, creds Credentials, id int64) (domain.Product, error)
	RelatedProducts(ctx context.Context, creds Credentials, product domain.Product, limit int) ([]domain.Product, error)
	AdminProducts(ctx context.Context, creds Credentials, filter domain.AdminFilter) (AdminListing, error)
	CreateProduct(ctx context.Context, creds Credentials, form domain.ProductForm) (domain.Product, error)
	UpdateProduct(ctx context.Context, creds Credentials, id int64, form domain.ProductForm) (domain.Product, error)
	DeleteProduct(ctx context.Context, creds Credentials, id int64) error
	UploadImage(ctx context.Context, creds Credentials, productID int64, upload ImageUpload) (domain.ProductImage, error)
	DeleteImage(ctx context.Context, creds Credentials, productID, imageID int64) error
}
