package ports

import (
	"context"
	"io"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// Credentials travel with every backend call made on behalf of a browser session.
type Credentials struct {
	Token    string
	Language string
}

// ImageUpload is a product image on its way to the backend.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
	AltText     string
}

// Gateway is the outbound port to the catalog backend. Missing products surface as domain.ErrNotFound.
type Gateway interface {
	ListCategories(ctx context.Context, creds Credentials) ([]domain.Category, error)
	ListProducts(ctx context.Context, creds Credentials, query domain.ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, creds Credentials, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, creds Credentials, form domain.ProductForm) (domain.Product, error)
	UpdateProduct(ctx context.Context, creds Credentials, id int64, form domain.ProductForm) (domain.Product, error)
	DeleteProduct(ctx context.Context, creds Credentials, id int64) error
	UploadImage(ctx context.Context, creds Credentials, productID int64, upload ImageUpload) (domain.ProductImage, error)
	DeleteImage(ctx context.Context, creds Credentials, productID, imageID int64) error
}
