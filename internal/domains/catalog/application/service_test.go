package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

type fakeGateway struct {
	products []domain.Product
	created  []domain.ProductForm
	query    domain.ProductQuery
	uploads  int
}

func (f *fakeGateway) ListCategories(context.Context, ports.Credentials) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Slug: "skin"}}, nil
}

func (f *fakeGateway) ListProducts(_ context.Context, _ ports.Credentials, query domain.ProductQuery) ([]domain.Product, error) {
	f.query = query
	return f.products, nil
}

func (f *fakeGateway) GetProduct(_ context.Context, _ ports.Credentials, id int64) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (f *fakeGateway) CreateProduct(_ context.Context, _ ports.Credentials, form domain.ProductForm) (domain.Product, error) {
	f.created = append(f.created, form)
	return domain.Product{ID: 100, NameEn: form.NameEn, NameAr: form.NameAr}, nil
}

func (f *fakeGateway) UpdateProduct(_ context.Context, _ ports.Credentials, id int64, form domain.ProductForm) (domain.Product, error) {
	return domain.Product{ID: id, NameEn: form.NameEn}, nil
}

func (f *fakeGateway) DeleteProduct(context.Context, ports.Credentials, int64) error { return nil }

func (f *fakeGateway) UploadImage(_ context.Context, _ ports.Credentials, productID int64, upload ports.ImageUpload) (domain.ProductImage, error) {
	f.uploads++
	return domain.ProductImage{ID: 1, ProductID: productID, URL: "uploads/" + upload.Filename}, nil
}

func (f *fakeGateway) DeleteImage(context.Context, ports.Credentials, int64, int64) error { return nil }

func TestListProducts_ResolvesImagesAndTrimsSearch(t *testing.T) {
	gateway := &fakeGateway{products: []domain.Product{{ID: 1, Images: []domain.ProductImage{{URL: "/a.png"}}}}}
	service := NewService(gateway, "http://assets.local")

	products, err := service.ListProducts(context.Background(), ports.Credentials{}, domain.ProductQuery{Search: "  oil "})

	require.NoError(t, err)
	assert.Equal(t, "oil", gateway.query.Search)
	assert.Equal(t, "http://assets.local/a.png", products[0].Images[0].URL)
	assert.Equal(t, "/a.png", gateway.products[0].Images[0].URL)
}

func TestListProducts_RejectsInvalidQuery(t *testing.T) {
	service := NewService(&fakeGateway{}, "")

	_, err := service.ListProducts(context.Background(), ports.Credentials{}, domain.ProductQuery{Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.ListProducts(context.Background(), ports.Credentials{}, domain.ProductQuery{MinPrice: 9, MaxPrice: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrInvalidPriceRange)
}

func TestAdminProducts_FiltersAndSummarizes(t *testing.T) {
	gateway := &fakeGateway{products: []domain.Product{
		{ID: 1, NameEn: "Rose Oil", Stock: 30},
		{ID: 2, NameEn: "Clay Mask", Stock: 0},
	}}
	service := NewService(gateway, "")

	listing, err := service.AdminProducts(context.Background(), ports.Credentials{}, domain.AdminFilter{Stock: domain.OutOfStock})

	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, int64(2), listing.Products[0].ID)
	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, 1, listing.Stats.OutOfStock)
}

func TestCreateProduct_ValidatesBeforeCallingBackend(t *testing.T) {
	gateway := &fakeGateway{}
	service := NewService(gateway, "")

	_, err := service.CreateProduct(context.Background(), ports.Credentials{}, domain.ProductForm{SKU: "X"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, gateway.created)

	product, err := service.CreateProduct(context.Background(), ports.Credentials{}, domain.ProductForm{NameEn: "Serum", SKU: "S-1", CategoryID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Serum", product.NameAr)
	require.Len(t, gateway.created, 1)
	assert.Equal(t, "Serum", gateway.created[0].Name)
}

func TestUploadImage_EnforcesSizeLimit(t *testing.T) {
	gateway := &fakeGateway{}
	service := NewService(gateway, "http://assets.local")

	_, err := service.UploadImage(context.Background(), ports.Credentials{}, 3, ports.ImageUpload{
		Filename: "huge.png", Size: domain.MaxImageSize + 1, Content: strings.NewReader("x"),
	})
	require.ErrorIs(t, err, domain.ErrImageTooLarge)
	assert.Zero(t, gateway.uploads)

	_, err = service.UploadImage(context.Background(), ports.Credentials{}, 3, ports.ImageUpload{Filename: "none.png"})
	require.ErrorIs(t, err, domain.ErrMissingImage)

	image, err := service.UploadImage(context.Background(), ports.Credentials{}, 3, ports.ImageUpload{
		Filename: "ok.png", Size: 10, Content: strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://assets.local/uploads/ok.png", image.URL)
}

func TestGetProduct_InvalidIDIsNotFound(t *testing.T) {
	service := NewService(&fakeGateway{}, "")

	_, err := service.GetProduct(context.Background(), ports.Credentials{}, 0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelatedProducts_ExcludesSelfAndCaps(t *testing.T) {
	gateway := &fakeGateway{}
	for i := int64(1); i <= 7; i++ {
		gateway.products = append(gateway.products, domain.Product{ID: i, CategoryID: 2})
	}
	service := NewService(gateway, "")

	related, err := service.RelatedProducts(context.Background(), ports.Credentials{}, domain.Product{ID: 1, CategoryID: 2}, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), gateway.query.CategoryID)
	require.Len(t, related, DefaultRelatedLimit)
	assert.Equal(t, int64(2), related[0].ID)
}
