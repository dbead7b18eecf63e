package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// Gateway implements the catalog outbound port over the REST backend.
type Gateway struct {
	client *backendclient.Client
}

func NewGateway(client *backendclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ListCategories(ctx context.Context, creds ports.Credentials) ([]domain.Category, error) {
	categories, err := g.client.ListCategories(ctx, options(creds)...)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategory(c))
	}
	return out, nil
}

func (g *Gateway) ListProducts(ctx context.Context, creds ports.Credentials, query domain.ProductQuery) ([]domain.Product, error) {
	products, err := g.client.ListProducts(ctx, toParams(query), options(creds)...)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}
	return out, nil
}

func (g *Gateway) GetProduct(ctx context.Context, creds ports.Credentials, id int64) (domain.Product, error) {
	product, err := g.client.GetProduct(ctx, id, options(creds)...)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	return toProduct(product), nil
}

func (g *Gateway) CreateProduct(ctx context.Context, creds ports.Credentials, form domain.ProductForm) (domain.Product, error) {
	product, err := g.client.CreateProduct(ctx, toPayload(form), options(creds)...)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	return toProduct(product), nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, creds ports.Credentials, id int64, form domain.ProductForm) (domain.Product, error) {
	product, err := g.client.UpdateProduct(ctx, id, toPayload(form), options(creds)...)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	return toProduct(product), nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, creds ports.Credentials, id int64) error {
	return mapError(g.client.DeleteProduct(ctx, id, options(creds)...))
}

func (g *Gateway) UploadImage(ctx context.Context, creds ports.Credentials, productID int64, upload ports.ImageUpload) (domain.ProductImage, error) {
	image, err := g.client.UploadProductImage(ctx, productID, backendclient.ImageUpload{
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		Content:     upload.Content,
		AltText:     upload.AltText,
	}, options(creds)...)
	if err != nil {
		return domain.ProductImage{}, mapError(err)
	}
	return toImage(image), nil
}

func (g *Gateway) DeleteImage(ctx context.Context, creds ports.Credentials, productID, imageID int64) error {
	return mapError(g.client.DeleteProductImage(ctx, productID, imageID, options(creds)...))
}

func options(creds ports.Credentials) []backendclient.RequestOption {
	return []backendclient.RequestOption{
		backendclient.WithToken(creds.Token),
		backendclient.WithLanguage(creds.Language),
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if backendclient.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	if errors.Is(err, backendclient.ErrNotConfigured) {
		return fmt.Errorf("catalog backend: %w", err)
	}
	return err
}

var _ ports.Gateway = (*Gateway)(nil)
