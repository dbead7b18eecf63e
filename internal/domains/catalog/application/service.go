package application

import (
	"context"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// DefaultRelatedLimit caps the related products shown next to a product.
const DefaultRelatedLimit = 4

// Service implements the catalog use cases over the backend gateway.
type Service struct {
	gateway      ports.Gateway
	assetBaseURL string
}

// NewService wires the gateway. Relative image paths resolve against assetBaseURL.
func NewService(gateway ports.Gateway, assetBaseURL string) *Service {
	return &Service{gateway: gateway, assetBaseURL: strings.TrimSpace(assetBaseURL)}
}

func (s *Service) ListCategories(ctx context.Context, creds ports.Credentials) ([]domain.Category, error) {
	return s.gateway.ListCategories(ctx, creds)
}

func (s *Service) ListProducts(ctx context.Context, creds ports.Credentials, query domain.ProductQuery) ([]domain.Product, error) {
	if _, err := domain.ParseSortOrder(string(query.Sort)); err != nil {
		return nil, mapError(err)
	}
	if err := query.Validate(); err != nil {
		return nil, mapError(err)
	}
	query.Search = strings.TrimSpace(query.Search)
	products, err := s.gateway.ListProducts(ctx, creds, query)
	if err != nil {
		return nil, err
	}
	return s.resolve(products), nil
}

func (s *Service) GetProduct(ctx context.Context, creds ports.Credentials, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	product, err := s.gateway.GetProduct(ctx, creds, id)
	if err != nil {
		return domain.Product{}, err
	}
	return product.WithResolvedImages(s.assetBaseURL), nil
}

// RelatedProducts lists up to limit other products from the same category.
func (s *Service) RelatedProducts(ctx context.Context, creds ports.Credentials, product domain.Product, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	candidates, err := s.gateway.ListProducts(ctx, creds, domain.ProductQuery{CategoryID: product.CategoryID})
	if err != nil {
		return nil, err
	}
	related := make([]domain.Product, 0, limit)
	for _, p := range candidates {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p.WithResolvedImages(s.assetBaseURL))
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// AdminProducts loads the full listing and filters it locally.
func (s *Service) AdminProducts(ctx context.Context, creds ports.Credentials, filter domain.AdminFilter) (ports.AdminListing, error) {
	products, err := s.gateway.ListProducts(ctx, creds, domain.ProductQuery{})
	if err != nil {
		return ports.AdminListing{}, err
	}
	products = s.resolve(products)
	return ports.AdminListing{
		Products: filter.Apply(products),
		Stats:    domain.Stats(products),
		Total:    len(products),
	}, nil
}

func (s *Service) CreateProduct(ctx context.Context, creds ports.Credentials, form domain.ProductForm) (domain.Product, error) {
	form, err := form.Validate()
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	product, err := s.gateway.CreateProduct(ctx, creds, form)
	if err != nil {
		return domain.Product{}, err
	}
	return product.WithResolvedImages(s.assetBaseURL), nil
}

func (s *Service) UpdateProduct(ctx context.Context, creds ports.Credentials, id int64, form domain.ProductForm) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	form, err := form.Validate()
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	product, err := s.gateway.UpdateProduct(ctx, creds, id, form)
	if err != nil {
		return domain.Product{}, err
	}
	return product.WithResolvedImages(s.assetBaseURL), nil
}

func (s *Service) DeleteProduct(ctx context.Context, creds ports.Credentials, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.gateway.DeleteProduct(ctx, creds, id)
}

func (s *Service) UploadImage(ctx context.Context, creds ports.Credentials, productID int64, upload ports.ImageUpload) (domain.ProductImage, error) {
	if upload.Content == nil {
		return domain.ProductImage{}, mapError(domain.ErrMissingImage)
	}
	if err := domain.ValidateImageSize(upload.Filename, upload.Size); err != nil {
		return domain.ProductImage{}, mapError(err)
	}
	image, err := s.gateway.UploadImage(ctx, creds, productID, upload)
	if err != nil {
		return domain.ProductImage{}, err
	}
	image.URL = domain.ResolveImageURL(s.assetBaseURL, image.URL)
	return image, nil
}

func (s *Service) DeleteImage(ctx context.Context, creds ports.Credentials, productID, imageID int64) error {
	return s.gateway.DeleteImage(ctx, creds, productID, imageID)
}

func (s *Service) resolve(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.WithResolvedImages(s.assetBaseURL)
	}
	return out
}

var _ ports.Service = (*Service)(nil)
