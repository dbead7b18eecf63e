package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) ListCategories(ctx context.Context, creds ports.Credentials) ([]domain.Category, error) {
	ctx, span := s.startSpan(ctx, "Catalog.ListCategories")
	defer span.End()

	result, err := s.inner.ListCategories(ctx, creds)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	return result, nil
}

// ListProducts serves the public shop listing.
func (s *Service) ListProducts(ctx context.Context, creds ports.Credentials, query domain.ProductQuery) ([]domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Catalog.ListProducts",
		attribute.String("catalog.query.search", query.Search),
		attribute.Int64("catalog.query.category_id", query.CategoryID),
		attribute.String("catalog.query.sort", string(query.Sort)),
		attribute.Bool("catalog.query.featured", query.Featured),
	)
	defer span.End()

	result, err := s.inner.ListProducts(ctx, creds, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products", slog.String("search", query.Search))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, creds ports.Credentials, id int64) (domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Catalog.GetProduct", attribute.Int64("product.id", id))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, creds, id)
	if err != nil {
		return domain.Product{}, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	span.SetAttributes(attribute.String("product.stock_status", string(result.StockStatus())))
	return result, nil
}

func (s *Service) RelatedProducts(ctx context.Context, creds ports.Credentials, product domain.Product, limit int) ([]domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Catalog.RelatedProducts",
		attribute.Int64("product.id", product.ID),
		attribute.Int64("product.category_id", product.CategoryID),
	)
	defer span.End()

	result, err := s.inner.RelatedProducts(ctx, creds, product, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list related products", slog.Int64("product.id", product.ID))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	return result, nil
}

// AdminProducts serves the filtered admin product table.
func (s *Service) AdminProducts(ctx context.Context, creds ports.Credentials, filter domain.AdminFilter) (ports.AdminListing, error) {
	ctx, span := s.startSpan(ctx, "Catalog.AdminProducts",
		attribute.String("catalog.filter.search", filter.Search),
		attribute.String("catalog.filter.stock", string(filter.Stock)),
	)
	defer span.End()

	result, err := s.inner.AdminProducts(ctx, creds, filter)
	if err != nil {
		return ports.AdminListing{}, s.handleError(ctx, span, err, "failed to list admin products")
	}
	span.SetAttributes(
		attribute.Int("catalog.result.count", len(result.Products)),
		attribute.Int("catalog.total", result.Total),
	)
	return result, nil
}

func (s *Service) CreateProduct(ctx context.Context, creds ports.Credentials, form domain.ProductForm) (domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Catalog.CreateProduct", attribute.String("product.sku", form.SKU))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.sku", form.SKU))
	result, err := s.inner.CreateProduct(ctx, creds, form)
	if err != nil {
		return domain.Product{}, s.handleError(ctx, span, err, "failed to create product", slog.String("product.sku", form.SKU))
	}
	s.metrics.recordMutation(ctx, "create")
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.ID))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, creds ports.Credentials, id int64, form domain.ProductForm) (domain.Product, error) {
	ctx, span := s.startSpan(ctx, "Catalog.UpdateProduct", attribute.Int64("product.id", id))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.Int64("product.id", id))
	result, err := s.inner.UpdateProduct(ctx, creds, id, form)
	if err != nil {
		return domain.Product{}, s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", id))
	}
	s.metrics.recordMutation(ctx, "update")
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, creds ports.Credentials, id int64) error {
	ctx, span := s.startSpan(ctx, "Catalog.DeleteProduct", attribute.Int64("product.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.DeleteProduct(ctx, creds, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	return nil
}

func (s *Service) UploadImage(ctx context.Context, creds ports.Credentials, productID int64, upload ports.ImageUpload) (domain.ProductImage, error) {
	ctx, span := s.startSpan(ctx, "Catalog.UploadImage",
		attribute.Int64("product.id", productID),
		attribute.String("asset.filename", upload.Filename),
		attribute.Int64("asset.size", upload.Size),
	)
	defer span.End()

	s.logInfo(ctx, "uploading product image", slog.Int64("product.id", productID), slog.String("filename", upload.Filename))
	result, err := s.inner.UploadImage(ctx, creds, productID, upload)
	if err != nil {
		return domain.ProductImage{}, s.handleError(ctx, span, err, "failed to upload product image", slog.Int64("product.id", productID))
	}
	s.metrics.recordMutation(ctx, "upload_image")
	return result, nil
}

func (s *Service) DeleteImage(ctx context.Context, creds ports.Credentials, productID, imageID int64) error {
	ctx, span := s.startSpan(ctx, "Catalog.DeleteImage",
		attribute.Int64("product.id", productID),
		attribute.Int64("image.id", imageID),
	)
	defer span.End()

	if err := s.inner.DeleteImage(ctx, creds, productID, imageID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product image", slog.Int64("product.id", productID), slog.Int64("image.id", imageID))
	}
	s.metrics.recordMutation(ctx, "delete_image")
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("catalog.service.mutations", metric.WithDescription("Number of admin catalog mutations by operation"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, operation string) {
	if m.mutations == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

var _ ports.Service = (*Service)(nil)
