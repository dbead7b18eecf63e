package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

type stubService struct {
	ports.Service
	err error
}

func (s stubService) GetProduct(_ context.Context, _ ports.Credentials, id int64) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	return domain.Product{ID: id, Stock: 3}, nil
}

func TestService_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	service := New(stubService{}, WithTracer(provider.Tracer("test")))
	_, err := service.GetProduct(context.Background(), ports.Credentials{}, 7)
	require.NoError(t, err)

	failing := New(stubService{err: domain.ErrNotFound}, WithTracer(provider.Tracer("test")))
	_, err = failing.GetProduct(context.Background(), ports.Credentials{}, 8)
	require.True(t, errors.Is(err, domain.ErrNotFound))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "Catalog.GetProduct", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
