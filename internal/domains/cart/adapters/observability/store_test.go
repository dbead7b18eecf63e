package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	storagememory "github.com/Apurer/go-gin-storefront/internal/domains/storage/adapters/memory"
)

func TestStore_RecordsSpansMetricsAndLogs(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	var logs bytes.Buffer

	inner := cartapp.NewStore(ctx, storagememory.NewProvider().Namespace("obs"))
	store := New(inner,
		WithTracer(tracerProvider.Tracer("test")),
		WithMeter(meterProvider.Meter("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)

	store.AddItem(ctx, domain.Product{ID: 3, Price: 4}, 2)
	store.SetQuantity(ctx, 3, 5)
	store.Subtract(ctx, domain.Cart{{Product: domain.Product{ID: 3}, Quantity: 1}})
	store.Clear(ctx)

	spans := recorder.Ended()
	require.Len(t, spans, 4)
	assert.Equal(t, "CartStore.AddItem", spans[0].Name())
	assert.Equal(t, "CartStore.SetQuantity", spans[1].Name())
	assert.Equal(t, "CartStore.Subtract", spans[2].Name())
	assert.Equal(t, "CartStore.Clear", spans[3].Name())

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &data))
	require.Len(t, data.ScopeMetrics, 1)
	sum, ok := data.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, point := range sum.DataPoints {
		total += point.Value
	}
	assert.Equal(t, int64(4), total)

	assert.Contains(t, logs.String(), `"operation":"add_item"`)
	assert.Zero(t, store.ItemCount())
}

func TestStore_ReadsPassThrough(t *testing.T) {
	ctx := context.Background()
	inner := cartapp.NewStore(ctx, storagememory.NewProvider().Namespace("reads"))
	store := New(inner)
	store.AddItem(ctx, domain.Product{ID: 1, Price: 2.5}, 4)

	var seen []int
	unsubscribe := store.Subscribe(func(cart domain.Cart) { seen = append(seen, cart.ItemCount()) })
	defer unsubscribe()

	assert.Equal(t, []int{4}, seen)
	assert.InDelta(t, 10.0, store.Total(), 1e-9)
	assert.Len(t, store.Items(), 1)
}
