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

	notificationsapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
)

func TestQueue_CountsEnqueuedByKind(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	var logs bytes.Buffer

	queue := New(notificationsapp.NewQueue(),
		WithMeter(meterProvider.Meter("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	queue.Success("Saved", "ok", ports.Persistent())
	failure := queue.Error("Failed", "boom", ports.Persistent())
	queue.Dismiss(failure.ID)

	require.Len(t, queue.Items(), 1)

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &data))
	require.Len(t, data.ScopeMetrics, 1)
	values := map[string]int64{}
	for _, m := range data.ScopeMetrics[0].Metrics {
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, point := range sum.DataPoints {
			values[m.Name] += point.Value
		}
	}
	assert.Equal(t, int64(2), values["notifications.enqueued"])
	assert.Equal(t, int64(1), values["notifications.dismiss_calls"])
	assert.Contains(t, logs.String(), `"notification.kind":"error"`)
}
