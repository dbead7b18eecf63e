package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

func TestGateway_MyOrdersMapsItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/my", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"id": 3, "status": "shipped", "total": 20, "created_at": "2024-05-01T10:00:00Z",
				"items": []map[string]any{{"product_id": 1, "quantity": 2, "unit_price": 10, "line_total": 20,
					"product": map[string]any{"name_en": "Rose Oil"}}},
			}},
		})
	}))
	t.Cleanup(server.Close)
	client, err := backendclient.NewClient(server.URL, server.Client())
	require.NoError(t, err)

	orders, err := NewGateway(client).MyOrders(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusShipped, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Rose Oil", orders[0].Items[0].Name)
}

func TestGateway_UnauthorizedRequiresSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "token expired"})
	}))
	t.Cleanup(server.Close)
	client, err := backendclient.NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = NewGateway(client).CreateOrder(context.Background(), "stale", domain.OrderRequest{})

	assert.ErrorIs(t, err, domain.ErrSignInRequired)
}
