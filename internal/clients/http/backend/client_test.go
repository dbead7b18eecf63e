package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL+"/api/", server.Client())
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewClient_RejectsMissingOrRelativeURL(t *testing.T) {
	_, err := NewClient("  ", nil)
	require.Error(t, err)

	_, err = NewClient("/api", nil)
	require.Error(t, err)
}

func TestListProducts_StylesQueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "rose oil", q.Get("search"))
		assert.Equal(t, "3", q.Get("category"))
		assert.Equal(t, "10.5", q.Get("minPrice"))
		assert.Empty(t, q.Get("maxPrice"))
		assert.Equal(t, "price_asc", q.Get("sort"))
		assert.Equal(t, "true", q.Get("featured"))
		assert.Equal(t, "ar", q.Get("lang"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": 1, "name": "Rose Oil", "price": 12.5, "stock": 4}},
		})
	})

	products, err := client.ListProducts(context.Background(), ProductParams{
		Search:   " rose oil ",
		Category: 3,
		MinPrice: 10.5,
		Sort:     "price_asc",
		Featured: true,
	}, WithLanguage("ar"))

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Rose Oil", products[0].Name)
	assert.Equal(t, 12.5, products[0].Price)
}

func TestGetProduct_MapsErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/42", r.URL.Path)
		writeJSON(t, w, http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})
	})

	_, err := client.GetProduct(context.Background(), 42)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Contains(t, err.Error(), "Product not found")
}

func TestDo_UnsuccessfulEnvelopeWithOKStatusIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "nope", "errors": []string{"sku taken"}})
	})

	_, err := client.CreateProduct(context.Background(), ProductPayload{NameEn: "Serum"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sku taken")
}

func TestCreateOrder_SendsBearerTokenAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var in CreateOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []OrderLine{{ProductID: 7, Quantity: 2}}, in.Items)
		assert.Equal(t, "cash_on_delivery", in.PaymentMethod)
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 99, "status": "pending", "total": 25},
		})
	})

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Items:         []OrderLine{{ProductID: 7, Quantity: 2}},
		Shipping:      Shipping{Name: "Lina", Phone: "0100", City: "Cairo", Street: "Nile St"},
		PaymentMethod: "cash_on_delivery",
	}, WithToken("secret"))

	require.NoError(t, err)
	assert.Equal(t, int64(99), order.ID)
	assert.Equal(t, "pending", order.Status)
}

func TestMe_UnwrapsUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": map[string]any{"id": 1, "email": "a@b.c", "role": "admin"}},
		})
	})

	user, err := client.Me(context.Background(), WithToken("t"))

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
}

func TestUploadProductImage_SendsMultipartForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/5/images", r.URL.Path)
		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(file)
		assert.Equal(t, "front.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))
		assert.Equal(t, "Front label", r.FormValue("alt_text"))
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 3, "product_id": 5, "url": "/uploads/front.png"},
		})
	})

	image, err := client.UploadProductImage(context.Background(), 5, ImageUpload{
		Filename: "front.png",
		Content:  strings.NewReader("png-bytes"),
		AltText:  "Front label",
	})

	require.NoError(t, err)
	assert.Equal(t, "/uploads/front.png", image.URL)
}

func TestNilClient(t *testing.T) {
	var client *Client
	_, err := client.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
