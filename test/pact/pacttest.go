//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-backend"
	ConsumerName = "storefront-bff"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product with id 7 exists"
	StateProductMissing  = "no product with id 404"
	StateCustomerExists  = "customer pact@example.com exists"
	StateCustomerHasCart = "customer pact@example.com can order product 7"
)

const (
	ExistingProductID int64 = 7
	MissingProductID  int64 = 404
	CustomerEmail           = "pact@example.com"
	CustomerPassword        = "pact-pass"
	CustomerToken           = "pact-token"
	PlacedOrderID     int64 = 301
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProduct is the product the backend serves for StateProductExists.
func ExampleProduct() map[string]any {
	return map[string]any{
		"id":          ExistingProductID,
		"name":        "زيت الورد",
		"name_en":     "Rose Oil",
		"name_ar":     "زيت الورد",
		"price":       12.5,
		"stock":       4,
		"sku":         "ROSE-30",
		"category_id": 3,
		"is_featured": true,
		"images": []map[string]any{
			{"id": 11, "product_id": ExistingProductID, "url": "/uploads/rose.jpg"},
		},
	}
}

// ExampleCustomer is the account behind CustomerToken.
func ExampleCustomer() map[string]any {
	return map[string]any{
		"id":    42,
		"name":  "Pact Customer",
		"email": CustomerEmail,
		"role":  "customer",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
