package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is one endpoint of the storefront API.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	CartAPI         CartAPI
	NotificationAPI NotificationAPI
	StreamAPI       StreamAPI
	PreferencesAPI  PreferencesAPI
	CatalogAPI      CatalogAPI
	OrderAPI        OrderAPI
	AuthAPI         AuthAPI
	AdminAPI        AdminAPI
	OpsAPI          OpsAPI
}

// RouterOptions carries the cross-cutting middleware.
type RouterOptions struct {
	// Global runs on every route, ops included. Tracing and request metrics go here.
	Global []gin.HandlerFunc
	// Session resolves the browser session of every /api route.
	Session gin.HandlerFunc
}

// NewRouter returns a gin engine with every storefront route registered.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(opts.Global...)

	for _, route := range getOpsRoutes(handleFunctions) {
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}

	api := router.Group("/api")
	if opts.Session != nil {
		api.Use(opts.Session)
	}
	for _, route := range getRoutes(handleFunctions) {
		api.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}

	admin := api.Group("/admin", handleFunctions.AuthAPI.RequireAdmin)
	for _, route := range getAdminRoutes(handleFunctions) {
		admin.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func getOpsRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"Metrics", http.MethodGet, "/metrics", h.OpsAPI.Metrics},
		{"Health", http.MethodGet, "/healthz", h.OpsAPI.Health},
	}
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"GetCart", http.MethodGet, "/cart", h.CartAPI.GetCart},
		{"AddCartItem", http.MethodPost, "/cart/items", h.CartAPI.AddItem},
		{"SetCartItemQuantity", http.MethodPut, "/cart/items/:productId", h.CartAPI.SetQuantity},
		{"RemoveCartItem", http.MethodDelete, "/cart/items/:productId", h.CartAPI.RemoveItem},
		{"ClearCart", http.MethodDelete, "/cart", h.CartAPI.ClearCart},

		{"ListNotifications", http.MethodGet, "/notifications", h.NotificationAPI.ListNotifications},
		{"EnqueueNotification", http.MethodPost, "/notifications", h.NotificationAPI.EnqueueNotification},
		{"DismissNotification", http.MethodDelete, "/notifications/:id", h.NotificationAPI.DismissNotification},
		{"ClearNotifications", http.MethodDelete, "/notifications", h.NotificationAPI.ClearNotifications},

		{"Stream", http.MethodGet, "/stream", h.StreamAPI.Stream},

		{"GetLanguage", http.MethodGet, "/preferences/language", h.PreferencesAPI.GetLanguage},
		{"SetLanguage", http.MethodPut, "/preferences/language", h.PreferencesAPI.SetLanguage},

		{"ListCategories", http.MethodGet, "/categories", h.CatalogAPI.ListCategories},
		{"ListProducts", http.MethodGet, "/products", h.CatalogAPI.ListProducts},
		{"GetProduct", http.MethodGet, "/products/:id", h.CatalogAPI.GetProduct},

		{"Checkout", http.MethodPost, "/checkout", h.OrderAPI.Checkout},
		{"MyOrders", http.MethodGet, "/orders/my", h.OrderAPI.MyOrders},

		{"Login", http.MethodPost, "/auth/login", h.AuthAPI.Login},
		{"Register", http.MethodPost, "/auth/register", h.AuthAPI.Register},
		{"Logout", http.MethodPost, "/auth/logout", h.AuthAPI.Logout},
		{"Me", http.MethodGet, "/auth/me", h.AuthAPI.Me},
	}
}

func getAdminRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"AdminListProducts", http.MethodGet, "/products", h.AdminAPI.ListProducts},
		{"AdminCreateProduct", http.MethodPost, "/products", h.AdminAPI.CreateProduct},
		{"AdminUpdateProduct", http.MethodPut, "/products/:id", h.AdminAPI.UpdateProduct},
		{"AdminDeleteProduct", http.MethodDelete, "/products/:id", h.AdminAPI.DeleteProduct},
		{"AdminUploadImage", http.MethodPost, "/products/:id/images", h.AdminAPI.UploadImage},
		{"AdminDeleteImage", http.MethodDelete, "/products/:id/images/:imageId", h.AdminAPI.DeleteImage},
		{"AdminListOrders", http.MethodGet, "/orders", h.AdminAPI.ListOrders},
		{"AdminUpdateOrderStatus", http.MethodPut, "/orders/:id/status", h.AdminAPI.UpdateOrderStatus},
	}
}
