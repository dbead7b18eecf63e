package storefrontserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	notificationports "github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// multipart overhead allowed on top of the image itself
const uploadEnvelopeSlack = 1 << 20

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminAPI serves the product and order back office. Outcomes are also raised as toasts.
type AdminAPI struct {
	catalog   catalogports.Service
	orders    ordersports.Service
	responder *apierrors.Responder
}

func NewAdminAPI(catalog catalogports.Service, orders ordersports.Service, responder *apierrors.Responder) AdminAPI {
	return AdminAPI{catalog: catalog, orders: orders, responder: responder}
}

// Get /api/admin/products
func (api *AdminAPI) ListProducts(c *gin.Context) {
	filter, err := parseAdminFilter(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	listing, err := api.catalog.AdminProducts(c.Request.Context(), credentials(c, workspace(c)), filter)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// Post /api/admin/products
func (api *AdminAPI) CreateProduct(c *gin.Context) {
	var form catalogdomain.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	product, err := api.catalog.CreateProduct(c.Request.Context(), credentials(c, ws), form)
	if err != nil {
		api.fail(c, ws.Notifications, "Failed to create product", err)
		return
	}
	ws.Notifications.Success("Success", "Product created successfully")
	c.JSON(http.StatusCreated, product)
}

// Put /api/admin/products/:id
func (api *AdminAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var form catalogdomain.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	product, err := api.catalog.UpdateProduct(c.Request.Context(), credentials(c, ws), id, form)
	if err != nil {
		api.fail(c, ws.Notifications, "Failed to update product", err)
		return
	}
	ws.Notifications.Success("Success", "Product updated successfully")
	c.JSON(http.StatusOK, product)
}

// Delete /api/admin/products/:id
func (api *AdminAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	ws := workspace(c)
	if err := api.catalog.DeleteProduct(c.Request.Context(), credentials(c, ws), id); err != nil {
		api.fail(c, ws.Notifications, "Failed to delete product", err)
		return
	}
	ws.Notifications.Success("Success", "Product deleted successfully")
	c.Status(http.StatusNoContent)
}

// Post /api/admin/products/:id/images
// Multipart form with an "image" file and an optional "alt_text" field.
func (api *AdminAPI) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	ws := workspace(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, catalogdomain.MaxImageSize+uploadEnvelopeSlack)
	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.rejectLargeFile(c, ws.Notifications, "image", catalogdomain.MaxImageSize+uploadEnvelopeSlack)
			return
		}
		api.responder.RespondError(c, fmt.Errorf("%w: %w", catalogdomain.ErrMissingImage, err))
		return
	}
	if header.Size > catalogdomain.MaxImageSize {
		api.rejectLargeFile(c, ws.Notifications, header.Filename, header.Size)
		return
	}
	file, err := header.Open()
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	defer file.Close()

	image, err := api.catalog.UploadImage(c.Request.Context(), credentials(c, ws), id, catalogports.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
		AltText:     strings.TrimSpace(c.PostForm("alt_text")),
	})
	if err != nil {
		api.fail(c, ws.Notifications, "Failed to upload image", err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// Delete /api/admin/products/:id/images/:imageId
func (api *AdminAPI) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, api.responder, "imageId")
	if !ok {
		return
	}
	ws := workspace(c)
	if err := api.catalog.DeleteImage(c.Request.Context(), credentials(c, ws), id, imageID); err != nil {
		api.fail(c, ws.Notifications, "Failed to delete image", err)
		return
	}
	ws.Notifications.Success("Success", "Image deleted successfully")
	c.Status(http.StatusNoContent)
}

// Get /api/admin/orders
func (api *AdminAPI) ListOrders(c *gin.Context) {
	ws := workspace(c)
	orders, err := api.orders.ListOrders(c.Request.Context(), bearerToken(c, ws))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderViews(orders, isArabic(ws.Preferences.Language(c.Request.Context()))))
}

// Put /api/admin/orders/:id/status
func (api *AdminAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	order, err := api.orders.UpdateStatus(c.Request.Context(), bearerToken(c, ws), id, payload.Status)
	if err != nil {
		api.fail(c, ws.Notifications, "Failed to update order status", err)
		return
	}
	ws.Notifications.Success("Success", "Order status updated successfully")
	c.JSON(http.StatusOK, toOrderView(order, isArabic(ws.Preferences.Language(c.Request.Context()))))
}

func (api *AdminAPI) rejectLargeFile(c *gin.Context, notifications notificationports.Queue, filename string, size int64) {
	detail := fmt.Sprintf("%s is larger than 10MB (%s)", filename, catalogdomain.FormatFileSize(size))
	notifications.Warning("File Too Large", detail)
	api.responder.Respond(c, apierrors.ErrTooLarge.WithDetail(detail))
}

// fail raises an error toast with the backend's message when it sent one.
func (api *AdminAPI) fail(c *gin.Context, notifications notificationports.Queue, fallback string, err error) {
	message := fallback
	var apiErr *backendclient.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		message = apiErr.Message
	}
	notifications.Error("Error", message)
	api.responder.RespondError(c, err)
}

func parseAdminFilter(c *gin.Context) (catalogdomain.AdminFilter, error) {
	filter := catalogdomain.AdminFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apierrors.NewValidationProblem("category must be an integer", nil)
		}
		filter.CategoryID = id
	}
	if raw := c.Query("stock"); raw != "" {
		status, ok := catalogdomain.ParseStockStatus(raw)
		if !ok {
			return filter, apierrors.NewValidationProblem("stock must be in_stock, low_stock or out_of_stock", nil)
		}
		filter.Stock = status
	}
	if raw := c.Query("featured"); raw != "" {
		featured := isTruthyParam(raw)
		filter.Featured = &featured
	}
	return filter, nil
}
