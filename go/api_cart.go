package storefrontserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	prefdomain "github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// CartView is the cart as rendered by every cart endpoint and the stream.
type CartView struct {
	Items          cartdomain.Cart `json:"items"`
	Total          float64         `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
	ItemCount      int             `json:"itemCount"`
}

func newCartView(items cartdomain.Cart) CartView {
	if items == nil {
		items = cartdomain.Cart{}
	}
	total := items.Total()
	return CartView{
		Items:          items,
		Total:          total,
		FormattedTotal: cartdomain.FormatAmount(total),
		ItemCount:      items.ItemCount(),
	}
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartAPI serves the session cart.
type CartAPI struct {
	catalog   catalogports.Service
	responder *apierrors.Responder
}

func NewCartAPI(catalog catalogports.Service, responder *apierrors.Responder) CartAPI {
	return CartAPI{catalog: catalog, responder: responder}
}

// Get /api/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, newCartView(workspace(c).Cart.Items()))
}

// Post /api/cart/items
// Adds a product snapshot fetched from the catalog. The quantity is clamped to what is left in stock.
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload AddCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	if payload.Quantity < 0 {
		api.responder.RespondError(c, cartdomain.ErrInvalidQuantity)
		return
	}
	ws := workspace(c)
	ctx := c.Request.Context()
	product, err := api.catalog.GetProduct(ctx, credentials(c, ws), payload.ProductID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}

	lang := ws.Preferences.Language(ctx)
	name := product.LocalizedName(lang == prefdomain.LanguageArabic)
	held := ws.Cart.Items().QuantityOf(product.ID)
	available := product.Stock - held
	if available <= 0 {
		title := lang.Pick("Out of stock", "غير متوفر")
		message := fmt.Sprintf(lang.Pick("%s is out of stock", "%s غير متوفر حالياً"), name)
		if product.Stock > 0 {
			message = fmt.Sprintf(lang.Pick("All available units of %s are already in your cart", "جميع الكميات المتوفرة من %s موجودة في سلتك"), name)
		}
		ws.Notifications.Warning(title, message)
		api.responder.Respond(c, apierrors.ErrOutOfStock.WithDetail(message).
			WithExtension("productId", product.ID).
			WithExtension("available", 0))
		return
	}
	quantity := min(payload.Quantity, available)
	if quantity < payload.Quantity {
		ws.Notifications.Warning(
			lang.Pick("Limited stock", "كمية محدودة"),
			fmt.Sprintf(lang.Pick("Only %d of %s could be added", "تمت إضافة %d فقط من %s"), quantity, name),
		)
	}
	ws.Cart.AddItem(ctx, toCartProduct(product), quantity)
	c.JSON(http.StatusOK, newCartView(ws.Cart.Items()))
}

// Put /api/cart/items/:productId
// Zero or negative quantities remove the line.
func (api *CartAPI) SetQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "productId")
	if !ok {
		return
	}
	var payload SetQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	ws.Cart.SetQuantity(c.Request.Context(), id, payload.Quantity)
	c.JSON(http.StatusOK, newCartView(ws.Cart.Items()))
}

// Delete /api/cart/items/:productId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "productId")
	if !ok {
		return
	}
	ws := workspace(c)
	ws.Cart.RemoveItem(c.Request.Context(), id)
	c.JSON(http.StatusOK, newCartView(ws.Cart.Items()))
}

// Delete /api/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	ws := workspace(c)
	ws.Cart.Clear(c.Request.Context())
	c.JSON(http.StatusOK, newCartView(ws.Cart.Items()))
}

func toCartProduct(p catalogdomain.Product) cartdomain.Product {
	images := make([]cartdomain.ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, cartdomain.ProductImage{ID: img.ID, ProductID: img.ProductID, URL: img.URL, AltText: img.AltText})
	}
	return cartdomain.Product{
		ID:            p.ID,
		Name:          p.Name,
		NameEn:        p.NameEn,
		NameAr:        p.NameAr,
		Description:   p.Description,
		DescriptionEn: p.DescriptionEn,
		DescriptionAr: p.DescriptionAr,
		Price:         p.Price,
		Stock:         p.Stock,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		IsFeatured:    p.IsFeatured,
		Images:        images,
	}
}
