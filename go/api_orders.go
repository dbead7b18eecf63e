package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type CheckoutRequest struct {
	Shipping      ordersdomain.ShippingForm `json:"shipping"`
	PaymentMethod string                    `json:"payment_method"`
}

// OrderView adds the localized status label to an order.
type OrderView struct {
	ordersdomain.Order
	StatusLabel string `json:"status_label"`
}

type OrderAPI struct {
	orders    ordersports.Service
	responder *apierrors.Responder
}

func NewOrderAPI(orders ordersports.Service, responder *apierrors.Responder) OrderAPI {
	return OrderAPI{orders: orders, responder: responder}
}

// Post /api/checkout
func (api *OrderAPI) Checkout(c *gin.Context) {
	var payload CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	ctx := c.Request.Context()
	lang := ws.Preferences.Language(ctx)
	order, err := api.orders.Checkout(ctx, ordersports.CheckoutInput{
		SessionID:     ws.ID,
		Token:         bearerToken(c, ws),
		Language:      lang,
		Cart:          ws.Cart,
		Notifications: ws.Notifications,
		Shipping:      payload.Shipping,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderView(order, isArabic(lang)))
}

// Get /api/orders/my
func (api *OrderAPI) MyOrders(c *gin.Context) {
	ws := workspace(c)
	orders, err := api.orders.MyOrders(c.Request.Context(), bearerToken(c, ws))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderViews(orders, isArabic(ws.Preferences.Language(c.Request.Context()))))
}

func toOrderView(order ordersdomain.Order, arabic bool) OrderView {
	return OrderView{Order: order, StatusLabel: order.Status.Label(arabic)}
}

func toOrderViews(orders []ordersdomain.Order, arabic bool) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderView(order, arabic))
	}
	return out
}
