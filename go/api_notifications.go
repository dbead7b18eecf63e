package storefrontserver

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// EnqueueNotificationRequest lets display surfaces raise their own toasts. Duration is in
// milliseconds; omit it for the per-kind default, send 0 to keep the toast until dismissed.
type EnqueueNotificationRequest struct {
	Type     string `json:"type" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message"`
	Duration *int64 `json:"duration"`
}

// maxNotificationDurationMs is the longest duration that still fits a time.Duration.
const maxNotificationDurationMs = math.MaxInt64 / int64(time.Millisecond)

type NotificationAPI struct {
	responder *apierrors.Responder
}

func NewNotificationAPI(responder *apierrors.Responder) NotificationAPI {
	return NotificationAPI{responder: responder}
}

// Get /api/notifications
func (api *NotificationAPI) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, workspace(c).Notifications.Items())
}

// Post /api/notifications
func (api *NotificationAPI) EnqueueNotification(c *gin.Context) {
	var payload EnqueueNotificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	kind, err := domain.ParseKind(payload.Type)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	var opts []ports.EnqueueOption
	if payload.Duration != nil {
		if *payload.Duration > maxNotificationDurationMs {
			api.responder.BadRequest(c, "duration is too large")
			return
		}
		opts = append(opts, ports.WithDuration(time.Duration(*payload.Duration)*time.Millisecond))
	}
	notification := workspace(c).Notifications.Enqueue(kind, payload.Title, payload.Message, opts...)
	c.JSON(http.StatusCreated, notification)
}

// Delete /api/notifications/:id
// Unknown ids are accepted so a toast that already timed out can still be closed.
func (api *NotificationAPI) DismissNotification(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	workspace(c).Notifications.Dismiss(id)
	c.Status(http.StatusNoContent)
}

// Delete /api/notifications
func (api *NotificationAPI) ClearNotifications(c *gin.Context) {
	workspace(c).Notifications.ClearAll()
	c.Status(http.StatusNoContent)
}
