package storefrontserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	sessionsapp "github.com/Apurer/go-gin-storefront/internal/domains/sessions/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// SessionCookieName carries the browser session id.
const SessionCookieName = "sid"

const workspaceContextKey = "storefront.workspace"

// SessionResolver maps a cookie value to the session workspace.
type SessionResolver interface {
	Resolve(ctx context.Context, rawID string) (*sessionsapp.Workspace, bool, error)
	TTL() time.Duration
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
	Domain string
}

// SessionMiddleware resolves the session of every request and refreshes the cookie so its
// lifetime slides with activity.
func SessionMiddleware(sessions SessionResolver, cookie CookieConfig, responder *apierrors.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(SessionCookieName)
		ws, created, err := sessions.Resolve(c.Request.Context(), raw)
		if err != nil {
			responder.RespondError(c, err)
			return
		}
		trace.SpanFromContext(c.Request.Context()).SetAttributes(
			attribute.String("session.id", ws.ID),
			attribute.Bool("session.created", created),
		)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, ws.ID, int(sessions.TTL().Seconds()), "/", cookie.Domain, cookie.Secure, true)
		c.Set(workspaceContextKey, ws)
		c.Next()
	}
}

func workspace(c *gin.Context) *sessionsapp.Workspace {
	value, _ := c.Get(workspaceContextKey)
	ws, _ := value.(*sessionsapp.Workspace)
	return ws
}

func bearerToken(c *gin.Context, ws *sessionsapp.Workspace) string {
	token, _ := ws.Preferences.Token(c.Request.Context())
	return token
}

func credentials(c *gin.Context, ws *sessionsapp.Workspace) catalogports.Credentials {
	ctx := c.Request.Context()
	return catalogports.Credentials{
		Token:    bearerToken(c, ws),
		Language: string(ws.Preferences.Language(ctx)),
	}
}
