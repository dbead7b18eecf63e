package storefrontserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports a dependency as healthy or not.
type HealthCheck func(ctx context.Context) error

type OpsAPI struct {
	metrics http.Handler
	checks  map[string]HealthCheck
}

// NewOpsAPI serves metrics and health. A nil metrics handler disables /metrics.
func NewOpsAPI(metrics http.Handler, checks map[string]HealthCheck) OpsAPI {
	return OpsAPI{metrics: metrics, checks: checks}
}

// Get /metrics
func (api *OpsAPI) Metrics(c *gin.Context) {
	if api.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	api.metrics.ServeHTTP(c.Writer, c.Request)
}

// Get /healthz
func (api *OpsAPI) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	status := http.StatusOK
	results := make(map[string]string, len(api.checks))
	for name, check := range api.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
}
