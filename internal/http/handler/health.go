package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roamlog/api/pkg"
	"github.com/roamlog/api/pkg/logger"
)

// Health is the simple liveness endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"ok": true}, "ok"))
}

// Pinger checks that a downstream dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler provides a readiness probe checking downstream deps.
type HealthHandler struct {
	store       Pinger
	cache       Pinger
	pingTimeout time.Duration
}

// NewHealthHandler constructs a HealthHandler. Either dependency may be
// nil and is then skipped.
func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache, pingTimeout: 2 * time.Second}
}

// Ready reports 200 when every wired dependency answers a ping, 503 otherwise.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	status := gin.H{}
	healthy := true
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			logger.Error(ctx, "store ping failed: %s", err.Error())
			status["store"] = "down"
			healthy = false
		} else {
			status["store"] = "up"
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			logger.Error(ctx, "cache ping failed: %s", err.Error())
			status["cache"] = "down"
			healthy = false
		} else {
			status["cache"] = "up"
		}
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, pkg.NewResponse(code, status, "readiness"))
}
