package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healtrip/backend/internal/health"
	"github.com/healtrip/backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
	logger  *logrus.Logger
}

func NewHealthHandler(checker *health.HealthChecker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// HandleHealth reports overall system health, serving the cached snapshot
// when one is fresh enough.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if cached, err := h.checker.CheckCached(ctx); err == nil && len(cached.Services) > 0 {
		h.writeHealth(c, cached)
		return
	}

	overall := h.checker.CheckAll()
	h.writeHealth(c, &overall)
}

// HandleLiveness is the bare liveness probe.
func (h *HealthHandler) HandleLiveness(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "ok", gin.H{"status": "alive"})
}

func (h *HealthHandler) writeHealth(c *gin.Context, overall *health.OverallHealth) {
	code := http.StatusOK
	if overall.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, overall)
}
