package handler

import (
	"net/http"

	"reckue_account/internal/service"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查
type HealthHandler struct {
	healthSvc service.HealthService
}

func NewHealthHandler(healthSvc service.HealthService) *HealthHandler {
	return &HealthHandler{healthSvc: healthSvc}
}

// Health GET /health
// 全部依赖可用返回 200，否则 503
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.healthSvc.Check(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
