package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

const apiVersion = "1.0.0"

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// HealthCheck reports liveness and whether MongoDB answers a ping.
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := global.GetDefaultTimer(c.Request.Context())
	defer cancel()

	resp := healthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Database:  "Connected",
	}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.WithError(err).Error("Health check database ping failed")
		resp.Success = false
		resp.Database = "Disconnected"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "E-commerce API is running",
		"version": apiVersion,
		"endpoints": gin.H{
			"products": "/api/products",
			"cart":     "/api/cart",
			"health":   "/health",
		},
	})
}
