package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ovnup/internal/config"
)

type APIController struct {
	startTime time.Time
}

func NewAPIController() *APIController {
	return &APIController{
		startTime: time.Now(),
	}
}

/**
 * Register general API routes to the Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers the readiness probe, the config reload hook and the
 *   prometheus metrics endpoint
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.POST("/ovnup/api/v1/reload", a.ReloadConfig)
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// ReloadConfig re-reads the configuration file from disk
func (a *APIController) ReloadConfig(c *gin.Context) {
	if err := config.ReloadConfig(); err != nil {
		c.JSON(500, gin.H{
			"code":    "config.reload_failed",
			"message": "Failed to reload configuration: " + err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"message": "Configuration reloaded successfully",
	})
}

// Healthz is the readiness probe of the status server itself
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "ok",
		"startTime": a.startTime.Format(time.RFC3339),
	})
}
