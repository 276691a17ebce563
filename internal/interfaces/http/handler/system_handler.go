package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	db      *gorm.DB
	started time.Time
	version string
}

// NewSystemHandler creates a system handler
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		started: time.Now(),
		version: version,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports process and database health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
		"uptime":   time.Since(h.started).String(),
	})
}
