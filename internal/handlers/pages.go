package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog/backend/internal/database"
	"github.com/emilythestrangee/blog/backend/internal/inertia"
)

type PageHandler struct {
	pages *inertia.Renderer
}

func NewPageHandler(pages *inertia.Renderer) *PageHandler {
	return &PageHandler{pages: pages}
}

// Home renders the landing page
func (h *PageHandler) Home(c *gin.Context) {
	h.pages.Render(c, http.StatusOK, "home", nil)
}

type HealthHandler struct {
	db database.Service
}

func NewHealthHandler(db database.Service) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports database health
func (h *HealthHandler) Check(c *gin.Context) {
	stats := h.health(c.Request.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}

func (h *HealthHandler) health(ctx context.Context) map[string]string {
	if h.db == nil {
		return map[string]string{"status": "down", "error": "no database configured"}
	}
	return h.db.Health(ctx)
}
