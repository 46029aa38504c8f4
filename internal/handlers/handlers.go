package handlers

import (
	"go.uber.org/zap"

	"github.com/emilythestrangee/blog/backend/internal/database"
	"github.com/emilythestrangee/blog/backend/internal/inertia"
	"github.com/emilythestrangee/blog/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Page   *PageHandler
	Post   *PostHandler
	Health *HealthHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db database.Service, posts *service.PostService, pages *inertia.Renderer, log *zap.Logger) *Handler {
	return &Handler{
		Page:   NewPageHandler(pages),
		Post:   NewPostHandler(posts, pages, log),
		Health: NewHealthHandler(db),
	}
}
