package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/blog/backend/internal/inertia"
	"github.com/emilythestrangee/blog/backend/internal/middleware"
	"github.com/emilythestrangee/blog/backend/internal/models"
	"github.com/emilythestrangee/blog/backend/internal/service"
)

const postCreatedMessage = "Post created successfully."

type PostHandler struct {
	svc   *service.PostService
	pages *inertia.Renderer
	log   *zap.Logger
}

func NewPostHandler(svc *service.PostService, pages *inertia.Renderer, log *zap.Logger) *PostHandler {
	return &PostHandler{svc: svc, pages: pages, log: log}
}

// Index renders one page of posts, newest first
func (h *PostHandler) Index(c *gin.Context) {
	params := service.ParseListParams(c.Query("page"), c.Query("perPage"))

	posts, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		h.serverError(c, "list posts", err)
		return
	}

	extra := url.Values{}
	if params.PerPage != service.DefaultPerPage {
		extra.Set("perPage", strconv.Itoa(params.PerPage))
	}
	posts.WithBaseURL(c.Request.URL.Path, extra)

	h.pages.Render(c, http.StatusOK, "posts/index", inertia.Props{"posts": posts})
}

// Show renders a single post by ID
func (h *PostHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.notFound(c)
		return
	}

	post, err := h.svc.Show(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, "show post", err)
		return
	}

	h.pages.Render(c, http.StatusOK, "posts/show", inertia.Props{"post": post})
}

// Store creates a new post from a JSON or form body. An empty body is
// treated as a post with every field missing.
func (h *PostHandler) Store(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBind(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	post, err := h.svc.Create(c.Request.Context(), service.CreatePostInput{
		Name:    input.Name,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Errors})
			return
		}
		h.log.Error("create post failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": postCreatedMessage,
		"post":    post,
	})
}

func (h *PostHandler) notFound(c *gin.Context) {
	h.pages.Render(c, http.StatusNotFound, "errors/not_found", inertia.Props{"message": "Post not found"})
}

func (h *PostHandler) serverError(c *gin.Context, op string, err error) {
	h.log.Error(op+" failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.pages.Render(c, http.StatusInternalServerError, "errors/server_error", nil)
}
