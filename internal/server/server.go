package server

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/blog/backend/internal/config"
	"github.com/emilythestrangee/blog/backend/internal/database"
	"github.com/emilythestrangee/blog/backend/internal/handlers"
	"github.com/emilythestrangee/blog/backend/internal/inertia"
	"github.com/emilythestrangee/blog/backend/internal/metrics"
	"github.com/emilythestrangee/blog/backend/internal/middleware"
	"github.com/emilythestrangee/blog/backend/internal/repository"
	"github.com/emilythestrangee/blog/backend/internal/service"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
	pages   *inertia.Renderer
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewServer wires repositories, services and handlers on top of db.
func NewServer(cfg *config.Config, db database.Service, log *zap.Logger) *Server {
	m := metrics.New()
	pages := inertia.New(cfg.InertiaVersion)

	posts := service.NewPostService(
		repository.NewPostRepository(db.GetDB()),
		service.WithLogger(log.Named("posts")),
		service.WithMetrics(m),
	)

	return &Server{
		cfg:     cfg,
		db:      db,
		handler: handlers.NewHandler(db, posts, pages, log),
		pages:   pages,
		metrics: m,
		log:     log,
	}
}

// HTTPServer returns the configured *http.Server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", s.cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(s.log),
		middleware.Logger(s.log.Named("http")),
		otelgin.Middleware(s.cfg.OTelServiceName),
		middleware.Metrics(s.metrics),
		cors.New(s.corsConfig()),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})),
	)

	r.GET("/health", s.handler.Health.Check)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// Inertia pages
	pages := r.Group("/")
	pages.Use(s.pages.Middleware())
	{
		pages.GET("/", s.handler.Page.Home)
		pages.GET("/posts", s.handler.Post.Index)
		pages.GET("/posts/:id", s.handler.Post.Show)
	}

	api := r.Group("/api")
	{
		api.POST("/posts", s.handler.Post.Store)
	}

	r.NoRoute(func(c *gin.Context) {
		s.pages.Render(c, http.StatusNotFound, "errors/not_found", nil)
	})

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Requested-With", inertia.HeaderInertia, inertia.HeaderVersion, middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", inertia.HeaderInertia, inertia.HeaderLocation, middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}

	if len(s.cfg.AllowedOrigins) == 0 || slices.Contains(s.cfg.AllowedOrigins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = s.cfg.AllowedOrigins
	cfg.AllowCredentials = true
	return cfg
}
