package service

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emilythestrangee/blog/backend/internal/metrics"
	"github.com/emilythestrangee/blog/backend/internal/models"
	"github.com/emilythestrangee/blog/backend/internal/repository"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListParams selects one page of the post listing.
type ListParams struct {
	Page    int
	PerPage int
}

// ParseListParams turns raw query values into ListParams. Anything that is
// not a positive integer falls back to the default; perPage is capped at
// MaxPerPage and page at the largest value whose offset fits in an int.
func ParseListParams(page, perPage string) ListParams {
	return ListParams{
		Page:    positiveOr(page, DefaultPage),
		PerPage: positiveOr(perPage, DefaultPerPage),
	}.normalize()
}

func (p ListParams) normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	// keeps (Page-1)*PerPage within int
	if maxPage := math.MaxInt / p.PerPage; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

type PostService struct {
	repo     repository.PostRepository
	validate *validator.Validate
	log      *zap.Logger
	metrics  *metrics.Metrics
}

type Option func(*PostService)

func WithLogger(log *zap.Logger) Option {
	return func(s *PostService) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *PostService) { s.metrics = m }
}

func NewPostService(repo repository.PostRepository, opts ...Option) *PostService {
	s := &PostService{
		repo:     repo,
		validate: newValidator(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of post summaries, newest first.
func (s *PostService) List(ctx context.Context, params ListParams) (*repository.Page[models.PostSummary], error) {
	params = params.normalize()

	page, err := s.repo.Paginate(ctx, params.Page, params.PerPage)
	if err != nil {
		return nil, &PersistenceError{Op: "list posts", Err: err}
	}
	return page, nil
}

// Show returns ErrPostNotFound when id does not exist.
func (s *PostService) Show(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, &PersistenceError{Op: "find post", Err: err}
	}
	return post, nil
}

// Create sanitizes and validates in, then inserts the post in its own
// transaction. Either the whole post is committed or nothing is.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in = in.Sanitize()
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Name:    in.Name,
		Title:   in.Title,
		Content: in.Content,
	}

	err := s.repo.Transaction(ctx, func(tx repository.PostRepository) error {
		return tx.Create(ctx, post)
	})
	if err != nil {
		s.log.Warn("create post rolled back", zap.Error(err))
		return nil, &PersistenceError{Op: "create post", Err: err}
	}

	if s.metrics != nil {
		s.metrics.PostsCreated.Inc()
	}
	s.log.Info("post created", zap.Uint("post_id", post.ID))

	return post, nil
}
