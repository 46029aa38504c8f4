package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blog/backend/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Paginate(ctx context.Context, page, perPage int) (*Page[models.PostSummary], error)
	Count(ctx context.Context) (int64, error)

	// WithTx returns the same repository bound to tx.
	WithTx(tx *gorm.DB) PostRepository
	// Transaction runs fn inside a single transaction. fn returning an error
	// (or panicking) rolls everything back; the connection goes back to the
	// pool on every path.
	Transaction(ctx context.Context, fn func(repo PostRepository) error) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository { return &postRepository{db: tx} }

func (r *postRepository) Transaction(ctx context.Context, fn func(repo PostRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID returns gorm.ErrRecordNotFound when no row matches.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error
	return total, err
}

// Paginate lists post summaries newest id first. page and perPage must
// already be positive.
func (r *postRepository) Paginate(ctx context.Context, page, perPage int) (*Page[models.PostSummary], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	var list []models.PostSummary
	if int64(page-1) < lastPageOf(total, perPage) {
		err = r.db.WithContext(ctx).
			Model(&models.Post{}).
			Select(models.PostSummaryColumns).
			Order("id desc").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&list).Error
		if err != nil {
			return nil, err
		}
	}

	return NewPage(list, total, page, perPage), nil
}

func lastPageOf(total int64, perPage int) int64 {
	if perPage < 1 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}
