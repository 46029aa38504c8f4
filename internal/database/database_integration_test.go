//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap/zaptest"

	"github.com/emilythestrangee/blog/backend/internal/config"
	"github.com/emilythestrangee/blog/backend/internal/database"
	"github.com/emilythestrangee/blog/backend/internal/models"
)

func TestPostgresRoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("blog"),
		tcpostgres.WithUsername("blog"),
		tcpostgres.WithPassword("blog"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	svc, err := database.New(config.DatabaseConfig{
		URL:             url,
		MaxIdleConns:    2,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Minute,
		AutoMigrate:     true,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	db := svc.GetDB().WithContext(ctx)

	post := models.Post{Name: "Alice", Title: "Hello", Content: "World"}
	require.NoError(t, db.Create(&post).Error)
	require.NotZero(t, post.ID)

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 0, got.ViewsCount)
	assert.Equal(t, 0, got.LikesCount)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
	assert.True(t, got.CreatedAt.Equal(post.CreatedAt))

	assert.Equal(t, "up", svc.Health(ctx)["status"])
}
