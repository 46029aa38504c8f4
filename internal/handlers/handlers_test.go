package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/emilythestrangee/blog/backend/internal/database/dbtest"
	"github.com/emilythestrangee/blog/backend/internal/inertia"
	"github.com/emilythestrangee/blog/backend/internal/repository"
	"github.com/emilythestrangee/blog/backend/internal/service"
)

func newRouter(t *testing.T, seed int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.NewSQLite(t)
	posts := service.NewPostService(repository.NewPostRepository(db.GetDB()))
	for i := 1; i <= seed; i++ {
		_, err := posts.Create(context.Background(), service.CreatePostInput{Name: "n", Title: fmt.Sprint(i), Content: "c"})
		require.NoError(t, err)
	}

	h := NewHandler(db, posts, inertia.New("1"), zaptest.NewLogger(t))
	r := gin.New()
	r.GET("/posts", h.Post.Index)
	r.GET("/posts/:id", h.Post.Show)
	r.POST("/api/posts", h.Post.Store)
	r.GET("/health", h.Health.Check)
	return r
}

func visit(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(inertia.HeaderInertia, "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type indexPage struct {
	Props struct {
		Posts repository.Page[map[string]any] `json:"posts"`
	} `json:"props"`
}

func TestIndexCarriesPerPageIntoLinks(t *testing.T) {
	r := newRouter(t, 5)

	w := visit(r, "/posts?perPage=2")
	require.Equal(t, http.StatusOK, w.Code)

	var page indexPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	meta := page.Props.Posts.Meta

	assert.Equal(t, 2, meta.PerPage)
	assert.Equal(t, 3, meta.LastPage)
	assert.Equal(t, "/posts?page=1&perPage=2", meta.FirstPageURL)
	assert.Equal(t, "/posts?page=3&perPage=2", meta.LastPageURL)
	require.NotNil(t, meta.NextPageURL)
	assert.Equal(t, "/posts?page=2&perPage=2", *meta.NextPageURL)
	assert.Nil(t, meta.PreviousPageURL)
	assert.Len(t, page.Props.Posts.Data, 2)
}

func TestIndexOmitsDefaultPerPage(t *testing.T) {
	r := newRouter(t, 15)

	w := visit(r, "/posts?page=2&perPage=10")
	require.Equal(t, http.StatusOK, w.Code)

	var page indexPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	meta := page.Props.Posts.Meta

	assert.Nil(t, meta.NextPageURL)
	require.NotNil(t, meta.PreviousPageURL)
	assert.Equal(t, "/posts?page=1", *meta.PreviousPageURL)
}

func TestShowRejectsBadIDs(t *testing.T) {
	r := newRouter(t, 1)

	assert.Equal(t, http.StatusOK, visit(r, "/posts/1").Code)
	for _, path := range []string{"/posts/2", "/posts/-1", "/posts/1.5", "/posts/18446744073709551616"} {
		assert.Equal(t, http.StatusNotFound, visit(r, path).Code, path)
	}
}

func TestStoreEmptyBodyReportsEveryField(t *testing.T) {
	r := newRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var res struct {
		Errors []service.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Errors, 3)
	for _, fe := range res.Errors {
		assert.Equal(t, "required", fe.Rule)
	}
}

func TestHealthWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(nil).Check)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"down"`)
}
