package models

import "time"

// Post is a single blog entry. Counters are owned by the database defaults;
// the create path never sets them.
type Post struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ViewsCount int       `gorm:"not null;default:0;check:chk_posts_views_count,views_count >= 0" json:"viewsCount"`
	LikesCount int       `gorm:"not null;default:0;check:chk_posts_likes_count,likes_count >= 0" json:"likesCount"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

// PostSummary is the projection used by the post listing.
type PostSummary struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	ViewsCount int       `json:"viewsCount"`
	LikesCount int       `json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PostSummaryColumns lists the columns selected into PostSummary.
var PostSummaryColumns = []string{"id", "name", "title", "views_count", "likes_count", "created_at"}

type CreatePostRequest struct {
	Name    string `json:"name" form:"name"`
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}
