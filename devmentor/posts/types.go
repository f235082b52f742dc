package posts

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// represents a feed post with author info joined in
type Post struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	AuthorUsername  string    `json:"author_username"`
	AuthorName      string    `json:"author_name"`
	AuthorAvatarURL string    `json:"author_avatar_url"`
	Content         string    `json:"content"`
	Tags            []string  `json:"tags,omitempty"`
	CommentCount    int       `json:"comment_count"`
	Bookmarked      bool      `json:"bookmarked"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// represents a comment on a post
type Comment struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	UserID          string    `json:"user_id"`
	AuthorUsername  string    `json:"author_username"`
	AuthorName      string    `json:"author_name"`
	AuthorAvatarURL string    `json:"author_avatar_url"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Content string   `json:"content" binding:"required,max=5000"`
	Tags    []string `json:"tags,omitempty" binding:"max=10,dive,max=50"` // max 10 tags, each max 50 chars
}

type UpdatePostRequest struct {
	Content *string  `json:"content,omitempty" binding:"omitempty,max=5000"`
	Tags    []string `json:"tags,omitempty" binding:"max=10,dive,max=50"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type FeedFilter struct {
	Search string   // search in post content
	Tags   []string // filter by tags (any match)
}
