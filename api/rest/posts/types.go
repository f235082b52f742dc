package posts

import (
	"codeberg.org/devmentor/server/api/rest/pagination"
	"codeberg.org/devmentor/server/devmentor/posts"
)

// FeedResponse is a paginated slice of the community feed
type FeedResponse struct {
	Posts      []posts.Post    `json:"posts"`
	Pagination pagination.Meta `json:"pagination"`
}

// CommentsResponse wraps a post's comments
type CommentsResponse struct {
	Comments []posts.Comment `json:"comments"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
