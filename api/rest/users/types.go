package users

import (
	"codeberg.org/devmentor/server/api/rest/pagination"
	"codeberg.org/devmentor/server/devmentor/posts"
	"codeberg.org/devmentor/server/devmentor/users"
)

// ProfileResponse wraps user profile data
type ProfileResponse struct {
	User *users.User `json:"user"`
}

// UserPostsResponse is a paginated list of one user's posts
type UserPostsResponse struct {
	Posts      []posts.Post    `json:"posts"`
	Pagination pagination.Meta `json:"pagination"`
}
