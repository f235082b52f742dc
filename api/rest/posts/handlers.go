package posts

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/api/rest/pagination"
	"codeberg.org/devmentor/server/devmentor/posts"
	"codeberg.org/devmentor/server/devmentor/users"
	"codeberg.org/devmentor/server/internal/auth"
	resterrors "codeberg.org/devmentor/server/internal/errors"
	"codeberg.org/devmentor/server/internal/logger"
	"codeberg.org/devmentor/server/internal/notifications"
)

// CreatePostHandler creates a feed post for the authenticated user
// and notifies any mentioned users
func CreatePostHandler(postRepo *posts.Repository, userRepo *users.Repository, notifier *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		var req posts.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			resterrors.ValidationError(c, err)
			return
		}

		post, err := postRepo.Create(c.Request.Context(), userID, req)
		if err != nil {
			resterrors.InternalError(c, "failed to create post", err)
			return
		}

		notifyMentions(c, userRepo, notifier, userID, post.ID, req.Content)

		c.JSON(http.StatusCreated, post)
	}
}

// GetFeedHandler returns the community feed, newest first
func GetFeedHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := auth.GetUserID(c)

		filter := posts.FeedFilter{
			Search: c.Query("search"),
		}

		if tags := c.Query("tags"); tags != "" {
			filter.Tags = strings.Split(tags, ",")
		}

		params := pagination.FromQuery(c, 20, 100)

		feed, total, err := postRepo.ListFeed(c.Request.Context(), viewerID, filter, params.Limit, params.Offset)
		if err != nil {
			resterrors.InternalError(c, "failed to fetch feed", err)
			return
		}

		if feed == nil {
			feed = []posts.Post{}
		}

		c.JSON(http.StatusOK, FeedResponse{
			Posts:      feed,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetPostHandler returns a single post by ID
func GetPostHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		viewerID, _ := auth.GetUserID(c)

		post, err := postRepo.Get(c.Request.Context(), viewerID, postID)
		if err != nil {
			if errors.Is(err, posts.ErrPostNotFound) {
				resterrors.NotFound(c, "post")
				return
			}

			resterrors.InternalError(c, "failed to fetch post", err)
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

// UpdatePostHandler updates the authenticated user's own post
func UpdatePostHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		var req posts.UpdatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			resterrors.ValidationError(c, err)
			return
		}

		post, err := postRepo.Update(c.Request.Context(), postID, userID, req)
		if err != nil {
			if errors.Is(err, posts.ErrPostNotFound) {
				resterrors.NotFound(c, "post")
				return
			}

			resterrors.InternalError(c, "failed to update post", err)
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

// DeletePostHandler deletes the authenticated user's own post
func DeletePostHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := postRepo.Delete(c.Request.Context(), postID, userID); err != nil {
			if errors.Is(err, posts.ErrPostNotFound) {
				resterrors.NotFound(c, "post")
				return
			}

			resterrors.InternalError(c, "failed to delete post", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "post deleted"})
	}
}

// AddCommentHandler adds a comment and notifies the post author and
// any mentioned users
func AddCommentHandler(postRepo *posts.Repository, userRepo *users.Repository, notifier *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		var req posts.AddCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			resterrors.ValidationError(c, err)
			return
		}

		post, err := postRepo.Get(c.Request.Context(), userID, postID)
		if err != nil {
			resterrors.NotFound(c, "post")
			return
		}

		comment, err := postRepo.AddComment(c.Request.Context(), postID, userID, req)
		if err != nil {
			resterrors.InternalError(c, "failed to add comment", err)
			return
		}

		// commenting on your own post shouldn't notify you
		if post.UserID != userID {
			_, err = notifier.Create(c.Request.Context(), &notifications.CreateRequest{
				UserID: post.UserID,
				Type:   notifications.TypeComment,
				Title:  "New comment on your post",
				Body:   req.Content,
				Data:   map[string]any{"post_id": postID, "comment_id": comment.ID},
			})
			if err != nil {
				logger.Warn("failed to create comment notification",
					"post_id", postID,
					"error", err,
				)
			}
		}

		notifyMentions(c, userRepo, notifier, userID, postID, req.Content)

		c.JSON(http.StatusCreated, comment)
	}
}

// ListCommentsHandler returns a post's comments, oldest first
func ListCommentsHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		comments, err := postRepo.ListComments(c.Request.Context(), postID)
		if err != nil {
			resterrors.InternalError(c, "failed to fetch comments", err)
			return
		}

		if comments == nil {
			comments = []posts.Comment{}
		}

		c.JSON(http.StatusOK, CommentsResponse{Comments: comments})
	}
}

// BookmarkHandler saves a post for the authenticated user
func BookmarkHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := postRepo.Bookmark(c.Request.Context(), userID, postID); err != nil {
			resterrors.InternalError(c, "failed to bookmark post", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "post bookmarked"})
	}
}

// UnbookmarkHandler removes a saved post for the authenticated user
func UnbookmarkHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		postID, ok := resterrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := postRepo.Unbookmark(c.Request.Context(), userID, postID); err != nil {
			resterrors.InternalError(c, "failed to remove bookmark", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "bookmark removed"})
	}
}

// ListBookmarkedHandler returns the authenticated user's saved posts
func ListBookmarkedHandler(postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, 20, 100)

		bookmarked, total, err := postRepo.ListBookmarked(c.Request.Context(), userID, params.Limit, params.Offset)
		if err != nil {
			resterrors.InternalError(c, "failed to fetch bookmarks", err)
			return
		}

		if bookmarked == nil {
			bookmarked = []posts.Post{}
		}

		c.JSON(http.StatusOK, FeedResponse{
			Posts:      bookmarked,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// resolves @mentions in content and creates notifications for the
// mentioned users; mention failures never fail the request
func notifyMentions(c *gin.Context, userRepo *users.Repository, notifier *notifications.Service, authorID, postID, content string) {
	for _, username := range posts.ExtractMentions(content) {
		mentioned, err := userRepo.FindByUsername(c.Request.Context(), username)
		if err != nil {
			continue // unknown username, not an error
		}

		if mentioned.ID == authorID {
			continue
		}

		_, err = notifier.Create(c.Request.Context(), &notifications.CreateRequest{
			UserID: mentioned.ID,
			Type:   notifications.TypeMention,
			Title:  "You were mentioned",
			Body:   content,
			Data:   map[string]any{"post_id": postID},
		})
		if err != nil {
			logger.Warn("failed to create mention notification",
				"username", username,
				"post_id", postID,
				"error", err,
			)
		}
	}
}
