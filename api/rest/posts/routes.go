package posts

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/devmentor/posts"
	"codeberg.org/devmentor/server/devmentor/users"
	"codeberg.org/devmentor/server/internal/auth"
	"codeberg.org/devmentor/server/internal/notifications"
)

func RegisterRoutes(router *gin.RouterGroup, postRepo *posts.Repository, userRepo *users.Repository, notifier *notifications.Service) {
	// feed and single posts are readable without auth; bookmarked
	// flags light up when a token is present
	router.GET("/posts", auth.OptionalAuthMiddleware(), GetFeedHandler(postRepo))
	router.GET("/posts/:id", auth.OptionalAuthMiddleware(), GetPostHandler(postRepo))
	router.GET("/posts/:id/comments", ListCommentsHandler(postRepo))

	postsGroup := router.Group("/posts")
	postsGroup.Use(auth.AuthMiddleware())
	{
		postsGroup.POST("", CreatePostHandler(postRepo, userRepo, notifier))
		postsGroup.PUT("/:id", UpdatePostHandler(postRepo))
		postsGroup.DELETE("/:id", DeletePostHandler(postRepo))
		postsGroup.POST("/:id/comments", AddCommentHandler(postRepo, userRepo, notifier))
		postsGroup.POST("/:id/bookmark", BookmarkHandler(postRepo))
		postsGroup.DELETE("/:id/bookmark", UnbookmarkHandler(postRepo))
	}

	router.GET("/bookmarks", auth.AuthMiddleware(), ListBookmarkedHandler(postRepo))
}
