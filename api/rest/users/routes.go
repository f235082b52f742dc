package users

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/devmentor/posts"
	"codeberg.org/devmentor/server/devmentor/users"
	"codeberg.org/devmentor/server/internal/auth"
)

// registers all user routes
func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository, postRepo *posts.Repository) {
	userGroup := router.Group("/users")
	{
		userGroup.PUT("/profile", auth.AuthMiddleware(), UpdateProfileHandler(userRepo))
		userGroup.PUT("/role", auth.AuthMiddleware(), UpdateRoleHandler(userRepo))
		userGroup.GET("/:username", GetProfileHandler(userRepo))
		userGroup.GET("/:username/posts", auth.OptionalAuthMiddleware(), GetUserPostsHandler(userRepo, postRepo))
	}
}
