package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/devmentor/server/devmentor/posts"
	"codeberg.org/devmentor/server/devmentor/users"
	"codeberg.org/devmentor/server/internal/auth"
	"codeberg.org/devmentor/server/internal/errors"

	"codeberg.org/devmentor/server/api/rest/pagination"
)

// returns a user's public profile by username
func GetProfileHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		user, err := userRepo.FindByUsername(c.Request.Context(), username)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{User: user})
	}
}

// returns a user's posts, newest first
func GetUserPostsHandler(userRepo *users.Repository, postRepo *posts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		user, err := userRepo.FindByUsername(c.Request.Context(), username)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		// viewer may be anonymous; bookmarked flags are false then
		viewerID, _ := auth.GetUserID(c)

		params := pagination.FromQuery(c, 20, 100)

		userPosts, total, err := postRepo.ListByUser(c.Request.Context(), viewerID, user.ID, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to fetch posts", err)
			return
		}

		if userPosts == nil {
			userPosts = []posts.Post{}
		}

		c.JSON(http.StatusOK, UserPostsResponse{
			Posts:      userPosts,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// updates the authenticated user's profile
func UpdateProfileHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req users.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.UpdateProfile(c.Request.Context(), userID, &req)
		if err != nil {
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{User: user})
	}
}

// switches the authenticated user between student and mentor roles
func UpdateRoleHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req users.UpdateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if req.Role == "" {
			errors.BadRequest(c, "role is required", nil)
			return
		}

		user, err := userRepo.UpdateRole(c.Request.Context(), userID, req.Role)
		if err != nil {
			errors.InternalError(c, "failed to update role", err)
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{User: user})
	}
}
