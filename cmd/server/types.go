package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/devmentor/server/devmentor/posts"
	"codeberg.org/devmentor/server/devmentor/users"
	"codeberg.org/devmentor/server/internal/chat"
	"codeberg.org/devmentor/server/internal/config"
	"codeberg.org/devmentor/server/internal/mentor"
	"codeberg.org/devmentor/server/internal/notifications"
	"codeberg.org/devmentor/server/internal/sessions"
)

// holds all dependencies and state for the API server
type Server struct {
	db           *pgxpool.Pool
	config       *config.Config
	userRepo     *users.Repository
	postRepo     *posts.Repository
	notifier     *notifications.Service
	sessionMgr   *sessions.Manager
	mentorClient *mentor.Client
	hub          *chat.Hub
	router       *gin.Engine
}
