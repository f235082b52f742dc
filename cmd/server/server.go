package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
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

const (
	// mentor conversations inactive for longer than this are discarded
	mentorSessionTTL = 30 * time.Minute
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	postRepo := posts.NewRepository(db)
	notifier := notifications.New(db)

	// mentor conversations are held in memory only
	sessionMgr := sessions.NewManager(mentorSessionTTL)
	mentorClient := mentor.NewClient(cfg.MentorAPIURL)

	hub := chat.NewHub()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:           db,
		config:       cfg,
		userRepo:     userRepo,
		postRepo:     postRepo,
		notifier:     notifier,
		sessionMgr:   sessionMgr,
		mentorClient: mentorClient,
		hub:          hub,
		router:       router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// allows the frontend origin configured at startup
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
