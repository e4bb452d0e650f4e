package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"network/internal/auth"
	"network/internal/comments"
	"network/internal/config"
	"network/internal/database"
	"network/internal/follow"
	"network/internal/likes"
	"network/internal/posts"
	"network/internal/session"
	"network/internal/users"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	port int

	db           database.Service
	sessions     session.Manager
	sessionStore session.Store

	authHandler    *auth.Handler
	postHandler    *posts.Handler
	userHandler    *users.Handler
	followHandler  *follow.Handler
	commentHandler *comments.Handler
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() *Config {
	return &Config{
		Port:         config.GetEnvInt("PORT", 8080),
		ReadTimeout:  config.GetEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: config.GetEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  config.GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// NewServer wires up the application and returns a configured HTTP server.
func NewServer() *http.Server {
	cfg := LoadConfigFromEnv()

	db := database.New()
	slog.Info("Database service initialized")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(ctx); err != nil {
		slog.Warn("Schema migration failed", "error", err.Error())
	}

	redisAddr := config.GetEnvOrDefault("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	sessionStore := session.NewRedisStore(redisAddr, redisPassword, config.GetEnvInt("REDIS_SESSION_DB", 0))
	sessionMgr := session.NewManager(sessionStore)

	userStore := users.NewStore(db)
	likeSvc := likes.NewService(db)
	followSvc := follow.NewService(db)
	postStore := posts.NewStore(db)
	postSvc := posts.NewService(postStore, likeSvc, redisAddr, redisPassword, config.GetEnvInt("REDIS_CACHE_DB", 1))
	commentSvc := comments.NewService(db)
	authSvc := auth.NewService(userStore)

	appServer := &Server{
		port:           cfg.Port,
		db:             db,
		sessions:       sessionMgr,
		sessionStore:   sessionStore,
		authHandler:    auth.NewHandler(authSvc, sessionMgr),
		postHandler:    posts.NewHandler(postSvc),
		userHandler:    users.NewHandler(userStore, followSvc, postSvc),
		followHandler:  follow.NewHandler(followSvc, userStore),
		commentHandler: comments.NewHandler(commentSvc, postSvc),
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	slog.Info("HTTP server configured", "port", cfg.Port)
	return server
}
