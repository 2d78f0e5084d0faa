// Package server sets up the HTTP server, router, and all route
// definitions. It is the composition root: the one place where the
// dependency chain (database → blob store → services → handlers → routes)
// is assembled. Handlers never touch the database; services never touch
// HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/cliphub/internal/auth"
	"github.com/sakif/cliphub/internal/blob"
	"github.com/sakif/cliphub/internal/handler"
	"github.com/sakif/cliphub/internal/middleware"
	sqliteRepo "github.com/sakif/cliphub/internal/repository/sqlite"
	"github.com/sakif/cliphub/internal/service"
)

// Config holds server configuration, loaded from env vars in main.
type Config struct {
	Port     int
	DBPath   string // path to the SQLite database file
	ClipsDir string // directory holding the {handle}.mp4 payloads
}

// Server owns the router and the resources that must be released on
// shutdown (the database connection).
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, creates the blob directory,
// wires every service and handler, and registers the routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	blobs, err := blob.New(cfg.ClipsDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(blobs)

	return s, nil
}

// setupRoutes registers middleware and the full route table:
//
//	POST   /login                              → account login
//	POST   /register                           → account registration
//	GET    /clips                              → all clip ids, newest first
//	PUT    /clips                              → multipart clip upload
//	GET    /clips/info/{clipId}                → clip metadata view
//	GET    /clips/{clipId}                     → mp4 payload stream
//	DELETE /clips/{clipId}                     → cascade delete
//	GET    /comments/{clipId}                  → comment views, newest first
//	PUT    /comments/{clipId}                  → add comment
//	GET    /user/{userId}                      → profile view
//	GET    /follow/clips/{userId}              → personalized feed
//	GET    /follow/{followerId}/{followeeId}   → edge query
//	PUT    /follow/{followerId}/{followeeId}   → follow (idempotent)
//	DELETE /follow/{followerId}/{followeeId}   → unfollow (idempotent)
//	GET    /{authorId}/clips                   → one author's clip ids
//
// chi matches static segments before parameters, so /clips/info/{id} wins
// over /clips/{clipId}, /follow/clips/{id} over /follow/{a}/{b}, and every
// named route over the catch-all /{authorId}/clips.
func (s *Server) setupRoutes(blobs *blob.Store) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	accountService := service.NewAccountService(s.db, auth.NewPasswordService(), s.logger)
	clipService := service.NewClipService(s.db, s.db, blobs, s.logger)
	commentService := service.NewCommentService(s.db, s.db, s.db, s.logger)
	socialService := service.NewSocialService(s.db, s.db, s.db, s.logger)

	accountHandler := handler.NewAccountHandler(accountService, s.logger)
	clipHandler := handler.NewClipHandler(clipService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)
	socialHandler := handler.NewSocialHandler(socialService, s.logger)

	s.router.Post("/login", accountHandler.HandleLogin)
	s.router.Post("/register", accountHandler.HandleRegister)

	s.router.Get("/clips", clipHandler.HandleList)
	s.router.Put("/clips", clipHandler.HandleUpload)
	s.router.Get("/clips/info/{clipId}", clipHandler.HandleGetInfo)
	s.router.Get("/clips/{clipId}", clipHandler.HandleGetPayload)
	s.router.Delete("/clips/{clipId}", clipHandler.HandleDelete)

	s.router.Get("/comments/{clipId}", commentHandler.HandleList)
	s.router.Put("/comments/{clipId}", commentHandler.HandleAdd)

	s.router.Get("/user/{userId}", socialHandler.HandleGetUser)
	s.router.Get("/follow/clips/{userId}", socialHandler.HandleFeed)
	s.router.Get("/follow/{followerId}/{followeeId}", socialHandler.HandleIsFollowing)
	s.router.Put("/follow/{followerId}/{followeeId}", socialHandler.HandleFollow)
	s.router.Delete("/follow/{followerId}/{followeeId}", socialHandler.HandleUnfollow)

	s.router.Get("/{authorId}/clips", clipHandler.HandleListByAuthor)
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database (flushes the WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("clips", s.config.ClipsDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
