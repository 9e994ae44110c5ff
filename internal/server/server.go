// Package server wires the application together: database, services,
// handlers, routes, and graceful shutdown. This is the composition root —
// every dependency is assembled here and nowhere else.
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

	"github.com/studygen/backend/internal/config"
	"github.com/studygen/backend/internal/handler"
	"github.com/studygen/backend/internal/middleware"
	sqliteRepo "github.com/studygen/backend/internal/repository/sqlite"
	"github.com/studygen/backend/internal/service"
)

// Server owns the router, the config, and the database connection. The
// connection is closed during graceful shutdown so pending WAL writes are
// flushed and the file lock released.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired:
//
//	sqlite.DB → per-collection repos → services → handlers → routes
//
// The guide service receives BOTH repositories — it is the only component
// allowed to touch users and guides in one operation (the delete cascade
// and create-time linkage live there).
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and the API routes:
//
//	GET    /api/users                      → list users
//	GET    /api/users/{id}                 → get user by id
//	GET    /api/users/username/{username}  → get user by username
//	GET    /api/users/email/{email}        → get user by email
//	POST   /api/users                      → create user
//	PUT    /api/users/{id}                 → update user
//	DELETE /api/users/{id}                 → delete user (no guide cascade)
//	GET    /api/guides                     → list guides
//	GET    /api/guides/{id}                → get guide by id
//	POST   /api/guides                     → create guide (optional userId link)
//	PUT    /api/guides/{id}                → update guide content
//	DELETE /api/guides/{id}                → delete guide (cascades into users)
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	userRepo := s.db.Users()
	guideRepo := s.db.Guides()

	userService := service.NewUserService(userRepo, s.logger)
	guideService := service.NewGuideService(guideRepo, userRepo, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	guideHandler := handler.NewGuideHandler(guideService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.HandleList)
		r.Get("/users/{id}", userHandler.HandleGetByID)
		r.Get("/users/username/{username}", userHandler.HandleGetByUsername)
		r.Get("/users/email/{email}", userHandler.HandleGetByEmail)
		r.Post("/users", userHandler.HandleCreate)
		r.Put("/users/{id}", userHandler.HandleUpdate)
		r.Delete("/users/{id}", userHandler.HandleDelete)

		r.Get("/guides", guideHandler.HandleList)
		r.Get("/guides/{id}", guideHandler.HandleGetByID)
		r.Post("/guides", guideHandler.HandleCreate)
		r.Put("/guides/{id}", guideHandler.HandleUpdate)
		r.Delete("/guides/{id}", guideHandler.HandleDelete)
	})
}

// Router returns the configured chi router. Exposed for tests that drive
// the full stack through httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database connection. Start does this itself on
// shutdown; tests that only use Router must call Close directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
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
