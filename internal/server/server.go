// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: every dependency — database, Dropbox
// client, session manager, services, handlers — is constructed and wired
// here, in New/setupRoutes, rather than scattered across the codebase.
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
	"github.com/go-chi/cors"

	"github.com/BroDamaris/Web-DesaPulosari/internal/auth"
	"github.com/BroDamaris/Web-DesaPulosari/internal/config"
	"github.com/BroDamaris/Web-DesaPulosari/internal/handler"
	"github.com/BroDamaris/Web-DesaPulosari/internal/middleware"
	sqliteRepo "github.com/BroDamaris/Web-DesaPulosari/internal/repository/sqlite"
	"github.com/BroDamaris/Web-DesaPulosari/internal/service"
	"github.com/BroDamaris/Web-DesaPulosari/internal/storage"
)

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → repositories → services → handlers → routes
//	                 ↘ Sessions + storage.Client injected where needed
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

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the handler graph, and binds
// the route table.
//
// ROUTE STRUCTURE:
//
//	GET    /                  → liveness text
//	POST   /api/auth/login    → session login
//	DELETE /api/auth/logout   → session logout
//	GET    /api/auth/me       → current user           [gate]
//	GET    /api/users[/{id}]  → list/get users         [gate]
//	POST   /api/users         → signup
//	PATCH  /api/users/{id}    → update user            [gate]
//	DELETE /api/users/{id}    → delete user            [gate]
//	GET    /api/berita[/{id}] → public reads (galeri likewise)
//	POST/PUT/DELETE berita & galeri                    [gate]
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The front-end runs on a different origin and sends the session
	// cookie cross-site, so credentials must be allowed and the origin
	// list must be explicit — a wildcard with credentials is rejected by
	// browsers.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	sessions, err := auth.NewSessions(s.config.SessionSecret, s.config.SessionTTL)
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	dropbox := storage.New(storage.Config{
		AppKey:       s.config.DropboxAppKey,
		AppSecret:    s.config.DropboxAppSecret,
		RefreshToken: s.config.DropboxRefreshToken,
	}, s.logger)

	users := s.db.Users()
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(users, passwords, s.logger)
	userService := service.NewUserService(users, passwords, s.logger)
	beritaService := service.NewBeritaService(s.db.Berita(), dropbox, s.logger)
	galeriService := service.NewGaleriService(s.db.Galeri(), dropbox, s.logger)

	authHandler := handler.NewAuthHandler(authService, sessions, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	beritaHandler := handler.NewBeritaHandler(beritaService, s.logger)
	galeriHandler := handler.NewGaleriHandler(galeriService, s.logger)

	gate := auth.RequireUser(sessions, users)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server Web Profile Desa Pulosari up and running!"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.HandleLogin)
			r.Delete("/logout", authHandler.HandleLogout)
			r.With(gate).Get("/me", authHandler.HandleMe)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.HandleCreate) // signup, ungated
			r.Group(func(r chi.Router) {
				r.Use(gate)
				r.Get("/", userHandler.HandleList)
				r.Get("/{id}", userHandler.HandleGetByID)
				r.Patch("/{id}", userHandler.HandleUpdate)
				r.Delete("/{id}", userHandler.HandleDelete)
			})
		})

		r.Route("/berita", func(r chi.Router) {
			r.Get("/", beritaHandler.HandleList)
			r.Get("/{id}", beritaHandler.HandleGetByID)
			r.Group(func(r chi.Router) {
				r.Use(gate)
				r.Post("/", beritaHandler.HandleCreate)
				r.Put("/{id}", beritaHandler.HandleUpdate)
				r.Delete("/{id}", beritaHandler.HandleDelete)
			})
		})

		r.Route("/galeri", func(r chi.Router) {
			r.Get("/", galeriHandler.HandleList)
			r.Get("/{id}", galeriHandler.HandleGetByID)
			r.Group(func(r chi.Router) {
				r.Use(gate)
				r.Post("/", galeriHandler.HandleCreate)
				r.Put("/{id}", galeriHandler.HandleUpdate)
				r.Delete("/{id}", galeriHandler.HandleDelete)
			})
		})
	})

	return nil
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
