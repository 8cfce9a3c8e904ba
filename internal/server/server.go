// Package server wires the dependency graph and runs the HTTP server.
//
// This is the composition root: main hands it a Config and a logger,
// and everything else — store, hasher, token service, mailer, services,
// handlers, routes — is assembled here in one place.
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

	"github.com/yaronsh/mediahub/internal/auth"
	"github.com/yaronsh/mediahub/internal/config"
	"github.com/yaronsh/mediahub/internal/handler"
	"github.com/yaronsh/mediahub/internal/mailer"
	"github.com/yaronsh/mediahub/internal/middleware"
	sqliteRepo "github.com/yaronsh/mediahub/internal/repository/sqlite"
	"github.com/yaronsh/mediahub/internal/service"
	"github.com/yaronsh/mediahub/internal/username"
)

// Server owns the router and the database connection. The connection
// is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.cfg.TokenSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.cfg.BcryptCost)

	mail := s.newMailer()

	authService := service.NewAuthService(
		s.db,
		tokens,
		passwords,
		mail,
		username.New(),
		service.AccountDefaults{
			ProfileImage: s.cfg.ProfileImage,
			ThemeImage:   s.cfg.ThemeImage,
		},
		s.logger,
	)
	settingsService := service.NewSettingsService(s.db, passwords, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/google", authHandler.HandleGoogleLogin)
		r.Post("/passwordreset", authHandler.HandlePasswordReset)
		r.Post("/passwordupdate", authHandler.HandlePasswordUpdate)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/userinfo", settingsHandler.HandleUserInfo)
		r.Put("/updatesettings", settingsHandler.HandleUpdateSettings)
		r.Post("/userimage/{image}", settingsHandler.HandleUpdateImage)
	})

	return nil
}

// newMailer picks the Postmark client when credentials are configured,
// otherwise the log-only sender so local development works without an
// account.
func (s *Server) newMailer() mailer.Mailer {
	if s.cfg.PostmarkServerToken != "" && s.cfg.PostmarkAccountToken != "" {
		m, err := mailer.NewPostmarkMailer(
			s.cfg.PostmarkServerToken,
			s.cfg.PostmarkAccountToken,
			s.cfg.SenderEmail,
			s.cfg.ResetURL,
		)
		if err == nil {
			return m
		}
		s.logger.Warn("postmark mailer unavailable, falling back to log-only sender",
			slog.String("error", err.Error()),
		)
	}

	return &mailer.LogMailer{ResetURL: s.cfg.ResetURL, Logger: s.logger}
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
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
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
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
