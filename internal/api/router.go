package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/DanielMat97/BackendExtorApp/internal/api/handlers/http/admin"
	"github.com/DanielMat97/BackendExtorApp/internal/api/handlers/http/public"
	"github.com/DanielMat97/BackendExtorApp/internal/api/handlers/http/system"
	"github.com/DanielMat97/BackendExtorApp/internal/config"
	"github.com/DanielMat97/BackendExtorApp/internal/metrics"
	"github.com/DanielMat97/BackendExtorApp/internal/middleware"
	"github.com/DanielMat97/BackendExtorApp/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, collector *metrics.Collector, checks map[string]system.Pinger) (*Server, error) {
	trust, err := middleware.NewProxyTrust(cfg.Http.TrustedProxies)
	if err != nil {
		return nil, err
	}

	adminHandler := admin.NewHandler(logger, svc)
	publicHandler := public.NewHandler(logger, svc, svc, svc)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(cfg, trust, adminHandler, publicHandler, systemHandler, collector, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}, nil
}

func InitRouter(
	cfg *config.Config,
	trust *middleware.ProxyTrust,
	adminHandler *admin.Handler,
	publicHandler *public.Handler,
	systemHandler *system.Handler,
	collector *metrics.Collector,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(trust.Resolve)
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Http.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key", "X-Request-Id"},
		MaxAge:         300,
	}))
	if collector != nil {
		r.Use(middleware.Metrics(collector))
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(30, time.Minute, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.AdminStats)
		})

		// PUBLIC
		api.Route("/reports", func(pr chi.Router) {
			pr.With(middleware.Limit(3, time.Minute, 10*time.Minute, logger)).
				Post("/", publicHandler.ReportCreate)
			pr.With(middleware.Limit(20, time.Minute, 10*time.Minute, logger)).
				Get("/", publicHandler.ReportList)

			pr.Group(func(lr chi.Router) {
				lr.Use(middleware.Limit(10, time.Minute, 10*time.Minute, logger))
				lr.Get("/case/{caseNumber}", publicHandler.ReportByCaseNumber)
				lr.Get("/status/{reportId}", publicHandler.ReportStatus)
			})
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
