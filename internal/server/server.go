package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipe-favorites/backend/config"
	"github.com/pageza/recipe-favorites/backend/internal/api"
	"github.com/pageza/recipe-favorites/backend/internal/middleware"
	"github.com/pageza/recipe-favorites/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    logrus.FieldLogger
}

// New wires the favorites API over db. limiter may be nil, in which case
// writes are not rate limited.
func New(cfg *config.Config, db *gorm.DB, log *logrus.Logger, limiter *middleware.RateLimiter) *Server {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.AllowedOrigins),
	)
	router.NoRoute(middleware.NoRoute)

	var writeLimits []gin.HandlerFunc
	if limiter != nil {
		writeLimits = append(writeLimits, limiter.Middleware())
	}
	api.RegisterRoutes(router, service.NewFavoriteService(db), log, writeLimits...)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.WithField("addr", s.http.Addr).Info("server is running")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
