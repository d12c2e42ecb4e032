// Package api exposes the service over HTTP with gin.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/auth"
	"github.com/dailyyoga/coinboard/dashboard"
	"github.com/dailyyoga/coinboard/feedback"
	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/user"
)

// Services are the dependencies the handlers need.
type Services struct {
	Users     *user.Service
	Tokens    *auth.Tokens
	Dashboard *dashboard.Service
	Feedback  *feedback.Service
}

// Server is the HTTP API server.
type Server struct {
	config   *Config
	logger   logger.Logger
	services Services
	srv      *http.Server
}

// NewServer creates the API server.
func NewServer(log logger.Logger, cfg *Config, services Services) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if services.Users == nil || services.Tokens == nil || services.Dashboard == nil || services.Feedback == nil {
		return nil, ErrNilDependency
	}
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{config: cfg, logger: log, services: services}
	s.srv = &http.Server{
		Addr:         cfg.Host + ":" + cfg.Port,
		Handler:      s.router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(RequestLogger(s.logger))

	r.GET("/health", s.handleHealth)

	apiGroup := r.Group("/api")
	apiGroup.POST("/auth/signup", s.handleSignup)
	apiGroup.POST("/auth/login", s.handleLogin)

	authed := apiGroup.Group("")
	authed.Use(Authenticated(s.services.Tokens))
	authed.GET("/user/preferences", s.handleGetPreferences)
	authed.PUT("/user/preferences", s.handleUpdatePreferences)
	authed.GET("/dashboard", s.handleDashboard)
	authed.POST("/feedback", s.handleFeedback)

	return r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- ErrServe(err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
