// Package http provides the HTTP API for apexforge.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/apexforge/apexforge/internal/artifacts"
	"github.com/apexforge/apexforge/internal/logging"
)

// PipelineStarter launches the pipeline for a new project. The daemon
// implements this with a Temporal client; tests substitute a fake.
type PipelineStarter interface {
	StartPipeline(ctx context.Context, projectID, projectName, requirements string) error
}

// Config holds HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// Server provides the project API and web UI.
type Server struct {
	echo    *echo.Echo
	store   *artifacts.Store
	starter PipelineStarter
	logger  *logging.Logger
	config  *Config

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

// NewServer creates the API server.
func NewServer(store *artifacts.Store, starter PipelineStarter, logger *logging.Logger, cfg *Config) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if starter == nil {
		return nil, fmt.Errorf("pipeline starter cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8820, ShutdownTimeout: 10 * time.Second}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info(c.Request().Context(), "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		store:   store,
		starter: starter,
		logger:  logger,
		config:  cfg,
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/projects", s.handleCreateProject, s.rateLimit)
	v1.GET("/projects/:id", s.handleGetProject)
	v1.GET("/projects/:id/messages", s.handleGetMessages)
	v1.POST("/projects/:id/messages", s.handlePostMessage)
	v1.GET("/projects/:id/artifacts", s.handleListArtifacts)
	v1.GET("/projects/:id/artifacts/:name", s.handleGetArtifact)
}

// rateLimit throttles project creation per client IP. Each pipeline
// run costs real model tokens, so creation is the only limited route.
func (s *Server) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiterFor(c.RealIP()).Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

// limiterFor returns the rate limiter for an IP: one project every
// ten seconds with a burst of 3.
func (s *Server) limiterFor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limiters == nil {
		s.limiters = make(map[string]*rate.Limiter)
		s.lastCleanup = time.Now()
	}

	// Reset the map hourly to prevent unbounded growth.
	if time.Since(s.lastCleanup) > time.Hour {
		s.limiters = make(map[string]*rate.Limiter)
		s.lastCleanup = time.Now()
	}

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(10*time.Second), 3)
		s.limiters[ip] = limiter
	}
	return limiter
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: "apexforge"})
}

// CreateProjectRequest is the request body for POST /api/v1/projects.
type CreateProjectRequest struct {
	Name         string `json:"name"`
	Requirements string `json:"requirements"`
}

// CreateProjectResponse is the response body for POST /api/v1/projects.
type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

func (s *Server) handleCreateProject(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(ctx, "invalid project request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Requirements == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requirements field is required")
	}
	if req.Name == "" {
		req.Name = "Untitled Project"
	}

	projectID := uuid.NewString()
	s.store.Create(projectID, req.Name, req.Requirements)
	if err := s.store.AddMessage(projectID, "System", "Project initialized"); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to initialize project")
	}

	if err := s.starter.StartPipeline(ctx, projectID, req.Name, req.Requirements); err != nil {
		s.logger.Error(ctx, "failed to start pipeline",
			zap.String("project_id", projectID), zap.Error(err))
		_ = s.store.SetStatus(projectID, artifacts.StatusError)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start pipeline")
	}

	s.logger.Info(logging.WithProjectID(ctx, projectID), "project created",
		zap.String("name", req.Name))
	return c.JSON(http.StatusCreated, CreateProjectResponse{
		ProjectID: projectID,
		Status:    string(artifacts.StatusPending),
	})
}

// ProjectResponse is the response body for GET /api/v1/projects/:id.
type ProjectResponse struct {
	ProjectID     string     `json:"project_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	CurrentPhase  string     `json:"current_phase,omitempty"`
	CurrentAgent  string     `json:"current_agent,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	MessageCount  int        `json:"message_count"`
	ArtifactCount int        `json:"artifact_count"`
}

func (s *Server) handleGetProject(c echo.Context) error {
	p, err := s.store.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}

	return c.JSON(http.StatusOK, ProjectResponse{
		ProjectID:     p.ID,
		Name:          p.Name,
		Status:        string(p.Status),
		CurrentPhase:  p.CurrentPhase,
		CurrentAgent:  p.CurrentAgent,
		StartedAt:     p.StartedAt,
		CompletedAt:   p.CompletedAt,
		MessageCount:  p.MessageCount(),
		ArtifactCount: p.ArtifactCount(),
	})
}

// MessagesResponse is the response body for GET /api/v1/projects/:id/messages.
type MessagesResponse struct {
	Messages []artifacts.Message `json:"messages"`
	LastID   int                 `json:"last_id"`
}

func (s *Server) handleGetMessages(c echo.Context) error {
	after := 0
	if raw := c.QueryParam("after"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "after must be a non-negative integer")
		}
		after = parsed
	}

	msgs, last, err := s.store.MessagesAfter(c.Param("id"), after)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	if msgs == nil {
		msgs = []artifacts.Message{}
	}
	return c.JSON(http.StatusOK, MessagesResponse{Messages: msgs, LastID: last})
}

// PostMessageRequest is the request body for POST /api/v1/projects/:id/messages.
type PostMessageRequest struct {
	Content string `json:"content"`
}

func (s *Server) handlePostMessage(c echo.Context) error {
	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content field is required")
	}

	// User messages land in the transcript but do not steer the
	// running pipeline.
	if err := s.store.AddMessage(c.Param("id"), "User", req.Content); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return c.NoContent(http.StatusAccepted)
}

// ArtifactSummary is one entry of the artifact manifest.
type ArtifactSummary struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	File      string    `json:"file"`
}

// ArtifactsResponse is the response body for GET /api/v1/projects/:id/artifacts.
type ArtifactsResponse struct {
	Artifacts []ArtifactSummary `json:"artifacts"`
}

func (s *Server) handleListArtifacts(c echo.Context) error {
	p, err := s.store.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}

	summaries := make([]ArtifactSummary, 0, len(p.Artifacts))
	for _, a := range p.Artifacts {
		summaries = append(summaries, ArtifactSummary{
			Name:      a.Name,
			Type:      string(a.Type),
			CreatedBy: a.CreatedBy,
			CreatedAt: a.CreatedAt,
			File:      a.Filename(),
		})
	}
	return c.JSON(http.StatusOK, ArtifactsResponse{Artifacts: summaries})
}

func (s *Server) handleGetArtifact(c echo.Context) error {
	a, err := s.store.Artifact(c.Param("id"), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "artifact not found")
	}
	return c.JSON(http.StatusOK, a)
}

// Start starts the HTTP server and blocks until the context is
// cancelled, then performs graceful shutdown with the configured
// timeout. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(ctx, "starting http server", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server start: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			s.config.ShutdownTimeout,
		)
		defer cancel()

		s.logger.Info(shutdownCtx, "shutting down http server")
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}

		return http.ErrServerClosed
	}
}

// Echo returns the underlying Echo instance for registering additional
// routes.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
