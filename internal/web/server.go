// Package web serves the portfolio as a server-rendered page with an HTMX
// contact form, plus the privacy page and the stats dashboard.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvvishnuu/portfolio/internal/config"
	"github.com/cvvishnuu/portfolio/internal/contact"
	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/store"
)

// Deps are the collaborators of a Server. Store may be nil, which disables
// visitor tracking, submission logging and the dashboard.
type Deps struct {
	Config    *config.Config
	Portfolio *portfolio.Portfolio
	Store     *store.Store
	Relay     contact.Relay
	Settings  contact.Settings
	Logger    *slog.Logger
	// ContactOptions are appended to every contact controller the server
	// creates, e.g. to shorten the simulated delay in tests.
	ContactOptions []contact.Option
}

// Server is the HTTP front end.
type Server struct {
	Deps
	engine     *gin.Engine
	adminToken string
}

// New builds the router.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	gin.SetMode(deps.Config.Mode)

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{Deps: deps, engine: gin.New()}
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), requestLogger(deps.Logger))
	if deps.Store != nil {
		s.engine.Use(visitorTracking(deps.Store, deps.Logger))
	}

	s.engine.StaticFS("/static", http.FS(staticFiles()))
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	s.engine.GET("/", s.handleHome)
	s.engine.GET("/contact-form", s.handleContactForm)
	s.engine.POST("/contact", s.handleContact)
	s.engine.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})

	if deps.Store != nil && deps.Config.AdminEnabled() {
		if err := s.setupAdminRoutes(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("web listening", "addr", srv.Addr, "relay_enabled", s.Settings.Enabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Logger.Info("web shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
