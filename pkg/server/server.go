// Package server is the HTTP host surface for interactive charts.
//
// Each POST /api/charts creates a [session.Session] holding its own zoom
// controller. Clients drive it with pointer events (click, hover) and poll
// frames until the transition reports done. Rendered artifacts go through
// the [pipeline.Runner] and its cache.
//
// # Routes
//
//	GET    /health
//	POST   /api/charts?size=N              tree JSON → {id, nodes, size}
//	GET    /api/charts/{id}                focus and transition state
//	GET    /api/charts/{id}/frame          current scene as JSON
//	GET    /api/charts/{id}/svg            current scene as SVG
//	GET    /api/charts/{id}/render         settled artifact (?format=&focus=)
//	GET    /api/charts/{id}/layout         partition document (?focus=)
//	POST   /api/charts/{id}/click          {node} | {path} | {x, y}
//	POST   /api/charts/{id}/reset
//	POST   /api/charts/{id}/resize         {size}
//	GET    /api/charts/{id}/hover?x=&y=    tooltip bundle, or 204
//	DELETE /api/charts/{id}
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/session"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// Defaults for [Config].
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 8 << 20
	DefaultCleanup      = time.Minute
)

// Config configures a [Server].
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	SessionTTL   time.Duration

	// Stats, when set, is reported by /health. The caller registers it as
	// observability hooks.
	Stats *observability.Counters

	// Chart defaults for new sessions.
	Size           float64
	MaxLabelLength int
	Fields         []string
	Duration       time.Duration
	Easing         string
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = session.DefaultTTL
	}
	if c.Size == 0 {
		c.Size = render.DefaultSize
	}
	if c.Duration == 0 {
		c.Duration = zoom.DefaultDuration
	}
	if c.Easing == "" {
		c.Easing = zoom.DefaultEasing
	}
}

// Server is the chart HTTP server.
type Server struct {
	router   chi.Router
	store    *session.MemoryStore
	runner   *pipeline.Runner
	logger   *log.Logger
	cfg      Config
	zoomOpts []zoom.Option
	now      func() time.Time

	// Tree loaded from a watched file, used when a create request has no
	// body. Sessions created from it reload when the file changes.
	mu          sync.RWMutex
	defaultTree *hierarchy.TreeNode
	watched     map[string]bool
}

// New creates and configures the server. A nil runner renders without a
// cache.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, cache.NewScopedKeyer(nil, "serve:"), logger)
	}
	fn, err := zoom.ParseEasing(cfg.Easing)
	if err != nil {
		return nil, err
	}
	s := &Server{
		store:    session.NewMemoryStore(cfg.SessionTTL),
		runner:   runner,
		logger:   logger,
		cfg:      cfg,
		zoomOpts: []zoom.Option{zoom.WithDuration(cfg.Duration), zoom.WithEasing(fn)},
		now:      time.Now,
		watched:  make(map[string]bool),
	}
	s.store.OnRemove(s.forget)
	s.setupRoutes()
	return s, nil
}

// forget drops the watched flag of a removed session.
func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.watched, id)
	s.mu.Unlock()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store returns the session store.
func (s *Server) Store() *session.MemoryStore { return s.store }

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api/charts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/frame", s.handleFrame)
			r.Get("/svg", s.handleSVG)
			r.Get("/render", s.handleRender)
			r.Get("/layout", s.handleLayout)
			r.Post("/click", s.handleClick)
			r.Post("/reset", s.handleReset)
			r.Post("/resize", s.handleResize)
			r.Get("/hover", s.handleHover)
		})
	})

	s.router = r
}

// Run serves on cfg.Addr until ctx is cancelled, removing idle sessions in
// the background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go s.store.RunCleanup(ctx, DefaultCleanup)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// SetDefaultTree sets the tree used by create requests without a body.
func (s *Server) SetDefaultTree(tree *hierarchy.TreeNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultTree = tree
}

func (s *Server) getDefaultTree() *hierarchy.TreeNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultTree
}

func (s *Server) renderOptions(size float64) render.Options {
	ro := render.Options{Size: size, MaxLabelLength: s.cfg.MaxLabelLength, Tooltips: true}
	if len(s.cfg.Fields) > 0 {
		ro.FieldFilter = render.OnlyFields(s.cfg.Fields...)
	}
	return ro
}
