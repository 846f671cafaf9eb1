package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/database"
	"github.com/nao1215/deckkit/internal/hunter"
	"github.com/nao1215/deckkit/internal/pdfconv"
)

const (
	// ReadHeaderTimeout bounds how long a client may take to send headers.
	ReadHeaderTimeout = 10 * time.Second

	// ShutdownTimeout is how long Run waits for in-flight requests.
	ShutdownTimeout = 15 * time.Second

	// UploadMaxAge is how old an upload folder must be before it is
	// treated as left over and removed.
	UploadMaxAge = time.Hour

	sweepInterval = 10 * time.Minute

	// maxMemory is the part of a multipart form kept in memory.
	maxMemory = 32 << 20
)

//go:embed assets/index.html
var assets embed.FS

var indexTemplate = template.Must(template.ParseFS(assets, "assets/index.html"))

// Server serves the web UI. It is safe for concurrent use.
type Server struct {
	cfg        *config.Config
	version    string
	workDir    string
	logger     *slog.Logger
	catalog    hunter.Catalog
	rasterizer pdfconv.Rasterizer
	history    *database.HistoryDB
	router     chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCatalog enables automatic downloads in /hunt.
func WithCatalog(c hunter.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithRasterizer replaces the pdftoppm rasterizer used by /convert.
func WithRasterizer(r pdfconv.Rasterizer) Option {
	return func(s *Server) {
		s.rasterizer = r
	}
}

// WithHistory saves every /extract result into db.
func WithHistory(db *database.HistoryDB) Option {
	return func(s *Server) {
		s.history = db
	}
}

// WithWorkDir sets the directory for uploads. The default is the
// deckkit XDG cache directory.
func WithWorkDir(dir string) Option {
	return func(s *Server) {
		s.workDir = dir
	}
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New creates a server for cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		version: "dev",
		workDir: config.XDGCacheDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.rasterizer == nil {
		s.rasterizer = pdfconv.Pdftoppm{Path: cfg.RasterizerPath}
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/extract", s.handleExtract)
	r.Post("/hunt", s.handleHunt)
	r.Post("/convert", s.handleConvert)
	r.Route("/reports/{project}", func(r chi.Router) {
		r.Get("/", s.handleReport)
		r.Get("/fonts.zip", s.handleFontsZip)
	})
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) uploadDir() string {
	return filepath.Join(s.workDir, "uploads")
}

// Listen opens the configured address.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.cfg.ServerAddress, err)
	}
	return ln, nil
}

// Run listens on the configured address until ctx ends, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends. Alongside the HTTP
// server it periodically removes uploads left behind by interrupted
// requests. The first failure stops both.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("web UI listening", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web UI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		s.sweepLoop(gctx)
		return nil
	})
	return g.Wait()
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		s.sweep(time.Now())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) sweep(now time.Time) {
	n, err := s.sweepUploads(now.Add(-UploadMaxAge))
	if err != nil {
		s.logger.Warn("could not sweep uploads", "dir", s.uploadDir(), "error", err)
		return
	}
	if n > 0 {
		s.logger.Debug("removed stale uploads", "count", n)
	}
}

// sweepUploads removes upload folders last modified before cutoff and
// returns how many were removed. A missing upload directory is not an error.
func (s *Server) sweepUploads(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.uploadDir())
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.uploadDir(), e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
